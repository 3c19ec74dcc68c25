package parser

// Selectors names every element, id, class and marker the extractors rely on.
// The album site is an external, unversioned HTML contract; when its layout
// drifts, the fix is a change here or a `selectors.*` key in config.yaml.
type Selectors struct {
	// InfoParagraph selects the candidate album-info elements.
	InfoParagraph string `mapstructure:"info_paragraph"`
	// InfoMarker must appear in the text of the album-info paragraph.
	InfoMarker string `mapstructure:"info_marker"`
	// ArtTable selects the containers scanned for cover-art images.
	ArtTable string `mapstructure:"art_table"`

	// SongTable selects the track listing table (semantic strategy).
	SongTable string `mapstructure:"song_table"`
	// HeaderRowID and FooterRowID identify rows of SongTable that are not tracks.
	HeaderRowID string `mapstructure:"header_row_id"`
	FooterRowID string `mapstructure:"footer_row_id"`
	// TrackCell selects the cell holding the track title link.
	TrackCell string `mapstructure:"track_cell"`
	// DownloadSpan selects the span inside the download anchor of a track page.
	DownloadSpan string `mapstructure:"download_span"`

	// PositionalTable selects the tables whose rows are scanned (positional strategy).
	PositionalTable string `mapstructure:"positional_table"`
	// PositionalCell is the zero based <td> index holding the track link (positional strategy).
	// Nil means the default; 0 is a valid index.
	PositionalCell *int `mapstructure:"positional_cell"`
	// PositionalMarker must appear in a track link href (positional strategy).
	PositionalMarker string `mapstructure:"positional_marker"`
}

// DefaultSelectors returns the selectors matching the current khinsider layout.
func DefaultSelectors() Selectors {
	return Selectors{
		InfoParagraph:    "p",
		InfoMarker:       "Album name",
		ArtTable:         "table",
		SongTable:        "table#songlist",
		HeaderRowID:      "songlist_header",
		FooterRowID:      "songlist_footer",
		TrackCell:        "td.clickable-row",
		DownloadSpan:     "span.songDownloadLink",
		PositionalTable:  "table",
		PositionalCell:   intPtr(2),
		PositionalMarker: ".mp3",
	}
}

// withDefaults fills empty fields from DefaultSelectors.
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.InfoParagraph == "" {
		s.InfoParagraph = d.InfoParagraph
	}
	if s.InfoMarker == "" {
		s.InfoMarker = d.InfoMarker
	}
	if s.ArtTable == "" {
		s.ArtTable = d.ArtTable
	}
	if s.SongTable == "" {
		s.SongTable = d.SongTable
	}
	if s.HeaderRowID == "" {
		s.HeaderRowID = d.HeaderRowID
	}
	if s.FooterRowID == "" {
		s.FooterRowID = d.FooterRowID
	}
	if s.TrackCell == "" {
		s.TrackCell = d.TrackCell
	}
	if s.DownloadSpan == "" {
		s.DownloadSpan = d.DownloadSpan
	}
	if s.PositionalTable == "" {
		s.PositionalTable = d.PositionalTable
	}
	if s.PositionalCell == nil || *s.PositionalCell < 0 {
		s.PositionalCell = d.PositionalCell
	}
	if s.PositionalMarker == "" {
		s.PositionalMarker = d.PositionalMarker
	}
	return s
}

func intPtr(v int) *int { return &v }
