package parser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Belphemur/khdl/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	// StrategySemantic reads the songlist table by id and class and resolves
	// each track through its own page.
	StrategySemantic = "semantic"
	// StrategyPositional reads the third cell of every table row and rewrites
	// the mp3 link extension directly.
	StrategyPositional = "positional"
)

// TrackStrategy extracts the track list of an album page and turns a track
// into the URL of its audio asset.
type TrackStrategy interface {
	Name() string
	// DedupeByDefault reports whether duplicate titles are dropped when dedupe is "auto".
	DedupeByDefault() bool
	// ExtractTracks returns tracks in document order, unnumbered.
	ExtractTracks(page *Page, logger zerolog.Logger) []models.TrackEntry
	// ResolveAsset returns the final download URL for track in the requested quality.
	ResolveAsset(ctx context.Context, extractor *Extractor, fetcher PageFetcher, track models.TrackEntry, quality models.Quality) (string, error)
}

// NewTrackStrategy returns the strategy registered under name.
func NewTrackStrategy(name, downloadServer string, selectors Selectors) (TrackStrategy, error) {
	selectors = selectors.withDefaults()

	switch strings.ToLower(name) {
	case "", StrategySemantic:
		return &SemanticStrategy{selectors: selectors}, nil
	case StrategyPositional:
		base, err := url.Parse(downloadServer)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, fmt.Errorf("invalid download server %q for positional strategy", downloadServer)
		}
		return &PositionalStrategy{selectors: selectors, cell: *selectors.PositionalCell, server: base}, nil
	default:
		return nil, fmt.Errorf("unknown track strategy %q (want %s or %s)", name, StrategySemantic, StrategyPositional)
	}
}

// SemanticStrategy locates the songlist table and its title cells.
type SemanticStrategy struct {
	selectors Selectors
}

func (s *SemanticStrategy) Name() string { return StrategySemantic }

func (s *SemanticStrategy) DedupeByDefault() bool { return false }

// ExtractTracks skips header and footer rows by id; rows without a title cell are logged and skipped.
func (s *SemanticStrategy) ExtractTracks(page *Page, logger zerolog.Logger) []models.TrackEntry {
	table := page.Document.Find(s.selectors.SongTable).First()
	if table.Length() == 0 {
		logger.Warn().Str("selector", s.selectors.SongTable).Msg("Song list table not found")
		return nil
	}

	var tracks []models.TrackEntry
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		id, _ := row.Attr("id")
		if id == s.selectors.HeaderRowID || id == s.selectors.FooterRowID {
			return
		}

		cell := row.Find(s.selectors.TrackCell).First()
		if cell.Length() == 0 {
			logger.Warn().Int("row", i).Str("selector", s.selectors.TrackCell).Msg("Row has no track cell, skipping")
			return
		}

		link := cell.Find("a").First()
		href, exists := link.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			logger.Warn().Int("row", i).Msg("Track cell has no link, skipping")
			return
		}

		pageURL, err := page.Resolve(strings.TrimSpace(href))
		if err != nil {
			logger.Warn().Err(err).Int("row", i).Msg("Track link is invalid, skipping")
			return
		}

		name := strings.TrimSpace(link.Text())
		tracks = append(tracks, models.TrackEntry{DisplayName: name, SourceHref: pageURL})
		logger.Debug().Int("row", i).Str("name", name).Str("href", pageURL).Msg("Extracted track")
	})

	return tracks
}

// ResolveAsset fetches the track page and reads its download link.
func (s *SemanticStrategy) ResolveAsset(ctx context.Context, extractor *Extractor, fetcher PageFetcher, track models.TrackEntry, quality models.Quality) (string, error) {
	page, err := fetcher.FetchPage(ctx, track.SourceHref)
	if err != nil {
		return "", fmt.Errorf("failed to fetch track page: %w", err)
	}
	return extractor.DownloadLink(page, quality)
}

// PositionalStrategy scans every table row for a link in a fixed cell.
type PositionalStrategy struct {
	selectors Selectors
	cell      int
	server    *url.URL
}

func (s *PositionalStrategy) Name() string { return StrategyPositional }

func (s *PositionalStrategy) DedupeByDefault() bool { return true }

// ExtractTracks keeps links whose href contains the positional marker; rows
// with too few cells or no link are skipped silently, as they are layout rows.
func (s *PositionalStrategy) ExtractTracks(page *Page, logger zerolog.Logger) []models.TrackEntry {
	var tracks []models.TrackEntry

	page.Document.Find(s.selectors.PositionalTable).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() <= s.cell {
				return
			}

			link := cells.Eq(s.cell).Find("a").First()
			href, exists := link.Attr("href")
			if !exists || !strings.Contains(href, s.selectors.PositionalMarker) {
				return
			}

			assetURL, err := resolveAgainst(s.server, strings.TrimSpace(href))
			if err != nil {
				logger.Debug().Err(err).Int("row", i).Msg("Track link is invalid, skipping")
				return
			}

			name := strings.TrimSpace(link.Text())
			tracks = append(tracks, models.TrackEntry{DisplayName: name, SourceHref: assetURL})
			logger.Debug().Int("row", i).Str("name", name).Str("href", assetURL).Msg("Extracted track")
		})
	})

	return tracks
}

// ResolveAsset rewrites the link extension to the requested quality; no request is made.
func (s *PositionalStrategy) ResolveAsset(_ context.Context, _ *Extractor, _ PageFetcher, track models.TrackEntry, quality models.Quality) (string, error) {
	return quality.Apply(track.SourceHref), nil
}
