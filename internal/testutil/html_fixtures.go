package testutil

import (
	"fmt"
	"html"
	"strings"
)

// TrackRowOptions describes one row of the songlist table.
type TrackRowOptions struct {
	Name string
	Href string // relative link to the track page, e.g. "/soundtracks/album/01.mp3"
	// Duration and Size fill the secondary clickable cells.
	Duration string
	Size     string
	// OmitTitleCell drops the clickable title cell to simulate a malformed row.
	OmitTitleCell bool
}

// AlbumPageOptions contains options for generating an album page.
type AlbumPageOptions struct {
	Title string
	// InfoParagraphs are rendered as <p> elements in order, before the song list.
	InfoParagraphs []string
	// ImageTables renders one table per entry, each with the given image srcs.
	ImageTables [][]string
	Tracks      []TrackRowOptions
	// OmitSongList drops the songlist table entirely.
	OmitSongList bool
	Charset      string
}

// GenerateAlbumPageHTML generates an album page shaped like the real khinsider layout:
// an info paragraph, a cover-art table and a songlist table with header and footer rows.
func GenerateAlbumPageHTML(opts AlbumPageOptions) string {
	var sb strings.Builder

	charset := opts.Charset
	if charset == "" {
		charset = "utf-8"
	}
	title := opts.Title
	if title == "" {
		title = "Test Album"
	}

	fmt.Fprintf(&sb, `<html>
<head><meta charset="%s"><title>%s</title></head>
<body>
<div id="pageContent">
	<h2>%s</h2>
`, charset, html.EscapeString(title), html.EscapeString(title))

	for _, srcs := range opts.ImageTables {
		sb.WriteString("\t<table>\n\t\t<tr>\n")
		for _, src := range srcs {
			fmt.Fprintf(&sb, "\t\t\t<td><div class=\"albumImage\"><a href=\"%s\"><img src=\"%s\"></a></div></td>\n", src, src)
		}
		sb.WriteString("\t\t</tr>\n\t</table>\n")
	}

	for _, p := range opts.InfoParagraphs {
		fmt.Fprintf(&sb, "\t<p align=\"left\">%s</p>\n", p)
	}

	if !opts.OmitSongList {
		sb.WriteString(`	<table id="songlist">
		<tr id="songlist_header">
			<th>&nbsp;</th>
			<th>#</th>
			<th colspan="1"><b>Song Name</b></th>
			<th align="right"><b>MP3</b></th>
			<th align="right"><b>FLAC</b></th>
		</tr>
`)
		for i, track := range opts.Tracks {
			duration := track.Duration
			if duration == "" {
				duration = "1:23"
			}
			size := track.Size
			if size == "" {
				size = "2.10 MB"
			}
			sb.WriteString("\t\t<tr>\n")
			sb.WriteString("\t\t\t<td class=\"playTrack\"><div class=\"playlistDownloadSong\"></div></td>\n")
			fmt.Fprintf(&sb, "\t\t\t<td align=\"right\">%d.</td>\n", i+1)
			if !track.OmitTitleCell {
				fmt.Fprintf(&sb, "\t\t\t<td class=\"clickable-row\"><a href=\"%s\">%s</a></td>\n", track.Href, html.EscapeString(track.Name))
			}
			fmt.Fprintf(&sb, "\t\t\t<td class=\"clickable-row\" align=\"right\"><a href=\"%s\" style=\"font-weight:normal;\">%s</a></td>\n", track.Href, duration)
			fmt.Fprintf(&sb, "\t\t\t<td class=\"clickable-row\" align=\"right\"><a href=\"%s\" style=\"font-weight:normal;\">%s</a></td>\n", track.Href, size)
			sb.WriteString("\t\t</tr>\n")
		}
		fmt.Fprintf(&sb, `		<tr id="songlist_footer">
			<th colspan="3">Total: %d tracks</th>
			<th>&nbsp;</th>
			<th>&nbsp;</th>
		</tr>
	</table>
`, len(opts.Tracks))
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}

// GenerateTrackPageHTML generates an intermediate track page offering one
// download anchor per link, each wrapping a songDownloadLink span.
func GenerateTrackPageHTML(name string, links ...string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<html>
<body>
<div id="pageContent">
	<p><b>Song name:</b> %s</p>
`, html.EscapeString(name))
	for _, link := range links {
		fmt.Fprintf(&sb, "\t<p><a style=\"color: #21363f;\" href=\"%s\"><span class=\"songDownloadLink\"><i class=\"material-icons\">get_app</i>Click here to download</span></a></p>\n", link)
	}
	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}

// AlbumInfoParagraph renders a khinsider style metadata paragraph, tab indented.
func AlbumInfoParagraph(albumName string) string {
	return fmt.Sprintf("\n\t\tAlbum name: <b>%s</b><br>\n\t\tPlatforms: <a href=\"/game-soundtracks/snes\">SNES</a><br>\n\t\tNumber of Files: <b>3</b><br>\n\t", html.EscapeString(albumName))
}
