package models

import (
	"fmt"
	"strings"
)

// AlbumInfo holds the album metadata paragraph, tabs stripped and trimmed.
type AlbumInfo struct {
	Text string
}

// Name returns the value of the "Album name:" line, or an empty string.
func (a AlbumInfo) Name() string {
	for _, line := range strings.Split(a.Text, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Album name:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// ImageEntry is one cover-art image of the album.
type ImageEntry struct {
	URL      string
	Filename string
}

// TrackEntry is one audio track in document order.
// SourceHref is absolute: either the asset itself (positional) or the track page (semantic).
type TrackEntry struct {
	Number      int
	DisplayName string
	SourceHref  string
}

// Filename returns "NN - <title><ext>" with NN zero padded to two digits.
// Albums with 100 tracks or more will not sort lexically.
func (t TrackEntry) Filename(q Quality) string {
	return fmt.Sprintf("%02d - %s%s", t.Number, SanitizeFilename(t.DisplayName), q)
}

// NumberTracks assigns contiguous numbers starting at start, keeping the slice order.
func NumberTracks(tracks []TrackEntry, start int) []TrackEntry {
	for i := range tracks {
		tracks[i].Number = start + i
	}
	return tracks
}

// DedupeTracks drops every track whose display name was already seen, keeping the first.
func DedupeTracks(tracks []TrackEntry) []TrackEntry {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]TrackEntry, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.DisplayName]; ok {
			continue
		}
		seen[t.DisplayName] = struct{}{}
		out = append(out, t)
	}
	return out
}
