package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Belphemur/khdl/internal/models"

	"github.com/bogem/id3v2"
)

// Tagger writes title, album and track number frames into downloaded mp3 files.
type Tagger struct {
	album string
	total int
}

// NewTagger creates a tagger for an album with total tracks.
func NewTagger(album string, total int) *Tagger {
	return &Tagger{album: album, total: total}
}

// Applies reports whether path is a file the tagger can write to.
func (t *Tagger) Applies(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// Tag replaces the ID3v2 frames of the file at path with the track metadata.
func (t *Tagger) Tag(path string, track models.TrackEntry) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open tags of %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(track.DisplayName)
	if t.album != "" {
		tag.SetAlbum(t.album)
	}

	trck := strconv.Itoa(track.Number)
	if t.total > 0 {
		trck = fmt.Sprintf("%d/%d", track.Number, t.total)
	}
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, trck)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags of %s: %w", path, err)
	}
	return nil
}
