package parser

import (
	"net/url"
	"path"
	"strings"

	"github.com/Belphemur/khdl/internal/apperrors"
	"github.com/Belphemur/khdl/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Extractor pulls album info, cover art and track download links out of parsed pages.
type Extractor struct {
	selectors Selectors
	logger    zerolog.Logger
}

// NewExtractor creates an extractor; empty selector fields fall back to DefaultSelectors.
func NewExtractor(selectors Selectors, logger zerolog.Logger) *Extractor {
	return &Extractor{
		selectors: selectors.withDefaults(),
		logger:    logger,
	}
}

// AlbumInfo returns the text of the last paragraph containing the info marker.
// A later match always overwrites an earlier one. Tabs are removed and the text trimmed.
func (e *Extractor) AlbumInfo(page *Page) (models.AlbumInfo, bool) {
	var info string
	found := false

	page.Document.Find(e.selectors.InfoParagraph).Each(func(i int, p *goquery.Selection) {
		text := p.Text()
		if !strings.Contains(text, e.selectors.InfoMarker) {
			return
		}
		info = strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(text), "\t", ""))
		found = true
		e.logger.Debug().Int("paragraph", i).Msg("Found album info paragraph")
	})

	return models.AlbumInfo{Text: info}, found && info != ""
}

// AlbumArt returns the images of the last table that contains any image.
// Images of earlier tables are discarded, never merged. A page without any
// usable image yields an *apperrors.ErrNotFound.
func (e *Extractor) AlbumArt(page *Page) ([]models.ImageEntry, error) {
	var images *goquery.Selection

	page.Document.Find(e.selectors.ArtTable).Each(func(i int, table *goquery.Selection) {
		imgs := table.Find("img")
		if imgs.Length() > 0 {
			images = imgs
			e.logger.Debug().Int("table", i).Int("images", imgs.Length()).Msg("Found table with images")
		}
	})

	if images == nil {
		return nil, apperrors.NewNotFoundError("album art", page.URL.String())
	}

	var entries []models.ImageEntry
	images.Each(func(i int, img *goquery.Selection) {
		src, exists := img.Attr("src")
		if !exists || strings.TrimSpace(src) == "" {
			e.logger.Debug().Int("image", i).Msg("Image missing src attribute")
			return
		}

		imageURL, err := page.Resolve(strings.TrimSpace(src))
		if err != nil {
			e.logger.Warn().Err(err).Str("src", src).Msg("Skipping image with invalid src")
			return
		}

		entries = append(entries, models.ImageEntry{
			URL:      imageURL,
			Filename: imageFilename(imageURL),
		})
	})

	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("album art", page.URL.String())
	}
	return entries, nil
}

// imageFilename returns the last path segment of an image URL, unescaped.
func imageFilename(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil || u.Path == "" {
		segments := strings.Split(imageURL, "/")
		return models.SanitizeFilename(segments[len(segments)-1])
	}
	return models.SanitizeFilename(path.Base(u.Path))
}

// DownloadLink finds the asset URL on a track page: the anchor wrapping the
// download span whose href mentions the requested quality.
func (e *Extractor) DownloadLink(page *Page, quality models.Quality) (string, error) {
	var link string

	page.Document.Find(e.selectors.DownloadSpan).EachWithBreak(func(i int, span *goquery.Selection) bool {
		parent := span.Parent()
		href, exists := parent.Attr("href")
		if !exists {
			e.logger.Debug().Int("span", i).Msg("Download span parent has no href")
			return true
		}
		if !quality.MatchesLink(href) {
			e.logger.Debug().Str("href", href).Str("quality", quality.String()).Msg("Download link does not match quality")
			return true
		}

		resolved, err := page.Resolve(href)
		if err != nil {
			e.logger.Debug().Err(err).Str("href", href).Msg("Skipping invalid download link")
			return true
		}
		link = resolved
		return false
	})

	if link == "" {
		return "", &apperrors.ErrDownloadLinkNotFound{PageURL: page.URL.String(), Quality: quality.String()}
	}
	return link, nil
}
