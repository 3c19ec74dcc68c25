package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Belphemur/khdl/internal/apperrors"
	"github.com/Belphemur/khdl/internal/client"
	"github.com/Belphemur/khdl/internal/config"
	"github.com/Belphemur/khdl/internal/models"
	"github.com/Belphemur/khdl/internal/parser"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner drives one album download: fetch the page, extract the info, art and
// tracks, then save each asset under the destination directory.
type Runner struct {
	cfg        *config.Config
	client     client.Client
	extractor  *parser.Extractor
	strategy   parser.TrackStrategy
	downloader *Downloader
	quality    models.Quality
	dedupe     bool
	logger     zerolog.Logger
}

// NewRunner validates cfg and assembles the pipeline around c.
func NewRunner(cfg *config.Config, c client.Client, logger zerolog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, err := parser.NewTrackStrategy(cfg.Strategy, cfg.DownloadServer, cfg.Selectors)
	if err != nil {
		return nil, err
	}
	dedupe, err := cfg.DedupeEnabled(strategy.DedupeByDefault())
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:        cfg,
		client:     c,
		extractor:  parser.NewExtractor(cfg.Selectors, logger),
		strategy:   strategy,
		downloader: NewDownloader(c, logger),
		quality:    models.ParseQuality(cfg.Quality),
		dedupe:     dedupe,
		logger:     logger,
	}, nil
}

// Run executes the pipeline. Per-item failures are counted in the summary;
// the returned error is reserved for conditions that abort the run.
func (r *Runner) Run(ctx context.Context) (models.Summary, error) {
	var summary models.Summary

	dest := filepath.Clean(r.cfg.DestinationPath)
	if err := ensureDir(dest); err != nil {
		return summary, err
	}

	r.logger.Info().Str("url", r.cfg.SourceURL).Msg("Fetching album page")
	page, err := r.client.FetchPage(ctx, r.cfg.SourceURL)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch album page: %w", err)
	}

	var info models.AlbumInfo
	if !r.cfg.NoInfo {
		var found bool
		info, found = r.extractor.AlbumInfo(page)
		if !found {
			return summary, &apperrors.ErrAlbumInfoNotFound{URL: r.cfg.SourceURL}
		}
		infoPath := filepath.Join(dest, models.SanitizeFilename(r.cfg.InfoFilename))
		summary.Add(r.downloader.WriteFile(models.AssetInfo, r.cfg.InfoFilename, infoPath, []byte(info.Text)))
	}

	if !r.cfg.NoArt {
		images, err := r.extractor.AlbumArt(page)
		if err != nil {
			r.logger.Warn().Err(err).Msg("No album art found")
		}
		for _, res := range r.saveImages(ctx, dest, images) {
			summary.Add(res)
		}
	}

	if !r.cfg.NoMusic {
		tracks := r.strategy.ExtractTracks(page, r.logger)
		if len(tracks) == 0 {
			return summary, &apperrors.ErrNoTracksFound{URL: r.cfg.SourceURL, Strategy: r.strategy.Name()}
		}
		if r.dedupe {
			before := len(tracks)
			tracks = models.DedupeTracks(tracks)
			if dropped := before - len(tracks); dropped > 0 {
				r.logger.Debug().Int("dropped", dropped).Msg("Dropped duplicate tracks")
			}
		}
		start := 0
		if r.cfg.CountFrom1 {
			start = 1
		}
		tracks = models.NumberTracks(tracks, start)

		r.logger.Info().Int("tracks", len(tracks)).Str("strategy", r.strategy.Name()).Msg("Downloading music")

		var tagger *Tagger
		if r.cfg.Tag {
			if info.Text == "" {
				info, _ = r.extractor.AlbumInfo(page)
			}
			tagger = NewTagger(info.Name(), len(tracks))
		}
		for _, res := range r.saveTracks(ctx, dest, tracks, tagger) {
			summary.Add(res)
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	r.logger.Info().
		Int("saved", summary.Saved).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("Download completed!")
	return summary, nil
}

// saveImages saves art one image at a time: two images may share a
// filename, and the later one overwrites the earlier.
func (r *Runner) saveImages(ctx context.Context, dest string, images []models.ImageEntry) []models.DownloadResult {
	results := make([]models.DownloadResult, 0, len(images))
	for _, img := range images {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.downloader.Save(ctx, models.AssetImage, img.URL, img.Filename, filepath.Join(dest, img.Filename)))
	}
	return results
}

// saveTracks resolves and saves every track. Filenames are fixed before
// dispatch and results keep track order regardless of completion order.
func (r *Runner) saveTracks(ctx context.Context, dest string, tracks []models.TrackEntry, tagger *Tagger) []models.DownloadResult {
	results := make([]models.DownloadResult, len(tracks))
	g := r.pool()
	for i, track := range tracks {
		filename := track.Filename(r.quality)
		path := filepath.Join(dest, filename)
		g.Go(func() error {
			results[i] = r.saveTrack(ctx, track, filename, path, tagger)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *Runner) saveTrack(ctx context.Context, track models.TrackEntry, filename, path string, tagger *Tagger) models.DownloadResult {
	assetURL, err := r.strategy.ResolveAsset(ctx, r.extractor, r.client, track, r.quality)
	if err != nil {
		if errors.Is(err, &apperrors.ErrDownloadLinkNotFound{}) {
			return r.downloader.Skip(models.AssetTrack, filename, path, err)
		}
		return r.downloader.Fail(models.AssetTrack, filename, track.SourceHref, path, err)
	}

	res := r.downloader.Save(ctx, models.AssetTrack, assetURL, filename, path)
	if res.OK && tagger != nil && tagger.Applies(path) {
		if err := tagger.Tag(path, track); err != nil {
			r.logger.Warn().Err(err).Str("path", path).Msg("Failed to write ID3 tags")
		}
	}
	return res
}

// pool returns a group running at most cfg.Concurrency saves at once.
// Workers never return errors so one failure does not cancel the others.
func (r *Runner) pool() *errgroup.Group {
	g := new(errgroup.Group)
	limit := r.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	return g
}

// ensureDir creates dest if it is missing. Parents are not created.
func ensureDir(dest string) error {
	err := os.Mkdir(dest, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("failed to create destination %s: %w", dest, err)
	}

	fi, statErr := os.Stat(dest)
	if statErr != nil {
		return fmt.Errorf("failed to stat destination %s: %w", dest, statErr)
	}
	if !fi.IsDir() {
		return fmt.Errorf("destination %s exists and is not a directory", dest)
	}
	return nil
}
