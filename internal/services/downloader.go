package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Belphemur/khdl/internal/metrics"
	"github.com/Belphemur/khdl/internal/models"

	"github.com/rs/zerolog"
)

// AssetOpener starts the GET of a single asset.
type AssetOpener interface {
	Open(ctx context.Context, assetURL string) (io.ReadCloser, error)
}

// Downloader writes assets to disk, one GET per file and no retry.
type Downloader struct {
	opener AssetOpener
	logger zerolog.Logger
}

// NewDownloader creates a downloader fetching through opener.
func NewDownloader(opener AssetOpener, logger zerolog.Logger) *Downloader {
	return &Downloader{opener: opener, logger: logger}
}

// Save downloads assetURL into dest, overwriting any existing file.
// The body is streamed into dest+".part" which is renamed once complete.
func (d *Downloader) Save(ctx context.Context, kind models.AssetKind, assetURL, name, dest string) models.DownloadResult {
	result := models.DownloadResult{Kind: kind, Name: name, URL: assetURL, Path: dest}

	body, err := d.opener.Open(ctx, assetURL)
	if err != nil {
		return d.fail(result, fmt.Errorf("failed to download %s: %w", assetURL, err))
	}
	defer body.Close()

	n, err := writeAtomic(dest, body)
	result.Bytes = n
	if err != nil {
		return d.fail(result, err)
	}

	return d.succeed(result)
}

// WriteFile stores data under dest the same way Save stores a download.
func (d *Downloader) WriteFile(kind models.AssetKind, name, dest string, data []byte) models.DownloadResult {
	result := models.DownloadResult{Kind: kind, Name: name, Path: dest}

	n, err := writeAtomic(dest, bytes.NewReader(data))
	result.Bytes = n
	if err != nil {
		return d.fail(result, err)
	}
	return d.succeed(result)
}

// Skip records an asset that could not be resolved to a URL.
func (d *Downloader) Skip(kind models.AssetKind, name, dest string, reason error) models.DownloadResult {
	metrics.DownloadsTotal.WithLabelValues(string(kind), "skipped").Inc()
	d.logger.Warn().Err(reason).Str("kind", string(kind)).Str("name", name).Msg("Skipping download")
	return models.DownloadResult{Kind: kind, Name: name, Path: dest, Skipped: true, Err: reason}
}

// Fail records an asset whose URL could not be resolved because of err.
func (d *Downloader) Fail(kind models.AssetKind, name, sourceURL, dest string, err error) models.DownloadResult {
	return d.fail(models.DownloadResult{Kind: kind, Name: name, URL: sourceURL, Path: dest}, err)
}

func (d *Downloader) succeed(result models.DownloadResult) models.DownloadResult {
	result.OK = true
	metrics.DownloadsTotal.WithLabelValues(string(result.Kind), "success").Inc()
	metrics.DownloadedBytesTotal.WithLabelValues(string(result.Kind)).Add(float64(result.Bytes))
	d.logger.Info().
		Str("kind", string(result.Kind)).
		Str("path", result.Path).
		Int64("bytes", result.Bytes).
		Msgf("Downloaded %s", result.Name)
	return result
}

func (d *Downloader) fail(result models.DownloadResult, err error) models.DownloadResult {
	result.Err = err
	metrics.DownloadsTotal.WithLabelValues(string(result.Kind), "error").Inc()
	d.logger.Error().
		Err(err).
		Str("kind", string(result.Kind)).
		Str("url", result.URL).
		Msgf("Failed to download %s", result.Name)
	return result
}

// writeAtomic copies r into dest via a temporary sibling file.
func writeAtomic(dest string, r io.Reader) (int64, error) {
	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return n, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return n, fmt.Errorf("failed to move %s into place: %w", dest, err)
	}
	return n, nil
}
