package models

// AssetKind labels what a download is for, used in logs and metrics.
type AssetKind string

const (
	AssetInfo  AssetKind = "info"
	AssetImage AssetKind = "image"
	AssetTrack AssetKind = "track"
)

// DownloadResult represents the outcome of saving one asset to disk
type DownloadResult struct {
	Kind    AssetKind
	Name    string // Display name used in log lines
	URL     string
	Path    string // Destination file
	Bytes   int64
	OK      bool
	Skipped bool // Asset could not be resolved and no request was made
	Err     error
}

// Summary aggregates the results of a run.
type Summary struct {
	Saved   int
	Failed  int
	Skipped int
}

// Add folds one result into the summary.
func (s *Summary) Add(r DownloadResult) {
	switch {
	case r.OK:
		s.Saved++
	case r.Skipped:
		s.Skipped++
	default:
		s.Failed++
	}
}
