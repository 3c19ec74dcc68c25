package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Download metrics
var (
	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khdl",
			Name:      "downloads_total",
			Help:      "Total number of asset downloads by kind (info, image, track) and status (success, error, skipped).",
		},
		[]string{"kind", "status"},
	)

	DownloadedBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khdl",
			Name:      "downloaded_bytes_total",
			Help:      "Total number of bytes written to disk by asset kind.",
		},
		[]string{"kind"},
	)

	PageFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khdl",
			Name:      "page_fetches_total",
			Help:      "Total number of HTML page fetches by status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		DownloadsTotal,
		DownloadedBytesTotal,
		PageFetchesTotal,
	)
}
