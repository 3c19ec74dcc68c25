package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Belphemur/khdl/internal/client"
	"github.com/Belphemur/khdl/internal/config"
	"github.com/Belphemur/khdl/internal/metrics"
	"github.com/Belphemur/khdl/internal/services"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run downloads one album and returns the process exit status.
func run(ctx context.Context, args []string, out io.Writer) int {
	fs := config.NewFlagSet("khdl")
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: khdl [flags] <source_url> <destination_path>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.LoadConfig(fs)
	if err != nil {
		bootLogger := config.NewLogger(out, "", false)
		bootLogger.Error().Err(err).Msg("Invalid arguments")
		fs.Usage()
		return 1
	}

	logger := config.NewLogger(out, cfg.LogLevel, cfg.Quiet)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry, errors will not be reported")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, logger)
		defer stopMetrics()
	}

	logger.Debug().
		Str("source_url", cfg.SourceURL).
		Str("destination_path", cfg.DestinationPath).
		Str("quality", cfg.Quality).
		Str("strategy", cfg.Strategy).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting with configuration")

	httpClient, err := client.NewClient(cfg, logger)
	if err != nil {
		return fail(logger, err, "Failed to create HTTP client")
	}
	defer httpClient.Close()

	runner, err := services.NewRunner(cfg, httpClient, logger)
	if err != nil {
		return fail(logger, err, "Invalid configuration")
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return fail(logger, err, "Download failed")
	}
	if summary.Failed > 0 || summary.Skipped > 0 {
		logger.Warn().Int("failed", summary.Failed).Int("skipped", summary.Skipped).Msg("Some files were not downloaded")
	}
	return 0
}

// fail logs and reports a fatal error, returning the failure exit status.
func fail(logger zerolog.Logger, err error, msg string) int {
	logger.Error().Err(err).Msg(msg)
	sentry.CaptureException(err)
	return 1
}

// serveMetrics starts the Prometheus endpoint and returns its shutdown function.
func serveMetrics(addr string, logger zerolog.Logger) func() {
	metricsServer := metrics.NewHTTPServer(addr)
	go func() {
		logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Failed to serve metrics")
		}
	}()
	return func() {
		if err := metricsServer.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}
}
