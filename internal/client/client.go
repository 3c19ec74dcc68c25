package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/khdl/internal/apperrors"
	"github.com/Belphemur/khdl/internal/cache"
	"github.com/Belphemur/khdl/internal/config"
	"github.com/Belphemur/khdl/internal/metrics"
	"github.com/Belphemur/khdl/internal/parser"

	"github.com/rs/zerolog"
)

// Client performs the plain GET requests of a run: HTML pages and raw assets.
// Requests are never retried.
type Client interface {
	// FetchPage downloads and parses an HTML page. Bodies are cached for the run.
	FetchPage(ctx context.Context, pageURL string) (*parser.Page, error)
	// Open starts downloading an asset; the caller must close the returned body.
	Open(ctx context.Context, assetURL string) (io.ReadCloser, error)
	// Close releases the page cache.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	userAgent  string
	pages      cache.Cache
	logger     zerolog.Logger
}

// NewClient creates a client honoring the timeout, proxy, user agent and cache settings of cfg.
func NewClient(cfg *config.Config, logger zerolog.Logger) (Client, error) {
	// No timeout unless configured: large lossless tracks can take minutes.
	var timeout time.Duration
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, requests will not time out")
		} else {
			timeout = parsedTimeout
		}
	}

	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = cache.ProviderMemory
	}
	ttl := time.Duration(0)
	if cfg.Cache.TTL != "" {
		parsedTTL, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache ttl %q: %w", cfg.Cache.TTL, err)
		}
		ttl = parsedTTL
	}
	pages, err := cache.New(provider, cache.ProviderConfig{
		Size:  cfg.Cache.Size,
		TTL:   ttl,
		Group: "pages",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &client{
		httpClient: httpClient,
		userAgent:  userAgent,
		pages:      pages,
		logger:     logger,
	}, nil
}

// Open issues a GET for assetURL and returns the body of a 200 response.
func (c *client) Open(ctx context.Context, assetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &apperrors.ErrUnexpectedStatus{URL: assetURL, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

// FetchPage returns the parsed page at pageURL, from the cache when possible.
func (c *client) FetchPage(ctx context.Context, pageURL string) (*parser.Page, error) {
	if body, ok := c.pages.Get(pageURL); ok {
		c.logger.Debug().Str("url", pageURL).Msg("Page served from cache")
		return parser.NewPage(pageURL, bytes.NewReader(body))
	}

	c.logger.Debug().Str("url", pageURL).Msg("Fetching page")
	rc, err := c.Open(ctx, pageURL)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.PageFetchesTotal.WithLabelValues("success").Inc()

	page, err := parser.NewPage(pageURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.pages.Set(pageURL, body)
	return page, nil
}

// Close releases any resources held by the client, such as the page cache.
func (c *client) Close() error {
	return c.pages.Close()
}
