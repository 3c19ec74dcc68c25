package cache

import (
	"fmt"
	"time"
)

// Provider names accepted by New and the cache.provider setting.
const (
	ProviderMemory = "memory"
	ProviderNone   = "none"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of pages kept.
	Size int
	// TTL is how long a page stays valid. Zero means until evicted.
	TTL time.Duration
	// OnEvict is called when a page is evicted. Ignored by the none provider.
	OnEvict EvictCallback
	// Group labels the Prometheus metrics of this cache (page_cache_hits_total, ...).
	// When non-empty the cache is wrapped with metric instrumentation.
	Group string
}

// New creates the page cache named by provider.
// A non-empty cfg.Group wraps the result with hit, miss and eviction counters.
func New(provider string, cfg ProviderConfig) (Cache, error) {
	if cfg.Group != "" {
		group := cfg.Group
		original := cfg.OnEvict
		cfg.OnEvict = func(url string, body []byte) {
			EvictionsTotal.WithLabelValues(group).Inc()
			if original != nil {
				original(url, body)
			}
		}
	}

	var inner Cache
	switch provider {
	case ProviderMemory:
		inner = newMemoryCache(cfg)
	case ProviderNone:
		inner = noCache{}
	default:
		return nil, fmt.Errorf("cache: unknown provider %q (want %s or %s)", provider, ProviderMemory, ProviderNone)
	}

	if cfg.Group == "" {
		return inner, nil
	}
	return newInstrumentedCache(inner, cfg.Group), nil
}
