package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryCache is an expiring LRU of page bodies.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) *memoryCache {
	var onEvict func(string, []byte)
	if cfg.OnEvict != nil {
		onEvict = func(url string, body []byte) {
			cfg.OnEvict(url, body)
		}
	}

	return &memoryCache{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}
}

func (m *memoryCache) Get(url string) ([]byte, bool) {
	return m.inner.Get(url)
}

func (m *memoryCache) Set(url string, body []byte) {
	m.inner.Add(url, body)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
