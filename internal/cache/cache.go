package cache

// EvictCallback is called when a page is evicted from the cache.
type EvictCallback func(url string, body []byte)

// Cache keeps raw page bodies keyed by URL for the lifetime of a single run.
// Nothing is persisted; a new process always starts empty.
type Cache interface {
	// Get returns the body stored for url and whether it was present.
	Get(url string) ([]byte, bool)
	// Set stores body under url, replacing any previous body.
	Set(url string, body []byte)
	// Len returns the number of cached pages.
	Len() int
	// Close releases the cache.
	Close() error
}
