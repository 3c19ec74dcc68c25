package cache

// noCache disables page caching; every lookup misses.
type noCache struct{}

func (noCache) Get(string) ([]byte, bool) { return nil, false }
func (noCache) Set(string, []byte)        {}
func (noCache) Len() int                  { return 0 }
func (noCache) Close() error              { return nil }
