package pipeline

import (
	"sync"

	"github.com/carbocation/peakroc/bed"
)

// storeCache loads each test or reference file once, however many conditions
// ask for it.
type storeCache struct {
	loader bed.Loader

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	store *bed.Store
	err   error
}

func newStoreCache(loader bed.Loader) *storeCache {
	return &storeCache{loader: loader, entries: make(map[string]*cacheEntry)}
}

// get returns the store at path, in dialect if it is non-nil and sniffed
// otherwise.
func (c *storeCache) get(path string, dialect *bed.Dialect) (*bed.Store, error) {
	key := path
	if dialect != nil {
		key += "\x00" + dialect.Name
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		if dialect != nil {
			entry.store, entry.err = c.loader.LoadAs(path, *dialect)
			return
		}
		entry.store, entry.err = c.loader.Load(path)
	})

	return entry.store, entry.err
}
