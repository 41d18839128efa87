package service

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ludo-technologies/csim/internal/analyzer"
	"github.com/ludo-technologies/csim/internal/constants"
)

// pdgEntry is one cached build result. Build errors are cached too so a
// repeatedly-scanned broken file is not re-parsed on every scan.
type pdgEntry struct {
	graph *analyzer.PDG
	err   error
}

// PDGCache is an LRU cache of built PDGs keyed by file path and content
// hash, shared across scans within one process (e.g. the MCP server).
//
// Cached graphs are shared between scoring calls; that is safe because the
// kernel re-initializes WL labels at the start of every call and scoring
// runs single-threaded.
type PDGCache struct {
	cache *lru.Cache[string, *pdgEntry]
}

// NewPDGCache creates a PDG cache with the given capacity (entries).
// A non-positive size falls back to the default capacity.
func NewPDGCache(size int) *PDGCache {
	if size <= 0 {
		size = constants.DefaultPDGCacheSize
	}
	// lru.New only fails for size <= 0
	cache, _ := lru.New[string, *pdgEntry](size)
	return &PDGCache{cache: cache}
}

// Get retrieves a cached build result
func (c *PDGCache) Get(key string) (*analyzer.PDG, error, bool) {
	entry, ok := c.cache.Get(key)
	if !ok {
		return nil, nil, false
	}
	return entry.graph, entry.err, true
}

// Put stores a build result
func (c *PDGCache) Put(key string, graph *analyzer.PDG, err error) {
	c.cache.Add(key, &pdgEntry{graph: graph, err: err})
}

// Len returns the number of cached entries
func (c *PDGCache) Len() int {
	return c.cache.Len()
}

// Purge removes all cached entries
func (c *PDGCache) Purge() {
	c.cache.Purge()
}
