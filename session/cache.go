package session

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/referent"
)

// DigestPrefix is how many leading runes of the body feed the fingerprint.
const DigestPrefix = 1000

// Fingerprint identifies the result of one action on one article.
type Fingerprint struct {
	Source string
	Title  string
	Digest uint64
	Action referent.ActionKind
}

// NewFingerprint derives the cache key for running kind on article.
func NewFingerprint(source string, article *referent.Article, kind referent.ActionKind) Fingerprint {
	body := []rune(article.Body)
	if len(body) > DigestPrefix {
		body = body[:DigestPrefix]
	}
	return Fingerprint{
		Source: source,
		Title:  article.Title,
		Digest: xxhash.Sum64String(string(body)),
		Action: kind,
	}
}

// Cache holds action results for the lifetime of a session.
// There is no eviction; Clear drops everything.
type Cache struct {
	mu      sync.RWMutex
	results map[Fingerprint]*referent.Completion
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{results: make(map[Fingerprint]*referent.Completion)}
}

// Get returns the cached result for fp.
func (c *Cache) Get(fp Fingerprint) (*referent.Completion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[fp]
	return r, ok
}

// Put stores a result.
func (c *Cache) Put(fp Fingerprint, r *referent.Completion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[fp] = r
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Clear drops all cached results.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.results)
}
