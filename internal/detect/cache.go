package detect

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Domain names a category of detected facts, e.g. "gpus".
type Domain string

type entry struct {
	once   sync.Once
	done   atomic.Bool
	result any
}

// Cache remembers the result of every domain it has been asked for. Each
// domain's probe chain runs at most once per Cache, no matter how many
// callers ask for it.
type Cache struct {
	mu      sync.Mutex
	entries map[Domain]*entry
	order   []Domain
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[Domain]*entry),
	}
}

func (c *Cache) entry(domain Domain) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[domain]
	if !ok {
		e = &entry{}
		c.entries[domain] = e
		c.order = append(c.order, domain)
	}

	return e
}

// Detected reports whether the domain's chain has already run.
func (c *Cache) Detected(domain Domain) bool {
	c.mu.Lock()
	e, ok := c.entries[domain]
	c.mu.Unlock()

	return ok && e.done.Load()
}

// Domains returns the requested domains in first-request order.
func (c *Cache) Domains() []Domain {
	c.mu.Lock()
	defer c.mu.Unlock()

	domains := make([]Domain, len(c.order))
	copy(domains, c.order)

	return domains
}

// Get returns the cached result for domain, running chain to produce it on
// the first call. Later calls return the same *Result and ignore chain.
// Requesting a domain with a record type other than the one it was first
// computed with panics.
func Get[T any](c *Cache, domain Domain, chain Chain[T]) *Result[T] {
	e := c.entry(domain)
	e.once.Do(func() {
		e.result = Collect(domain, chain)
		e.done.Store(true)
	})

	result, ok := e.result.(*Result[T])
	if !ok {
		panic(fmt.Sprintf("detect: domain %q holds %T, requested as %T", domain, e.result, result))
	}

	return result
}
