package calc

import (
	"sync"

	"github.com/cockroachdb/apint"
	"github.com/google/btree"
)

type primeEntry struct {
	n     *apint.Int
	prime bool
}

// PrimeCache memoizes IsPrime results for up to a fixed number of values.
// When full, the largest cached value is evicted.
type PrimeCache struct {
	mu   sync.Mutex
	tree *btree.BTreeG[primeEntry]
	max  int

	hits, misses uint64
}

// NewPrimeCache returns a cache holding at most max entries. It returns nil
// when max is not positive; a nil cache computes every result.
func NewPrimeCache(max int) *PrimeCache {
	if max <= 0 {
		return nil
	}
	return &PrimeCache{
		tree: btree.NewG(2, func(a, b primeEntry) bool {
			return a.n.LessThan(b.n)
		}),
		max: max,
	}
}

// IsPrime returns x.IsPrime(), from the cache when possible.
func (c *PrimeCache) IsPrime(x *apint.Int) bool {
	if c == nil {
		return x.IsPrime()
	}
	c.mu.Lock()
	if e, ok := c.tree.Get(primeEntry{n: x}); ok {
		c.hits++
		c.mu.Unlock()
		return e.prime
	}
	c.misses++
	c.mu.Unlock()

	// Concurrent misses on the same value both compute it.
	prime := x.IsPrime()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.ReplaceOrInsert(primeEntry{n: new(apint.Int).Set(x), prime: prime})
	for c.tree.Len() > c.max {
		c.tree.DeleteMax()
	}
	return prime
}

// Len returns the number of cached values.
func (c *PrimeCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Len()
}

// Stats returns the number of lookups answered from and missing the cache.
func (c *PrimeCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
