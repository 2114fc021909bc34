package calc

import (
	"context"
	"testing"

	"github.com/cockroachdb/apint"
	"github.com/stretchr/testify/require"
)

func TestPrimeCache(t *testing.T) {
	c := NewPrimeCache(3)
	for _, n := range []int64{7, 9, 11, 7} {
		require.Equal(t, apint.NewInt(n).IsPrime(), c.IsPrime(apint.NewInt(n)), "isprime %d", n)
	}
	hits, misses := c.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(3), misses)
	require.Equal(t, 3, c.Len())

	// 13 is larger than everything cached, so it is evicted right away.
	require.True(t, c.IsPrime(apint.NewInt(13)))
	require.Equal(t, 3, c.Len())
	c.IsPrime(apint.NewInt(13))
	_, misses = c.Stats()
	require.Equal(t, uint64(5), misses)

	// 2 evicts 11.
	require.True(t, c.IsPrime(apint.NewInt(2)))
	c.IsPrime(apint.NewInt(11))
	_, misses = c.Stats()
	require.Equal(t, uint64(7), misses)
}

func TestPrimeCacheKeepsOwnCopy(t *testing.T) {
	c := NewPrimeCache(4)
	x := apint.NewInt(97)
	require.True(t, c.IsPrime(x))
	x.Inc()
	require.False(t, c.IsPrime(x))
	require.True(t, c.IsPrime(apint.NewInt(97)))
	hits, _ := c.Stats()
	require.Equal(t, uint64(1), hits)
}

func TestPrimeCacheDisabled(t *testing.T) {
	c := NewPrimeCache(0)
	require.Nil(t, c)
	require.True(t, c.IsPrime(apint.NewInt(5)))
	require.Equal(t, 0, c.Len())
}

func TestPrimeCacheNegative(t *testing.T) {
	c := NewPrimeCache(4)
	require.False(t, c.IsPrime(apint.NewInt(-7)))
	require.True(t, c.IsPrime(apint.NewInt(7)))
	require.Equal(t, 2, c.Len())
}

func TestEvaluatorPrimeStats(t *testing.T) {
	e := New(WithPrimeCache(NewPrimeCache(8)))
	e.Eval(context.Background(), "isprime 101")
	e.Eval(context.Background(), "isprime 101")
	e.Eval(context.Background(), "isprime 102")
	hits, misses := e.PrimeStats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(2), misses)

	hits, misses = New().PrimeStats()
	require.Zero(t, hits)
	require.Zero(t, misses)
}
