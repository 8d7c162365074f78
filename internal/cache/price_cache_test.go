package cache

import (
	"sync"
	"testing"
	"time"
)

func TestPriceCacheTTL(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewPriceCache(5 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Put("AAPL", 123.45)

	t.Run("fresh entry is returned", func(t *testing.T) {
		price, ok := c.Get("AAPL")
		if !ok || price != 123.45 {
			t.Fatalf("expected (123.45, true), got (%v, %v)", price, ok)
		}
	})

	t.Run("unknown symbol misses", func(t *testing.T) {
		if _, ok := c.Get("MSFT"); ok {
			t.Fatal("expected miss for unknown symbol")
		}
	})

	t.Run("entry expires after the default TTL", func(t *testing.T) {
		clock = clock.Add(5 * time.Minute)
		if _, ok := c.Get("AAPL"); ok {
			t.Fatal("expected expiry at exactly the TTL")
		}
	})

	t.Run("relaxed readers still see the stale entry", func(t *testing.T) {
		price, ok := c.GetWithin("AAPL", 10*time.Minute)
		if !ok || price != 123.45 {
			t.Fatalf("expected stale hit within 10m, got (%v, %v)", price, ok)
		}
	})

	t.Run("put refreshes the fetch time", func(t *testing.T) {
		c.Put("AAPL", 130)
		price, ok := c.Get("AAPL")
		if !ok || price != 130 {
			t.Fatalf("expected refreshed entry, got (%v, %v)", price, ok)
		}
	})

	t.Run("clear drops everything", func(t *testing.T) {
		c.Clear()
		if _, ok := c.GetWithin("AAPL", time.Hour); ok {
			t.Fatal("expected empty cache after Clear")
		}
	})
}

func TestPriceCacheConcurrentAccess(t *testing.T) {
	c := NewPriceCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Put("AAPL", float64(n))
			c.Get("AAPL")
		}(i)
	}
	wg.Wait()

	if _, ok := c.Get("AAPL"); !ok {
		t.Fatal("expected a cached price after concurrent writes")
	}
}
