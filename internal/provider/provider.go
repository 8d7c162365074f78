package provider

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"projectdollar/internal/cache"
)

// Provider is the price-fetching facade the rest of the application uses.
// It consults the shared cache before the source chain, and it never
// returns errors: a symbol that cannot be priced is reported with ok=false
// and the per-source failures go to the log.
type Provider struct {
	cache *cache.PriceCache
	chain *Chain
	log   *zap.SugaredLogger
}

// New creates a Provider over the given cache and source chain.
func New(priceCache *cache.PriceCache, chain *Chain, log *zap.SugaredLogger) *Provider {
	return &Provider{cache: priceCache, chain: chain, log: log}
}

// FetchPrice returns the current price for symbol. The cache is consulted
// first with its default TTL; on a miss every source is tried in order and
// the first valid price is cached.
func (p *Provider) FetchPrice(ctx context.Context, symbol string) (float64, bool) {
	return p.fetch(ctx, symbol, func(sym string) (float64, bool) {
		return p.cache.Get(sym)
	})
}

// FetchPriceWithin behaves like FetchPrice but accepts cached prices up to
// maxAge old, for callers that prefer a quick stale answer over a network
// round trip.
func (p *Provider) FetchPriceWithin(ctx context.Context, symbol string, maxAge time.Duration) (float64, bool) {
	return p.fetch(ctx, symbol, func(sym string) (float64, bool) {
		return p.cache.GetWithin(sym, maxAge)
	})
}

func (p *Provider) fetch(ctx context.Context, symbol string, cached func(string) (float64, bool)) (float64, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, false
	}

	if price, ok := cached(symbol); ok {
		return price, true
	}

	price, ok, attempts := p.chain.Quote(ctx, symbol)
	for _, a := range attempts {
		if a.Err != nil {
			p.log.Warnw("Quote source failed", "symbol", symbol, "source", a.Source, "error", a.Err)
		}
	}
	if !ok {
		p.log.Warnw("All quote sources failed", "symbol", symbol, "sources", len(attempts))
		return 0, false
	}

	p.cache.Put(symbol, price)
	return price, true
}

// FetchPrices fetches all symbols concurrently, best-effort: symbols that
// cannot be priced are simply absent from the result.
func (p *Provider) FetchPrices(ctx context.Context, symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	if len(symbols) == 0 {
		return prices
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			if price, ok := p.FetchPrice(ctx, symbol); ok {
				mu.Lock()
				prices[strings.ToUpper(strings.TrimSpace(symbol))] = price
				mu.Unlock()
			}
		}(symbol)
	}
	wg.Wait()

	return prices
}

// FetchPricesSequential fetches symbols one at a time with a pause between
// requests, for background refreshes that must stay under upstream rate
// limits. It stops early when ctx is cancelled and returns what it has.
func (p *Provider) FetchPricesSequential(ctx context.Context, symbols []string, delay time.Duration) map[string]float64 {
	prices := make(map[string]float64, len(symbols))

	for i, symbol := range symbols {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return prices
			case <-time.After(delay):
			}
		}
		if ctx.Err() != nil {
			return prices
		}
		if price, ok := p.FetchPrice(ctx, symbol); ok {
			prices[strings.ToUpper(strings.TrimSpace(symbol))] = price
		}
	}
	return prices
}
