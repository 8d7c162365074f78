// Package provider fetches live stock quotes from external market data
// APIs, with an explicit ordered fallback chain and a shared price cache.
package provider

import (
	"context"
	"fmt"
	"math"
)

// Source is a single market data API capable of quoting one symbol.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) (float64, error)
}

// Attempt records the outcome of one source consulted by the chain, in
// the order sources were tried.
type Attempt struct {
	Source string
	Err    error
}

// Chain tries its sources in order and returns the first valid quote.
type Chain struct {
	sources []Source
}

// NewChain builds a chain over the given sources; order is fallback order.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Quote returns the first valid price any source produced, together with
// the per-source attempt log. ok is false when every source failed; the
// attempts then carry one error per source.
func (c *Chain) Quote(ctx context.Context, symbol string) (price float64, ok bool, attempts []Attempt) {
	attempts = make([]Attempt, 0, len(c.sources))

	for _, src := range c.sources {
		p, err := src.Quote(ctx, symbol)
		if err == nil && !validPrice(p) {
			err = fmt.Errorf("invalid price %v for %s", p, symbol)
		}
		if err != nil {
			attempts = append(attempts, Attempt{Source: src.Name(), Err: err})
			continue
		}
		attempts = append(attempts, Attempt{Source: src.Name()})
		return p, true, attempts
	}
	return 0, false, attempts
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
