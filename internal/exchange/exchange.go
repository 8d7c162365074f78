// Package exchange provides the EUR/USD exchange rate with time-based
// caching and a hardcoded fallback, so currency conversion always has a
// usable rate even when the rate API is down.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFallbackRate approximates the recent EUR→USD rate. Used whenever
// the rate API cannot be reached.
const DefaultFallbackRate = 1.08

type ratesResponse struct {
	Rates struct {
		USD float64 `json:"USD"`
	} `json:"rates"`
}

// Provider fetches the EUR→USD rate (1 EUR = rate USD) and caches it for
// a TTL. Rate never fails: on any fetch problem it returns the fallback
// without caching it, so the next call retries the API.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	fallback   float64
	ttl        time.Duration
	log        *zap.SugaredLogger

	now func() time.Time

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// New creates a rate provider. fallback must be a plausible EUR→USD rate;
// zero selects DefaultFallbackRate.
func New(httpClient *http.Client, baseURL string, fallback float64, ttl time.Duration, log *zap.SugaredLogger) *Provider {
	if fallback <= 0 {
		fallback = DefaultFallbackRate
	}
	return &Provider{
		httpClient: httpClient,
		baseURL:    baseURL,
		fallback:   fallback,
		ttl:        ttl,
		log:        log,
		now:        time.Now,
	}
}

// Rate returns the current EUR→USD rate.
func (p *Provider) Rate(ctx context.Context) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.fetchedAt.IsZero() && p.now().Sub(p.fetchedAt) < p.ttl {
		return p.rate
	}

	rate, err := p.fetch(ctx)
	if err != nil {
		p.log.Warnw("Exchange rate fetch failed, using fallback", "fallback", p.fallback, "error", err)
		return p.fallback
	}

	p.rate = rate
	p.fetchedAt = p.now()
	return rate
}

func (p *Provider) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding rates response: %w", err)
	}

	rate := body.Rates.USD
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("invalid USD rate %v", rate)
	}
	return rate, nil
}

// ConvertUSDToEUR converts a USD amount into EUR at the current rate.
func (p *Provider) ConvertUSDToEUR(ctx context.Context, amountUSD float64) float64 {
	return amountUSD / p.Rate(ctx)
}

// ConvertEURToUSD converts a EUR amount into USD at the current rate.
func (p *Provider) ConvertEURToUSD(ctx context.Context, amountEUR float64) float64 {
	return amountEUR * p.Rate(ctx)
}
