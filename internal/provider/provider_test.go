package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"projectdollar/internal/cache"
)

type stubSource struct {
	name  string
	price float64
	err   error
	calls atomic.Int64
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Quote(ctx context.Context, symbol string) (float64, error) {
	s.calls.Add(1)
	return s.price, s.err
}

func newTestProvider(ttl time.Duration, sources ...Source) *Provider {
	return New(cache.NewPriceCache(ttl), NewChain(sources...), zap.NewNop().Sugar())
}

func TestChainFallbackOrder(t *testing.T) {
	t.Run("first valid price wins", func(t *testing.T) {
		primary := &stubSource{name: "primary", price: 101.5}
		fallback := &stubSource{name: "fallback", price: 999}
		chain := NewChain(primary, fallback)

		price, ok, attempts := chain.Quote(context.Background(), "AAPL")
		if !ok || price != 101.5 {
			t.Fatalf("expected (101.5, true), got (%v, %v)", price, ok)
		}
		if fallback.calls.Load() != 0 {
			t.Fatal("fallback consulted despite primary success")
		}
		if len(attempts) != 1 || attempts[0].Source != "primary" || attempts[0].Err != nil {
			t.Fatalf("unexpected attempts: %+v", attempts)
		}
	})

	t.Run("falls through on error", func(t *testing.T) {
		primary := &stubSource{name: "primary", err: errors.New("rate limited")}
		fallback := &stubSource{name: "fallback", price: 87.3}
		chain := NewChain(primary, fallback)

		price, ok, attempts := chain.Quote(context.Background(), "AAPL")
		if !ok || price != 87.3 {
			t.Fatalf("expected fallback price 87.3, got (%v, %v)", price, ok)
		}
		if len(attempts) != 2 || attempts[0].Err == nil || attempts[1].Err != nil {
			t.Fatalf("unexpected attempts: %+v", attempts)
		}
	})

	t.Run("falls through on non-positive price", func(t *testing.T) {
		primary := &stubSource{name: "primary", price: 0}
		fallback := &stubSource{name: "fallback", price: 42}
		chain := NewChain(primary, fallback)

		price, ok, _ := chain.Quote(context.Background(), "AAPL")
		if !ok || price != 42 {
			t.Fatalf("expected fallback price 42, got (%v, %v)", price, ok)
		}
	})

	t.Run("every source failing reports all attempts", func(t *testing.T) {
		a := &stubSource{name: "a", err: errors.New("down")}
		b := &stubSource{name: "b", err: errors.New("also down")}
		chain := NewChain(a, b)

		_, ok, attempts := chain.Quote(context.Background(), "AAPL")
		if ok {
			t.Fatal("expected failure when every source fails")
		}
		if len(attempts) != 2 {
			t.Fatalf("expected 2 attempts, got %d", len(attempts))
		}
	})
}

func TestAlphaVantageQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("unexpected function %q", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("unexpected symbol %q", got)
		}
		fmt.Fprint(w, `{"Global Quote": {"01. symbol": "AAPL", "05. price": "189.9500"}}`)
	}))
	defer server.Close()

	src := NewAlphaVantageSource(server.Client(), server.URL, "test-key")
	price, err := src.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 189.95 {
		t.Fatalf("expected 189.95, got %v", price)
	}
}

func TestAlphaVantageQuoteEmptyBody(t *testing.T) {
	// Rate-limited responses come back 200 with an empty quote object.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Global Quote": {}}`)
	}))
	defer server.Close()

	src := NewAlphaVantageSource(server.Client(), server.URL, "test-key")
	if _, err := src.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error for empty quote body")
	}
}

func TestAlphaVantageSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("keywords"); got != "apple" {
			t.Errorf("unexpected keywords %q", got)
		}
		fmt.Fprint(w, `{"bestMatches": [
			{"1. symbol": "AAPL", "2. name": "Apple Inc", "4. region": "United States", "8. currency": "USD"},
			{"1. symbol": "APLE", "2. name": "Apple Hospitality REIT", "4. region": "United States", "8. currency": "USD"}
		]}`)
	}))
	defer server.Close()

	src := NewAlphaVantageSource(server.Client(), server.URL, "test-key")
	matches, err := src.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Symbol != "AAPL" || matches[0].Name != "Apple Inc" || matches[0].Currency != "USD" {
		t.Fatalf("unexpected first match: %+v", matches[0])
	}
}

func TestYahooQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		fmt.Fprint(w, `{"quoteResponse": {"result": [{"symbol": "MSFT", "regularMarketPrice": 415.1}]}}`)
	}))
	defer server.Close()

	src := NewYahooSource(server.Client(), server.URL)
	price, err := src.Quote(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 415.1 {
		t.Fatalf("expected 415.1, got %v", price)
	}
}

func TestYahooQuoteNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse": {"result": []}}`)
	}))
	defer server.Close()

	src := NewYahooSource(server.Client(), server.URL)
	if _, err := src.Quote(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestProviderUsesCache(t *testing.T) {
	src := &stubSource{name: "src", price: 55}
	p := newTestProvider(5*time.Minute, src)

	if _, ok := p.FetchPrice(context.Background(), "aapl"); !ok {
		t.Fatal("expected first fetch to succeed")
	}
	if _, ok := p.FetchPrice(context.Background(), "AAPL"); !ok {
		t.Fatal("expected cached fetch to succeed")
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestProviderFetchFailureIsNotCached(t *testing.T) {
	src := &stubSource{name: "src", err: errors.New("down")}
	p := newTestProvider(5*time.Minute, src)

	if _, ok := p.FetchPrice(context.Background(), "AAPL"); ok {
		t.Fatal("expected failure")
	}
	p.FetchPrice(context.Background(), "AAPL")
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected a retry on the second call, got %d upstream calls", got)
	}
}

func TestProviderEmptySymbol(t *testing.T) {
	src := &stubSource{name: "src", price: 10}
	p := newTestProvider(time.Minute, src)

	if _, ok := p.FetchPrice(context.Background(), "  "); ok {
		t.Fatal("expected blank symbol to fail fast")
	}
	if src.calls.Load() != 0 {
		t.Fatal("blank symbol must not reach the chain")
	}
}

func TestFetchPricesOmitsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbols") {
		case "AAPL":
			fmt.Fprint(w, `{"quoteResponse": {"result": [{"symbol": "AAPL", "regularMarketPrice": 190}]}}`)
		case "MSFT":
			fmt.Fprint(w, `{"quoteResponse": {"result": [{"symbol": "MSFT", "regularMarketPrice": 415}]}}`)
		default:
			fmt.Fprint(w, `{"quoteResponse": {"result": []}}`)
		}
	}))
	defer server.Close()

	p := newTestProvider(time.Minute, NewYahooSource(server.Client(), server.URL))
	prices := p.FetchPrices(context.Background(), []string{"AAPL", "MSFT", "BOGUS"})

	if len(prices) != 2 {
		t.Fatalf("expected 2 prices, got %v", prices)
	}
	if prices["AAPL"] != 190 || prices["MSFT"] != 415 {
		t.Fatalf("unexpected prices: %v", prices)
	}
	if _, ok := prices["BOGUS"]; ok {
		t.Fatal("failed symbol must be omitted, not zero-valued")
	}
}

func TestFetchPricesSequentialStopsOnCancel(t *testing.T) {
	src := &stubSource{name: "src", price: 10}
	p := newTestProvider(0, src) // zero TTL: every fetch hits the source

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prices := p.FetchPricesSequential(ctx, []string{"A", "B", "C"}, 10*time.Millisecond)
	if len(prices) > 1 {
		t.Fatalf("expected at most the first symbol before cancellation, got %v", prices)
	}
}

func TestFetchPricesSequentialCollectsAll(t *testing.T) {
	src := &stubSource{name: "src", price: 33}
	p := newTestProvider(0, src)

	prices := p.FetchPricesSequential(context.Background(), []string{"A", "B"}, time.Millisecond)
	if len(prices) != 2 {
		t.Fatalf("expected both symbols, got %v", prices)
	}
	if src.calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", src.calls.Load())
	}
}
