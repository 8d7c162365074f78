package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"projectdollar/internal/provider"
	"projectdollar/internal/store"
	"projectdollar/internal/testutil"
)

// stubQuotes serves canned prices and records which fetch variant ran.
type stubQuotes struct {
	prices          map[string]float64
	concurrentCalls int
	sequentialCalls int
}

func (s *stubQuotes) FetchPrices(ctx context.Context, symbols []string) map[string]float64 {
	s.concurrentCalls++
	return s.lookup(symbols)
}

func (s *stubQuotes) FetchPricesSequential(ctx context.Context, symbols []string, delay time.Duration) map[string]float64 {
	s.sequentialCalls++
	return s.lookup(symbols)
}

func (s *stubQuotes) lookup(symbols []string) map[string]float64 {
	out := make(map[string]float64)
	for _, sym := range symbols {
		if p, ok := s.prices[sym]; ok {
			out[sym] = p
		}
	}
	return out
}

type stubRates struct{ rate float64 }

func (s *stubRates) Rate(ctx context.Context) float64 { return s.rate }

type stubLookup struct {
	overview *provider.Overview
	matches  []provider.SymbolMatch
	err      error
}

func (s *stubLookup) Search(ctx context.Context, keywords string) ([]provider.SymbolMatch, error) {
	return s.matches, s.err
}

func (s *stubLookup) Overview(ctx context.Context, symbol string) (*provider.Overview, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.overview == nil {
		return nil, errors.New("no overview")
	}
	return s.overview, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return testutil.NewTestStore(t, testutil.SetupTestDB(t))
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
