package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"projectdollar/internal/models"
	"projectdollar/internal/store"
	"projectdollar/internal/timeseries"
	"projectdollar/internal/valuation"
)

// refreshDelay paces the sequential fetches the background refresh uses,
// keeping it under upstream per-minute rate limits.
const refreshDelay = 500 * time.Millisecond

type portfolioService struct {
	store  *store.Store
	quotes QuoteFetcher
	rates  RateSource
	log    *zap.SugaredLogger

	mu      sync.Mutex
	history []timeseries.HistoryPoint
	now     func() time.Time
}

// NewPortfolioService creates the portfolio service.
func NewPortfolioService(st *store.Store, quotes QuoteFetcher, rates RateSource, log *zap.SugaredLogger) PortfolioServicer {
	return &portfolioService{
		store:  st,
		quotes: quotes,
		rates:  rates,
		log:    log,
		now:    time.Now,
	}
}

// Snapshot values the portfolio right now, fetching quotes concurrently.
// Each computed total is also recorded as today's history point.
func (s *portfolioService) Snapshot(ctx context.Context) valuation.Snapshot {
	holdings := s.store.Assets()
	prices := s.quotes.FetchPrices(ctx, symbolsOf(holdings))
	rate := s.rates.Rate(ctx)

	snap := valuation.ComputeSnapshot(holdings, prices, rate)
	s.record(snap.TotalValueUSD)
	return snap
}

// Refresh is the background variant of Snapshot: quotes are fetched
// sequentially with a pause between symbols.
func (s *portfolioService) Refresh(ctx context.Context) {
	holdings := s.store.Assets()
	prices := s.quotes.FetchPricesSequential(ctx, symbolsOf(holdings), refreshDelay)
	rate := s.rates.Rate(ctx)

	snap := valuation.ComputeSnapshot(holdings, prices, rate)
	s.record(snap.TotalValueUSD)

	s.log.Infow("Portfolio refreshed",
		"assets", len(holdings),
		"priced", len(prices),
		"total_usd", snap.TotalValueUSD,
	)
}

// History aggregates the recorded value history for the given period.
func (s *portfolioService) History(period timeseries.Period) []timeseries.Point {
	s.mu.Lock()
	points := make([]timeseries.HistoryPoint, len(s.history))
	copy(points, s.history)
	s.mu.Unlock()

	return timeseries.Aggregate(points, period)
}

// record stores today's total, overwriting an existing point for the same
// date so each day keeps only its latest value.
func (s *portfolioService) record(totalUSD float64) {
	date := s.now().UTC().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.history); n > 0 && s.history[n-1].Date == date {
		s.history[n-1].Value = totalUSD
		return
	}
	s.history = append(s.history, timeseries.HistoryPoint{Date: date, Value: totalUSD})
}

// symbolsOf collects the distinct symbols across holdings.
func symbolsOf(holdings []models.Holding) []string {
	seen := make(map[string]struct{}, len(holdings))
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if _, dup := seen[h.Symbol]; dup {
			continue
		}
		seen[h.Symbol] = struct{}{}
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}
