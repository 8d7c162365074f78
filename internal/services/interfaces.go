// Package services contains the business logic between the HTTP handlers
// and the state store and market data providers.
package services

import (
	"context"
	"time"

	"projectdollar/internal/models"
	"projectdollar/internal/provider"
	"projectdollar/internal/timeseries"
	"projectdollar/internal/valuation"
)

// QuoteFetcher supplies live prices for symbols. Both variants are
// best-effort: symbols that cannot be priced are absent from the result.
type QuoteFetcher interface {
	FetchPrices(ctx context.Context, symbols []string) map[string]float64
	FetchPricesSequential(ctx context.Context, symbols []string, delay time.Duration) map[string]float64
}

// RateSource supplies the EUR→USD exchange rate. Implementations never
// fail; a fallback rate is returned when the live one is unavailable.
type RateSource interface {
	Rate(ctx context.Context) float64
}

// SymbolLookup resolves company names, logos, and symbol search results.
type SymbolLookup interface {
	Search(ctx context.Context, keywords string) ([]provider.SymbolMatch, error)
	Overview(ctx context.Context, symbol string) (*provider.Overview, error)
}

// HoldingServicer manages the user's holdings.
type HoldingServicer interface {
	List() []models.Holding
	Get(id string) (*models.Holding, error)
	Create(ctx context.Context, input HoldingInput) (*models.Holding, error)
	Update(ctx context.Context, id string, input HoldingInput) (*models.Holding, error)
	Delete(id string) error
}

// BalanceServicer manages cash balances, deposits, and conversions.
type BalanceServicer interface {
	Balances() models.Balances
	Deposits() []models.Deposit
	Deposit(input DepositInput) (models.Balances, error)
	Convert(ctx context.Context, input ConvertInput) (models.Balances, error)
}

// PortfolioServicer values the portfolio and serves its history.
type PortfolioServicer interface {
	Snapshot(ctx context.Context) valuation.Snapshot
	History(period timeseries.Period) []timeseries.Point
	Refresh(ctx context.Context)
}

// PreferencesServicer manages UI preferences.
type PreferencesServicer interface {
	Preferences() models.Preferences
	Update(p models.Preferences) models.Preferences
}
