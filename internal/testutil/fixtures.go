package testutil

import (
	"testing"

	"gorm.io/gorm"

	"projectdollar/internal/models"
	"projectdollar/internal/store"
	"projectdollar/internal/uuid"

	"go.uber.org/zap"
)

// NewTestStore builds a Store backed by the given test database.
func NewTestStore(t *testing.T, db *gorm.DB) *store.Store {
	t.Helper()

	s, err := store.New(db, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return s
}

// HoldingFixture returns a holding with sensible defaults for tests.
func HoldingFixture(symbol string, price, quantity float64) models.Holding {
	return models.Holding{
		ID:            uuid.New(),
		Symbol:        symbol,
		Name:          symbol + " Inc.",
		PurchasePrice: price,
		Quantity:      quantity,
		PurchaseDate:  "2026-01-15",
		TotalValue:    price * quantity,
	}
}
