package store_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"projectdollar/internal/models"
	"projectdollar/internal/store"
	"projectdollar/internal/testutil"
)

func TestStoreRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := testutil.NewTestStore(t, db)

	t.Run("empty state has defaults", func(t *testing.T) {
		if got := s.Assets(); len(got) != 0 {
			t.Fatalf("expected no assets, got %d", len(got))
		}
		b := s.Balances()
		if !b.USD.IsZero() || !b.EUR.IsZero() {
			t.Fatalf("expected zero balances, got %+v", b)
		}
		p := s.Preferences()
		if p.DateFormat != "DD-MM-YYYY" || p.PrimaryColor != "blue" {
			t.Fatalf("unexpected default preferences: %+v", p)
		}
	})

	t.Run("assets survive a reload", func(t *testing.T) {
		h := testutil.HoldingFixture("AAPL", 120, 2)
		s.SaveAssets([]models.Holding{h})

		reloaded := testutil.NewTestStore(t, db)
		got := reloaded.Assets()
		if len(got) != 1 {
			t.Fatalf("expected 1 asset after reload, got %d", len(got))
		}
		if got[0].ID != h.ID || got[0].Symbol != "AAPL" {
			t.Fatalf("unexpected asset after reload: %+v", got[0])
		}
	})

	t.Run("sections merge instead of clobbering each other", func(t *testing.T) {
		s.SaveBalances(models.Balances{
			USD: decimal.NewFromFloat(150.50),
			EUR: decimal.NewFromInt(200),
		})
		s.SavePreferences(models.Preferences{DarkMode: true, DateFormat: "YYYY-MM-DD", PrimaryColor: "green"})

		reloaded := testutil.NewTestStore(t, db)
		if len(reloaded.Assets()) != 1 {
			t.Fatal("balance save clobbered the assets section")
		}
		b := reloaded.Balances()
		if !b.USD.Equal(decimal.NewFromFloat(150.50)) {
			t.Fatalf("expected USD 150.50, got %s", b.USD)
		}
		if !reloaded.Preferences().DarkMode {
			t.Fatal("preferences save was lost")
		}
	})

	t.Run("deposits keep order", func(t *testing.T) {
		s.SaveDeposits([]models.Deposit{
			{ID: "d2", Date: "2026-02-01", Currency: "USD", Amount: decimal.NewFromInt(50)},
			{ID: "d1", Date: "2026-01-01", Currency: "EUR", Amount: decimal.NewFromInt(25)},
		})
		got := s.Deposits()
		if len(got) != 2 || got[0].ID != "d2" {
			t.Fatalf("unexpected deposit history: %+v", got)
		}
	})
}

func TestStoreCopiesOnRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := testutil.NewTestStore(t, db)

	s.SaveAssets([]models.Holding{testutil.HoldingFixture("MSFT", 300, 1)})

	assets := s.Assets()
	assets[0].Symbol = "MUTATED"

	if got := s.Assets()[0].Symbol; got != "MSFT" {
		t.Fatalf("caller mutation leaked into the store: %q", got)
	}
}

func TestStoreIgnoresCorruptDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)

	rec := store.Record{Namespace: store.Namespace, Document: "{not json"}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to seed corrupt record: %v", err)
	}

	s, err := store.New(db, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("store.New returned error on corrupt document: %v", err)
	}
	if len(s.Assets()) != 0 {
		t.Fatal("expected empty state from corrupt document")
	}
}
