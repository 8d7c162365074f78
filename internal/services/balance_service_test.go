package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"projectdollar/internal/testutil"
)

func TestDeposit(t *testing.T) {
	t.Run("usd deposit adds and records history", func(t *testing.T) {
		svc := NewBalanceService(newTestStore(t), &stubRates{rate: 1.10}, testLogger())

		balances, err := svc.Deposit(DepositInput{Amount: "150.50", Currency: "usd"})
		testutil.AssertNoError(t, err)
		if !balances.USD.Equal(decimal.NewFromFloat(150.50)) {
			t.Fatalf("expected USD 150.50, got %s", balances.USD)
		}

		history := svc.Deposits()
		if len(history) != 1 || history[0].Currency != "USD" {
			t.Fatalf("unexpected deposit history: %+v", history)
		}
	})

	t.Run("comma decimal separator is accepted", func(t *testing.T) {
		svc := NewBalanceService(newTestStore(t), &stubRates{rate: 1.10}, testLogger())

		balances, err := svc.Deposit(DepositInput{Amount: "99,95", Currency: "EUR"})
		testutil.AssertNoError(t, err)
		if !balances.EUR.Equal(decimal.NewFromFloat(99.95)) {
			t.Fatalf("expected EUR 99.95, got %s", balances.EUR)
		}
	})

	t.Run("newest deposit comes first", func(t *testing.T) {
		svc := NewBalanceService(newTestStore(t), &stubRates{rate: 1.10}, testLogger())

		_, err := svc.Deposit(DepositInput{Amount: "10", Currency: "USD", Date: "2026-01-01"})
		testutil.AssertNoError(t, err)
		_, err = svc.Deposit(DepositInput{Amount: "20", Currency: "USD", Date: "2026-02-01"})
		testutil.AssertNoError(t, err)

		history := svc.Deposits()
		if len(history) != 2 || history[0].Date != "2026-02-01" {
			t.Fatalf("expected newest-first history, got %+v", history)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		svc := NewBalanceService(newTestStore(t), &stubRates{rate: 1.10}, testLogger())

		_, err := svc.Deposit(DepositInput{Amount: "abc", Currency: "USD"})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.Deposit(DepositInput{Amount: "-5", Currency: "USD"})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.Deposit(DepositInput{Amount: "10", Currency: "GBP"})
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) BalanceServicer {
		t.Helper()
		svc := NewBalanceService(newTestStore(t), &stubRates{rate: 1.10}, testLogger())
		_, err := svc.Deposit(DepositInput{Amount: "1000", Currency: "USD"})
		testutil.AssertNoError(t, err)
		_, err = svc.Deposit(DepositInput{Amount: "500", Currency: "EUR"})
		testutil.AssertNoError(t, err)
		return svc
	}

	t.Run("usd to eur divides by the rate", func(t *testing.T) {
		svc := seed(t)

		balances, err := svc.Convert(ctx, ConvertInput{Amount: "110", From: "USD"})
		testutil.AssertNoError(t, err)
		if !balances.USD.Equal(decimal.NewFromInt(890)) {
			t.Fatalf("expected USD 890, got %s", balances.USD)
		}
		if !balances.EUR.Equal(decimal.NewFromInt(600)) {
			t.Fatalf("expected EUR 600, got %s", balances.EUR)
		}
	})

	t.Run("eur to usd multiplies by the rate", func(t *testing.T) {
		svc := seed(t)

		balances, err := svc.Convert(ctx, ConvertInput{Amount: "100", From: "EUR"})
		testutil.AssertNoError(t, err)
		if !balances.EUR.Equal(decimal.NewFromInt(400)) {
			t.Fatalf("expected EUR 400, got %s", balances.EUR)
		}
		if !balances.USD.Equal(decimal.NewFromInt(1110)) {
			t.Fatalf("expected USD 1110, got %s", balances.USD)
		}
	})

	t.Run("custom rate overrides the live one", func(t *testing.T) {
		svc := seed(t)

		balances, err := svc.Convert(ctx, ConvertInput{Amount: "100", From: "EUR", CustomRate: "2"})
		testutil.AssertNoError(t, err)
		if !balances.USD.Equal(decimal.NewFromInt(1200)) {
			t.Fatalf("expected USD 1200 with custom rate 2, got %s", balances.USD)
		}
	})

	t.Run("insufficient balance leaves state untouched", func(t *testing.T) {
		svc := seed(t)

		_, err := svc.Convert(ctx, ConvertInput{Amount: "5000", From: "USD"})
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

		balances := svc.Balances()
		if !balances.USD.Equal(decimal.NewFromInt(1000)) || !balances.EUR.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("failed conversion mutated balances: %+v", balances)
		}
	})

	t.Run("bad custom rate is rejected", func(t *testing.T) {
		svc := seed(t)

		_, err := svc.Convert(ctx, ConvertInput{Amount: "10", From: "USD", CustomRate: "0"})
		testutil.AssertAppError(t, err, "INVALID_RATE")

		_, err = svc.Convert(ctx, ConvertInput{Amount: "10", From: "USD", CustomRate: "nope"})
		testutil.AssertAppError(t, err, "INVALID_RATE")
	})
}
