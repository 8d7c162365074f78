package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"projectdollar/internal/errors"
	"projectdollar/internal/models"
	"projectdollar/internal/store"
	"projectdollar/internal/uuid"
)

// DepositInput is a cash deposit request. Amount is a string so European
// decimal commas ("150,50") can be accepted.
type DepositInput struct {
	Amount   string
	Currency string
	Date     string
}

// ConvertInput is a currency conversion request. CustomRate, when set,
// overrides the live exchange rate.
type ConvertInput struct {
	Amount     string
	From       string
	CustomRate string
}

type balanceService struct {
	store *store.Store
	rates RateSource
	log   *zap.SugaredLogger
}

// NewBalanceService creates the balance service.
func NewBalanceService(st *store.Store, rates RateSource, log *zap.SugaredLogger) BalanceServicer {
	return &balanceService{store: st, rates: rates, log: log}
}

func (s *balanceService) Balances() models.Balances {
	return s.store.Balances()
}

func (s *balanceService) Deposits() []models.Deposit {
	return s.store.Deposits()
}

func (s *balanceService) Deposit(input DepositInput) (models.Balances, error) {
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return models.Balances{}, err
	}
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return models.Balances{}, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	balances := s.store.Balances()
	switch currency {
	case "USD":
		balances.USD = balances.USD.Add(amount).Round(2)
	case "EUR":
		balances.EUR = balances.EUR.Add(amount).Round(2)
	}

	entry := models.Deposit{
		ID:       uuid.New(),
		Date:     date,
		Currency: currency,
		Amount:   amount.Round(2),
	}
	history := append([]models.Deposit{entry}, s.store.Deposits()...)

	s.store.SaveBalances(balances)
	s.store.SaveDeposits(history)

	s.log.Infow("Deposit recorded", "currency", currency, "amount", amount.String())
	return balances, nil
}

func (s *balanceService) Convert(ctx context.Context, input ConvertInput) (models.Balances, error) {
	from, err := normalizeCurrency(input.From)
	if err != nil {
		return models.Balances{}, err
	}
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return models.Balances{}, err
	}

	rate, err := s.conversionRate(ctx, input.CustomRate)
	if err != nil {
		return models.Balances{}, err
	}

	balances := s.store.Balances()

	// Both sides are computed before anything is written, so a failed
	// validation never leaves a half-applied conversion.
	switch from {
	case "USD":
		if balances.USD.LessThan(amount) {
			return models.Balances{}, errors.ErrInsufficientBalance
		}
		balances.USD = balances.USD.Sub(amount).Round(2)
		balances.EUR = balances.EUR.Add(amount.Div(rate)).Round(2)
	case "EUR":
		if balances.EUR.LessThan(amount) {
			return models.Balances{}, errors.ErrInsufficientBalance
		}
		balances.EUR = balances.EUR.Sub(amount).Round(2)
		balances.USD = balances.USD.Add(amount.Mul(rate)).Round(2)
	}

	s.store.SaveBalances(balances)

	s.log.Infow("Balance converted", "from", from, "amount", amount.String(), "rate", rate.String())
	return balances, nil
}

// conversionRate resolves the EUR→USD rate for a conversion: the custom
// rate when one was supplied, otherwise the live (or fallback) rate.
func (s *balanceService) conversionRate(ctx context.Context, custom string) (decimal.Decimal, error) {
	if custom == "" {
		return decimal.NewFromFloat(s.rates.Rate(ctx)), nil
	}

	rate, err := parseDecimal(custom)
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, errors.ErrInvalidRate
	}
	return rate, nil
}

func normalizeCurrency(c string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(c)) {
	case "USD":
		return "USD", nil
	case "EUR":
		return "EUR", nil
	default:
		return "", errors.ErrUnsupportedCurrency
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := parseDecimal(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, errors.ErrInvalidAmount
	}
	return amount, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	return decimal.NewFromString(raw)
}
