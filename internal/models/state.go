package models

import "github.com/shopspring/decimal"

// Balances holds the user's cash in both supported currencies. Amounts are
// decimals so conversions and deposits never accumulate float drift.
type Balances struct {
	USD decimal.Decimal `json:"USD"`
	EUR decimal.Decimal `json:"EUR"`
}

// Deposit is one entry in the cash deposit history, newest first.
type Deposit struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// Preferences are cosmetic UI settings.
type Preferences struct {
	DarkMode     bool   `json:"dark_mode"`
	DateFormat   string `json:"date_format"`
	PrimaryColor string `json:"primary_color"`
}

// State is the complete persisted application state. It serializes to a
// single JSON document; each section is written independently and merged
// shallowly into the stored record.
type State struct {
	Preferences *Preferences `json:"preferences,omitempty"`
	Balances    *Balances    `json:"balances,omitempty"`
	Assets      []Holding    `json:"assets,omitempty"`
	Deposits    []Deposit    `json:"deposits,omitempty"`
}
