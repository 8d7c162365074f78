// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wallet_currency", validateWalletCurrency)
		_ = v.RegisterValidation("chart_period", validateChartPeriod)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	}
}

// validateWalletCurrency accepts only the two wallet currencies.
func validateWalletCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "USD", "EUR", "usd", "eur":
		return true
	}
	return false
}

func validateChartPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "day", "week", "month", "year":
		return true
	}
	return false
}

// validateCalendarDate accepts empty or YYYY-MM-DD values.
func validateCalendarDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
