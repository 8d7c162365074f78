package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "projectdollar/internal/errors"
	"projectdollar/internal/logger"
	"projectdollar/internal/provider"
	"projectdollar/internal/services"
)

// quoteMaxAge is how stale a cached quote may be when served directly to
// the quote endpoint. More relaxed than the valuation path, which wants
// fresher prices.
const quoteMaxAge = 10 * time.Minute

// MarketHandler handles exchange rate, quote, and symbol search requests
type MarketHandler struct {
	rates  services.RateSource
	lookup services.SymbolLookup
	prices *provider.Provider
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(rates services.RateSource, lookup services.SymbolLookup, prices *provider.Provider) *MarketHandler {
	return &MarketHandler{rates: rates, lookup: lookup, prices: prices}
}

// GetRate returns the current EUR→USD exchange rate.
func (h *MarketHandler) GetRate(c *gin.Context) {
	rate := h.rates.Rate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"base":  "EUR",
		"quote": "USD",
		"rate":  rate,
	})
}

// GetQuote returns the price of one symbol, accepting cached prices up to
// ten minutes old.
func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required"))
		return
	}

	price, ok := h.prices.FetchPriceWithin(c.Request.Context(), symbol, quoteMaxAge)
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "No quote available for "+symbol))
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price": price})
}

// SearchSymbols looks up symbols matching the q query parameter. Lookup
// failures degrade to an empty result rather than an error; the search box
// should never break the add-holding flow.
func (h *MarketHandler) SearchSymbols(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Query parameter q is required"))
		return
	}

	matches, err := h.lookup.Search(c.Request.Context(), query)
	if err != nil {
		logger.Get().Warnw("Symbol search failed", "query", query, "error", err)
		matches = nil
	}
	if matches == nil {
		matches = []provider.SymbolMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
