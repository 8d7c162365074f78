package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const alphaVantageDefaultURL = "https://www.alphavantage.co/query"

// AlphaVantageSource quotes symbols through the Alpha Vantage GLOBAL_QUOTE
// endpoint. It also offers symbol search and company overview lookups used
// to enrich holdings with names and logos.
type AlphaVantageSource struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAlphaVantageSource creates a source using the given client and API
// key. An empty baseURL selects the public endpoint.
func NewAlphaVantageSource(httpClient *http.Client, baseURL, apiKey string) *AlphaVantageSource {
	if baseURL == "" {
		baseURL = alphaVantageDefaultURL
	}
	return &AlphaVantageSource{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// Name identifies this source in fallback attempt logs.
func (s *AlphaVantageSource) Name() string { return "alphavantage" }

// Alpha Vantage numbers its JSON field names.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// Quote fetches the latest price for symbol. The API reports prices as
// strings; empty or unparsable prices (the shape of an exceeded rate
// limit) are errors so the chain can fall through.
func (s *AlphaVantageSource) Quote(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", s.apiKey)

	var body globalQuoteResponse
	if err := s.getJSON(ctx, params, &body); err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(body.GlobalQuote.Price)
	if raw == "" {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q for %s: %w", raw, symbol, err)
	}
	return price, nil
}

// SymbolMatch is one search result from symbol search.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol   string `json:"1. symbol"`
		Name     string `json:"2. name"`
		Region   string `json:"4. region"`
		Currency string `json:"8. currency"`
	} `json:"bestMatches"`
}

// Search looks up symbols matching the given keywords.
func (s *AlphaVantageSource) Search(ctx context.Context, keywords string) ([]SymbolMatch, error) {
	params := url.Values{}
	params.Set("function", "SYMBOL_SEARCH")
	params.Set("keywords", keywords)
	params.Set("apikey", s.apiKey)

	var body symbolSearchResponse
	if err := s.getJSON(ctx, params, &body); err != nil {
		return nil, err
	}

	matches := make([]SymbolMatch, 0, len(body.BestMatches))
	for _, m := range body.BestMatches {
		matches = append(matches, SymbolMatch{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Region:   m.Region,
			Currency: m.Currency,
		})
	}
	return matches, nil
}

// Overview is the subset of company details used to enrich a holding.
type Overview struct {
	Symbol  string `json:"Symbol"`
	Name    string `json:"Name"`
	LogoURL string `json:"LogoUrl"`
}

// Overview fetches company details for symbol. An empty name means the
// symbol is unknown to the API.
func (s *AlphaVantageSource) Overview(ctx context.Context, symbol string) (*Overview, error) {
	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)
	params.Set("apikey", s.apiKey)

	var body Overview
	if err := s.getJSON(ctx, params, &body); err != nil {
		return nil, err
	}
	if body.Name == "" {
		return nil, fmt.Errorf("no overview for %s", symbol)
	}
	return &body, nil
}

func (s *AlphaVantageSource) getJSON(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", params.Get("function"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, params.Get("function"))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", params.Get("function"), err)
	}
	return nil
}
