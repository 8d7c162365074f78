package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	yahooDefaultURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	yahooUserAgent  = "Mozilla/5.0 (compatible; projectdollar/1.0)"
)

// YahooSource quotes symbols through the Yahoo Finance v7 quote endpoint.
// It is the fallback source: no API key, but stricter about clients that
// do not send a browser-like User-Agent.
type YahooSource struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooSource creates a source using the given client. An empty baseURL
// selects the public endpoint.
func NewYahooSource(httpClient *http.Client, baseURL string) *YahooSource {
	if baseURL == "" {
		baseURL = yahooDefaultURL
	}
	return &YahooSource{httpClient: httpClient, baseURL: baseURL}
}

// Name identifies this source in fallback attempt logs.
func (s *YahooSource) Name() string { return "yahoo" }

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Quote fetches the regular market price for symbol.
func (s *YahooSource) Quote(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbols", symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding quote response: %w", err)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	return body.QuoteResponse.Result[0].RegularMarketPrice, nil
}
