package models

// Holding is a single recorded stock/ETF position.
//
// TotalValue is a cost-basis snapshot taken when the holding is saved
// (purchase price × quantity at that moment). It is never recomputed
// outside an explicit user edit; current market value lives only in
// derived snapshots.
type Holding struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	PurchasePrice float64 `json:"purchase_price"`
	Quantity      float64 `json:"quantity"`
	PurchaseDate  string  `json:"purchase_date"`
	TotalValue    float64 `json:"total_value"`
	LogoURL       string  `json:"logo_url,omitempty"`
}

// CostBasis returns the amount originally paid for this position.
func (h Holding) CostBasis() float64 {
	return h.PurchasePrice * h.Quantity
}
