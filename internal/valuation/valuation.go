// Package valuation computes portfolio snapshots from holdings, live
// quotes, and the EUR→USD exchange rate. Everything here is pure: the
// same inputs always produce the same snapshot and nothing is mutated.
package valuation

import (
	"projectdollar/internal/models"
)

// AssetValuation is the valuation of a single holding inside a snapshot.
// LivePrice is false when no quote was available and the purchase price
// stood in for the market price.
type AssetValuation struct {
	ID              string  `json:"id"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name,omitempty"`
	Quantity        float64 `json:"quantity"`
	EffectivePrice  float64 `json:"effective_price"`
	LivePrice       bool    `json:"live_price"`
	CurrentValue    float64 `json:"current_value"`
	CostBasis       float64 `json:"cost_basis"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// Snapshot is the portfolio valuation at one instant, in both currencies.
type Snapshot struct {
	TotalValueUSD   float64          `json:"total_value_usd"`
	TotalValueEUR   float64          `json:"total_value_eur"`
	CostBasisUSD    float64          `json:"cost_basis_usd"`
	GainLossUSD     float64          `json:"gain_loss_usd"`
	GainLossPercent float64          `json:"gain_loss_percent"`
	Rate            float64          `json:"rate"`
	PerAsset        []AssetValuation `json:"per_asset"`
}

// ComputeSnapshot values every holding against the given prices. A holding
// whose symbol is missing from prices falls back to its purchase price, so
// it contributes its cost basis and zero gain. Gain percentages are 0 when
// the cost basis is zero. rate is EUR→USD; the EUR total divides by it.
func ComputeSnapshot(holdings []models.Holding, prices map[string]float64, rate float64) Snapshot {
	snap := Snapshot{
		Rate:     rate,
		PerAsset: make([]AssetValuation, 0, len(holdings)),
	}

	for _, h := range holdings {
		basis := h.CostBasis()
		price, live := prices[h.Symbol]
		if !live {
			price = h.PurchasePrice
		}

		current := price * h.Quantity
		gain := current - basis
		pct := 0.0
		if basis != 0 {
			pct = gain / basis * 100
		}

		snap.PerAsset = append(snap.PerAsset, AssetValuation{
			ID:              h.ID,
			Symbol:          h.Symbol,
			Name:            h.Name,
			Quantity:        h.Quantity,
			EffectivePrice:  price,
			LivePrice:       live,
			CurrentValue:    current,
			CostBasis:       basis,
			GainLoss:        gain,
			GainLossPercent: pct,
		})

		snap.TotalValueUSD += current
		snap.CostBasisUSD += basis
	}

	snap.GainLossUSD = snap.TotalValueUSD - snap.CostBasisUSD
	if snap.CostBasisUSD != 0 {
		snap.GainLossPercent = snap.GainLossUSD / snap.CostBasisUSD * 100
	}
	if rate > 0 {
		snap.TotalValueEUR = snap.TotalValueUSD / rate
	}

	return snap
}
