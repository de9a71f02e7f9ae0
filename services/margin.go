package services

import (
	"math"

	"sniper-agent/models"
)

// CalculateMargin computes resale economics: fees as a percentage of the
// sell price, shipping as a fixed cost. Bad money data (NaN, Inf)
// coerces to zero instead of blocking the pipeline, and MarginPercent
// always lands in [0, 100].
func CalculateMargin(sellPrice, costBasis, feesPercent, shippingCost float64) models.MarginResult {
	sp := sanitize(sellPrice)
	cb := sanitize(costBasis)
	fp := math.Max(0, sanitize(feesPercent))
	ship := math.Max(0, sanitize(shippingCost))

	feesAmount := sp * (fp / 100)
	totalCost := cb + feesAmount + ship
	marginAmount := sp - totalCost

	marginPercent := 0.0
	if sp > 0 {
		marginPercent = math.Min(100, math.Max(0, marginAmount/sp*100))
	}

	return models.MarginResult{
		SellPrice:     sp,
		CostBasis:     cb,
		FeesAmount:    feesAmount,
		ShippingCost:  ship,
		TotalCost:     totalCost,
		MarginAmount:  marginAmount,
		MarginPercent: marginPercent,
	}
}

// sanitize coerces NaN and infinities to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
