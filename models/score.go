package models

// MarginResult breaks down the economics of reselling a listing.
// MarginPercent is on the 0–100 scale.
type MarginResult struct {
	SellPrice     float64
	CostBasis     float64
	FeesAmount    float64
	ShippingCost  float64
	TotalCost     float64
	MarginAmount  float64
	MarginPercent float64
}

// ScoreBundle carries the three scores the decision engine evaluates.
// It is recomputed on every analysis pass and only mirrored into the
// Deal snapshot, never persisted as the source of truth.
type ScoreBundle struct {
	DemandScore    float64
	Margin         MarginResult
	CompositeScore float64
}
