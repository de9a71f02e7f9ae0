package services

import (
	"sniper-agent/config"
)

// CompositeScorer blends demand and margin signals into a single [0, 1]
// ranking value. Margin percent is normalized against a cap (50% margin
// maps to 1.0 by default). Weights are re-normalized to sum to 1.
type CompositeScorer struct {
	weightDemand     float64
	weightMargin     float64
	marginCapPercent float64
}

// NewCompositeScorer builds the scorer from config, falling back to the
// 0.6/0.4 defaults when weights are unusable.
func NewCompositeScorer(cfg *config.Config) *CompositeScorer {
	wd, wm := cfg.WeightDemand, cfg.WeightMargin
	if wd < 0 {
		wd = 0
	}
	if wm < 0 {
		wm = 0
	}
	total := wd + wm
	if total <= 0 {
		wd, wm, total = 0.6, 0.4, 1
	}

	cap := cfg.MarginCapPercent
	if cap <= 0 {
		cap = 50
	}

	return &CompositeScorer{
		weightDemand:     wd / total,
		weightMargin:     wm / total,
		marginCapPercent: cap,
	}
}

// Score combines a demand score (already [0, 1]) with a margin percent
// (0–100 scale) into the composite score.
func (c *CompositeScorer) Score(demandScore, marginPercent float64) float64 {
	d := clamp01(demandScore)
	m := clamp01(marginPercent / c.marginCapPercent)
	return clamp01(c.weightDemand*d + c.weightMargin*m)
}
