package services

import (
	"testing"

	"sniper-agent/config"
)

func TestCompositeScoreDefaults(t *testing.T) {
	c := NewCompositeScorer(&config.Config{WeightDemand: 0.6, WeightMargin: 0.4, MarginCapPercent: 50})

	// 0.6*0.975 + 0.4*(31.667/50)
	got := c.Score(0.975, 31.666666666666664)
	if !almostEqual(got, 0.8383333333333333) {
		t.Errorf("Score = %v, want ~0.8383", got)
	}

	if got := c.Score(0, 0); got != 0 {
		t.Errorf("Score(0, 0) = %v, want 0", got)
	}
	if got := c.Score(1, 50); got != 1 {
		t.Errorf("Score(1, cap) = %v, want 1", got)
	}
}

func TestCompositeWeightRenormalization(t *testing.T) {
	c := NewCompositeScorer(&config.Config{WeightDemand: 3, WeightMargin: 1, MarginCapPercent: 50})

	// Weights 3:1 renormalize to 0.75/0.25.
	got := c.Score(1, 0)
	if !almostEqual(got, 0.75) {
		t.Errorf("demand-only score = %v, want 0.75", got)
	}
	got = c.Score(0, 50)
	if !almostEqual(got, 0.25) {
		t.Errorf("margin-only score = %v, want 0.25", got)
	}
}

func TestCompositeUnusableWeightsFallBack(t *testing.T) {
	for _, cfg := range []*config.Config{
		{WeightDemand: 0, WeightMargin: 0, MarginCapPercent: 50},
		{WeightDemand: -1, WeightMargin: -2, MarginCapPercent: 50},
	} {
		c := NewCompositeScorer(cfg)
		got := c.Score(1, 0)
		if !almostEqual(got, 0.6) {
			t.Errorf("fallback demand weight: score = %v, want 0.6", got)
		}
	}
}

func TestCompositeMarginCapClamped(t *testing.T) {
	c := NewCompositeScorer(&config.Config{WeightDemand: 0.6, WeightMargin: 0.4, MarginCapPercent: 50})

	// Margin above the cap contributes no more than the cap.
	atCap := c.Score(0.5, 50)
	aboveCap := c.Score(0.5, 90)
	if !almostEqual(atCap, aboveCap) {
		t.Errorf("margin above cap changed the score: %v vs %v", atCap, aboveCap)
	}

	// Zero cap falls back to 50.
	c = NewCompositeScorer(&config.Config{WeightDemand: 0.6, WeightMargin: 0.4})
	if got := c.Score(0, 25); !almostEqual(got, 0.2) {
		t.Errorf("default-cap score = %v, want 0.2", got)
	}
}
