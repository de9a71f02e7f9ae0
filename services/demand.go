package services

import (
	"time"

	"sniper-agent/config"
	"sniper-agent/models"
)

// Recency contribution decays to zero by 7 days of age.
const decayWindowHours = 168.0

// DemandScorer produces a heuristic demand score in [0, 1] from a
// conservative baseline, a recency boost and an optional trend signal.
type DemandScorer struct {
	baseScore     float64
	recencyWeight float64
	trendWeight   float64
	freshHours    float64

	now func() time.Time
}

// NewDemandScorer builds the scorer from config. FreshHours is how long
// a listing counts as fresh for the full recency boost.
func NewDemandScorer(cfg *config.Config) *DemandScorer {
	fresh := cfg.FreshHours
	if fresh <= 0 {
		fresh = 24
	}
	return &DemandScorer{
		baseScore:     0.4,
		recencyWeight: 0.35,
		trendWeight:   0.25,
		freshHours:    fresh,
		now:           time.Now,
	}
}

// Score computes the demand score for a listing. trendScore is optional;
// pass nil when no trend signal exists. A listing without posted_at gets
// neither a recency bonus nor a penalty.
func (d *DemandScorer) Score(listing *models.Listing, trendScore *float64) float64 {
	score := d.baseScore

	if listing.PostedAt != nil {
		hours := d.now().UTC().Sub(listing.PostedAt.UTC()).Hours()
		if hours <= d.freshHours {
			score += d.recencyWeight
		} else {
			window := decayWindowHours - d.freshHours
			if window < 1 {
				window = 1
			}
			factor := 1 - (hours-d.freshHours)/window
			if factor < 0 {
				factor = 0
			}
			score += d.recencyWeight * factor
		}
	}

	if trendScore != nil {
		score += d.trendWeight * clamp01(*trendScore)
	}

	return clamp01(score)
}
