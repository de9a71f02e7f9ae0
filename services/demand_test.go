package services

import (
	"testing"
	"time"

	"sniper-agent/config"
	"sniper-agent/models"
)

func testDemandScorer(fresh float64, now time.Time) *DemandScorer {
	d := NewDemandScorer(&config.Config{FreshHours: fresh})
	d.now = func() time.Time { return now }
	return d
}

func listingPostedAgo(now time.Time, age time.Duration) *models.Listing {
	posted := now.Add(-age)
	return &models.Listing{Title: "PS5 console", PostedAt: &posted}
}

func TestDemandScoreFreshListing(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	d := testDemandScorer(24, now)

	// Fresh, no trend signal: base + full recency boost.
	got := d.Score(listingPostedAgo(now, time.Hour), nil)
	if !almostEqual(got, 0.75) {
		t.Errorf("fresh listing score = %v, want 0.75", got)
	}

	// Fresh with a strong trend: base + recency + 0.25*0.9.
	trend := 0.9
	got = d.Score(listingPostedAgo(now, time.Hour), &trend)
	if !almostEqual(got, 0.975) {
		t.Errorf("fresh+trend score = %v, want 0.975", got)
	}
}

func TestDemandScoreDecay(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	d := testDemandScorer(24, now)

	// Halfway through the 24h..168h decay window: half the recency boost.
	got := d.Score(listingPostedAgo(now, 96*time.Hour), nil)
	if !almostEqual(got, 0.575) {
		t.Errorf("mid-decay score = %v, want 0.575", got)
	}

	// Past the window: recency contributes nothing.
	got = d.Score(listingPostedAgo(now, 300*time.Hour), nil)
	if !almostEqual(got, 0.4) {
		t.Errorf("stale score = %v, want 0.4", got)
	}
}

func TestDemandScoreMissingPostedAt(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	d := testDemandScorer(24, now)

	got := d.Score(&models.Listing{Title: "no timestamp"}, nil)
	if !almostEqual(got, 0.4) {
		t.Errorf("no posted_at score = %v, want base 0.4", got)
	}
}

func TestDemandScoreBounds(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	d := testDemandScorer(24, now)

	trends := []float64{-5, 0, 0.5, 1, 5}
	ages := []time.Duration{0, time.Hour, 96 * time.Hour, 1000 * time.Hour}

	for _, trend := range trends {
		tr := trend
		for _, age := range ages {
			got := d.Score(listingPostedAgo(now, age), &tr)
			if got < 0 || got > 1 {
				t.Errorf("score(trend=%v, age=%v) = %v, out of [0, 1]", trend, age, got)
			}
		}
	}
}
