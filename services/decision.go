package services

import (
	"fmt"
	"strings"

	"sniper-agent/config"
	"sniper-agent/models"
)

// ReasonMeetsThresholds is the fixed success justification.
const ReasonMeetsThresholds = "meets or exceeds all thresholds"

// Decision is the verdict on a scored listing with a human-readable
// justification.
type Decision struct {
	ShouldAlert bool
	Reason      string
}

// DecisionEngine applies configured thresholds to a score bundle. All
// three conditions must hold; when they don't, every failing condition is
// reported so operators see every gap at once.
type DecisionEngine struct {
	minDemandScore    float64
	minMarginPercent  float64
	minCompositeScore float64
}

// NewDecisionEngine builds the engine from config thresholds.
func NewDecisionEngine(cfg *config.Config) *DecisionEngine {
	return &DecisionEngine{
		minDemandScore:    cfg.MinDemandScore,
		minMarginPercent:  cfg.MinMarginPercent,
		minCompositeScore: cfg.MinCompositeScore,
	}
}

// Decide evaluates the three threshold conditions without short-
// circuiting.
func (e *DecisionEngine) Decide(scores models.ScoreBundle) Decision {
	var reasons []string

	if scores.DemandScore < e.minDemandScore {
		reasons = append(reasons, fmt.Sprintf("demand_score %.2f < min_demand %.2f",
			scores.DemandScore, e.minDemandScore))
	}
	if scores.Margin.MarginPercent < e.minMarginPercent {
		reasons = append(reasons, fmt.Sprintf("margin %.1f%% < min_margin %.1f%%",
			scores.Margin.MarginPercent, e.minMarginPercent))
	}
	if scores.CompositeScore < e.minCompositeScore {
		reasons = append(reasons, fmt.Sprintf("composite %.2f < min_composite %.2f",
			scores.CompositeScore, e.minCompositeScore))
	}

	if len(reasons) > 0 {
		return Decision{ShouldAlert: false, Reason: strings.Join(reasons, " & ")}
	}
	return Decision{ShouldAlert: true, Reason: ReasonMeetsThresholds}
}
