package services

import (
	"sniper-agent/config"
	"sniper-agent/models"
	"sniper-agent/storage"
	"sniper-agent/utils"
)

// AnalysisCounts aggregates one analysis run.
type AnalysisCounts struct {
	Created int
	Updated int
	Failed  int
}

// AnalysisOrchestrator re-evaluates every active listing on each run and
// upserts its 1:1 deal, overwriting status, score, margin and reason.
// Analysis is a pure idempotent projection: re-running with unchanged
// inputs changes nothing.
type AnalysisOrchestrator struct {
	store  storage.Store
	scorer *DealScorer
	engine *DecisionEngine
	logger *utils.Logger
}

// NewAnalysisOrchestrator wires the scorer and decision engine over the
// store.
func NewAnalysisOrchestrator(cfg *config.Config, store storage.Store, logger *utils.Logger) *AnalysisOrchestrator {
	return &AnalysisOrchestrator{
		store:  store,
		scorer: NewDealScorer(cfg),
		engine: NewDecisionEngine(cfg),
		logger: logger,
	}
}

// Run evaluates all active listings into deals. A failure for one
// listing is logged and skipped, never fatal to the pass.
func (o *AnalysisOrchestrator) Run() (AnalysisCounts, error) {
	o.logger.Info("[analysis] evaluating listings into deals")

	listings, err := o.store.ListActiveListings()
	if err != nil {
		return AnalysisCounts{}, err
	}

	var counts AnalysisCounts
	for _, listing := range listings {
		scores := o.scorer.Score(listing, 0, "")
		decision := o.engine.Decide(scores)

		status := models.DealStatusIgnored
		if decision.ShouldAlert {
			status = models.DealStatusEligible
		}

		_, created, err := o.store.UpsertDeal(
			listing.ID, status, scores.CompositeScore, scores.Margin.MarginAmount,
			listing.Currency, decision.Reason)
		if err != nil {
			o.logger.Warn("[analysis] upsert deal failed for listing id=%d: %v", listing.ID, err)
			counts.Failed++
			continue
		}
		if created {
			counts.Created++
		} else {
			counts.Updated++
		}
	}

	o.logger.Info("[analysis] finished (created=%d, updated=%d, failed=%d)",
		counts.Created, counts.Updated, counts.Failed)
	return counts, nil
}
