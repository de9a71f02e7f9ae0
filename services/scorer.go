package services

import (
	"sniper-agent/config"
	"sniper-agent/models"
)

// DealScorer runs trend → demand → margin → composite scoring for one
// listing. The listing's own price is the cost basis; the assumed sell
// price defaults to the listing price when the caller has no better
// estimate.
type DealScorer struct {
	trend     *TrendAnalyzer
	demand    *DemandScorer
	composite *CompositeScorer

	feesPercent  float64
	shippingCost float64
}

// NewDealScorer builds a scorer with fee and shipping assumptions from
// config.
func NewDealScorer(cfg *config.Config) *DealScorer {
	return &DealScorer{
		trend:        NewTrendAnalyzer(cfg),
		demand:       NewDemandScorer(cfg),
		composite:    NewCompositeScorer(cfg),
		feesPercent:  cfg.FeesPercent,
		shippingCost: cfg.ShippingCost,
	}
}

// Score computes the full bundle for a listing. assumedSellPrice <= 0
// falls back to the listing price. The trend keyword defaults to the
// listing title.
func (s *DealScorer) Score(listing *models.Listing, assumedSellPrice float64, trendKeyword string) models.ScoreBundle {
	keyword := trendKeyword
	if keyword == "" {
		keyword = truncateKeyword(listing.Title, 50)
	}
	trendScore := s.trend.ScoreKeyword(keyword)

	demand := s.demand.Score(listing, &trendScore)

	sellPrice := assumedSellPrice
	if sellPrice <= 0 {
		sellPrice = listing.PriceValue()
	}
	margin := CalculateMargin(sellPrice, listing.PriceValue(), s.feesPercent, s.shippingCost)

	return models.ScoreBundle{
		DemandScore:    demand,
		Margin:         margin,
		CompositeScore: s.composite.Score(demand, margin.MarginPercent),
	}
}

func truncateKeyword(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
