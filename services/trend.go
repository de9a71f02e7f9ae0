package services

import (
	"strings"
	"sync"

	"sniper-agent/config"
)

// TrendAnalyzer maps a keyword to an interest score in [0, 1]. Static
// per-keyword overrides from config win; everything else gets the
// configured baseline. Results are memoized per keyword.
//
// TODO: wire to Google Trends once a quota-friendly client exists.
type TrendAnalyzer struct {
	defaultScore float64
	overrides    map[string]float64

	mu    sync.Mutex
	cache map[string]float64
}

// NewTrendAnalyzer builds the analyzer from config.
func NewTrendAnalyzer(cfg *config.Config) *TrendAnalyzer {
	overrides := make(map[string]float64, len(cfg.TrendOverrides))
	for k, v := range cfg.TrendOverrides {
		overrides[strings.ToLower(k)] = clamp01(v)
	}
	return &TrendAnalyzer{
		defaultScore: clamp01(cfg.TrendDefaultScore),
		overrides:    overrides,
		cache:        make(map[string]float64),
	}
}

// ScoreKeyword returns the trend score for a keyword. Empty keywords
// score 0.
func (t *TrendAnalyzer) ScoreKeyword(keyword string) float64 {
	key := strings.ToLower(strings.TrimSpace(keyword))
	if key == "" {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if score, ok := t.cache[key]; ok {
		return score
	}

	score := t.defaultScore
	if override, ok := t.overrides[key]; ok {
		score = override
	}
	t.cache[key] = score
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
