package services

import (
	"testing"

	"sniper-agent/config"
)

func TestTrendAnalyzer(t *testing.T) {
	ta := NewTrendAnalyzer(&config.Config{
		TrendDefaultScore: 0.5,
		TrendOverrides:    map[string]float64{"ps5": 0.9, "fax machine": 0.1, "hype": 7},
	})

	tests := []struct {
		keyword string
		want    float64
	}{
		{"ps5", 0.9},
		{"PS5", 0.9},
		{"  ps5  ", 0.9},
		{"fax machine", 0.1},
		{"hype", 1}, // override clamped to [0, 1]
		{"unknown thing", 0.5},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ta.ScoreKeyword(tt.keyword); !almostEqual(got, tt.want) {
			t.Errorf("ScoreKeyword(%q) = %v, want %v", tt.keyword, got, tt.want)
		}
	}
}

func TestTrendAnalyzerMemoizes(t *testing.T) {
	ta := NewTrendAnalyzer(&config.Config{TrendDefaultScore: 0.5})

	first := ta.ScoreKeyword("gpu")
	if _, ok := ta.cache["gpu"]; !ok {
		t.Fatal("keyword not cached after first lookup")
	}
	if second := ta.ScoreKeyword("gpu"); second != first {
		t.Errorf("memoized lookup changed: %v then %v", first, second)
	}
}
