package utils

import (
	"strings"
	"testing"
	"time"
)

func TestBuildHeadersDefaults(t *testing.T) {
	h := BuildHeaders(nil, "")

	for _, key := range []string{"User-Agent", "Accept", "Accept-Language", "Upgrade-Insecure-Requests"} {
		if h[key] == "" {
			t.Errorf("BuildHeaders missing %s", key)
		}
	}
	if !strings.HasPrefix(h["User-Agent"], "Mozilla/5.0") {
		t.Errorf("User-Agent looks wrong: %q", h["User-Agent"])
	}
}

func TestBuildHeadersCallerWins(t *testing.T) {
	base := map[string]string{
		"User-Agent":      "custom-agent/1.0",
		"Accept-Language": "fr-FR",
		"X-Extra":         "kept",
	}
	h := BuildHeaders(base, "")

	if h["User-Agent"] != "custom-agent/1.0" {
		t.Errorf("caller User-Agent overwritten: %q", h["User-Agent"])
	}
	if h["Accept-Language"] != "fr-FR" {
		t.Errorf("caller Accept-Language overwritten: %q", h["Accept-Language"])
	}
	if h["X-Extra"] != "kept" {
		t.Errorf("caller extra header lost")
	}
	// base itself must not be mutated
	if len(base) != 3 {
		t.Errorf("base map mutated, now has %d entries", len(base))
	}
}

func TestBuildHeadersForcedUserAgent(t *testing.T) {
	h := BuildHeaders(nil, "forced/2.0")
	if h["User-Agent"] != "forced/2.0" {
		t.Errorf("forced user agent not applied: %q", h["User-Agent"])
	}
}

func TestUserAgentPool(t *testing.T) {
	if len(userAgents) < 8 {
		t.Errorf("user agent pool too small: %d", len(userAgents))
	}
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[RandomUserAgent()] = true
	}
	if len(seen) < 2 {
		t.Error("RandomUserAgent never varies")
	}
}

func TestHumanDelay(t *testing.T) {
	min, max := 100*time.Millisecond, 500*time.Millisecond
	for i := 0; i < 100; i++ {
		d := HumanDelay(min, max)
		if d < min || d > max {
			t.Fatalf("HumanDelay out of range: %v", d)
		}
	}

	// Inverted or zero range collapses to min.
	if d := HumanDelay(min, min); d != min {
		t.Errorf("HumanDelay(min, min) = %v, want %v", d, min)
	}
	if d := HumanDelay(0, 0); d != 0 {
		t.Errorf("HumanDelay(0, 0) = %v, want 0", d)
	}
}
