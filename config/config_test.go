package config

import "testing"

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", "ps5, rtx 3080 ,,iphone,")
	got := getEnvList("TEST_LIST", "")
	want := []string{"ps5", "rtx 3080", "iphone"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("TEST_LIST", "")
	if got := getEnvList("TEST_LIST", "a,b"); len(got) != 2 {
		t.Errorf("fallback not applied: %v", got)
	}
}

func TestGetEnvFloatMap(t *testing.T) {
	t.Setenv("TEST_MAP", "PS5:0.9, rtx 3080 : 0.85,broken,also:bad,:0.1")
	got := getEnvFloatMap("TEST_MAP")

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(got), got)
	}
	if got["ps5"] != 0.9 {
		t.Errorf("ps5 = %v, want 0.9 (keys lowercased)", got["ps5"])
	}
	if got["rtx 3080"] != 0.85 {
		t.Errorf("rtx 3080 = %v, want 0.85", got["rtx 3080"])
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MIN_DEMAND_SCORE", "")
	t.Setenv("FEES_PERCENT", "")
	t.Setenv("KEYWORDS", "")
	t.Setenv("ALERT_CHANNELS", "")

	cfg := Load()
	if cfg.MinDemandScore != 0.7 {
		t.Errorf("MinDemandScore default = %v, want 0.7", cfg.MinDemandScore)
	}
	if cfg.FeesPercent != 10 {
		t.Errorf("FeesPercent default = %v, want 10", cfg.FeesPercent)
	}
	if len(cfg.Keywords) == 0 {
		t.Error("Keywords default should be non-empty")
	}
	if len(cfg.AlertChannels) != 1 || cfg.AlertChannels[0] != "email" {
		t.Errorf("AlertChannels default = %v, want [email]", cfg.AlertChannels)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_MARGIN_PERCENT", "22.5")
	t.Setenv("PROXIES", "http://p1:8080,http://p2:8080")
	t.Setenv("TREND_OVERRIDES", "ps5:0.9")

	cfg := Load()
	if cfg.MinMarginPercent != 22.5 {
		t.Errorf("MinMarginPercent = %v, want 22.5", cfg.MinMarginPercent)
	}
	if len(cfg.ProxyURLs) != 2 {
		t.Errorf("ProxyURLs = %v, want 2 entries", cfg.ProxyURLs)
	}
	if cfg.TrendOverrides["ps5"] != 0.9 {
		t.Errorf("TrendOverrides = %v", cfg.TrendOverrides)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "sniper", PostgresSSLMode: "disable",
	}
	want := "host=db port=5433 user=u password=p dbname=sniper sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
