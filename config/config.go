package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is built once at startup and passed into each component constructor.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	Keywords    []string
	LocationZip string
	ProxyURLs   []string

	FetchTimeoutSec int
	DelayMinMs      int
	DelayMaxMs      int
	MaxRetries      int

	MinDemandScore    float64
	MinMarginPercent  float64
	MinCompositeScore float64
	FeesPercent       float64
	ShippingCost      float64
	MarginCapPercent  float64
	WeightDemand      float64
	WeightMargin      float64
	FreshHours        float64

	TrendDefaultScore float64
	TrendOverrides    map[string]float64

	AlertChannels   []string
	SMTPHost        string
	SMTPPort        int
	SMTPFrom        string
	SMTPPassword    string
	AlertEmailTo    string
	SlackWebhookURL string

	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "sniper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "sniper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "sniper_agent"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Keywords:    getEnvList("KEYWORDS", "iphone,ps5"),
		LocationZip: getEnv("LOCATION_ZIP", ""),
		ProxyURLs:   getEnvList("PROXIES", ""),

		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 20),
		DelayMinMs:      getEnvInt("DELAY_MIN_MS", 250),
		DelayMaxMs:      getEnvInt("DELAY_MAX_MS", 1250),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),

		MinDemandScore:    getEnvFloat("MIN_DEMAND_SCORE", 0.7),
		MinMarginPercent:  getEnvFloat("MIN_MARGIN_PERCENT", 15),
		MinCompositeScore: getEnvFloat("MIN_COMPOSITE_SCORE", 0.75),
		FeesPercent:       getEnvFloat("FEES_PERCENT", 10),
		ShippingCost:      getEnvFloat("SHIPPING_COST", 0),
		MarginCapPercent:  getEnvFloat("MARGIN_CAP_PERCENT", 50),
		WeightDemand:      getEnvFloat("WEIGHT_DEMAND", 0.6),
		WeightMargin:      getEnvFloat("WEIGHT_MARGIN", 0.4),
		FreshHours:        getEnvFloat("FRESH_HOURS", 24),

		TrendDefaultScore: getEnvFloat("TREND_DEFAULT_SCORE", 0.5),
		TrendOverrides:    getEnvFloatMap("TREND_OVERRIDES"),

		AlertChannels:   getEnvList("ALERT_CHANNELS", "email"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		AlertEmailTo:    getEnv("ALERT_EMAIL_TO", ""),
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

// getEnvList parses a comma-separated env var, dropping empty entries.
func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getEnvFloatMap parses "key1:0.9,key2:0.85" style env vars.
func getEnvFloatMap(key string) map[string]float64 {
	out := make(map[string]float64)
	for _, part := range strings.Split(os.Getenv(key), ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(kv[0]))
		val, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if name == "" || err != nil {
			continue
		}
		out[name] = val
	}
	return out
}
