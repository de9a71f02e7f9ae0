package utils

import (
	"math/rand"
	"time"
)

// A compact, representative pool of desktop and mobile user agents.
// Enough variety to avoid tripping basic bot heuristics without keeping a
// huge list current.
var userAgents = []string{
	// Chrome (Windows/Mac/Linux)
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	// Firefox (Windows/Mac/Linux)
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13.4; rv:122.0) Gecko/20100101 Firefox/122.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	// Edge
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36 Edg/122.0.0.0",
	// Mobile (Android/iOS)
	"Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en-CA;q=0.8,en;q=0.7",
	"en-US,en;q=0.8,es;q=0.6",
}

// RandomUserAgent returns a random entry from the built-in pool.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// RandomAcceptLanguage returns a random Accept-Language value.
func RandomAcceptLanguage() string {
	return acceptLanguages[rand.Intn(len(acceptLanguages))]
}

// BuildHeaders constructs plausible browser headers. Caller-supplied
// values in base always win; the randomized fields fill the gaps.
// forcedUserAgent overrides the random pick when non-empty.
func BuildHeaders(base map[string]string, forcedUserAgent string) map[string]string {
	headers := make(map[string]string, len(base)+11)
	for k, v := range base {
		headers[k] = v
	}

	ua := forcedUserAgent
	if ua == "" {
		ua = RandomUserAgent()
	}
	setDefault(headers, "User-Agent", ua)
	setDefault(headers, "Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	setDefault(headers, "Accept-Language", RandomAcceptLanguage())
	setDefault(headers, "Accept-Encoding", "gzip, deflate, br, zstd")
	setDefault(headers, "Cache-Control", "no-cache")
	setDefault(headers, "Pragma", "no-cache")
	setDefault(headers, "Sec-Fetch-Dest", "document")
	setDefault(headers, "Sec-Fetch-Mode", "navigate")
	setDefault(headers, "Sec-Fetch-Site", "none")
	setDefault(headers, "Sec-Fetch-User", "?1")
	setDefault(headers, "Upgrade-Insecure-Requests", "1")
	return headers
}

func setDefault(m map[string]string, key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// HumanDelay returns a uniform-random duration in [min, max] used to
// pace requests like a human. A zero or inverted range collapses to min,
// which lets tests disable pacing entirely.
func HumanDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
