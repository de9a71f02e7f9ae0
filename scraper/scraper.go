package scraper

import (
	"fmt"

	"sniper-agent/models"
)

// Adapter is the per-marketplace capability set. Adapters never perform
// network I/O; they only build search URLs and parse response bodies,
// which keeps them testable against recorded fixtures.
type Adapter interface {
	// Name identifies the source; it becomes NormalizedListing.Source.
	Name() string

	// RatePerSecond is the outbound request budget for this source.
	// Each adapter gets its own rate limiter so sources never throttle
	// each other.
	RatePerSecond() float64

	// BuildSearchURL deterministically composes the search URL for a
	// keyword and optional location hint.
	BuildSearchURL(query, location string) string

	// Parse extracts normalized listings from a raw response body.
	// Missing fields become zero values; markup drift yields an empty
	// slice, not an error.
	Parse(body []byte) ([]*models.NormalizedListing, error)
}

// FetchError classifies a failed fetch: transport error, timeout, or a
// non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError classifies an adapter parse failure.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
