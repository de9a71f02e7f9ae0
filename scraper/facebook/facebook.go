// Package facebook adapts Facebook Marketplace search. Marketplace pages
// are rendered by JavaScript and usually require an authenticated
// session, so static parsing yields an empty result set until a renderer
// is integrated.
package facebook

import (
	"fmt"
	"net/url"

	"sniper-agent/models"
)

const source = "facebook"

// Adapter builds Marketplace search URLs and parses (empty) results.
type Adapter struct {
	baseURL string
}

func New() *Adapter {
	return NewWithBaseURL("https://www.facebook.com/marketplace")
}

func NewWithBaseURL(baseURL string) *Adapter {
	return &Adapter{baseURL: baseURL}
}

func (a *Adapter) Name() string { return source }

// Facebook is strict about request volume.
func (a *Adapter) RatePerSecond() float64 { return 0.5 }

// BuildSearchURL composes /marketplace/search/?query=. Location handling
// is non-trivial without auth and is ignored.
func (a *Adapter) BuildSearchURL(query, location string) string {
	_ = location
	return fmt.Sprintf("%s/search/?%s", a.baseURL, url.Values{"query": {query}}.Encode())
}

// Parse returns an empty slice: the static HTML carries no listing data.
func (a *Adapter) Parse(body []byte) ([]*models.NormalizedListing, error) {
	_ = body
	return []*models.NormalizedListing{}, nil
}
