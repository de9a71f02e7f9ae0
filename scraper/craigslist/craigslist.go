// Package craigslist adapts Craigslist's public goods-for-sale search.
//
// Craigslist encodes regions into subdomains (e.g. austin.craigslist.org),
// so real usage should point the base URL at the target region; the
// location hint is ignored in the URL itself.
package craigslist

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sniper-agent/models"
	"sniper-agent/scraper"
)

const source = "craigslist"

// Adapter scrapes Craigslist search results.
type Adapter struct {
	baseURL string
}

// New creates an adapter against the global domain.
func New() *Adapter {
	return NewWithBaseURL("https://www.craigslist.org")
}

// NewWithBaseURL creates an adapter against a regional domain or a test
// server.
func NewWithBaseURL(baseURL string) *Adapter {
	return &Adapter{baseURL: baseURL}
}

func (a *Adapter) Name() string { return source }

// Craigslist tolerates ~1 req/sec; stay conservative.
func (a *Adapter) RatePerSecond() float64 { return 0.75 }

// BuildSearchURL composes the /search/sss query URL. The location hint is
// unused: regions live in the subdomain.
func (a *Adapter) BuildSearchURL(query, location string) string {
	_ = location
	return fmt.Sprintf("%s/search/sss?%s", a.baseURL, url.Values{"query": {query}}.Encode())
}

// Parse extracts listings from search result markup. It handles both the
// classic result-row layout and the newer static search results; unknown
// markup yields an empty slice.
func (a *Adapter) Parse(body []byte) ([]*models.NormalizedListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("craigslist: parse document: %w", err)
	}

	var items []*models.NormalizedListing

	// Classic markup.
	doc.Find("li.result-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.result-title.hdrlnk").First()
		if link.Length() == 0 {
			link = row.Find("a.hdrlnk").First()
		}
		if link.Length() == 0 {
			link = row.Find("a").First()
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		externalID, _ := row.Attr("data-pid")
		if externalID == "" {
			externalID = href
		}

		item := &models.NormalizedListing{
			Source:     source,
			ExternalID: externalID,
			Title:      scraper.NormalizeText(link.Text()),
			Price:      scraper.ParsePrice(row.Find(".result-price").First().Text()),
			Currency:   "USD",
			URL:        scraper.AbsoluteURL(a.baseURL, href),
			IsActive:   true,
			LastSeenAt: time.Now().UTC(),
			Attributes: map[string]string{},
		}
		if dt, ok := row.Find("time").First().Attr("datetime"); ok {
			item.PostedAt = parsePostedAt(dt)
		}
		items = append(items, item)
	})

	// Newer static search results.
	if len(items) == 0 {
		doc.Find("li.cl-static-search-result").Each(func(_ int, card *goquery.Selection) {
			link := card.Find("a").First()
			href, ok := link.Attr("href")
			if !ok || href == "" {
				return
			}
			items = append(items, &models.NormalizedListing{
				Source:     source,
				ExternalID: href,
				Title:      scraper.NormalizeText(link.Text()),
				Currency:   "USD",
				URL:        scraper.AbsoluteURL(a.baseURL, href),
				IsActive:   true,
				LastSeenAt: time.Now().UTC(),
				Attributes: map[string]string{},
			})
		})
	}

	return items, nil
}

// parsePostedAt handles the datetime formats Craigslist has shipped.
func parsePostedAt(raw string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
