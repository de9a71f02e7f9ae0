// Package offerup adapts OfferUp's public search results. Real pages may
// lazy-load items; this parser targets the basic static markup.
package offerup

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sniper-agent/models"
	"sniper-agent/scraper"
)

const source = "offerup"

// Adapter scrapes OfferUp search results.
type Adapter struct {
	baseURL string
}

func New() *Adapter {
	return NewWithBaseURL("https://offerup.com")
}

func NewWithBaseURL(baseURL string) *Adapter {
	return &Adapter{baseURL: baseURL}
}

func (a *Adapter) Name() string { return source }

func (a *Adapter) RatePerSecond() float64 { return 0.75 }

// BuildSearchURL composes the /search?q= query URL.
func (a *Adapter) BuildSearchURL(query, location string) string {
	_ = location
	return fmt.Sprintf("%s/search?%s", a.baseURL, url.Values{"q": {query}}.Encode())
}

// Parse extracts listings from the common feed-item card containers.
func (a *Adapter) Parse(body []byte) ([]*models.NormalizedListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("offerup: parse document: %w", err)
	}

	var items []*models.NormalizedListing
	seen := make(map[string]struct{})

	doc.Find("[data-qa='feed-item-card'], a[href*='/item/detail/']").Each(func(_ int, card *goquery.Selection) {
		link := card
		if !card.Is("a") {
			link = card.Find("a").First()
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		externalID := lastPathSegment(href)
		if _, dup := seen[externalID]; dup {
			return
		}
		seen[externalID] = struct{}{}

		title := card.Find("[data-qa='item-title']").First()
		if title.Length() == 0 {
			title = link
		}

		items = append(items, &models.NormalizedListing{
			Source:     source,
			ExternalID: externalID,
			Title:      scraper.NormalizeText(title.Text()),
			Price:      scraper.ParsePrice(card.Find("[data-qa='item-price']").First().Text()),
			Currency:   "USD",
			URL:        scraper.AbsoluteURL(a.baseURL, href),
			IsActive:   true,
			LastSeenAt: time.Now().UTC(),
			Attributes: map[string]string{},
		})
	})

	return items, nil
}

func lastPathSegment(href string) string {
	trimmed := strings.TrimRight(href, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i+1 < len(trimmed) {
		return trimmed[i+1:]
	}
	return href
}
