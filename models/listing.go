package models

import "time"

// NormalizedListing is the ephemeral record a source adapter produces from
// a raw search response. It is not persisted as-is; the store owns the
// listing once it has been upserted by natural key.
type NormalizedListing struct {
	Source        string
	ExternalID    string
	Title         string
	Description   string
	Price         *float64
	Currency      string
	URL           string
	Location      string
	Category      string
	PostedAt      *time.Time
	SellerContact string
	IsActive      bool
	LastSeenAt    time.Time
	Attributes    map[string]string
}

// NaturalKey returns the (source, external_id) pair that uniquely
// identifies a listing across ingestion runs, and whether both parts
// are present.
func (n *NormalizedListing) NaturalKey() (string, string, bool) {
	if n.Source == "" || n.ExternalID == "" {
		return "", "", false
	}
	return n.Source, n.ExternalID, true
}

// Listing is the persisted row for a marketplace listing. Rows persist
// indefinitely; IsActive and LastSeenAt track freshness, not deletion.
type Listing struct {
	ID            int64
	Source        string
	ExternalID    string
	Title         string
	Description   string
	Price         *float64
	Currency      string
	URL           string
	Location      string
	Category      string
	PostedAt      *time.Time
	SellerContact string
	IsActive      bool
	LastSeenAt    time.Time
	Attributes    map[string]string
	CreatedAt     time.Time
}

// PriceValue returns the listing price, or 0 when no price was parsed.
func (l *Listing) PriceValue() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}
