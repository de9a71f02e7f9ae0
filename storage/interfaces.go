package storage

import (
	"errors"

	"sniper-agent/models"
)

// ErrMissingKey is returned when a listing arrives without its
// (source, external_id) natural key. It aborts only that record.
var ErrMissingKey = errors.New("storage: listing requires source and external_id")

// Store is the persistence boundary for listings, deals and alerts.
type Store interface {
	// UpsertListing inserts or updates by (source, external_id).
	// On conflict every provided non-null field is updated and
	// last_seen_at is always refreshed. Returns the row id and whether
	// the row was newly created.
	UpsertListing(l *models.NormalizedListing) (int64, bool, error)

	// ListActiveListings returns all listings with is_active=true.
	ListActiveListings() ([]*models.Listing, error)

	// UpsertDeal creates or overwrites the 1:1 deal for a listing.
	UpsertDeal(listingID int64, status string, score, estimatedMargin float64, currency, reason string) (*models.Deal, bool, error)

	// ListEligibleDeals returns deals with status=eligible, newest
	// first, each joined with its listing.
	ListEligibleDeals() ([]*models.Deal, error)

	// AlertExists reports whether an alert with the given status exists
	// for the (deal, channel) pair.
	AlertExists(dealID int64, channel, status string) (bool, error)

	// InsertAlert records a new delivery attempt.
	InsertAlert(dealID int64, channel, status, message string) (*models.Alert, error)

	// UpdateAlertStatus transitions an alert to sent/failed.
	UpdateAlertStatus(alertID int64, status string) error

	Close() error
}
