package models

import "time"

// Deal statuses. Exactly one deal exists per listing; the analysis run
// overwrites status, score, margin and notes on every pass.
const (
	DealStatusNew      = "new"
	DealStatusEligible = "eligible"
	DealStatusIgnored  = "ignored"
)

// Alert statuses. A (deal, channel) pair that reached "sent" is never
// attempted again; "failed" may be retried by a later run.
const (
	AlertStatusPending = "pending"
	AlertStatusSent    = "sent"
	AlertStatusFailed  = "failed"
)

// Deal is the evaluated resale opportunity derived from a listing.
type Deal struct {
	ID              int64
	ListingID       int64
	Status          string
	Score           float64
	EstimatedMargin float64
	Currency        string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Listing is populated when the deal is loaded joined with its
	// listing (e.g. for building alert messages). Nil otherwise.
	Listing *Listing
}

// Alert records one delivery attempt for a (deal, channel) pair.
type Alert struct {
	ID      int64
	DealID  int64
	Channel string
	Status  string
	Message string
	SentAt  *time.Time
}
