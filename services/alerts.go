package services

import (
	"fmt"
	"strings"

	"sniper-agent/models"
	"sniper-agent/notify"
	"sniper-agent/storage"
	"sniper-agent/utils"
)

// AlertCounts aggregates one alert run.
type AlertCounts struct {
	Created int
	Sent    int
	Failed  int
}

// AlertOrchestrator fans eligible deals out to the configured channels.
// A (deal, channel) pair that already reached "sent" is never attempted
// again; "failed" pairs are retried on later runs.
type AlertOrchestrator struct {
	store    storage.Store
	channels []notify.Channel
	logger   *utils.Logger
}

// NewAlertOrchestrator creates the orchestrator over a fixed channel set.
func NewAlertOrchestrator(store storage.Store, channels []notify.Channel, logger *utils.Logger) *AlertOrchestrator {
	return &AlertOrchestrator{
		store:    store,
		channels: channels,
		logger:   logger,
	}
}

// Run creates and sends alerts for every eligible deal across every
// channel. Delivery failures mark the alert failed and move on.
func (o *AlertOrchestrator) Run() (AlertCounts, error) {
	deals, err := o.store.ListEligibleDeals()
	if err != nil {
		return AlertCounts{}, err
	}

	var counts AlertCounts
	for _, deal := range deals {
		for _, channel := range o.channels {
			sent, err := o.store.AlertExists(deal.ID, channel.Name(), models.AlertStatusSent)
			if err != nil {
				o.logger.Warn("[alerts] lookup failed (deal=%d channel=%s): %v", deal.ID, channel.Name(), err)
				counts.Failed++
				continue
			}
			if sent {
				continue
			}

			message := buildDealMessage(deal)
			alert, err := o.store.InsertAlert(deal.ID, channel.Name(), models.AlertStatusPending, message)
			if err != nil {
				o.logger.Warn("[alerts] insert failed (deal=%d channel=%s): %v", deal.ID, channel.Name(), err)
				counts.Failed++
				continue
			}
			counts.Created++

			status := models.AlertStatusFailed
			if channel.Send(message) {
				status = models.AlertStatusSent
			}
			if err := o.store.UpdateAlertStatus(alert.ID, status); err != nil {
				o.logger.Warn("[alerts] status update failed (alert=%d): %v", alert.ID, err)
				counts.Failed++
				continue
			}
			if status == models.AlertStatusSent {
				counts.Sent++
			} else {
				counts.Failed++
			}
		}
	}

	o.logger.Info("[alerts] finished (created=%d, sent=%d, failed=%d)",
		counts.Created, counts.Sent, counts.Failed)
	return counts, nil
}

// buildDealMessage formats one deal for delivery: id, status, score,
// margin, then the joined listing details when available.
func buildDealMessage(deal *models.Deal) string {
	parts := []string{
		fmt.Sprintf("Deal #%d - status=%s score=%.4f", deal.ID, deal.Status, deal.Score),
		fmt.Sprintf("margin=$%.2f (%s)", deal.EstimatedMargin, deal.Currency),
	}
	if deal.Listing != nil {
		parts = append(parts,
			fmt.Sprintf("title=%s", deal.Listing.Title),
			fmt.Sprintf("url=%s", deal.Listing.URL),
			fmt.Sprintf("price=%.2f %s", deal.Listing.PriceValue(), deal.Listing.Currency),
		)
	}
	if deal.Notes != "" {
		parts = append(parts, fmt.Sprintf("notes=%s", deal.Notes))
	}
	return strings.Join(parts, " | ")
}
