package scraper

import (
	"fmt"
	"time"

	"sniper-agent/models"
	"sniper-agent/storage"
	"sniper-agent/utils"
)

// ScrapeCounts aggregates one persisted scrape run.
type ScrapeCounts struct {
	Created int
	Updated int
	Failed  int
}

// Orchestrator drives the Fetcher across the keyword × adapter cross
// product and persists what comes back. A failure for any single pair is
// retried, then logged and treated as zero results; it never aborts the
// run.
type Orchestrator struct {
	fetcher  *Fetcher
	adapters []Adapter
	store    storage.Store
	logger   *utils.Logger
	retry    *utils.RetryConfig
}

// NewOrchestrator creates an Orchestrator over a fixed adapter registry.
// maxRetries <= 1 disables retrying.
func NewOrchestrator(fetcher *Fetcher, adapters []Adapter, store storage.Store, logger *utils.Logger, maxRetries int) *Orchestrator {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Orchestrator{
		fetcher:  fetcher,
		adapters: adapters,
		store:    store,
		logger:   logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Run scrapes every adapter for every keyword, sequentially to stay
// polite to a shared network path, and returns results keyed by adapter
// name.
func (o *Orchestrator) Run(keywords []string, location string) map[string][]*models.NormalizedListing {
	results := make(map[string][]*models.NormalizedListing, len(o.adapters))
	for _, a := range o.adapters {
		results[a.Name()] = nil
	}

	for _, keyword := range keywords {
		for _, adapter := range o.adapters {
			var items []*models.NormalizedListing
			op := fmt.Sprintf("%s search %q", adapter.Name(), keyword)
			err := o.retry.Do(op, func() error {
				var fetchErr error
				items, fetchErr = o.fetcher.Fetch(adapter, keyword, location)
				return fetchErr
			})
			if err != nil {
				o.logger.Warn("[scrape] %s keyword=%q failed: %v", adapter.Name(), keyword, err)
				continue
			}
			results[adapter.Name()] = append(results[adapter.Name()], items...)
		}
	}
	return results
}

// Persist upserts scraped listings by natural key. A record missing its
// key is skipped, not fatal to the batch. Re-ingesting an identical
// payload changes nothing but last_seen_at.
func (o *Orchestrator) Persist(results map[string][]*models.NormalizedListing) ScrapeCounts {
	var counts ScrapeCounts
	for name, items := range results {
		for _, item := range items {
			_, created, err := o.store.UpsertListing(item)
			if err != nil {
				o.logger.Warn("[scrape] persist failed (source=%s): %v", name, err)
				counts.Failed++
				continue
			}
			if created {
				counts.Created++
			} else {
				counts.Updated++
			}
		}
	}
	return counts
}

// RunOnce is the single-run entrypoint: scrape everything, persist, and
// return both the raw results and the persistence counters.
func (o *Orchestrator) RunOnce(keywords []string, location string) (map[string][]*models.NormalizedListing, ScrapeCounts) {
	o.logger.Info("[scrape] starting run (%d keywords × %d adapters)", len(keywords), len(o.adapters))
	results := o.Run(keywords, location)
	counts := o.Persist(results)
	o.logger.Info("[scrape] finished (created=%d, updated=%d, failed=%d)",
		counts.Created, counts.Updated, counts.Failed)
	return results, counts
}
