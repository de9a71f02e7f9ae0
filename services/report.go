package services

import (
	"fmt"
	"sort"
	"strings"

	"sniper-agent/models"
	"sniper-agent/scraper"
	"sniper-agent/storage"
	"sniper-agent/utils"
)

// RunReport summarizes one full scrape → analyze → alert cycle.
type RunReport struct {
	TotalListings    int
	ListingsBySource map[string]int
	AveragePrice     float64
	MinPrice         float64
	MaxPrice         float64
	EligibleDeals    int
	TopDeals         []*models.Deal
	Scrape           scraper.ScrapeCounts
	Analysis         AnalysisCounts
	Alerts           AlertCounts
}

// ReportService aggregates run statistics from the store.
type ReportService struct {
	store  storage.Store
	logger *utils.Logger
}

func NewReportService(store storage.Store, logger *utils.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

// Generate builds the report for the run just finished.
func (s *ReportService) Generate(scrapeCounts scraper.ScrapeCounts, analysisCounts AnalysisCounts, alertCounts AlertCounts) *RunReport {
	report := &RunReport{
		ListingsBySource: make(map[string]int),
		Scrape:           scrapeCounts,
		Analysis:         analysisCounts,
		Alerts:           alertCounts,
	}

	listings, err := s.store.ListActiveListings()
	if err != nil {
		s.logger.Warn("[report] listing stats unavailable: %v", err)
	} else {
		report.TotalListings = len(listings)
		var priced int
		var total float64
		for _, l := range listings {
			report.ListingsBySource[l.Source]++
			if l.Price == nil || *l.Price <= 0 {
				continue
			}
			p := *l.Price
			priced++
			total += p
			if report.MinPrice == 0 || p < report.MinPrice {
				report.MinPrice = p
			}
			if p > report.MaxPrice {
				report.MaxPrice = p
			}
		}
		if priced > 0 {
			report.AveragePrice = round2(total / float64(priced))
		}
	}

	deals, err := s.store.ListEligibleDeals()
	if err != nil {
		s.logger.Warn("[report] deal stats unavailable: %v", err)
	} else {
		report.EligibleDeals = len(deals)
		sort.Slice(deals, func(i, j int) bool {
			return deals[i].Score > deals[j].Score
		})
		if len(deals) > 5 {
			deals = deals[:5]
		}
		report.TopDeals = deals
	}

	return report
}

// Print renders the report to stdout.
func (s *ReportService) Print(r *RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎯 SNIPER RUN REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Pipeline\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Scrape   : created=%d updated=%d failed=%d\n", r.Scrape.Created, r.Scrape.Updated, r.Scrape.Failed)
	fmt.Printf("  Analysis : created=%d updated=%d failed=%d\n", r.Analysis.Created, r.Analysis.Updated, r.Analysis.Failed)
	fmt.Printf("  Alerts   : created=%d sent=%d failed=%d\n", r.Alerts.Created, r.Alerts.Sent, r.Alerts.Failed)
	fmt.Println()

	fmt.Printf("\033[1;33m  Active Listings\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total : \033[1m%d\033[0m\n", r.TotalListings)
	for _, src := range sortedKeys(r.ListingsBySource) {
		fmt.Printf("  %-12s %d\n", src, r.ListingsBySource[src])
	}
	if r.AveragePrice > 0 {
		fmt.Printf("  Price : avg \033[1;32m$%.2f\033[0m | min $%.2f | max $%.2f\n",
			r.AveragePrice, r.MinPrice, r.MaxPrice)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Eligible Deals (%d total)\033[0m\n", r.EligibleDeals)
	fmt.Printf("  %s\n", thin)
	if len(r.TopDeals) == 0 {
		fmt.Printf("  No eligible deals this run\n")
	} else {
		for i, d := range r.TopDeals {
			title := ""
			if d.Listing != nil {
				title = truncate(d.Listing.Title, 38)
			}
			fmt.Printf("  \033[1m%d.\033[0m %-40s score \033[1;32m%.3f\033[0m margin $%.2f\n",
				i+1, title, d.Score, d.EstimatedMargin)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
