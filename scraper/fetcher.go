package scraper

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"sniper-agent/models"
	"sniper-agent/utils"
)

// Fetcher executes one adapter request reliably: rate limit, human-like
// pacing, proxy rotation and shaped headers. It performs no retries
// itself; a failed (adapter, keyword) pair is the orchestrator's problem.
type Fetcher struct {
	rotator  *utils.ProxyRotator
	logger   *utils.Logger
	timeout  time.Duration
	delayMin time.Duration
	delayMax time.Duration

	mu       sync.Mutex
	limiters map[string]*utils.RateLimiter
}

// FetcherOptions configures a Fetcher. Zero DelayMin/DelayMax disables
// human pacing, which tests rely on.
type FetcherOptions struct {
	Rotator  *utils.ProxyRotator
	Logger   *utils.Logger
	Timeout  time.Duration
	DelayMin time.Duration
	DelayMax time.Duration
}

// NewFetcher creates a Fetcher. Timeout defaults to 20s.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	rotator := opts.Rotator
	if rotator == nil {
		rotator = utils.NewProxyRotator(nil)
	}
	return &Fetcher{
		rotator:  rotator,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
		delayMin: opts.DelayMin,
		delayMax: opts.DelayMax,
		limiters: make(map[string]*utils.RateLimiter),
	}
}

// limiter returns the per-source rate limiter, creating it from the
// adapter's budget on first use. One limiter per adapter, never shared.
func (f *Fetcher) limiter(adapter Adapter) (*utils.RateLimiter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lim, ok := f.limiters[adapter.Name()]; ok {
		return lim, nil
	}
	lim, err := utils.NewRateLimiter(adapter.RatePerSecond(), 1)
	if err != nil {
		return nil, err
	}
	f.limiters[adapter.Name()] = lim
	return lim, nil
}

// Fetch runs one search for (adapter, keyword): acquire a token, pace,
// pick a proxy, GET with shaped headers, then hand the body to the
// adapter. Returns *FetchError or *ParseError on failure.
func (f *Fetcher) Fetch(adapter Adapter, keyword, location string) ([]*models.NormalizedListing, error) {
	lim, err := f.limiter(adapter)
	if err != nil {
		return nil, err
	}
	lim.Acquire()

	if d := utils.HumanDelay(f.delayMin, f.delayMax); d > 0 {
		time.Sleep(d)
	}

	searchURL := adapter.BuildSearchURL(keyword, location)

	client := resty.New()
	client.SetTimeout(f.timeout)
	if proxy, ok := f.rotator.Next(); ok {
		client.SetProxy(proxy.URL)
	}

	resp, err := client.R().
		SetHeaders(utils.BuildHeaders(nil, "")).
		Get(searchURL)
	if err != nil {
		return nil, &FetchError{URL: searchURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: searchURL, StatusCode: resp.StatusCode()}
	}

	items, err := adapter.Parse(resp.Body())
	if err != nil {
		return nil, &ParseError{Source: adapter.Name(), Err: err}
	}
	if f.logger != nil {
		f.logger.Debug("[fetcher] %s %q → %d listings", adapter.Name(), keyword, len(items))
	}
	return items, nil
}
