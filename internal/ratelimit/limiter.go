package ratelimit

import (
	"context"
	"os"
	"sync"

	"golang.org/x/time/rate"
)

// Endpoint represents the upstream endpoint families we pace independently.
// Yahoo rate-limits on aggregate request rate, so each family gets its own
// conservative budget.
type Endpoint string

const (
	// EndpointQuote represents the v7 batch quote endpoint
	EndpointQuote Endpoint = "quote"
	// EndpointChart represents the v8 chart/bars endpoint
	EndpointChart Endpoint = "chart"
	// EndpointSearch represents the v1 search/news endpoint
	EndpointSearch Endpoint = "search"
	// EndpointTimeseries represents the fundamentals timeseries endpoint
	EndpointTimeseries Endpoint = "timeseries"
	// EndpointSummary represents the v10 quoteSummary endpoint
	EndpointSummary Endpoint = "summary"
)

// Limiter manages rate limits for the upstream endpoint families
type Limiter struct {
	limiters map[Endpoint]*rate.Limiter
	mu       sync.RWMutex
}

var (
	instance *Limiter
	once     sync.Once
)

// GetLimiter returns the singleton rate limiter instance
func GetLimiter() *Limiter {
	once.Do(func() {
		instance = &Limiter{
			limiters: make(map[Endpoint]*rate.Limiter),
		}
		instance.initLimiters()
	})
	return instance
}

// initLimiters initializes rate limiters for each endpoint family with
// conservative defaults
func (l *Limiter) initLimiters() {
	// In test mode, use unlimited rate limits to avoid slowing down tests
	if os.Getenv("GO_TESTING") == "1" || isTestMode() {
		for _, ep := range []Endpoint{EndpointQuote, EndpointChart, EndpointSearch, EndpointTimeseries, EndpointSummary} {
			l.limiters[ep] = rate.NewLimiter(rate.Inf, 1)
		}
		return
	}

	// The limits are undocumented upstream; these values were arrived at
	// by observing when 429s start appearing.
	l.limiters[EndpointQuote] = rate.NewLimiter(rate.Limit(2), 1)
	l.limiters[EndpointChart] = rate.NewLimiter(rate.Limit(5), 1)
	l.limiters[EndpointSearch] = rate.NewLimiter(rate.Limit(5), 1)
	l.limiters[EndpointTimeseries] = rate.NewLimiter(rate.Limit(2), 1)
	l.limiters[EndpointSummary] = rate.NewLimiter(rate.Limit(2), 1)
}

// isTestMode checks if we're running in test mode
func isTestMode() bool {
	for _, arg := range os.Args {
		if len(arg) > 6 && arg[:6] == "-test." {
			return true
		}
	}
	return false
}

// Wait blocks until the rate limiter permits an event for the given
// endpoint family. It returns an error if the context is canceled before
// the event can proceed
func (l *Limiter) Wait(ctx context.Context, ep Endpoint) error {
	l.mu.RLock()
	limiter, exists := l.limiters[ep]
	l.mu.RUnlock()

	if !exists {
		// If no limiter exists for this endpoint, allow the request
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given endpoint family may happen
// now
func (l *Limiter) Allow(ep Endpoint) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[ep]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
