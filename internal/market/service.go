// Package market orchestrates the per-view data fetches: batching,
// bounded-concurrency fan-out, TTL memoization, and normalization glue
// between the upstream client and the UI layer. Every operation is best
// effort: a failed symbol or batch degrades the result, never the call.
package market

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"marketterm/internal/cache"
	"marketterm/internal/yahoo"
)

// batchSize is the v7 quote endpoint's per-call symbol limit. It is
// imposed upstream, not tunable.
const batchSize = 50

// SectorLookup resolves a ticker symbol to its GICS sector name, returning
// "" for unknown symbols. The quote endpoint does not reliably provide the
// sector, so it is backfilled from a static classification.
type SectorLookup func(symbol string) string

// Service is the facade consumed by the UI/orchestration layers. All of
// its caches are process-wide state owned by this struct; construct one
// Service per process (or per test).
type Service struct {
	client  *yahoo.Client
	sectors SectorLookup

	quotes     *cache.TTL[[]yahoo.Quote]
	charts     *cache.TTL[[]yahoo.ChartPoint]
	deltas     *cache.TTL[map[string]float64]
	sparklines *cache.TTL[map[string][]float64]
	news       *cache.TTL[map[string][]yahoo.NewsItem]
	summaries  *cache.TTL[*yahoo.QuoteSummary]
	financials *cache.TTL[*yahoo.Financials]

	batchDelay  time.Duration
	windowSize  int
	windowDelay time.Duration

	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration)
}

// Options configures a Service.
type Options struct {
	QuoteTTL    time.Duration
	BatchDelay  time.Duration
	WindowSize  int
	WindowDelay time.Duration
	Sectors     SectorLookup
	Logger      *slog.Logger
}

// NewService creates a Service around client.
func NewService(client *yahoo.Client, opts Options) *Service {
	if opts.QuoteTTL <= 0 {
		opts.QuoteTTL = 5 * time.Minute
	}
	if opts.WindowSize < 1 {
		opts.WindowSize = 5
	}
	if opts.Sectors == nil {
		opts.Sectors = func(string) string { return "" }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Service{
		client:      client,
		sectors:     opts.Sectors,
		quotes:      cache.New[[]yahoo.Quote](opts.QuoteTTL),
		charts:      cache.New[[]yahoo.ChartPoint](opts.QuoteTTL),
		deltas:      cache.New[map[string]float64](opts.QuoteTTL),
		sparklines:  cache.New[map[string][]float64](opts.QuoteTTL),
		news:        cache.New[map[string][]yahoo.NewsItem](opts.QuoteTTL),
		summaries:   cache.New[*yahoo.QuoteSummary](opts.QuoteTTL),
		financials:  cache.New[*yahoo.Financials](opts.QuoteTTL),
		batchDelay:  opts.BatchDelay,
		windowSize:  opts.WindowSize,
		windowDelay: opts.WindowDelay,
		logger:      opts.Logger,
		sleep: func(ctx context.Context, d time.Duration) {
			if d <= 0 {
				return
			}
			select {
			case <-ctx.Done():
			case <-time.After(d):
			}
		},
	}
}

// symbolSetKey derives a cache key from the sorted, deduplicated symbol
// set, so equal sets hit the same entry regardless of input order.
func symbolSetKey(prefix string, symbols []string) (string, []string) {
	seen := make(map[string]struct{}, len(symbols))
	deduped := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		deduped = append(deduped, s)
	}
	sort.Strings(deduped)
	return prefix + ":" + strings.Join(deduped, ","), deduped
}

// GetQuotes returns normalized quotes for the given symbols, fetching in
// provider-sized batches on a cache miss. Batches run strictly in order
// with an inter-batch delay; a failed batch contributes zero records and
// does not abort the rest. Symbols unknown to the provider are silently
// absent.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []yahoo.Quote {
	if len(symbols) == 0 {
		return nil
	}

	key, deduped := symbolSetKey("quotes", symbols)
	if cached, ok := s.quotes.Get(key); ok {
		return cached
	}

	results := make([]yahoo.Quote, 0, len(deduped))
	for i := 0; i < len(deduped); i += batchSize {
		if i > 0 {
			s.sleep(ctx, s.batchDelay)
		}

		end := min(i+batchSize, len(deduped))
		batch := deduped[i:end]

		quotes, err := s.client.FetchQuotes(ctx, batch)
		if err != nil {
			s.logger.Warn("quote batch failed",
				"batch_start", i,
				"batch_size", len(batch),
				"error", err)
			continue
		}
		for _, q := range quotes {
			if q.Sector == "" {
				q.Sector = s.sectors(q.Symbol)
			}
			results = append(results, q)
		}
	}

	s.quotes.Set(key, results)
	return results
}

// GetChartData returns OHLCV bars for one symbol, cached per
// (symbol, period, interval). The UI period "1w" maps to the upstream
// range "5d".
func (s *Service) GetChartData(ctx context.Context, symbol, period, interval string) []yahoo.ChartPoint {
	key := "chart:" + symbol + ":" + period + ":" + interval
	if cached, ok := s.charts.Get(key); ok {
		return cached
	}

	rng := period
	if rng == "1w" {
		rng = "5d"
	}

	points, err := s.client.FetchChart(ctx, symbol, rng, interval)
	if err != nil {
		s.logger.Warn("chart fetch failed", "symbol", symbol, "error", err)
		return nil
	}

	s.charts.Set(key, points)
	return points
}

// Get5DayChanges computes the rolling five-trading-day percent change per
// symbol from daily bars. Symbols with fewer than two valid closes are
// omitted. Short trading weeks are handled by clamping the lookback to the
// available history rather than failing.
func (s *Service) Get5DayChanges(ctx context.Context, symbols []string) map[string]float64 {
	key, deduped := symbolSetKey("5day", symbols)
	if cached, ok := s.deltas.Get(key); ok {
		return cached
	}

	result := fanOut(ctx, s, deduped, func(ctx context.Context, symbol string) (float64, bool) {
		points, err := s.client.FetchChart(ctx, symbol, "10d", "1d")
		if err != nil {
			s.logger.Debug("5-day bars fetch failed", "symbol", symbol, "error", err)
			return 0, false
		}
		return fiveDayChange(closes(points))
	})

	s.deltas.Set(key, result)
	return result
}

// GetSparklines returns the recent daily close series per symbol for the
// table's inline trend charts. Symbols with fewer than two valid closes
// are omitted.
func (s *Service) GetSparklines(ctx context.Context, symbols []string) map[string][]float64 {
	key, deduped := symbolSetKey("spark", symbols)
	if cached, ok := s.sparklines.Get(key); ok {
		return cached
	}

	result := fanOut(ctx, s, deduped, func(ctx context.Context, symbol string) ([]float64, bool) {
		points, err := s.client.FetchChart(ctx, symbol, "1mo", "1d")
		if err != nil {
			s.logger.Debug("sparkline fetch failed", "symbol", symbol, "error", err)
			return nil, false
		}
		cs := closes(points)
		if len(cs) < 2 {
			return nil, false
		}
		return cs, true
	})

	s.sparklines.Set(key, result)
	return result
}

// GetNewsForSymbols returns recent headlines per symbol. A symbol whose
// fetch fails gets an empty list rather than being dropped, so the caller
// can still render its row.
func (s *Service) GetNewsForSymbols(ctx context.Context, symbols []string) map[string][]yahoo.NewsItem {
	key, deduped := symbolSetKey("news", symbols)
	if cached, ok := s.news.Get(key); ok {
		return cached
	}

	result := fanOut(ctx, s, deduped, func(ctx context.Context, symbol string) ([]yahoo.NewsItem, bool) {
		items, err := s.client.FetchNews(ctx, symbol)
		if err != nil {
			s.logger.Debug("news fetch failed", "symbol", symbol, "error", err)
			return []yahoo.NewsItem{}, true
		}
		return items, true
	})

	s.news.Set(key, result)
	return result
}

// GetQuoteSummary returns the fundamentals snapshot for one symbol, or nil
// when the provider has nothing.
func (s *Service) GetQuoteSummary(ctx context.Context, symbol string) *yahoo.QuoteSummary {
	key := "summary:" + symbol
	if cached, ok := s.summaries.Get(key); ok {
		return cached
	}

	summary, err := s.client.FetchQuoteSummary(ctx, symbol)
	if err != nil {
		s.logger.Warn("quote summary fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	if summary == nil {
		return nil
	}

	s.summaries.Set(key, summary)
	return summary
}

// GetFinancials returns annual and quarterly income statements for one
// symbol, or nil when the provider has nothing.
func (s *Service) GetFinancials(ctx context.Context, symbol string) *yahoo.Financials {
	key := "financials:" + symbol
	if cached, ok := s.financials.Get(key); ok {
		return cached
	}

	fin, err := s.client.FetchFinancials(ctx, symbol)
	if err != nil {
		s.logger.Warn("financials fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	if fin == nil {
		return nil
	}

	s.financials.Set(key, fin)
	return fin
}

// ClearCache wipes every cache namespace.
func (s *Service) ClearCache() {
	s.quotes.Clear()
	s.charts.Clear()
	s.deltas.Clear()
	s.sparklines.Clear()
	s.news.Clear()
	s.summaries.Clear()
	s.financials.Clear()
}

// symbolResult carries one symbol's fan-out outcome back to the merger.
type symbolResult[T any] struct {
	symbol string
	value  T
	ok     bool
}

// fanOut processes symbols in fixed-size concurrency windows with a delay
// between windows, merging per-symbol results into one map. Each symbol's
// fetch is independent; a failed or skipped symbol (ok=false) is simply
// absent from the merged map, never a placeholder. The join is settle-all:
// one symbol's failure cannot cancel its siblings.
func fanOut[T any](ctx context.Context, s *Service, symbols []string, fetch func(ctx context.Context, symbol string) (T, bool)) map[string]T {
	merged := make(map[string]T, len(symbols))

	for i := 0; i < len(symbols); i += s.windowSize {
		if i > 0 {
			s.sleep(ctx, s.windowDelay)
		}

		end := min(i+s.windowSize, len(symbols))
		window := symbols[i:end]

		resultChan := make(chan symbolResult[T], len(window))
		for _, symbol := range window {
			go func(sym string) {
				value, ok := fetch(ctx, sym)
				resultChan <- symbolResult[T]{symbol: sym, value: value, ok: ok}
			}(symbol)
		}

		for range window {
			r := <-resultChan
			if r.ok {
				merged[r.symbol] = r.value
			}
		}
	}

	return merged
}

// closes extracts the close series from chart points. Points with null
// opens or closes were already dropped by the chart normalization.
func closes(points []yahoo.ChartPoint) []float64 {
	cs := make([]float64, 0, len(points))
	for _, p := range points {
		cs = append(cs, p.Close)
	}
	return cs
}

// fiveDayChange computes the percent change between the most recent close
// and the close min(5, n-1) positions back, clamping the lookback when a
// short trading week leaves fewer than six valid closes. Needs at least
// two closes.
func fiveDayChange(cs []float64) (float64, bool) {
	n := len(cs)
	if n < 2 {
		return 0, false
	}

	lookback := min(5, n-1)
	base := cs[n-1-lookback]
	if base == 0 {
		return 0, false
	}
	return (cs[n-1] - base) / base * 100, true
}
