package commentary

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"marketterm/internal/yahoo"
)

// scriptedGenerator emits a fixed fragment sequence, or fails.
type scriptedGenerator struct {
	calls     int64
	fragments []string
	err       error
	streamErr error
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (*Stream, error) {
	atomic.AddInt64(&g.calls, 1)
	if g.err != nil {
		return nil, g.err
	}

	out := newStream(len(g.fragments) + 1)
	go func() {
		for _, f := range g.fragments {
			out.send(f)
		}
		if g.streamErr != nil {
			out.fail(g.streamErr)
			return
		}
		out.close()
	}()
	return out, nil
}

func summaryFixture() MarketSummary {
	return MarketSummary{
		MarketName: "S&P 500",
		TotalCount: 500,
		Advancers:  300,
		Decliners:  200,
		Sectors:    []SectorMove{{Name: "Energy", AvgChange: 1.2, Count: 22}},
		TopGainers: []Mover{{Symbol: "XOM", Name: "Exxon Mobil", Price: 110, ChangePercent: 3.1}},
	}
}

func TestGenerate_StreamsFragments(t *testing.T) {
	gen := &scriptedGenerator{fragments: []string{"Markets ", "rallied ", "today."}}
	svc := NewService(gen, time.Minute, nil)

	stream, err := svc.Generate(context.Background(), summaryFixture(), nil)
	if err != nil {
		t.Fatalf("Generate() returned unexpected error: %v", err)
	}

	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect() returned unexpected error: %v", err)
	}
	if text != "Markets rallied today." {
		t.Errorf("text = %q", text)
	}
}

func TestGenerate_CacheReplaysAsSingleFragment(t *testing.T) {
	gen := &scriptedGenerator{fragments: []string{"Markets ", "rallied."}}
	svc := NewService(gen, time.Minute, nil)

	first, err := svc.Generate(context.Background(), summaryFixture(), nil)
	if err != nil {
		t.Fatalf("Generate() returned unexpected error: %v", err)
	}
	firstText, _ := first.Collect()

	second, err := svc.Generate(context.Background(), summaryFixture(), nil)
	if err != nil {
		t.Fatalf("Generate() returned unexpected error: %v", err)
	}

	// The replay arrives as one fragment followed by EOF.
	frag, err := second.Recv()
	if err != nil {
		t.Fatalf("Recv() returned unexpected error: %v", err)
	}
	if frag != firstText {
		t.Errorf("replayed fragment = %q, want %q", frag, firstText)
	}
	if _, err := second.Recv(); err == nil {
		t.Error("second Recv() = nil error, want EOF")
	}

	if n := atomic.LoadInt64(&gen.calls); n != 1 {
		t.Errorf("generator calls = %d, want 1 (second request must hit the cache)", n)
	}
}

func TestGenerate_NewsPresenceSplitsCacheKey(t *testing.T) {
	gen := &scriptedGenerator{fragments: []string{"brief"}}
	svc := NewService(gen, time.Minute, nil)

	news := map[string][]yahoo.NewsItem{
		"XOM": {{Title: "Crude rallies", Publisher: "Wire"}},
	}

	s1, _ := svc.Generate(context.Background(), summaryFixture(), nil)
	s1.Collect()
	s2, _ := svc.Generate(context.Background(), summaryFixture(), news)
	s2.Collect()

	if n := atomic.LoadInt64(&gen.calls); n != 2 {
		t.Errorf("generator calls = %d, want 2 (with-news is a distinct entry)", n)
	}

	// A map with only empty lists counts as no news.
	s3, _ := svc.Generate(context.Background(), summaryFixture(),
		map[string][]yahoo.NewsItem{"XOM": {}})
	s3.Collect()
	if n := atomic.LoadInt64(&gen.calls); n != 2 {
		t.Errorf("generator calls = %d, want still 2", n)
	}
}

func TestGenerate_FailureNotCached(t *testing.T) {
	genErr := errors.New("model unavailable")
	gen := &scriptedGenerator{fragments: []string{"partial "}, streamErr: genErr}
	svc := NewService(gen, time.Minute, nil)

	stream, err := svc.Generate(context.Background(), summaryFixture(), nil)
	if err != nil {
		t.Fatalf("Generate() returned unexpected error: %v", err)
	}
	if _, err := stream.Collect(); !errors.Is(err, genErr) {
		t.Fatalf("Collect() error = %v, want %v", err, genErr)
	}

	// The partial text must not have been cached: the next call runs the
	// generator again.
	gen.streamErr = nil
	retry, err := svc.Generate(context.Background(), summaryFixture(), nil)
	if err != nil {
		t.Fatalf("Generate() returned unexpected error: %v", err)
	}
	retry.Collect()
	if n := atomic.LoadInt64(&gen.calls); n != 2 {
		t.Errorf("generator calls = %d, want 2", n)
	}
}

func TestGenerate_ImmediateError(t *testing.T) {
	genErr := errors.New("no api key")
	svc := NewService(&scriptedGenerator{err: genErr}, time.Minute, nil)

	if _, err := svc.Generate(context.Background(), summaryFixture(), nil); !errors.Is(err, genErr) {
		t.Errorf("Generate() error = %v, want %v", err, genErr)
	}
}

func TestClear(t *testing.T) {
	gen := &scriptedGenerator{fragments: []string{"brief"}}
	svc := NewService(gen, time.Minute, nil)

	s1, _ := svc.Generate(context.Background(), summaryFixture(), nil)
	s1.Collect()
	svc.Clear()
	s2, _ := svc.Generate(context.Background(), summaryFixture(), nil)
	s2.Collect()

	if n := atomic.LoadInt64(&gen.calls); n != 2 {
		t.Errorf("generator calls = %d, want 2 after Clear", n)
	}
}

func TestBuildPrompt(t *testing.T) {
	summary := summaryFixture()
	summary.TopLosers = []Mover{{Symbol: "DOW", Name: "Dow Inc.", Price: 40, ChangePercent: -2.5}}
	summary.TopVolume = []Mover{{Symbol: "TSLA", Name: "Tesla", Price: 250, Volume: 90_000_000, ChangePercent: 0.4}}
	summary.UpcomingEarnings = []EarningsEvent{{Symbol: "XOM", Name: "Exxon Mobil", Date: "2024-01-30"}}

	news := map[string][]yahoo.NewsItem{
		"XOM":  {{Title: "Crude rallies", Publisher: "Wire", PublishedAt: "01/03"}},
		"AAPL": {{Title: "New product", Publisher: "Blog"}},
	}

	prompt := buildPrompt(summary, news)

	for _, want := range []string{
		"[S&P 500]",
		"Advancers: 300",
		"[Sector moves]",
		"Energy: +1.20% (22 symbols)",
		"1. XOM +3.10% ($110.00) - Exxon Mobil",
		"1. DOW -2.50% ($40.00) - Dow Inc.",
		"volume: 90.0M",
		"[Earnings this week]",
		"XOM (2024-01-30)",
		"[Headlines for covered symbols]",
		`"Crude rallies" (Wire, 01/03)`,
		`"New product" (Blog)`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Headline blocks are ordered by symbol for a stable prompt.
	if strings.Index(prompt, "AAPL:") > strings.Index(prompt, "XOM:") {
		t.Error("headline sections not sorted by symbol")
	}

	// Without news the headline section is absent entirely.
	if strings.Contains(buildPrompt(summary, nil), "[Headlines") {
		t.Error("headline section present without news")
	}
}
