package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"marketterm/internal/commentary"
	"marketterm/internal/config"
	"marketterm/internal/constituents"
	"marketterm/internal/logging"
	"marketterm/internal/market"
	"marketterm/internal/watchlist"
	"marketterm/internal/yahoo"
)

func main() {
	marketFlag := flag.String("market", "sp500", "market to fetch: sp500, nasdaq100, or watchlist")
	briefFlag := flag.Bool("brief", false, "generate an AI market brief after the quote table")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Wire the acquisition core
	auth := yahoo.NewAuthenticator(yahoo.AuthenticatorOptions{
		SeedBaseURL:    cfg.SeedBaseURL,
		Query2BaseURL:  cfg.Query2BaseURL,
		UserAgent:      cfg.UserAgent,
		SessionTTL:     cfg.SessionTTL,
		RetryDelay:     cfg.RetryDelay,
		RateLimitDelay: cfg.HandshakeRateDelay,
		Logger:         logger,
	})
	client := yahoo.NewClient(auth, yahoo.ClientOptions{
		Query1BaseURL:  cfg.Query1BaseURL,
		Query2BaseURL:  cfg.Query2BaseURL,
		UserAgent:      cfg.UserAgent,
		RetryDelay:     cfg.RetryDelay,
		RateLimitDelay: cfg.RateLimitDelay,
		Logger:         logger,
	})
	svc := market.NewService(client, market.Options{
		QuoteTTL:    cfg.QuoteTTL,
		BatchDelay:  cfg.BatchDelay,
		WindowSize:  cfg.WindowSize,
		WindowDelay: cfg.WindowDelay,
		Sectors:     constituents.SectorFor,
		Logger:      logger,
	})

	symbols := resolveSymbols(*marketFlag, cfg.WatchlistPath)
	if len(symbols) == 0 {
		log.Fatalf("No symbols to fetch for market %q", *marketFlag)
	}

	fmt.Printf("Fetching quotes for %d symbols...\n", len(symbols))
	quotes := svc.GetQuotes(ctx, symbols)
	printQuotes(quotes)

	if *briefFlag {
		if err := printBrief(ctx, cfg, svc, *marketFlag, quotes); err != nil {
			log.Fatalf("Market brief failed: %v", err)
		}
	}
}

// resolveSymbols maps the market flag to a symbol list: an index's
// constituents, or the union of the user's watchlists.
func resolveSymbols(marketName, watchlistPath string) []string {
	if marketName == "watchlist" {
		return watchlist.NewStore(watchlistPath).AllSymbols()
	}

	infos := constituents.Get(marketName)
	symbols := make([]string, 0, len(infos))
	for _, info := range infos {
		symbols = append(symbols, info.Symbol)
	}
	return symbols
}

func printQuotes(quotes []yahoo.Quote) {
	fmt.Println("================================================")
	for _, q := range quotes {
		fmt.Printf("%-8s %10.2f %+7.2f%% vol %12d  %s\n",
			q.Symbol,
			q.RegularMarketPrice,
			q.RegularMarketChangePercent,
			q.RegularMarketVolume,
			q.ShortName)
	}
	fmt.Println("================================================")
	fmt.Printf("%d quotes\n", len(quotes))
}

// printBrief assembles the market summary from the quote table, fetches
// headlines for the day's biggest movers, and streams the generated brief
// to stdout.
func printBrief(ctx context.Context, cfg *config.Config, svc *market.Service, marketName string, quotes []yahoo.Quote) error {
	gen, err := commentary.NewOpenAIGenerator(ctx, commentary.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		return err
	}
	briefs := commentary.NewService(gen, cfg.CommentaryTTL, nil)

	summary := summarize(marketName, quotes)

	moverSymbols := make([]string, 0, len(summary.TopGainers)+len(summary.TopLosers))
	for _, m := range summary.TopGainers {
		moverSymbols = append(moverSymbols, m.Symbol)
	}
	for _, m := range summary.TopLosers {
		moverSymbols = append(moverSymbols, m.Symbol)
	}
	news := svc.GetNewsForSymbols(ctx, moverSymbols)

	stream, err := briefs.Generate(ctx, summary, news)
	if err != nil {
		return err
	}

	fmt.Println()
	for {
		text, err := stream.Recv()
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Print(text)
	}
}

// summarize reduces the quote table to the aggregate snapshot the brief is
// generated from.
func summarize(marketName string, quotes []yahoo.Quote) commentary.MarketSummary {
	summary := commentary.MarketSummary{
		MarketName: marketName,
		TotalCount: len(quotes),
	}

	sectorTotals := make(map[string]*commentary.SectorMove)
	var changeSum float64
	for _, q := range quotes {
		changeSum += q.RegularMarketChangePercent
		if q.RegularMarketChangePercent > 0 {
			summary.Advancers++
		} else if q.RegularMarketChangePercent < 0 {
			summary.Decliners++
		}
		if q.Sector != "" {
			move, ok := sectorTotals[q.Sector]
			if !ok {
				move = &commentary.SectorMove{Name: q.Sector}
				sectorTotals[q.Sector] = move
			}
			move.AvgChange += q.RegularMarketChangePercent
			move.Count++
		}
	}
	if len(quotes) > 0 {
		summary.AvgChangePercent = changeSum / float64(len(quotes))
	}

	for _, move := range sectorTotals {
		move.AvgChange /= float64(move.Count)
		summary.Sectors = append(summary.Sectors, *move)
	}
	sort.Slice(summary.Sectors, func(i, j int) bool {
		return summary.Sectors[i].AvgChange > summary.Sectors[j].AvgChange
	})

	byChange := make([]yahoo.Quote, len(quotes))
	copy(byChange, quotes)
	sort.Slice(byChange, func(i, j int) bool {
		return byChange[i].RegularMarketChangePercent > byChange[j].RegularMarketChangePercent
	})
	summary.TopGainers = movers(byChange[:min(5, len(byChange))])

	losers := byChange[max(0, len(byChange)-5):]
	for i := len(losers) - 1; i >= 0; i-- {
		summary.TopLosers = append(summary.TopLosers, mover(losers[i]))
	}

	byVolume := make([]yahoo.Quote, len(quotes))
	copy(byVolume, quotes)
	sort.Slice(byVolume, func(i, j int) bool {
		return byVolume[i].RegularMarketVolume > byVolume[j].RegularMarketVolume
	})
	summary.TopVolume = movers(byVolume[:min(5, len(byVolume))])

	return summary
}

func movers(quotes []yahoo.Quote) []commentary.Mover {
	ms := make([]commentary.Mover, 0, len(quotes))
	for _, q := range quotes {
		ms = append(ms, mover(q))
	}
	return ms
}

func mover(q yahoo.Quote) commentary.Mover {
	return commentary.Mover{
		Symbol:        q.Symbol,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		Volume:        q.RegularMarketVolume,
		ChangePercent: q.RegularMarketChangePercent,
	}
}
