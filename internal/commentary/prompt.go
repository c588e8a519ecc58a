package commentary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"marketterm/internal/yahoo"
)

// SectorMove is one sector's aggregate move for the briefing.
type SectorMove struct {
	Name      string
	AvgChange float64
	Count     int
}

// Mover is one notable symbol (gainer, loser, or volume leader).
type Mover struct {
	Symbol        string
	Name          string
	Price         float64
	Volume        int64
	ChangePercent float64
}

// EarningsEvent is an upcoming earnings date for a covered symbol.
type EarningsEvent struct {
	Symbol string
	Name   string
	Date   string
}

// MarketSummary is the aggregate snapshot the briefing is generated from.
// The orchestration layer assembles it from the quote table.
type MarketSummary struct {
	MarketName       string
	TotalCount       int
	Advancers        int
	Decliners        int
	AvgChangePercent float64
	Sectors          []SectorMove
	TopGainers       []Mover
	TopLosers        []Mover
	TopVolume        []Mover
	UpcomingEarnings []EarningsEvent
}

const systemInstruction = `You are a senior market analyst at a hedge fund, writing a
market briefing for terminal users.

Rules:
- Professional analyst tone: concise and objective
- Use short sections and bullet points
- Around 400-600 words
- No investment recommendations; analysis and facts only
- Comment on sector rotation and market themes
- Plain text only, no markdown syntax
- When news headlines are provided, cite them explicitly ("according to
  reports, ...") to explain the moves behind the numbers
- For symbols with news, analyze assertively based on the reporting rather
  than speculating`

// buildPrompt renders the briefing request: the market snapshot by section,
// plus news headlines when available.
func buildPrompt(summary MarketSummary, news map[string][]yahoo.NewsItem) string {
	var b strings.Builder

	b.WriteString(systemInstruction)
	b.WriteString("\n\n---\n\n")
	b.WriteString("Write today's market brief from the following data.\n\n")

	date := time.Now().Format("2006-01-02")
	fmt.Fprintf(&b, "[%s] %s\n", summary.MarketName, date)
	fmt.Fprintf(&b, "Symbols: %d | Advancers: %d | Decliners: %d | Avg change: %.2f%%\n\n",
		summary.TotalCount, summary.Advancers, summary.Decliners, summary.AvgChangePercent)

	b.WriteString("[Sector moves]\n")
	for _, s := range summary.Sectors {
		fmt.Fprintf(&b, "%s: %+.2f%% (%d symbols)\n", s.Name, s.AvgChange, s.Count)
	}

	b.WriteString("\n[Top gainers]\n")
	for i, g := range summary.TopGainers {
		fmt.Fprintf(&b, "%d. %s %+.2f%% ($%.2f) - %s\n", i+1, g.Symbol, g.ChangePercent, g.Price, g.Name)
	}

	b.WriteString("\n[Top losers]\n")
	for i, l := range summary.TopLosers {
		fmt.Fprintf(&b, "%d. %s %.2f%% ($%.2f) - %s\n", i+1, l.Symbol, l.ChangePercent, l.Price, l.Name)
	}

	b.WriteString("\n[Volume leaders]\n")
	for i, v := range summary.TopVolume {
		fmt.Fprintf(&b, "%d. %s %+.2f%% (volume: %.1fM) - %s\n",
			i+1, v.Symbol, v.ChangePercent, float64(v.Volume)/1e6, v.Name)
	}

	if len(summary.UpcomingEarnings) > 0 {
		b.WriteString("\n[Earnings this week]\n")
		parts := make([]string, 0, len(summary.UpcomingEarnings))
		for _, e := range summary.UpcomingEarnings {
			parts = append(parts, fmt.Sprintf("%s (%s)", e.Symbol, e.Date))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	if hasNews(news) {
		b.WriteString("\n[Headlines for covered symbols]\n")
		symbols := make([]string, 0, len(news))
		for symbol := range news {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			items := news[symbol]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s:\n", symbol)
			for _, item := range items {
				suffix := ""
				if item.PublishedAt != "" {
					suffix = ", " + item.PublishedAt
				}
				fmt.Fprintf(&b, "- %q (%s%s)\n", item.Title, item.Publisher, suffix)
			}
		}
	}

	return b.String()
}

func hasNews(news map[string][]yahoo.NewsItem) bool {
	for _, items := range news {
		if len(items) > 0 {
			return true
		}
	}
	return false
}
