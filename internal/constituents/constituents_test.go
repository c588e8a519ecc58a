package constituents

import "testing"

func TestSectorFor(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
	}{
		{"AAPL", "Technology"},
		{"XOM", "Energy"},
		{"JPM", "Financials"},
		{"NEE", "Utilities"},
		{"UNKNOWN", ""},
	}
	for _, tc := range cases {
		if got := SectorFor(tc.symbol); got != tc.want {
			t.Errorf("SectorFor(%q) = %q, want %q", tc.symbol, got, tc.want)
		}
	}
}

func TestSectorFor_ReclassifiedSymbolIsStable(t *testing.T) {
	// DIS sits under both Communication Services and Consumer
	// Discretionary; sector name order decides.
	if got := SectorFor("DIS"); got != "Communication Services" {
		t.Errorf("SectorFor(DIS) = %q, want Communication Services", got)
	}
}

func TestSectorsFor(t *testing.T) {
	got := SectorsFor([]string{"AAPL", "XOM", "UNKNOWN"})
	if len(got) != 2 {
		t.Fatalf("SectorsFor = %v, want 2 entries (unclassified omitted)", got)
	}
	if got["AAPL"] != "Technology" || got["XOM"] != "Energy" {
		t.Errorf("SectorsFor = %v", got)
	}
}

func TestGet(t *testing.T) {
	sp500 := Get(MarketSP500)
	if len(sp500) < 490 || len(sp500) > 510 {
		t.Errorf("len(sp500) = %d, want ~503", len(sp500))
	}

	nasdaq := Get(MarketNasdaq100)
	if len(nasdaq) < 95 || len(nasdaq) > 110 {
		t.Errorf("len(nasdaq100) = %d, want ~101", len(nasdaq))
	}

	if got := Get("ftse100"); got != nil {
		t.Errorf("Get(ftse100) = %v, want nil", got)
	}

	// Every constituent entry carries its symbol; most carry a sector.
	classified := 0
	for _, info := range sp500 {
		if info.Symbol == "" {
			t.Fatal("constituent with empty symbol")
		}
		if info.Sector != "" {
			classified++
		}
	}
	if classified < len(sp500)*8/10 {
		t.Errorf("only %d of %d constituents classified", classified, len(sp500))
	}
}
