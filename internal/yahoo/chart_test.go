package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func chartJSON(gmtOffset int64, timestamps []int64, open, high, low, closes []string, volume []string) string {
	join := func(vals []string) string {
		out := ""
		for i, v := range vals {
			if i > 0 {
				out += ","
			}
			out += v
		}
		return out
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"gmtoffset":%d},
		"timestamp":[%s],
		"indicators":{"quote":[{
			"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]
		}]}
	}]}}`, gmtOffset,
		join(int64Strings(timestamps)),
		join(open), join(high), join(low), join(closes), join(volume))
}

func int64Strings(vals []int64) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%d", v)
	}
	return out
}

func TestFetchChart_DailyBars(t *testing.T) {
	// 2024-01-02 and 2024-01-03 midnight UTC.
	body := chartJSON(0,
		[]int64{1704153600, 1704240000},
		[]string{"10", "11"}, []string{"12", "13"}, []string{"9", "10"},
		[]string{"11", "12"}, []string{"100", "200"})

	f := newFakeUpstream(t)
	f.onChart = func(w http.ResponseWriter, r *http.Request, call int64) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	points, err := f.newClient().FetchChart(context.Background(), "AAPL", "1mo", "1d")
	if err != nil {
		t.Fatalf("FetchChart() returned unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Date != "2024-01-02" || points[1].Date != "2024-01-03" {
		t.Errorf("dates = %q, %q, want 2024-01-02, 2024-01-03", points[0].Date, points[1].Date)
	}
	if points[0].Timestamp != 0 {
		t.Errorf("daily bar carries Timestamp %d, want 0", points[0].Timestamp)
	}
	if points[1].Open != 11 || points[1].Close != 12 || points[1].Volume != 200 {
		t.Errorf("bar = %+v, want open 11 close 12 volume 200", points[1])
	}
}

func TestFetchChart_DropsNullBars(t *testing.T) {
	// Index 1 has a null close, index 3 a null open: both bars vanish.
	body := chartJSON(0,
		[]int64{1704153600, 1704240000, 1704326400, 1704412800},
		[]string{"10", "11", "12", "null"},
		[]string{"12", "13", "14", "15"},
		[]string{"9", "10", "11", "12"},
		[]string{"11", "null", "13", "14"},
		[]string{"100", "200", "300", "400"})

	f := newFakeUpstream(t)
	f.onChart = func(w http.ResponseWriter, r *http.Request, call int64) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	points, err := f.newClient().FetchChart(context.Background(), "AAPL", "1mo", "1d")
	if err != nil {
		t.Fatalf("FetchChart() returned unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2 after dropping null bars", len(points))
	}
	if points[0].Close != 11 || points[1].Close != 13 {
		t.Errorf("closes = %v, %v, want 11, 13", points[0].Close, points[1].Close)
	}
}

func TestFetchChart_IntradayTimestamps(t *testing.T) {
	// 5m bars shift by the exchange offset instead of formatting a date.
	const offset = -18000 // US/Eastern standard
	body := chartJSON(offset,
		[]int64{1704232800, 1704233100},
		[]string{"10", "10.5"}, []string{"11", "11"}, []string{"9", "10"},
		[]string{"10.5", "10.8"}, []string{"100", "150"})

	f := newFakeUpstream(t)
	f.onChart = func(w http.ResponseWriter, r *http.Request, call int64) {
		if got := r.URL.Query().Get("includePrePost"); got != "false" {
			t.Errorf("includePrePost = %q, want false", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	points, err := f.newClient().FetchChart(context.Background(), "AAPL", "1d", "5m")
	if err != nil {
		t.Fatalf("FetchChart() returned unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Timestamp != 1704232800+offset {
		t.Errorf("Timestamp = %d, want %d", points[0].Timestamp, 1704232800+offset)
	}
	if points[0].Date != "" {
		t.Errorf("intraday bar carries Date %q, want empty", points[0].Date)
	}
}

func TestFetchChart_ShortIndicatorArrays(t *testing.T) {
	// Parallel arrays shorter than timestamps must not panic; the
	// uncovered bars are dropped.
	body := chartJSON(0,
		[]int64{1704153600, 1704240000, 1704326400},
		[]string{"10", "11"}, []string{"12"}, []string{"9"},
		[]string{"11", "12"}, []string{"100"})

	f := newFakeUpstream(t)
	f.onChart = func(w http.ResponseWriter, r *http.Request, call int64) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	points, err := f.newClient().FetchChart(context.Background(), "AAPL", "1mo", "1d")
	if err != nil {
		t.Fatalf("FetchChart() returned unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
}

func TestIsIntraday(t *testing.T) {
	cases := []struct {
		interval string
		want     bool
	}{
		{"1m", true},
		{"5m", true},
		{"60m", true},
		{"1d", false},
		{"1wk", false},
		{"1mo", false},
		{"3mo", false},
	}
	for _, tc := range cases {
		if got := isIntraday(tc.interval); got != tc.want {
			t.Errorf("isIntraday(%q) = %v, want %v", tc.interval, got, tc.want)
		}
	}
}
