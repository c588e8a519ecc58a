package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func seriesJSON(name string, entries ...string) string {
	body := fmt.Sprintf(`{"meta":{"type":[%q]},%q:[`, name, name)
	for i, e := range entries {
		if i > 0 {
			body += ","
		}
		body += e
	}
	return body + `]}`
}

func entryJSON(date string, raw float64) string {
	return fmt.Sprintf(`{"asOfDate":%q,"reportedValue":{"raw":%g}}`, date, raw)
}

func TestFetchFinancials_OuterJoinAndSort(t *testing.T) {
	// Revenue exists for both years, net income only for 2022. The join
	// keeps both periods with gaps as nils; output is newest first.
	body := `{"timeseries":{"result":[` +
		seriesJSON("annualTotalRevenue",
			entryJSON("2022-12-31", 100),
			entryJSON("2023-12-31", 120)) + "," +
		seriesJSON("annualNetIncome",
			entryJSON("2022-12-31", 10)) + "," +
		seriesJSON("quarterlyTotalRevenue",
			entryJSON("2023-09-30", 30),
			entryJSON("2023-12-31", 32)) +
		`]}}`

	f := newFakeUpstream(t)
	f.onTimeseries = func(w http.ResponseWriter, r *http.Request, call int64) {
		if r.URL.Query().Get("crumb") == "" {
			t.Error("timeseries request carried no crumb")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	fin, err := f.newClient().FetchFinancials(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchFinancials() returned unexpected error: %v", err)
	}
	if fin == nil {
		t.Fatal("FetchFinancials() = nil, want data")
	}

	if len(fin.Annual) != 2 {
		t.Fatalf("len(Annual) = %d, want 2", len(fin.Annual))
	}
	if fin.Annual[0].EndDate != "2023-12-31" || fin.Annual[1].EndDate != "2022-12-31" {
		t.Errorf("annual order = %q, %q, want newest first",
			fin.Annual[0].EndDate, fin.Annual[1].EndDate)
	}
	if fin.Annual[0].NetIncome != nil {
		t.Errorf("2023 NetIncome = %v, want nil (series had no 2023 entry)", *fin.Annual[0].NetIncome)
	}
	if fin.Annual[1].NetIncome == nil || *fin.Annual[1].NetIncome != 10 {
		t.Errorf("2022 NetIncome = %v, want 10", fin.Annual[1].NetIncome)
	}
	if fin.Annual[0].TotalRevenue == nil || *fin.Annual[0].TotalRevenue != 120 {
		t.Errorf("2023 TotalRevenue = %v, want 120", fin.Annual[0].TotalRevenue)
	}

	if len(fin.Quarterly) != 2 {
		t.Fatalf("len(Quarterly) = %d, want 2", len(fin.Quarterly))
	}
	if fin.Quarterly[0].EndDate != "2023-12-31" {
		t.Errorf("quarterly order starts at %q, want 2023-12-31", fin.Quarterly[0].EndDate)
	}
}

func TestFetchFinancials_NoSeries(t *testing.T) {
	f := newFakeUpstream(t)
	f.onTimeseries = func(w http.ResponseWriter, r *http.Request, call int64) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"timeseries":{"result":[]}}`))
	}

	fin, err := f.newClient().FetchFinancials(context.Background(), "UNKNOWN")
	if err != nil {
		t.Fatalf("FetchFinancials() returned unexpected error: %v", err)
	}
	if fin != nil {
		t.Errorf("FetchFinancials() = %+v, want nil for an empty result", fin)
	}
}

func TestFetchFinancials_SkipsMalformedSeries(t *testing.T) {
	// A result element with no meta.type and an entry with a null value
	// are both ignored without failing the whole fetch.
	body := `{"timeseries":{"result":[` +
		`{"unrelated":true},` +
		seriesJSON("annualEBIT",
			`{"asOfDate":"2023-12-31","reportedValue":null}`,
			entryJSON("2022-12-31", 7)) +
		`]}}`

	f := newFakeUpstream(t)
	f.onTimeseries = func(w http.ResponseWriter, r *http.Request, call int64) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	fin, err := f.newClient().FetchFinancials(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchFinancials() returned unexpected error: %v", err)
	}
	if fin == nil || len(fin.Annual) != 1 {
		t.Fatalf("fin = %+v, want exactly the one valid annual period", fin)
	}
	if fin.Annual[0].EBIT == nil || *fin.Annual[0].EBIT != 7 {
		t.Errorf("EBIT = %v, want 7", fin.Annual[0].EBIT)
	}
}
