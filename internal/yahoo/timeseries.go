package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

// IncomeStatement is one reporting period assembled from the fundamentals
// timeseries. Every metric is nullable per period; the upstream reports
// them as independent series with independent gaps.
type IncomeStatement struct {
	EndDate         string   `json:"endDate"`
	TotalRevenue    *float64 `json:"totalRevenue"`
	OperatingIncome *float64 `json:"operatingIncome"`
	NetIncome       *float64 `json:"netIncome"`
	GrossProfit     *float64 `json:"grossProfit"`
	EBIT            *float64 `json:"ebit"`
}

// Financials holds income statements per periodicity, sorted by end date
// descending.
type Financials struct {
	Annual    []IncomeStatement `json:"annual"`
	Quarterly []IncomeStatement `json:"quarterly"`
}

// The series names requested from the timeseries endpoint, one pair per
// IncomeStatement metric.
var timeseriesMetrics = []string{
	"TotalRevenue",
	"OperatingIncome",
	"NetIncome",
	"GrossProfit",
	"EBIT",
}

type timeseriesEntry struct {
	AsOfDate      *string `json:"asOfDate"`
	ReportedValue *struct {
		Raw *float64 `json:"raw"`
	} `json:"reportedValue"`
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
	} `json:"timeseries"`
}

// FetchFinancials retrieves five years of annual and quarterly income
// statement series and outer-joins them on report date. Returns nil when
// the provider has no series for the symbol.
func (c *Client) FetchFinancials(ctx context.Context, symbol string) (*Financials, error) {
	types := make([]string, 0, 2*len(timeseriesMetrics))
	for _, m := range timeseriesMetrics {
		types = append(types, "annual"+m, "quarterly"+m)
	}

	now := time.Now()
	var result timeseriesResponse
	err := c.do(ctx, ratelimit.EndpointTimeseries, true,
		func(ctx context.Context, sess Session) (*resty.Response, error) {
			result = timeseriesResponse{}
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", sess.Cookie).
				SetPathParam("symbol", symbol).
				SetQueryParams(map[string]string{
					"type":    strings.Join(types, ","),
					"period1": fmt.Sprintf("%d", now.AddDate(-5, 0, 0).Unix()),
					"period2": fmt.Sprintf("%d", now.Unix()),
					"merge":   "false",
					"crumb":   sess.Crumb,
				}).
				SetResult(&result).
				Get(c.query1URL + "/ws/fundamentals-timeseries/v1/finance/timeseries/{symbol}")
		},
		nil)
	if err != nil {
		return nil, err
	}

	if len(result.Timeseries.Result) == 0 {
		return nil, nil
	}

	// date -> partially filled statement, per periodicity
	annual := map[string]*IncomeStatement{}
	quarterly := map[string]*IncomeStatement{}

	for _, raw := range result.Timeseries.Result {
		name, entries, ok := decodeSeries(raw)
		if !ok {
			continue
		}

		rows := annual
		metric := strings.TrimPrefix(name, "annual")
		if strings.HasPrefix(name, "quarterly") {
			rows = quarterly
			metric = strings.TrimPrefix(name, "quarterly")
		}

		for _, e := range entries {
			if e == nil || e.AsOfDate == nil || e.ReportedValue == nil || e.ReportedValue.Raw == nil {
				continue
			}
			row, exists := rows[*e.AsOfDate]
			if !exists {
				row = &IncomeStatement{EndDate: *e.AsOfDate}
				rows[*e.AsOfDate] = row
			}
			v := *e.ReportedValue.Raw
			switch metric {
			case "TotalRevenue":
				row.TotalRevenue = &v
			case "OperatingIncome":
				row.OperatingIncome = &v
			case "NetIncome":
				row.NetIncome = &v
			case "GrossProfit":
				row.GrossProfit = &v
			case "EBIT":
				row.EBIT = &v
			}
		}
	}

	fin := &Financials{
		Annual:    flattenStatements(annual),
		Quarterly: flattenStatements(quarterly),
	}
	if len(fin.Annual) == 0 && len(fin.Quarterly) == 0 {
		return nil, nil
	}
	return fin, nil
}

// decodeSeries extracts one series from a timeseries result element. The
// entries live under a JSON key equal to the series name announced in
// meta.type, so decoding happens in two passes.
func decodeSeries(raw json.RawMessage) (string, []*timeseriesEntry, bool) {
	var meta struct {
		Meta struct {
			Type []string `json:"type"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Meta.Type) == 0 {
		return "", nil, false
	}
	name := meta.Meta.Type[0]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, false
	}
	seriesRaw, ok := fields[name]
	if !ok {
		return "", nil, false
	}

	var entries []*timeseriesEntry
	if err := json.Unmarshal(seriesRaw, &entries); err != nil {
		return "", nil, false
	}
	return name, entries, true
}

func flattenStatements(rows map[string]*IncomeStatement) []IncomeStatement {
	out := make([]IncomeStatement, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EndDate > out[j].EndDate
	})
	return out
}
