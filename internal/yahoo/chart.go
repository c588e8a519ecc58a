package yahoo

import (
	"context"
	"strings"
	"time"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

// ChartPoint is one OHLCV bar. Daily and coarser bars carry a calendar
// Date; intraday bars carry a Unix Timestamp shifted by the exchange's
// UTC offset. Bars whose upstream open or close was null are dropped
// entirely, never synthesized.
type ChartPoint struct {
	Date      string  `json:"date,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// isIntraday reports whether the interval is minute-granular ("5m", "15m",
// "60m" and friends, but not "1mo"/"3mo").
func isIntraday(interval string) bool {
	return strings.Contains(interval, "m") && !strings.Contains(interval, "mo")
}

// FetchChart retrieves OHLCV bars for one symbol from the v8 chart
// endpoint. The endpoint is unprotected; no session is attached.
func (c *Client) FetchChart(ctx context.Context, symbol, rng, interval string) ([]ChartPoint, error) {
	var result chartResponse
	err := c.do(ctx, ratelimit.EndpointChart, false,
		func(ctx context.Context, sess Session) (*resty.Response, error) {
			result = chartResponse{}
			return c.http.R().
				SetContext(ctx).
				SetPathParam("symbol", symbol).
				SetQueryParams(map[string]string{
					"range":          rng,
					"interval":       interval,
					"includePrePost": "false",
				}).
				SetResult(&result).
				Get(c.query1URL + "/v8/finance/chart/{symbol}")
		},
		func() bool {
			return len(result.Chart.Result) == 0
		})
	if err != nil {
		return nil, err
	}

	if len(result.Chart.Result) == 0 {
		return nil, nil
	}
	bars := result.Chart.Result[0]
	if len(bars.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := bars.Indicators.Quote[0]

	intraday := isIntraday(interval)
	points := make([]ChartPoint, 0, len(bars.Timestamp))
	for i, ts := range bars.Timestamp {
		openPx := at(quote.Open, i)
		closePx := at(quote.Close, i)
		if openPx == nil || closePx == nil {
			continue
		}

		p := ChartPoint{
			Open:   *openPx,
			High:   derefF(at(quote.High, i)),
			Low:    derefF(at(quote.Low, i)),
			Close:  *closePx,
			Volume: derefI(atI(quote.Volume, i)),
		}
		if intraday {
			p.Timestamp = ts + bars.Meta.GMTOffset
		} else {
			p.Date = time.Unix(ts, 0).UTC().Format("2006-01-02")
		}
		points = append(points, p)
	}

	return points, nil
}

// at guards against the upstream's parallel arrays being shorter than the
// timestamp array.
func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

func atI(vals []*int64, i int) *int64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
