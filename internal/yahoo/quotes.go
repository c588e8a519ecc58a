package yahoo

import (
	"context"
	"strings"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

// Quote is the normalized per-symbol snapshot served to the UI layer.
// Numeric fields default to zero when the upstream omits them; a zero is
// not distinguished from missing downstream. Sector comes from the static
// classification table, not from the provider.
type Quote struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	Sector                     string  `json:"sector"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	FiftyTwoWeekHigh           float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            float64 `json:"fiftyTwoWeekLow"`
	MarketCap                  float64 `json:"marketCap"`
}

// quoteDTO mirrors one entry of the v7 quote response. Every field is
// optional; the upstream freely omits any of them.
type quoteDTO struct {
	Symbol                     *string  `json:"symbol"`
	ShortName                  *string  `json:"shortName"`
	LongName                   *string  `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
	MarketCap                  *float64 `json:"marketCap"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteDTO `json:"result"`
	} `json:"quoteResponse"`
}

// normalizeQuote concentrates every missing-to-zero decision in one place.
func normalizeQuote(q quoteDTO) Quote {
	name := deref(q.ShortName)
	if name == "" {
		name = deref(q.LongName)
	}
	if name == "" {
		name = deref(q.Symbol)
	}

	return Quote{
		Symbol:                     deref(q.Symbol),
		ShortName:                  name,
		RegularMarketPrice:         derefF(q.RegularMarketPrice),
		RegularMarketChange:        derefF(q.RegularMarketChange),
		RegularMarketChangePercent: derefF(q.RegularMarketChangePercent),
		RegularMarketVolume:        derefI(q.RegularMarketVolume),
		RegularMarketPreviousClose: derefF(q.RegularMarketPreviousClose),
		RegularMarketOpen:          derefF(q.RegularMarketOpen),
		RegularMarketDayHigh:       derefF(q.RegularMarketDayHigh),
		RegularMarketDayLow:        derefF(q.RegularMarketDayLow),
		FiftyTwoWeekHigh:           derefF(q.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:            derefF(q.FiftyTwoWeekLow),
		MarketCap:                  derefF(q.MarketCap),
	}
}

// FetchQuotes retrieves quotes for up to one provider batch of symbols via
// the v7 endpoint. A symbol unknown to the provider is silently absent
// from the result; total output never exceeds total input.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	var result quoteResponse
	err := c.do(ctx, ratelimit.EndpointQuote, true,
		func(ctx context.Context, sess Session) (*resty.Response, error) {
			result = quoteResponse{}
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", sess.Cookie).
				SetQueryParams(map[string]string{
					"symbols": strings.Join(symbols, ","),
					"crumb":   sess.Crumb,
				}).
				SetResult(&result).
				Get(c.query2URL + "/v7/finance/quote")
		},
		func() bool {
			return len(result.QuoteResponse.Result) == 0
		})
	if err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(result.QuoteResponse.Result))
	for _, dto := range result.QuoteResponse.Result {
		quotes = append(quotes, normalizeQuote(dto))
	}
	return quotes, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefI(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
