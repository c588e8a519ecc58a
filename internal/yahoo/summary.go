package yahoo

import (
	"context"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

// QuoteSummary is the per-symbol fundamentals snapshot from the v10
// quoteSummary endpoint. Unlike Quote, numeric fields stay nullable: the
// detail view distinguishes "not reported" from zero.
type QuoteSummary struct {
	ShortName                   string   `json:"shortName"`
	LongName                    string   `json:"longName"`
	Sector                      string   `json:"sector"`
	Industry                    string   `json:"industry"`
	TrailingPE                  *float64 `json:"trailingPE"`
	ForwardPE                   *float64 `json:"forwardPE"`
	PriceToBook                 *float64 `json:"priceToBook"`
	EPSTrailingTwelveMonths     *float64 `json:"epsTrailingTwelveMonths"`
	EPSForward                  *float64 `json:"epsForward"`
	DividendYield               *float64 `json:"dividendYield"`
	TrailingAnnualDividendRate  *float64 `json:"trailingAnnualDividendRate"`
	FiftyTwoWeekHigh            *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow             *float64 `json:"fiftyTwoWeekLow"`
	MarketCap                   *float64 `json:"marketCap"`
	EnterpriseValue             *float64 `json:"enterpriseValue"`
	RevenuePerShare             *float64 `json:"revenuePerShare"`
	ProfitMargins               *float64 `json:"profitMargins"`
	ReturnOnEquity              *float64 `json:"returnOnEquity"`
	DebtToEquity                *float64 `json:"debtToEquity"`
	Beta                        *float64 `json:"beta"`
	LongBusinessSummary         string   `json:"longBusinessSummary"`
	FullTimeEmployees           *int64   `json:"fullTimeEmployees"`
	Website                     string   `json:"website"`
	Country                     string   `json:"country"`
	City                        string   `json:"city"`
}

// rawValue is Yahoo's {"raw": n, "fmt": "n"} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (r *rawValue) val() *float64 {
	if r == nil {
		return nil
	}
	return r.Raw
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				ShortName *string `json:"shortName"`
				LongName  *string `json:"longName"`
			} `json:"price"`
			AssetProfile *struct {
				Sector              *string `json:"sector"`
				Industry            *string `json:"industry"`
				LongBusinessSummary *string `json:"longBusinessSummary"`
				FullTimeEmployees   *int64  `json:"fullTimeEmployees"`
				Website             *string `json:"website"`
				Country             *string `json:"country"`
				City                *string `json:"city"`
			} `json:"assetProfile"`
			SummaryDetail *struct {
				TrailingPE                 *rawValue `json:"trailingPE"`
				ForwardPE                  *rawValue `json:"forwardPE"`
				DividendYield              *rawValue `json:"dividendYield"`
				TrailingAnnualDividendRate *rawValue `json:"trailingAnnualDividendRate"`
				FiftyTwoWeekHigh           *rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow            *rawValue `json:"fiftyTwoWeekLow"`
				MarketCap                  *rawValue `json:"marketCap"`
				Beta                       *rawValue `json:"beta"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				PriceToBook     *rawValue `json:"priceToBook"`
				TrailingEPS     *rawValue `json:"trailingEps"`
				ForwardEPS      *rawValue `json:"forwardEps"`
				EnterpriseValue *rawValue `json:"enterpriseValue"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				RevenuePerShare *rawValue `json:"revenuePerShare"`
				ProfitMargins   *rawValue `json:"profitMargins"`
				ReturnOnEquity  *rawValue `json:"returnOnEquity"`
				DebtToEquity    *rawValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// FetchQuoteSummary retrieves the fundamentals snapshot for one symbol.
// Returns nil (and no error) when the provider has nothing for it.
func (c *Client) FetchQuoteSummary(ctx context.Context, symbol string) (*QuoteSummary, error) {
	var result quoteSummaryResponse
	err := c.do(ctx, ratelimit.EndpointSummary, true,
		func(ctx context.Context, sess Session) (*resty.Response, error) {
			result = quoteSummaryResponse{}
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", sess.Cookie).
				SetPathParam("symbol", symbol).
				SetQueryParams(map[string]string{
					"modules": "price,assetProfile,summaryDetail,defaultKeyStatistics,financialData",
					"crumb":   sess.Crumb,
				}).
				SetResult(&result).
				Get(c.query2URL + "/v10/finance/quoteSummary/{symbol}")
		},
		nil)
	if err != nil {
		return nil, err
	}

	if len(result.QuoteSummary.Result) == 0 {
		return nil, nil
	}
	r := result.QuoteSummary.Result[0]

	s := &QuoteSummary{}
	if r.Price != nil {
		s.ShortName = deref(r.Price.ShortName)
		s.LongName = deref(r.Price.LongName)
	}
	if r.AssetProfile != nil {
		s.Sector = deref(r.AssetProfile.Sector)
		s.Industry = deref(r.AssetProfile.Industry)
		s.LongBusinessSummary = deref(r.AssetProfile.LongBusinessSummary)
		s.FullTimeEmployees = r.AssetProfile.FullTimeEmployees
		s.Website = deref(r.AssetProfile.Website)
		s.Country = deref(r.AssetProfile.Country)
		s.City = deref(r.AssetProfile.City)
	}
	if r.SummaryDetail != nil {
		s.TrailingPE = r.SummaryDetail.TrailingPE.val()
		s.ForwardPE = r.SummaryDetail.ForwardPE.val()
		s.DividendYield = r.SummaryDetail.DividendYield.val()
		s.TrailingAnnualDividendRate = r.SummaryDetail.TrailingAnnualDividendRate.val()
		s.FiftyTwoWeekHigh = r.SummaryDetail.FiftyTwoWeekHigh.val()
		s.FiftyTwoWeekLow = r.SummaryDetail.FiftyTwoWeekLow.val()
		s.MarketCap = r.SummaryDetail.MarketCap.val()
		s.Beta = r.SummaryDetail.Beta.val()
	}
	if r.DefaultKeyStatistics != nil {
		s.PriceToBook = r.DefaultKeyStatistics.PriceToBook.val()
		s.EPSTrailingTwelveMonths = r.DefaultKeyStatistics.TrailingEPS.val()
		s.EPSForward = r.DefaultKeyStatistics.ForwardEPS.val()
		s.EnterpriseValue = r.DefaultKeyStatistics.EnterpriseValue.val()
	}
	if r.FinancialData != nil {
		s.RevenuePerShare = r.FinancialData.RevenuePerShare.val()
		s.ProfitMargins = r.FinancialData.ProfitMargins.val()
		s.ReturnOnEquity = r.FinancialData.ReturnOnEquity.val()
		s.DebtToEquity = r.FinancialData.DebtToEquity.val()
	}

	return s, nil
}
