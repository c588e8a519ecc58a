package yahoo

import (
	"context"
	"time"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

// NewsItem is one headline for a symbol. PublishedAt is a short MM/DD
// display string, empty when the upstream omits the publish time.
type NewsItem struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	PublishedAt string `json:"publishedAt"`
}

type searchResponse struct {
	News []struct {
		Title               *string `json:"title"`
		Publisher           *string `json:"publisher"`
		ProviderPublishTime *int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// FetchNews retrieves up to five recent headlines for one symbol from the
// search endpoint.
func (c *Client) FetchNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	var result searchResponse
	err := c.do(ctx, ratelimit.EndpointSearch, true,
		func(ctx context.Context, sess Session) (*resty.Response, error) {
			result = searchResponse{}
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", sess.Cookie).
				SetQueryParams(map[string]string{
					"q":           symbol,
					"newsCount":   "5",
					"quotesCount": "0",
					"crumb":       sess.Crumb,
				}).
				SetResult(&result).
				Get(c.query2URL + "/v1/finance/search")
		},
		nil) // a symbol legitimately having no news is not suspicious
	if err != nil {
		return nil, err
	}

	items := make([]NewsItem, 0, len(result.News))
	for _, n := range result.News {
		item := NewsItem{
			Title:     deref(n.Title),
			Publisher: deref(n.Publisher),
		}
		if n.ProviderPublishTime != nil {
			item.PublishedAt = time.Unix(*n.ProviderPublishTime, 0).UTC().Format("01/02")
		}
		items = append(items, item)
	}
	return items, nil
}
