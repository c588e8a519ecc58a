package yahoo

import (
	"context"
	"net/http"
	"testing"
)

func TestFetchNews(t *testing.T) {
	f := newFakeUpstream(t)
	f.onSearch = func(w http.ResponseWriter, r *http.Request, call int64) {
		q := r.URL.Query()
		if q.Get("q") != "AAPL" {
			t.Errorf("q = %q, want AAPL", q.Get("q"))
		}
		if q.Get("newsCount") != "5" || q.Get("quotesCount") != "0" {
			t.Errorf("newsCount=%q quotesCount=%q, want 5 and 0",
				q.Get("newsCount"), q.Get("quotesCount"))
		}
		w.Header().Set("Content-Type", "application/json")
		// 1704240000 = 2024-01-03 UTC.
		w.Write([]byte(`{"news":[
			{"title":"Earnings beat","publisher":"Newswire","providerPublishTime":1704240000},
			{"title":"No timestamp story","publisher":"Blog"}
		]}`))
	}

	items, err := f.newClient().FetchNews(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchNews() returned unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "Earnings beat" || items[0].Publisher != "Newswire" {
		t.Errorf("item = %+v", items[0])
	}
	if items[0].PublishedAt != "01/03" {
		t.Errorf("PublishedAt = %q, want 01/03", items[0].PublishedAt)
	}
	if items[1].PublishedAt != "" {
		t.Errorf("missing publish time rendered as %q, want empty", items[1].PublishedAt)
	}
}

func TestFetchNews_NoHeadlines(t *testing.T) {
	f := newFakeUpstream(t)
	f.onSearch = func(w http.ResponseWriter, r *http.Request, call int64) {
		if call > 1 {
			t.Error("empty news response was retried")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"news":[]}`))
	}

	items, err := f.newClient().FetchNews(context.Background(), "QUIET")
	if err != nil {
		t.Fatalf("FetchNews() returned unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
