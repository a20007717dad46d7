package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nndjoli/eqty/internal/session"
)

func newScreenerServer(t *testing.T, total int, pages map[int][]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Query().Get("crumb") == "" {
			t.Error("crumb query param missing")
		}

		var req screenerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode screener request: %v", err)
		}
		if req.QuoteType != "EQUITY" {
			t.Errorf("quoteType = %q, want EQUITY", req.QuoteType)
		}

		symbols := pages[req.Offset]
		records := make([]map[string]string, len(symbols))
		for i, s := range symbols {
			records[i] = map[string]string{
				"ticker": s, "sector": "Technology", "industry": "Software", "region": "us",
			}
		}

		resp := map[string]any{
			"finance": map[string]any{
				"result": []map[string]any{
					{"total": total, "records": records},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestScreen(t *testing.T) {
	srv := newScreenerServer(t, 5, map[int][]string{
		0: {"AAA", "BBB"},
	})
	defer srv.Close()

	store := session.NewStore(&seqAcquirer{}, 0, nil)
	c := NewClient(srv.URL, srv.URL, store, WithRateLimit(0), WithRetries(1, time.Millisecond, time.Millisecond))

	page, err := c.Screen(context.Background(), ScreenerQuery{Region: "us", Offset: 0, Size: 2})
	if err != nil {
		t.Fatalf("Screen failed: %v", err)
	}

	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
	if len(page.Tickers) != 2 {
		t.Fatalf("got %d tickers, want 2", len(page.Tickers))
	}
	if page.Tickers[0].Ticker != "AAA" || page.Tickers[1].Ticker != "BBB" {
		t.Errorf("tickers = %v", page.Tickers)
	}
	if page.Tickers[0].Sector != "Technology" {
		t.Errorf("Sector = %q", page.Tickers[0].Sector)
	}
	if page.Tickers[0].Region != "us" {
		t.Errorf("Region = %q", page.Tickers[0].Region)
	}
}

func TestScreenEmptyResultSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"finance":{"result":[]}}`)
	}))
	defer srv.Close()

	store := session.NewStore(&seqAcquirer{}, 0, nil)
	c := NewClient(srv.URL, srv.URL, store, WithRateLimit(0), WithRetries(1, time.Millisecond, time.Millisecond))

	_, err := c.Screen(context.Background(), ScreenerQuery{Region: "us", Size: 100})
	if err == nil {
		t.Fatal("expected error for empty result set")
	}
	if kind := KindOf(err); kind != KindBotBlocked {
		t.Errorf("KindOf = %v, want KindBotBlocked", kind)
	}
}

func TestScreenAPIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"finance":{"result":null,"error":{"code":"invalid-query","description":"bad operand"}}}`)
	}))
	defer srv.Close()

	store := session.NewStore(&seqAcquirer{}, 0, nil)
	c := NewClient(srv.URL, srv.URL, store, WithRateLimit(0), WithRetries(1, time.Millisecond, time.Millisecond))

	_, err := c.Screen(context.Background(), ScreenerQuery{Region: "us", Size: 100})
	if err == nil {
		t.Fatal("expected error for API error body")
	}
	if kind := KindOf(err); kind != KindFatalClient {
		t.Errorf("KindOf = %v, want KindFatalClient", kind)
	}
}
