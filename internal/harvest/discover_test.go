package harvest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/nndjoli/eqty/internal/api"
	"github.com/nndjoli/eqty/internal/model"
	"github.com/nndjoli/eqty/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI serves canned screener pages keyed by region and offset, and
// canned quote responses.
type fakeAPI struct {
	mu          sync.Mutex
	pages       map[string]map[int]*api.ScreenerPage
	screenErr   map[string]error
	screenCalls int

	quotes     func(symbols []string) ([]model.QuoteRecord, error)
	quoteCalls [][]string
}

func (f *fakeAPI) Screen(_ context.Context, q api.ScreenerQuery) (*api.ScreenerPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenCalls++
	if err := f.screenErr[q.Region]; err != nil {
		return nil, err
	}
	page, ok := f.pages[q.Region][q.Offset]
	if !ok {
		return &api.ScreenerPage{}, nil
	}
	return page, nil
}

func (f *fakeAPI) Quotes(_ context.Context, symbols []string) ([]model.QuoteRecord, error) {
	f.mu.Lock()
	batch := append([]string(nil), symbols...)
	f.quoteCalls = append(f.quoteCalls, batch)
	f.mu.Unlock()
	if f.quotes == nil {
		return nil, nil
	}
	return f.quotes(symbols)
}

func tickers(region string, syms ...string) []model.TickerInfo {
	out := make([]model.TickerInfo, len(syms))
	for i, s := range syms {
		out[i] = model.TickerInfo{Ticker: s, Sector: "Technology", Industry: "Software", Region: region}
	}
	return out
}

func TestDiscoverPagesAndDeduplicates(t *testing.T) {
	// Three pages of size 2 with one symbol repeated across pages.
	f := &fakeAPI{pages: map[string]map[int]*api.ScreenerPage{
		"us": {
			0: {Total: 5, Tickers: tickers("us", "AAPL", "MSFT")},
			2: {Total: 5, Tickers: tickers("us", "MSFT", "NVDA")},
			4: {Total: 5, Tickers: tickers("us", "AMZN")},
		},
	}}

	symbols, infos, err := discover(context.Background(), f, []string{"us"}, 2, discardLogger())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	want := []string{"AAPL", "MSFT", "NVDA", "AMZN"}
	if len(symbols) != len(want) {
		t.Fatalf("discovered %v, want %v", symbols, want)
	}
	for i, sym := range want {
		if symbols[i] != sym {
			t.Errorf("symbol %d = %q, want %q", i, symbols[i], sym)
		}
	}
	if got := infos["NVDA"].Sector; got != "Technology" {
		t.Errorf("NVDA sector = %q, want Technology", got)
	}
}

func TestDiscoverStopsOnShortPage(t *testing.T) {
	// Reported total overshoots the real universe; the short page ends
	// pagination instead of looping forever.
	f := &fakeAPI{pages: map[string]map[int]*api.ScreenerPage{
		"us": {
			0: {Total: 10, Tickers: tickers("us", "AAPL", "MSFT")},
			2: {Total: 10, Tickers: tickers("us", "NVDA")},
		},
	}}

	symbols, _, err := discover(context.Background(), f, []string{"us"}, 2, discardLogger())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("discovered %d symbols, want 3", len(symbols))
	}
	if f.screenCalls != 2 {
		t.Errorf("screener called %d times, want 2", f.screenCalls)
	}
}

func TestDiscoverToleratesTotalDrift(t *testing.T) {
	// Total shrinks between pages; the latest observation wins and the
	// run carries on.
	f := &fakeAPI{pages: map[string]map[int]*api.ScreenerPage{
		"us": {
			0: {Total: 4, Tickers: tickers("us", "AAPL", "MSFT")},
			2: {Total: 3, Tickers: tickers("us", "NVDA")},
		},
	}}

	symbols, _, err := discover(context.Background(), f, []string{"us"}, 2, discardLogger())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("discovered %d symbols, want 3", len(symbols))
	}
}

func TestDiscoverMultipleRegions(t *testing.T) {
	f := &fakeAPI{pages: map[string]map[int]*api.ScreenerPage{
		"us": {0: {Total: 2, Tickers: tickers("us", "AAPL", "MSFT")}},
		"fr": {0: {Total: 1, Tickers: tickers("fr", "AIR.PA")}},
	}}

	symbols, infos, err := discover(context.Background(), f, []string{"us", "fr"}, 10, discardLogger())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("discovered %d symbols, want 3", len(symbols))
	}
	if got := infos["AIR.PA"].Region; got != "fr" {
		t.Errorf("AIR.PA region = %q, want fr", got)
	}
}

func TestDiscoverSkipsFailedRegion(t *testing.T) {
	f := &fakeAPI{
		pages: map[string]map[int]*api.ScreenerPage{
			"fr": {0: {Total: 1, Tickers: tickers("fr", "AIR.PA")}},
		},
		screenErr: map[string]error{
			"us": &api.Error{Kind: api.KindFatalClient, StatusCode: 400, Message: "bad request"},
		},
	}

	symbols, _, err := discover(context.Background(), f, []string{"us", "fr"}, 10, discardLogger())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(symbols) != 1 || symbols[0] != "AIR.PA" {
		t.Errorf("discovered %v, want just AIR.PA", symbols)
	}
}

func TestDiscoverAuthUnavailableIsTerminal(t *testing.T) {
	f := &fakeAPI{
		screenErr: map[string]error{
			"us": fmt.Errorf("screener: %w", session.ErrAuthUnavailable),
		},
		pages: map[string]map[int]*api.ScreenerPage{
			"fr": {0: {Total: 1, Tickers: tickers("fr", "AIR.PA")}},
		},
	}

	_, _, err := discover(context.Background(), f, []string{"us", "fr"}, 10, discardLogger())
	if err == nil {
		t.Fatal("expected terminal error when credentials are unavailable")
	}
	if f.screenCalls != 1 {
		t.Errorf("screener called %d times, want 1 (no further regions)", f.screenCalls)
	}
}
