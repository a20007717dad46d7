package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nndjoli/eqty/internal/session"
)

// Screen fetches one page of the equity universe for a region.
func (c *Client) Screen(ctx context.Context, q ScreenerQuery) (*ScreenerPage, error) {
	payload := screenerRequest{
		Size:          q.Size,
		Offset:        q.Offset,
		SortType:      "DESC",
		SortField:     "dayvolume",
		IncludeFields: []string{"ticker", "sector", "industry", "region"},
		TopOperator:   "AND",
		Query: screenerOperand{
			Operator: "and",
			Operands: []any{
				screenerOperand{
					Operator: "or",
					Operands: []any{
						screenerOperand{
							Operator: "eq",
							Operands: []any{"region", q.Region},
						},
					},
				},
			},
		},
		QuoteType: "EQUITY",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal screener query: %w", err)
	}

	build := func(ctx context.Context, sess session.Session) (*http.Request, error) {
		params := url.Values{}
		params.Set("formatted", "true")
		params.Set("useRecordsResponse", "true")
		params.Set("lang", "en-US")
		params.Set("region", "US")
		params.Set("crumb", sess.Crumb)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.screenerURL+"?"+params.Encode(), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://finance.yahoo.com")
		req.Header.Set("Referer", fmt.Sprintf(
			"https://finance.yahoo.com/research-hub/screener/equity/?start=%d&count=%d",
			q.Offset, q.Size))
		return req, nil
	}

	var env screenerEnvelope
	decode := func(data []byte) error {
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.Finance.Error != nil {
			return &Error{
				Kind:    KindFatalClient,
				Message: env.Finance.Error.Description,
			}
		}
		if len(env.Finance.Result) == 0 {
			return &Error{
				Kind:    KindBotBlocked,
				Message: "screener response has no result set",
			}
		}
		return nil
	}

	if err := c.execute(ctx, "/screener", build, decode); err != nil {
		return nil, fmt.Errorf("screen region %s offset %d: %w", q.Region, q.Offset, err)
	}

	result := env.Finance.Result[0]
	out := &ScreenerPage{Total: result.Total}
	for _, rec := range result.Records {
		out.Tickers = append(out.Tickers, rec.toModel())
	}
	return out, nil
}
