package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nndjoli/eqty/internal/model"
	"github.com/nndjoli/eqty/internal/session"
)

// Quotes fetches the full field set for a batch of symbols. The caller
// must respect the API's symbols-per-request limit; this method sends
// whatever it is given as one request.
//
// Symbols absent from the returned slice were not known to the endpoint;
// the caller decides how to account for them.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]model.QuoteRecord, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	build := func(ctx context.Context, sess session.Session) (*http.Request, error) {
		params := url.Values{}
		params.Set("symbols", strings.Join(symbols, ","))
		params.Set("fields", strings.Join(model.FieldNames(), ","))
		params.Set("formatted", "false")
		params.Set("crumb", sess.Crumb)

		return http.NewRequestWithContext(ctx, http.MethodGet,
			c.quoteURL+"?"+params.Encode(), nil)
	}

	var env quoteEnvelope
	decode := func(data []byte) error {
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.QuoteResponse.Error != nil {
			return &Error{
				Kind:    KindFatalClient,
				Message: env.QuoteResponse.Error.Description,
			}
		}
		return nil
	}

	if err := c.execute(ctx, "/quote", build, decode); err != nil {
		return nil, fmt.Errorf("quotes for %d symbols: %w", len(symbols), err)
	}

	records := make([]model.QuoteRecord, 0, len(env.QuoteResponse.Result))
	for _, raw := range env.QuoteResponse.Result {
		ticker, _ := raw["symbol"].(string)
		if ticker == "" {
			continue // a payload entry without a symbol cannot be attributed
		}
		records = append(records, model.NewQuoteRecord(ticker, raw))
	}
	return records, nil
}
