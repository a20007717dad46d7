package api

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/nndjoli/eqty/internal/session"
)

// buildFunc creates a fresh request for one attempt. It is called again
// on every retry so each attempt carries the current session.
type buildFunc func(ctx context.Context, sess session.Session) (*http.Request, error)

// decodeFunc decodes a 2xx response body. Returning a *Error marks the
// body malformed and the attempt retries as a blocked response.
type decodeFunc func(body []byte) error

// execute is the retry controller. It classifies every outcome and
// applies policy:
//
//   - AuthExpired: invalidate the session and retry once with a fresh
//     one, without consuming a backoff attempt.
//   - RateLimited/BotBlocked/Transient: exponential backoff with jitter
//     up to maxRetries, then the classified error is surfaced.
//   - FatalClient: surfaced immediately, never retried.
//
// Raw transport errors never reach the caller; they come back classified.
func (c *Client) execute(ctx context.Context, path string, build buildFunc, decode decodeFunc) error {
	var lastErr *Error
	authRetried := false
	backoff := c.backoffBase

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"path", path,
				"kind", lastErr.Kind,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
			if backoff > c.backoffMax {
				backoff = c.backoffMax
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		sess, err := c.sessions.GetValid(ctx)
		if err != nil {
			return err // ErrAuthUnavailable is terminal
		}

		req, err := build(ctx, sess)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Cookie", sess.Cookie)

		apiErr := c.doAndDecode(req, decode)
		if apiErr == nil {
			return nil
		}
		lastErr = apiErr

		switch {
		case apiErr.Kind == KindAuthExpired:
			c.sessions.Invalidate(sess)
			if authRetried {
				return apiErr
			}
			authRetried = true
			attempt-- // retry immediately with a fresh session
		case apiErr.Kind == KindFatalClient:
			return apiErr
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doAndDecode performs one attempt and decodes the body on success.
func (c *Client) doAndDecode(req *http.Request, decode decodeFunc) *Error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransient, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, body)
	}

	if err := decode(body); err != nil {
		if apiErr, ok := err.(*Error); ok {
			return apiErr
		}
		// A 2xx we cannot parse is a block page, not a quote payload.
		return &Error{
			Kind:       KindBotBlocked,
			StatusCode: resp.StatusCode,
			Message:    "malformed response body: " + err.Error(),
		}
	}

	return nil
}
