package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/nndjoli/eqty/internal/session"
)

// ErrKind classifies a request outcome for retry policy and job
// accounting.
type ErrKind string

const (
	KindAuthUnavailable ErrKind = "auth_unavailable" // terminal, acquisition failed
	KindAuthExpired     ErrKind = "auth_expired"     // recoverable via re-acquisition
	KindRateLimited     ErrKind = "rate_limited"     // recoverable via backoff
	KindBotBlocked      ErrKind = "bot_blocked"      // recoverable via backoff
	KindTransient       ErrKind = "transient"        // recoverable via backoff
	KindFatalClient     ErrKind = "fatal_client"     // never retried
	KindNoData          ErrKind = "no_data"          // per-ticker, non-fatal
)

// Error is a classified API failure.
type Error struct {
	Kind       ErrKind
	StatusCode int // 0 for transport-level failures
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("quote api %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("quote api %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the error should trigger backoff and retry.
// Auth expiry is handled separately (session refresh, not backoff).
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindBotBlocked, KindTransient:
		return true
	}
	return false
}

// KindOf extracts the ErrKind from an error chain, KindTransient if the
// chain carries no classified error.
func KindOf(err error) ErrKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if errors.Is(err, session.ErrAuthUnavailable) {
		return KindAuthUnavailable
	}
	return KindTransient
}

// classify maps an HTTP status and body to a classified error.
//
//	401, or 403 with an auth-indicating body -> AuthExpired
//	403 otherwise, 429                       -> BotBlocked / RateLimited
//	other 4xx                                -> FatalClient
//	5xx                                      -> Transient
func classify(status int, body []byte) *Error {
	msg := truncate(body, 200)
	switch {
	case status == 401:
		return &Error{Kind: KindAuthExpired, StatusCode: status, Message: msg}
	case status == 403:
		if authIndicating(body) {
			return &Error{Kind: KindAuthExpired, StatusCode: status, Message: msg}
		}
		return &Error{Kind: KindBotBlocked, StatusCode: status, Message: msg}
	case status == 429:
		return &Error{Kind: KindRateLimited, StatusCode: status, Message: msg}
	case status >= 400 && status < 500:
		return &Error{Kind: KindFatalClient, StatusCode: status, Message: msg}
	default:
		return &Error{Kind: KindTransient, StatusCode: status, Message: msg}
	}
}

// authIndicating reports whether a 403 body points at stale credentials
// rather than bot blocking. The API reports credential problems as JSON
// error descriptions mentioning the crumb or cookie.
func authIndicating(body []byte) bool {
	lower := bytes.ToLower(body)
	return bytes.Contains(lower, []byte("crumb")) ||
		bytes.Contains(lower, []byte("cookie")) ||
		bytes.Contains(lower, []byte("unauthorized"))
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
