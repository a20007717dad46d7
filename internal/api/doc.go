// Package api provides the authenticated quote-API client.
//
// Endpoints:
//   - Screener: paginated POST enumerating the equity universe
//   - Quote: batched GET returning the full field set per symbol
//
// Every outbound request flows through one retry controller that
// classifies outcomes (auth expiry, rate limiting / bot blocking,
// transient network failures, fatal client errors) and applies
// exponential backoff with jitter. Sessions come from a session.Store;
// an auth-expired response invalidates the session and retries once
// with a fresh one.
package api
