package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPAcquirer bootstraps a session the way a browser's first page load
// does: one request to seed the auth cookie, one to exchange it for a
// crumb. The endpoints reject clients without a browser-like user agent.
type HTTPAcquirer struct {
	cookieURL string
	crumbURL  string
	userAgent string
	client    *http.Client
}

// NewHTTPAcquirer creates an acquirer against the given bootstrap URLs.
func NewHTTPAcquirer(cookieURL, crumbURL, userAgent string) *HTTPAcquirer {
	return &HTTPAcquirer{
		cookieURL: cookieURL,
		crumbURL:  crumbURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Acquire fetches the auth cookie and exchanges it for a crumb.
func (a *HTTPAcquirer) Acquire(ctx context.Context) (cookie, crumb string, err error) {
	cookie, err = a.fetchCookie(ctx)
	if err != nil {
		return "", "", fmt.Errorf("fetch cookie: %w", err)
	}

	crumb, err = a.fetchCrumb(ctx, cookie)
	if err != nil {
		return "", "", fmt.Errorf("fetch crumb: %w", err)
	}

	return cookie, crumb, nil
}

// fetchCookie requests the cookie-seeding URL and returns the response
// cookies as a Cookie header value.
func (a *HTTPAcquirer) fetchCookie(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cookieURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return "", fmt.Errorf("no auth cookie in response (status %d)", resp.StatusCode)
	}

	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = c.Name + "=" + c.Value
	}
	return strings.Join(parts, "; "), nil
}

// fetchCrumb exchanges the cookie for a crumb token.
func (a *HTTPAcquirer) fetchCrumb(ctx context.Context, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.crumbURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Cookie", cookie)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("crumb endpoint returned status %d", resp.StatusCode)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "<") {
		// An HTML body here means a consent/block page, not a crumb.
		return "", fmt.Errorf("crumb endpoint returned no usable token")
	}

	return crumb, nil
}
