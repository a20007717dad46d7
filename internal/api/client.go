package api

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nndjoli/eqty/internal/session"
)

// Client provides access to the screener and quote endpoints. All
// requests carry the current session and flow through the retry
// controller in request.go.
type Client struct {
	screenerURL string
	quoteURL    string
	userAgent   string
	sessions    *session.Store
	httpClient  *http.Client
	logger      *slog.Logger
	limiter     *rate.Limiter

	maxRetries  int
	backoffBase time.Duration
	backoffMax  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new quote-API client.
func NewClient(screenerURL, quoteURL string, sessions *session.Store, opts ...ClientOption) *Client {
	c := &Client{
		screenerURL: screenerURL,
		quoteURL:    quoteURL,
		userAgent:   "Mozilla/5.0",
		sessions:    sessions,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:      slog.Default(),
		limiter:     rate.NewLimiter(rate.Limit(2), 1),
		maxRetries:  3,
		backoffBase: time.Second,
		backoffMax:  60 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry and backoff configuration.
func WithRetries(max int, base, cap time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.backoffBase = base
		c.backoffMax = cap
	}
}

// WithRateLimit paces outbound requests to n per second. Zero disables
// pacing.
func WithRateLimit(n float64) ClientOption {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(n), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
