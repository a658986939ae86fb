package api

import (
	"log/slog"
	"net/http"
	"time"

	"coinlake/internal/retry"
)

// userAgent matches what the upstream endpoint expects from browser-grade
// clients; CoinGecko's free tier throttles unknown agents aggressively.
const userAgent = "Mozilla/5.0"

// Client provides access to the CoinGecko markets endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	retryPolicy retry.Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for the given markets endpoint URL. The API key
// is optional; when empty no key header is sent.
func NewClient(endpoint, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:      slog.Default(),
		retryPolicy: retry.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryPolicy sets the retry configuration.
func WithRetryPolicy(p retry.Policy) ClientOption {
	return func(c *Client) {
		c.retryPolicy = p
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
