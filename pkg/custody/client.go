// Package custody provides a typed client for the Vaultline custody
// orchestrator HTTP API: wallet provisioning, user lookup, nonce and gas
// queries, and transaction create/sign/broadcast. All business logic lives in
// the remote service; this package builds requests, normalizes responses and
// classifies failures into APIError and NetworkError.
package custody

import (
	"fmt"
	"strings"
	"time"

	"github.com/vaultline-hq/vaultline-go/pkg/httpclient"
	"go.uber.org/zap"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Outcome labels passed to a Recorder.
const (
	OutcomeSuccess      = "success"
	OutcomeAPIError     = "api_error"
	OutcomeNetworkError = "network_error"
)

// Recorder observes the outcome of every API call. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveRequest(method, outcome string, elapsed time.Duration)
}

// Config carries the settings for a Client.
type Config struct {
	// BaseURL is the orchestrator endpoint, e.g. "https://api.vaultline.io".
	// Surrounding whitespace and trailing slashes are stripped.
	BaseURL string
	// APIKey is sent as the X-API-Key header on every request.
	APIKey string
	// Timeout bounds each request. Zero means DefaultTimeout. The timeout is
	// fixed per client instance; there is no per-call override.
	Timeout time.Duration
	// HTTPClient overrides the transport. Nil means a resty-backed client.
	HTTPClient httpclient.Client
	// Logger receives request diagnostics. Nil means no logging.
	Logger *zap.SugaredLogger
	// Metrics, when set, observes every call outcome.
	Metrics Recorder
}

// Client is a typed custody orchestrator client. It is safe for concurrent
// use; every call gets an independent timer and cancellation scope.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    httpclient.Client
	log     *zap.SugaredLogger
	metrics Recorder
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("custody: base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("custody: API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.HTTPClient
	if transport == nil {
		transport = httpclient.NewRestyClient(timeout)
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    transport,
		log:     log,
		metrics: cfg.Metrics,
	}, nil
}

// BaseURL returns the normalized orchestrator endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout applied by this client.
func (c *Client) Timeout() time.Duration { return c.timeout }

func (c *Client) observe(method, outcome string, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(method, outcome, time.Since(started))
}
