package smartemailing

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lemonade-framework/smartemailing-go/internal/api"
)

const (
	defaultBaseURL = api.DefaultBaseURL
	defaultTimeout = api.DefaultTimeout
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	verifyPeer bool
	logger     *zap.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the service origin. The API version prefix is appended
// to it.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Timeout and TLS settings of the
// custom client are used as they are.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 10 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithVerifyPeer enables verification of the server's certificate chain.
// By default only the certificate's hostname is checked.
func WithVerifyPeer(verify bool) Option {
	return func(c *clientConfig) {
		c.verifyPeer = verify
	}
}

// WithLogger sets the logger used for operation outcomes.
// Default: no logging
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
