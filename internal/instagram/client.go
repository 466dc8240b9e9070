// Package instagram forwards like actions to the Instagram Graph API.
//
// The client is a genuine proxy: when a credential is configured, the Graph
// API's answer is the caller's answer. Callers without a credential must not
// invoke Like at all; they run in simulated mode instead.
package instagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api/middleware"
	"github.com/petagrampush/petagrampush/internal/provider/resilience"
)

const (
	// ProviderName identifies this forwarder.
	ProviderName = "instagram"

	// likeOperation labels the media-like call in provider metrics.
	likeOperation = "media-like"

	// DefaultEndpointTemplate is the Graph API media-likes endpoint; %s is
	// the media id placeholder.
	DefaultEndpointTemplate = "https://graph.facebook.com/v19.0/%s/likes"
)

// UpstreamError reports a rejected or failed Graph API call.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return "instagram upstream: " + e.Err.Error()
	}
	return fmt.Sprintf("instagram upstream: status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ClientConfig holds configuration for the Instagram client.
type ClientConfig struct {
	// AccessToken is the Graph API access token. Empty means the client
	// is unconfigured and Configured() reports false.
	AccessToken string

	// EndpointTemplate overrides DefaultEndpointTemplate (optional).
	EndpointTemplate string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Instagram Graph API like forwarder.
type Client struct {
	accessToken      string
	endpointTemplate string
	httpClient       *resilience.Client
	metrics          *middleware.ProviderMetrics
	logger           zerolog.Logger
}

// NewClient creates a new Instagram client and registers it with the
// provider registry for health reporting.
func NewClient(cfg ClientConfig) *Client {
	endpointTemplate := cfg.EndpointTemplate
	if endpointTemplate == "" {
		endpointTemplate = DefaultEndpointTemplate
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	resilience.GlobalRegistry.Register(ProviderName, httpClient)

	metrics, err := middleware.NewProviderMetrics()
	if err != nil {
		// Metrics never block the forwarder; Like skips recording when nil
		cfg.Logger.Warn().Err(err).Msg("provider metrics unavailable")
	}

	return &Client{
		accessToken:      cfg.AccessToken,
		endpointTemplate: endpointTemplate,
		httpClient:       httpClient,
		metrics:          metrics,
		logger:           cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Configured reports whether an access token is present.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// Like forwards a like for the given media id. The access token travels in
// the form body, never the URL. A non-2xx upstream answer or a transport
// failure comes back as an *UpstreamError.
func (c *Client) Like(ctx context.Context, mediaID string) error {
	start := time.Now()
	err := c.like(ctx, mediaID)
	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, likeOperation, time.Since(start), err)
	}
	return err
}

func (c *Client) like(ctx context.Context, mediaID string) error {
	endpoint := fmt.Sprintf(c.endpointTemplate, url.PathEscape(mediaID))

	form := url.Values{"access_token": {c.accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		resilience.GlobalRegistry.RecordFailure(ProviderName, err)
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		upstreamErr := &UpstreamError{StatusCode: resp.StatusCode}
		resilience.GlobalRegistry.RecordFailure(ProviderName, upstreamErr)
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("instagram rejected like")
		return upstreamErr
	}

	resilience.GlobalRegistry.RecordSuccess(ProviderName)
	return nil
}
