package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure Client implements the API ports.
var _ driven.MatchAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second

	// HeaderRequestID correlates client and server logs.
	HeaderRequestID = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API base including the /api prefix
	// (default: http://localhost:5000/api).
	BaseURL string

	// Timeout bounds each request (default: 15s).
	Timeout time.Duration

	// RateLimit is the sustained request rate per second. Zero disables it.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int

	// Tokens supplies the bearer token (required). A 401 response clears it.
	Tokens driven.TokenStore

	// Metrics records request outcomes. Optional.
	Metrics *Metrics

	// Transport is the base round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client is the KarmicDD REST client.
type Client struct {
	http    *http.Client
	timeout time.Duration
	baseURL string
	tokens  driven.TokenStore
	limiter *RateLimiter
	metrics *Metrics
}

// NewClient creates a new API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("api: token store is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultAPIURL
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	return &Client{
		http: &http.Client{
			Transport: &oauth2.Transport{
				Source: &storeTokenSource{store: cfg.Tokens},
				Base:   cfg.Transport,
			},
		},
		timeout: cfg.Timeout,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  cfg.Tokens,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
		metrics: cfg.Metrics,
	}, nil
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the error envelope used by the backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, route, path, query, nil, out)
}

// post issues a POST request with a JSON body.
func (c *Client) post(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, route, path, nil, body, out)
}

// do sends a request. route is a low-cardinality name used for metrics.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) error {
	if c.tokens.Token() == "" {
		return domain.ErrNoSession
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: wait for rate limiter: %w", path, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	// oauth2.Transport does not support http.Client.Timeout.
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	done := c.metrics.start(route)
	began := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		done(0)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", path, ctxErr)
		}
		logger.Debug("api: %s %s failed after %s: %v", method, path, time.Since(began), err)
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()
	done(resp.StatusCode)

	logger.Debug("api: %s %s -> %d in %s (request %s)", method, path, resp.StatusCode, time.Since(began), requestID)

	if err := c.limiter.Observe(resp); err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}

// statusError builds an *HTTPError and clears the token on 401.
func (c *Client) statusError(resp *http.Response, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	httpErr := &HTTPError{Status: resp.StatusCode, Endpoint: path}
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		httpErr.Message = eb.Message
		if httpErr.Message == "" {
			httpErr.Message = eb.Error
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.ClearToken(); err != nil {
			logger.Warn("api: failed to clear rejected token: %v", err)
		}
	}
	return httpErr
}

// storeTokenSource adapts a TokenStore to oauth2.TokenSource so the
// bearer header is set by oauth2.Transport. The token is read per request
// because login and logout change it at runtime.
type storeTokenSource struct {
	store driven.TokenStore
}

// Token implements oauth2.TokenSource.
func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	tok := s.store.Token()
	if tok == "" {
		return nil, domain.ErrNoSession
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
