package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/popcorn/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "popcorn/1.0"
)

// StatusError reports a non-success HTTP status. It unwraps to domain.ErrNetwork.
type StatusError struct {
	StatusCode int
	Message    string // API-provided error text, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return domain.ErrNetwork }

// Client implements domain.MovieRepository for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter // nil = unlimited
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit paces outgoing requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new OMDb API client.
// An empty apiKey is allowed; the API rejects every call and callers see the
// normal error path.
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a GET against the API root with the given query
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
	}

	query.Set("apikey", c.apiKey)
	reqURL := c.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + query.Encode()
	} else {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "query", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("omdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(body, &env)
		c.logger.Error("omdb request error", "status", resp.StatusCode, "error", env.Error)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	return body, nil
}

// Search returns the movies matching query
func (c *Client) Search(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	q := url.Values{}
	q.Set("s", query)

	body, err := c.doRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.failed() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, resp.Error)
	}
	if resp.Search == nil {
		return nil, fmt.Errorf("%w: missing Search field", domain.ErrMalformedResponse)
	}

	return MapSearchItems(resp.Search), nil
}

// Detail returns the full metadata for one movie
func (c *Client) Detail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	q := url.Values{}
	q.Set("i", id)

	body, err := c.doRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.failed() {
		msg := resp.Error
		if msg == "" {
			msg = id
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	}
	if resp.Title == "" && resp.ImdbID == "" {
		return nil, fmt.Errorf("%w: empty detail payload", domain.ErrMalformedResponse)
	}

	return MapDetail(resp, id), nil
}

// IsCanceled reports whether err only signals a cancelled request
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// redact hides the API key in log output
func redact(q url.Values) string {
	clone := url.Values{}
	for k, v := range q {
		if k == "apikey" {
			clone.Set(k, "***")
			continue
		}
		clone[k] = v
	}
	return clone.Encode()
}
