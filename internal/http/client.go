// Package http sends fully built requests to the service. Each call is a
// single attempt; failed requests are never retried.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// Request is a transport-ready request. URL is absolute.
type Request struct {
	Operation string
	Method    string
	URL       string
	Headers   http.Header
	Body      []byte
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests through go-retryablehttp configured for exactly one
// attempt.
type Client struct {
	httpClient   *retryablehttp.Client
	logger       cosmic.Logger
	debug        bool
	userAgent    string
	interceptors *cosmic.InterceptorChain
}

type options struct {
	logger       cosmic.Logger
	debug        bool
	userAgent    string
	httpClient   *http.Client
	timeout      time.Duration
	interceptors *cosmic.InterceptorChain
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger cosmic.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithHTTPClient replaces the underlying net/http client. The given client is
// never mutated.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithInterceptors installs request and response hooks.
func WithInterceptors(chain *cosmic.InterceptorChain) Option {
	return func(o *options) { o.interceptors = chain }
}

// NewClient creates a new transport.
func NewClient(opts ...Option) *Client {
	cfg := &options{userAgent: constants.DefaultUserAgent}
	for _, opt := range opts {
		opt(cfg)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = singleAttempt
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if cfg.logger != nil && cfg.debug {
		retryClient.Logger = &leveledLogger{logger: cfg.logger}
	}

	if cfg.httpClient != nil {
		clone := *cfg.httpClient
		retryClient.HTTPClient = &clone
	} else {
		retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	}

	if cfg.timeout > 0 {
		retryClient.HTTPClient.Timeout = cfg.timeout
	}

	return &Client{
		httpClient:   retryClient,
		logger:       cfg.logger,
		debug:        cfg.debug,
		userAgent:    cfg.userAgent,
		interceptors: cfg.interceptors,
	}
}

// singleAttempt never asks for a retry; a cancelled context is reported as
// the failure cause.
func singleAttempt(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Do sends req. A network failure returns a *cosmic.TransportError. A status
// of 400 or above returns the response together with a *cosmic.RemoteError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	intercepted := &cosmic.Request{
		Operation: req.Operation,
		Method:    req.Method,
		URL:       req.URL,
		Headers:   req.Headers.Clone(),
		Body:      req.Body,
	}

	if intercepted.Headers == nil {
		intercepted.Headers = make(http.Header)
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, intercepted.Method, intercepted.URL, bodyReader(intercepted.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers.Clone()
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()

	c.logRequest(intercepted)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		transportErr := c.transportError(intercepted, err)
		c.runResponseInterceptors(ctx, intercepted, &cosmic.Response{Error: transportErr})

		return nil, transportErr
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := c.transportError(intercepted, fmt.Errorf("reading response body: %w", err))
		c.runResponseInterceptors(ctx, intercepted, &cosmic.Response{StatusCode: resp.StatusCode, Error: transportErr})

		return nil, transportErr
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	c.logResponse(intercepted, response, time.Since(start))

	var remoteErr error
	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		remoteErr = cosmic.ParseRemoteError(resp.StatusCode, body)
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &cosmic.Response{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
		Error:      remoteErr,
	})
	if err != nil {
		return response, err
	}

	if remoteErr != nil {
		return response, remoteErr
	}

	return response, nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *cosmic.Request, resp *cosmic.Response) {
	_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
}

func (c *Client) transportError(req *cosmic.Request, err error) *cosmic.TransportError {
	urlErr := &url.Error{}
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactURL(urlErr.URL)
	}

	return &cosmic.TransportError{
		Method: req.Method,
		URL:    RedactURL(req.URL),
		Err:    err,
	}
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}

func (c *Client) logRequest(req *cosmic.Request) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"operation": req.Operation,
		"method":    req.Method,
		"url":       RedactURL(req.URL),
		"body_size": len(req.Body),
	})
}

func (c *Client) logResponse(req *cosmic.Request, resp *Response, elapsed time.Duration) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"operation":   req.Operation,
		"method":      req.Method,
		"url":         RedactURL(req.URL),
		"status_code": resp.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
		"body_size":   len(resp.Body),
	})
}

const redactedValue = "REDACTED"

// RedactURL masks the read and write keys in a URL's query string.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	redacted := false

	for _, key := range []string{"read_key", "write_key"} {
		if query.Has(key) {
			query.Set(key, redactedValue)

			redacted = true
		}
	}

	if !redacted {
		return raw
	}

	parsed.RawQuery = query.Encode()

	return parsed.String()
}
