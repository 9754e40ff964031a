package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/internal/http"
	"github.com/fivetwenty-io/cosmic/internal/request"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// Client implements the cosmic.Client interface.
type Client struct {
	bucket   string
	readKey  string
	writeKey string

	resolver *endpoint.Resolver
	builder  *request.Builder
	// httpClient serves the primary host; workersClient serves uploads and
	// AI generation, which get a longer default timeout.
	httpClient    *http.Client
	workersClient *http.Client
	logger        cosmic.Logger

	// Resource clients
	objects  *ObjectsClient
	media    *MediaClient
	buckets  *BucketClient
	users    *UsersClient
	webhooks *WebhooksClient
	ai       *AIClient
	async    *cosmic.AsyncClient
}

// New creates a client from an already normalized config. The config is
// copied; later changes to it have no effect.
func New(config *cosmic.Config) (*Client, error) {
	if config == nil {
		return nil, cosmic.ErrConfigRequired
	}

	bucket := strings.TrimSpace(config.BucketSlug)
	if bucket == "" {
		return nil, cosmic.ErrBucketSlugRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	client := &Client{
		bucket:        bucket,
		readKey:       config.ReadKey,
		writeKey:      config.WriteKey,
		resolver:      endpoint.NewResolver(config.WorkersURL),
		builder:       request.NewBuilder(baseURL),
		httpClient:    http.NewClient(transportOptions(config, config.HTTPTimeout)...),
		workersClient: http.NewClient(transportOptions(config, workersTimeout(config))...),
		logger:        config.Logger,
	}

	client.objects = NewObjectsClient(client)
	client.media = NewMediaClient(client)
	client.buckets = NewBucketClient(client)
	client.users = NewUsersClient(client)
	client.webhooks = NewWebhooksClient(client)
	client.ai = NewAIClient(client)
	client.async = cosmic.NewAsyncClient(client)

	if client.logger != nil {
		client.logger.Debug("Cosmic client created", map[string]interface{}{
			"bucket":    bucket,
			"base_url":  baseURL,
			"write_key": client.writeKey != "",
		})
	}

	return client, nil
}

func transportOptions(config *cosmic.Config, timeout time.Duration) []http.Option {
	opts := []http.Option{
		http.WithDebug(config.Debug),
		http.WithTimeout(timeout),
		http.WithInterceptors(config.Interceptors),
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		opts = append(opts, http.WithHTTPClient(config.HTTPClient))
	}

	return opts
}

// workersTimeout keeps any explicit timeout and otherwise extends the
// default for slow upload and generation calls.
func workersTimeout(config *cosmic.Config) time.Duration {
	if config.HTTPTimeout > 0 {
		return config.HTTPTimeout
	}

	if config.HTTPClient != nil && config.HTTPClient.Timeout > 0 {
		return 0
	}

	return constants.ExtendedHTTPTimeout
}

// Objects implements cosmic.Client.Objects.
func (c *Client) Objects() cosmic.ObjectsClient { return c.objects }

// Media implements cosmic.Client.Media.
func (c *Client) Media() cosmic.MediaClient { return c.media }

// Bucket implements cosmic.Client.Bucket.
func (c *Client) Bucket() cosmic.BucketClient { return c.buckets }

// Users implements cosmic.Client.Users.
func (c *Client) Users() cosmic.UsersClient { return c.users }

// Webhooks implements cosmic.Client.Webhooks.
func (c *Client) Webhooks() cosmic.WebhooksClient { return c.webhooks }

// AI implements cosmic.Client.AI.
func (c *Client) AI() cosmic.AIClient { return c.ai }

// Async implements cosmic.Client.Async.
func (c *Client) Async() *cosmic.AsyncClient { return c.async }

// params returns the credentials every resolution starts from.
func (c *Client) params() endpoint.Params {
	return endpoint.Params{
		Bucket:   c.bucket,
		ReadKey:  c.readKey,
		WriteKey: c.writeKey,
	}
}

// send resolves op, encodes body as JSON and performs the call.
func (c *Client) send(ctx context.Context, op endpoint.Operation, p endpoint.Params, body any) (*http.Response, error) {
	ep, err := c.resolver.Resolve(op, p)
	if err != nil {
		return nil, err
	}

	req, err := c.builder.Build(ep, body)
	if err != nil {
		return nil, err
	}

	return c.transportFor(ep).Do(ctx, req)
}

// upload resolves op and sends upload as multipart form data.
func (c *Client) upload(ctx context.Context, op endpoint.Operation, p endpoint.Params, upload *cosmic.MediaUpload) (*http.Response, error) {
	ep, err := c.resolver.Resolve(op, p)
	if err != nil {
		return nil, err
	}

	req, err := c.builder.BuildUpload(ep, upload)
	if err != nil {
		return nil, err
	}

	return c.transportFor(ep).Do(ctx, req)
}

func (c *Client) transportFor(ep *endpoint.Endpoint) *http.Client {
	if ep.Absolute {
		return c.workersClient
	}

	return c.httpClient
}

// decode unmarshals a response body into a new T.
func decode[T any](resp *http.Response, target string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, &cosmic.DecodingError{Target: target, Body: resp.Body, Err: err}
	}

	return &result, nil
}

// call performs op and decodes the response as T. action names the call in
// wrapped errors; target names the decoded value.
func call[T any](ctx context.Context, c *Client, op endpoint.Operation, p endpoint.Params, body any, action, target string) (*T, error) {
	resp, err := c.send(ctx, op, p, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	result, err := decode[T](resp, target)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", target, err)
	}

	return result, nil
}
