package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// BucketClient implements cosmic.BucketClient.
type BucketClient struct {
	client *Client
}

// NewBucketClient creates a new bucket client.
func NewBucketClient(client *Client) *BucketClient {
	return &BucketClient{
		client: client,
	}
}

// Get implements cosmic.BucketClient.Get.
func (c *BucketClient) Get(ctx context.Context) (*cosmic.BucketResponse, error) {
	return call[cosmic.BucketResponse](ctx, c.client, endpoint.GetBucket, c.client.params(), nil, "getting bucket", "bucket")
}

// UpdateSettings implements cosmic.BucketClient.UpdateSettings.
func (c *BucketClient) UpdateSettings(ctx context.Context, settings *cosmic.BucketSettings) (*cosmic.MessageResponse, error) {
	var body any = map[string]any{}
	if settings != nil {
		body = settings
	}

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.UpdateBucketSettings, c.client.params(), body, "updating bucket settings", "settings response")
}

// Ping implements cosmic.BucketClient.Ping.
func (c *BucketClient) Ping(ctx context.Context) (string, error) {
	resp, err := c.client.send(ctx, endpoint.GetBucket, c.client.params(), nil)
	if err != nil {
		return "", fmt.Errorf("pinging bucket: %w", err)
	}

	return string(resp.Body), nil
}
