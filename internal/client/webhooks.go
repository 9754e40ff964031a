package client

import (
	"context"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// WebhooksClient implements cosmic.WebhooksClient.
type WebhooksClient struct {
	client *Client
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(client *Client) *WebhooksClient {
	return &WebhooksClient{
		client: client,
	}
}

// List implements cosmic.WebhooksClient.List.
func (c *WebhooksClient) List(ctx context.Context) (*cosmic.WebhooksResponse, error) {
	return call[cosmic.WebhooksResponse](ctx, c.client, endpoint.GetWebhooks, c.client.params(), nil, "listing webhooks", "webhooks list")
}

// Add implements cosmic.WebhooksClient.Add.
func (c *WebhooksClient) Add(ctx context.Context, event, endpointURL string) (*cosmic.MessageResponse, error) {
	body := map[string]string{
		"event":    event,
		"endpoint": endpointURL,
	}

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.AddWebhook, c.client.params(), body, "adding webhook", "webhook response")
}

// Delete implements cosmic.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, id string) (*cosmic.MessageResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.DeleteWebhook, params, nil, "deleting webhook", "delete response")
}
