package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// MediaClient implements cosmic.MediaClient.
type MediaClient struct {
	client *Client
}

// NewMediaClient creates a new media client.
func NewMediaClient(client *Client) *MediaClient {
	return &MediaClient{
		client: client,
	}
}

// List implements cosmic.MediaClient.List.
func (c *MediaClient) List(ctx context.Context, opts *cosmic.ListOptions) (*cosmic.MediaList, error) {
	params := c.client.params()

	if opts != nil {
		params.Props = opts.Props
		params.Limit = opts.Limit
		params.Skip = opts.Skip
	}

	return call[cosmic.MediaList](ctx, c.client, endpoint.GetMedia, params, nil, "listing media", "media list")
}

// Get implements cosmic.MediaClient.Get.
func (c *MediaClient) Get(ctx context.Context, id string) (*cosmic.Media, error) {
	params := c.client.params()
	params.ID = id

	resp, err := call[cosmic.MediaResponse](ctx, c.client, endpoint.GetMediaObject, params, nil, "getting media", "media")
	if err != nil {
		return nil, err
	}

	return &resp.Media, nil
}

// Upload implements cosmic.MediaClient.Upload.
func (c *MediaClient) Upload(ctx context.Context, upload *cosmic.MediaUpload) (*cosmic.Media, error) {
	resp, err := c.client.upload(ctx, endpoint.UploadMedia, c.client.params(), upload)
	if err != nil {
		return nil, fmt.Errorf("uploading media: %w", err)
	}

	media, err := decode[cosmic.MediaResponse](resp, "media")
	if err != nil {
		return nil, fmt.Errorf("parsing media: %w", err)
	}

	return &media.Media, nil
}

// Delete implements cosmic.MediaClient.Delete.
func (c *MediaClient) Delete(ctx context.Context, id string) (*cosmic.MessageResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.DeleteMedia, params, nil, "deleting media", "delete response")
}
