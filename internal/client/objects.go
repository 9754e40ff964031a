package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/internal/request"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// ObjectsClient implements cosmic.ObjectsClient.
type ObjectsClient struct {
	client *Client
}

// NewObjectsClient creates a new objects client.
func NewObjectsClient(client *Client) *ObjectsClient {
	return &ObjectsClient{
		client: client,
	}
}

// Find implements cosmic.ObjectsClient.Find.
func (c *ObjectsClient) Find(ctx context.Context, objectType string, opts *cosmic.FindOptions) (*cosmic.ObjectsResponse, error) {
	params := c.client.params()
	params.ObjectType = objectType
	applyFindOptions(&params, opts)

	return call[cosmic.ObjectsResponse](ctx, c.client, endpoint.Find, params, nil, "finding objects", "objects list")
}

// FindOne implements cosmic.ObjectsClient.FindOne.
func (c *ObjectsClient) FindOne(ctx context.Context, id string, opts *cosmic.FindOptions) (*cosmic.ObjectResponse, error) {
	params := c.client.params()
	params.ID = id
	applyFindOptions(&params, opts)

	return call[cosmic.ObjectResponse](ctx, c.client, endpoint.FindOne, params, nil, "getting object", "object")
}

// InsertOne implements cosmic.ObjectsClient.InsertOne.
func (c *ObjectsClient) InsertOne(ctx context.Context, draft *cosmic.ObjectDraft) (*cosmic.MutationResponse, error) {
	if draft == nil || strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("creating object: %w", cosmic.ErrTitleRequired)
	}

	return call[cosmic.MutationResponse](ctx, c.client, endpoint.InsertOne, c.client.params(), request.DraftBody(draft), "creating object", "object")
}

// UpdateOne implements cosmic.ObjectsClient.UpdateOne.
func (c *ObjectsClient) UpdateOne(ctx context.Context, id string, draft *cosmic.ObjectDraft) (*cosmic.MutationResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.MutationResponse](ctx, c.client, endpoint.UpdateOne, params, request.DraftBody(draft), "updating object", "object")
}

// DeleteOne implements cosmic.ObjectsClient.DeleteOne.
func (c *ObjectsClient) DeleteOne(ctx context.Context, id string) (*cosmic.MessageResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.DeleteOne, params, nil, "deleting object", "delete response")
}

// Revisions implements cosmic.ObjectsClient.Revisions.
func (c *ObjectsClient) Revisions(ctx context.Context, id string) (*cosmic.RevisionsResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.RevisionsResponse](ctx, c.client, endpoint.GetObjectRevisions, params, nil, "getting object revisions", "revisions list")
}

// Search implements cosmic.ObjectsClient.Search.
func (c *ObjectsClient) Search(ctx context.Context, query string) (*cosmic.ObjectsResponse, error) {
	body := map[string]string{"query": query}

	return call[cosmic.ObjectsResponse](ctx, c.client, endpoint.SearchObjects, c.client.params(), body, "searching objects", "objects list")
}

func applyFindOptions(params *endpoint.Params, opts *cosmic.FindOptions) {
	if opts == nil {
		return
	}

	params.Query = opts.Query
	params.Props = opts.Props
	params.Limit = opts.Limit
	params.Skip = opts.Skip
	params.Depth = opts.Depth
	params.Sort = opts.Sort
	params.Status = opts.Status
}
