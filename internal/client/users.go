package client

import (
	"context"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// UsersClient implements cosmic.UsersClient.
type UsersClient struct {
	client *Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(client *Client) *UsersClient {
	return &UsersClient{
		client: client,
	}
}

// List implements cosmic.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) (*cosmic.UsersResponse, error) {
	return call[cosmic.UsersResponse](ctx, c.client, endpoint.GetUsers, c.client.params(), nil, "listing users", "users list")
}

// Get implements cosmic.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id string) (*cosmic.User, error) {
	params := c.client.params()
	params.ID = id

	resp, err := call[cosmic.UserResponse](ctx, c.client, endpoint.GetUser, params, nil, "getting user", "user")
	if err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// Add implements cosmic.UsersClient.Add.
func (c *UsersClient) Add(ctx context.Context, email, role string) (*cosmic.User, error) {
	body := map[string]string{
		"email": email,
		"role":  role,
	}

	resp, err := call[cosmic.UserResponse](ctx, c.client, endpoint.AddUser, c.client.params(), body, "adding user", "user")
	if err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// Delete implements cosmic.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, id string) (*cosmic.MessageResponse, error) {
	params := c.client.params()
	params.ID = id

	return call[cosmic.MessageResponse](ctx, c.client, endpoint.DeleteUser, params, nil, "deleting user", "delete response")
}
