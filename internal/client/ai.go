package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// AIClient implements cosmic.AIClient.
type AIClient struct {
	client *Client
}

// NewAIClient creates a new AI client.
func NewAIClient(client *Client) *AIClient {
	return &AIClient{
		client: client,
	}
}

// GenerateText implements cosmic.AIClient.GenerateText.
func (c *AIClient) GenerateText(ctx context.Context, prompt string) (*cosmic.AITextResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("generating text: %w", cosmic.ErrPromptRequired)
	}

	body := cosmic.TextPrompt{Prompt: prompt}

	return call[cosmic.AITextResponse](ctx, c.client, endpoint.GenerateText, c.client.params(), body, "generating text", "text generation response")
}

// GenerateImage implements cosmic.AIClient.GenerateImage. Blank size,
// quality and style fall back to the defaults.
func (c *AIClient) GenerateImage(ctx context.Context, prompt *cosmic.ImagePrompt) (*cosmic.AIImageResponse, error) {
	if prompt == nil || strings.TrimSpace(prompt.Prompt) == "" {
		return nil, fmt.Errorf("generating image: %w", cosmic.ErrPromptRequired)
	}

	body := *prompt
	if body.Size == "" {
		body.Size = cosmic.DefaultImageSize
	}

	if body.Quality == "" {
		body.Quality = cosmic.DefaultImageQuality
	}

	if body.Style == "" {
		body.Style = cosmic.DefaultImageStyle
	}

	return call[cosmic.AIImageResponse](ctx, c.client, endpoint.GenerateImage, c.client.params(), body, "generating image", "image generation response")
}
