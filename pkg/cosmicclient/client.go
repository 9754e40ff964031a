package cosmicclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/cosmic/internal/client"
	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// New creates a new Cosmic client for one bucket. The config is copied;
// the caller's value is never modified.
func New(config *cosmic.Config) (cosmic.Client, error) {
	if config == nil {
		return nil, cosmic.ErrConfigRequired
	}

	normalized := *config

	normalized.BucketSlug = strings.TrimSpace(normalized.BucketSlug)
	if normalized.BucketSlug == "" {
		return nil, cosmic.ErrBucketSlugRequired
	}

	baseURL, err := normalizeURL(normalized.BaseURL, constants.DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}

	workersURL, err := normalizeURL(normalized.WorkersURL, constants.DefaultWorkersURL)
	if err != nil {
		return nil, fmt.Errorf("workers URL: %w", err)
	}

	normalized.BaseURL = baseURL
	normalized.WorkersURL = workersURL

	cosmicClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cosmicClient, nil
}

// NewBucketClient creates a client with the default hosts. writeKey may be
// empty for read-only use.
func NewBucketClient(bucketSlug, readKey, writeKey string) (cosmic.Client, error) {
	return New(&cosmic.Config{
		BucketSlug: bucketSlug,
		ReadKey:    readKey,
		WriteKey:   writeKey,
	})
}

// normalizeURL trims a trailing slash and adds "https://" when no scheme is
// present. Blank input selects fallback.
func normalizeURL(raw, fallback string) (string, error) {
	normalized := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if normalized == "" {
		return fallback, nil
	}

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", cosmic.ErrInvalidBaseURL, raw)
	}

	return normalized, nil
}
