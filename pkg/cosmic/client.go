package cosmic

import (
	"context"
	"net/http"
	"time"
)

// ObjectsClient covers content objects.
type ObjectsClient interface {
	Find(ctx context.Context, objectType string, opts *FindOptions) (*ObjectsResponse, error)
	FindOne(ctx context.Context, id string, opts *FindOptions) (*ObjectResponse, error)
	InsertOne(ctx context.Context, draft *ObjectDraft) (*MutationResponse, error)
	UpdateOne(ctx context.Context, id string, draft *ObjectDraft) (*MutationResponse, error)
	DeleteOne(ctx context.Context, id string) (*MessageResponse, error)
	Revisions(ctx context.Context, id string) (*RevisionsResponse, error)
	Search(ctx context.Context, query string) (*ObjectsResponse, error)
}

// MediaClient covers uploaded files.
type MediaClient interface {
	List(ctx context.Context, opts *ListOptions) (*MediaList, error)
	Get(ctx context.Context, id string) (*Media, error)
	Upload(ctx context.Context, upload *MediaUpload) (*Media, error)
	Delete(ctx context.Context, id string) (*MessageResponse, error)
}

// BucketClient covers the bucket itself.
type BucketClient interface {
	Get(ctx context.Context) (*BucketResponse, error)
	UpdateSettings(ctx context.Context, settings *BucketSettings) (*MessageResponse, error)
	// Ping fetches the bucket and returns the raw response body.
	Ping(ctx context.Context) (string, error)
}

// UsersClient covers bucket members.
type UsersClient interface {
	List(ctx context.Context) (*UsersResponse, error)
	Get(ctx context.Context, id string) (*User, error)
	Add(ctx context.Context, email, role string) (*User, error)
	Delete(ctx context.Context, id string) (*MessageResponse, error)
}

// WebhooksClient covers event callbacks.
type WebhooksClient interface {
	List(ctx context.Context) (*WebhooksResponse, error)
	Add(ctx context.Context, event, endpoint string) (*MessageResponse, error)
	Delete(ctx context.Context, id string) (*MessageResponse, error)
}

// AIClient covers content generation.
type AIClient interface {
	GenerateText(ctx context.Context, prompt string) (*AITextResponse, error)
	GenerateImage(ctx context.Context, prompt *ImagePrompt) (*AIImageResponse, error)
}

// Client is the main interface for one bucket.
type Client interface {
	Objects() ObjectsClient
	Media() MediaClient
	Bucket() BucketClient
	Users() UsersClient
	Webhooks() WebhooksClient
	AI() AIClient

	// Async exposes every operation in callback form.
	Async() *AsyncClient
}

// Logger interface for custom logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cosmic.Client.
//
// Configuration is copied when the client is built; changing a Config
// afterwards does not affect existing clients.
type Config struct {
	// BucketSlug: the bucket every request is addressed to. Required.
	BucketSlug string
	// ReadKey: sent as the read_key query parameter on reads.
	ReadKey string
	// WriteKey: sent as a Bearer token (and, on the primary host, as the
	// write_key query parameter) on mutations. Mutations fail before any
	// request is made when it is empty.
	WriteKey string

	// BaseURL: primary API host. cosmicclient.New trims a trailing slash and
	// adds "https://" if no scheme is present.
	BaseURL string
	// WorkersURL: host serving uploads and AI generation.
	WorkersURL string

	// HTTPClient: transport used for every request. Its Timeout applies when
	// HTTPTimeout is zero.
	HTTPClient *http.Client
	// HTTPTimeout: per-request timeout. Context deadlines still apply.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors: optional hooks run around every request.
	Interceptors *InterceptorChain
}
