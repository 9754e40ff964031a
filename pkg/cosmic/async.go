package cosmic

import "context"

// Callback receives the outcome of an operation run through AsyncClient.
type Callback[T any] func(result T, err error)

// Go runs fn on its own goroutine and hands the outcome to cb. The returned
// channel is closed after cb returns. A nil cb discards the outcome.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error), cb Callback[T]) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		result, err := fn(ctx)
		if cb != nil {
			cb(result, err)
		}
	}()

	return done
}

// AsyncClient mirrors every Client operation in callback form. Each method
// calls the blocking operation and forwards its outcome.
type AsyncClient struct {
	client Client
}

// NewAsyncClient wraps client.
func NewAsyncClient(client Client) *AsyncClient {
	return &AsyncClient{client: client}
}

// Find runs Objects().Find.
func (a *AsyncClient) Find(ctx context.Context, objectType string, opts *FindOptions, cb Callback[*ObjectsResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*ObjectsResponse, error) {
		return a.client.Objects().Find(ctx, objectType, opts)
	}, cb)
}

// FindOne runs Objects().FindOne.
func (a *AsyncClient) FindOne(ctx context.Context, id string, opts *FindOptions, cb Callback[*ObjectResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*ObjectResponse, error) {
		return a.client.Objects().FindOne(ctx, id, opts)
	}, cb)
}

// InsertOne runs Objects().InsertOne.
func (a *AsyncClient) InsertOne(ctx context.Context, draft *ObjectDraft, cb Callback[*MutationResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MutationResponse, error) {
		return a.client.Objects().InsertOne(ctx, draft)
	}, cb)
}

// UpdateOne runs Objects().UpdateOne.
func (a *AsyncClient) UpdateOne(ctx context.Context, id string, draft *ObjectDraft, cb Callback[*MutationResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MutationResponse, error) {
		return a.client.Objects().UpdateOne(ctx, id, draft)
	}, cb)
}

// DeleteOne runs Objects().DeleteOne.
func (a *AsyncClient) DeleteOne(ctx context.Context, id string, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Objects().DeleteOne(ctx, id)
	}, cb)
}

// ObjectRevisions runs Objects().Revisions.
func (a *AsyncClient) ObjectRevisions(ctx context.Context, id string, cb Callback[*RevisionsResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*RevisionsResponse, error) {
		return a.client.Objects().Revisions(ctx, id)
	}, cb)
}

// SearchObjects runs Objects().Search.
func (a *AsyncClient) SearchObjects(ctx context.Context, query string, cb Callback[*ObjectsResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*ObjectsResponse, error) {
		return a.client.Objects().Search(ctx, query)
	}, cb)
}

// ListMedia runs Media().List.
func (a *AsyncClient) ListMedia(ctx context.Context, opts *ListOptions, cb Callback[*MediaList]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MediaList, error) {
		return a.client.Media().List(ctx, opts)
	}, cb)
}

// GetMedia runs Media().Get.
func (a *AsyncClient) GetMedia(ctx context.Context, id string, cb Callback[*Media]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*Media, error) {
		return a.client.Media().Get(ctx, id)
	}, cb)
}

// UploadMedia runs Media().Upload.
func (a *AsyncClient) UploadMedia(ctx context.Context, upload *MediaUpload, cb Callback[*Media]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*Media, error) {
		return a.client.Media().Upload(ctx, upload)
	}, cb)
}

// DeleteMedia runs Media().Delete.
func (a *AsyncClient) DeleteMedia(ctx context.Context, id string, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Media().Delete(ctx, id)
	}, cb)
}

// GetBucket runs Bucket().Get.
func (a *AsyncClient) GetBucket(ctx context.Context, cb Callback[*BucketResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*BucketResponse, error) {
		return a.client.Bucket().Get(ctx)
	}, cb)
}

// UpdateBucketSettings runs Bucket().UpdateSettings.
func (a *AsyncClient) UpdateBucketSettings(ctx context.Context, settings *BucketSettings, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Bucket().UpdateSettings(ctx, settings)
	}, cb)
}

// Ping runs Bucket().Ping.
func (a *AsyncClient) Ping(ctx context.Context, cb Callback[string]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (string, error) {
		return a.client.Bucket().Ping(ctx)
	}, cb)
}

// ListUsers runs Users().List.
func (a *AsyncClient) ListUsers(ctx context.Context, cb Callback[*UsersResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*UsersResponse, error) {
		return a.client.Users().List(ctx)
	}, cb)
}

// GetUser runs Users().Get.
func (a *AsyncClient) GetUser(ctx context.Context, id string, cb Callback[*User]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*User, error) {
		return a.client.Users().Get(ctx, id)
	}, cb)
}

// AddUser runs Users().Add.
func (a *AsyncClient) AddUser(ctx context.Context, email, role string, cb Callback[*User]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*User, error) {
		return a.client.Users().Add(ctx, email, role)
	}, cb)
}

// DeleteUser runs Users().Delete.
func (a *AsyncClient) DeleteUser(ctx context.Context, id string, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Users().Delete(ctx, id)
	}, cb)
}

// ListWebhooks runs Webhooks().List.
func (a *AsyncClient) ListWebhooks(ctx context.Context, cb Callback[*WebhooksResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*WebhooksResponse, error) {
		return a.client.Webhooks().List(ctx)
	}, cb)
}

// AddWebhook runs Webhooks().Add.
func (a *AsyncClient) AddWebhook(ctx context.Context, event, endpoint string, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Webhooks().Add(ctx, event, endpoint)
	}, cb)
}

// DeleteWebhook runs Webhooks().Delete.
func (a *AsyncClient) DeleteWebhook(ctx context.Context, id string, cb Callback[*MessageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*MessageResponse, error) {
		return a.client.Webhooks().Delete(ctx, id)
	}, cb)
}

// GenerateText runs AI().GenerateText.
func (a *AsyncClient) GenerateText(ctx context.Context, prompt string, cb Callback[*AITextResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*AITextResponse, error) {
		return a.client.AI().GenerateText(ctx, prompt)
	}, cb)
}

// GenerateImage runs AI().GenerateImage.
func (a *AsyncClient) GenerateImage(ctx context.Context, prompt *ImagePrompt, cb Callback[*AIImageResponse]) <-chan struct{} {
	return Go(ctx, func(ctx context.Context) (*AIImageResponse, error) {
		return a.client.AI().GenerateImage(ctx, prompt)
	}, cb)
}
