package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhooksClient(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case "GET":
			assert.Equal(t, "/v3/buckets/test-bucket/webhooks", request.URL.Path)
			_, _ = writer.Write([]byte(`{"webhooks": [{"id": "w1", "event": "object.created", "endpoint": "https://hooks.example.com"}], "total": 1}`))
		case "POST":
			assert.Equal(t, "/v3/buckets/test-bucket/webhooks", request.URL.Path)
			assert.Equal(t, map[string]interface{}{
				"event":    "object.deleted",
				"endpoint": "https://hooks.example.com/deleted",
			}, decodeBody(t, request))
			_, _ = writer.Write([]byte(`{"message": "Webhook added"}`))
		case "DELETE":
			assert.Equal(t, "/v3/buckets/test-bucket/webhooks/w1", request.URL.Path)
			_, _ = writer.Write([]byte(`{"message": "Webhook deleted"}`))
		}
	})

	ctx := context.Background()

	list, err := client.Webhooks().List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Webhooks, 1)
	assert.Equal(t, "object.created", list.Webhooks[0].Event)

	added, err := client.Webhooks().Add(ctx, "object.deleted", "https://hooks.example.com/deleted")
	require.NoError(t, err)
	assert.Equal(t, "Webhook added", added.Message)

	deleted, err := client.Webhooks().Delete(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Webhook deleted", deleted.Message)
}
