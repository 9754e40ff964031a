package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

func TestBucketClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v3/buckets/test-bucket", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, testReadKey, request.URL.Query().Get("read_key"))

		_, _ = writer.Write([]byte(`{"bucket": {"title": "My Bucket", "website": "https://example.com"}}`))
	})

	resp, err := client.Bucket().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Bucket", resp.Bucket.Title)
	assert.Equal(t, "https://example.com", resp.Bucket.Website)
}

func TestBucketClient_UpdateSettings(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v3/buckets/test-bucket/settings", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)
		assert.Equal(t, "Bearer "+testWriteKey, request.Header.Get("Authorization"))

		body := decodeBody(t, request)
		assert.Equal(t, "Renamed", body["title"])
		assert.NotContains(t, body, "description")

		_, _ = writer.Write([]byte(`{"message": "Settings updated"}`))
	})

	resp, err := client.Bucket().UpdateSettings(context.Background(), &cosmic.BucketSettings{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Settings updated", resp.Message)
}

func TestBucketClient_UpdateSettings_PartialBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings *cosmic.BucketSettings
		expected map[string]interface{}
	}{
		{
			name:     "description only",
			settings: &cosmic.BucketSettings{Description: "new desc"},
			expected: map[string]interface{}{"description": "new desc"},
		},
		{
			name:     "empty settings",
			settings: &cosmic.BucketSettings{},
			expected: map[string]interface{}{},
		},
		{
			name:     "nil settings",
			settings: nil,
			expected: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, tt.expected, decodeBody(t, request))

				_, _ = writer.Write([]byte(`{"message": "Settings updated"}`))
			})

			_, err := client.Bucket().UpdateSettings(context.Background(), tt.settings)
			require.NoError(t, err)
		})
	}
}

func TestBucketClient_Ping(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"bucket": {"title": "ok"}}`))
	})

	body, err := client.Bucket().Ping(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"bucket": {"title": "ok"}}`, body)
}

func TestBucketClient_Ping_InvalidCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		respondJSON(t, writer, http.StatusUnauthorized, map[string]interface{}{"message": "bad key"})
	})

	_, err := client.Bucket().Ping(context.Background())
	require.Error(t, err)
	assert.True(t, cosmic.IsInvalidCredentials(err))
}
