package client

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

func TestMediaClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v3/buckets/test-bucket/media", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		query := request.URL.Query()
		assert.Equal(t, testReadKey, query.Get("read_key"))
		assert.Equal(t, "name,url", query.Get("props"))
		assert.Equal(t, "10", query.Get("skip"))
		assert.False(t, query.Has("limit"))

		_, _ = writer.Write([]byte(`{
			"media": [{"id": "m1", "name": "cat.png", "original_name": "cat.png", "width": 640, "height": 480}],
			"total": 11
		}`))
	})

	list, err := client.Media().List(context.Background(), cosmic.NewListOptions().WithProps("name,url").WithSkip(10))
	require.NoError(t, err)
	require.Len(t, list.Media, 1)
	assert.Equal(t, 11, list.Total)
	assert.Equal(t, "m1", list.Media[0].ID)
	require.NotNil(t, list.Media[0].Width)
	assert.Equal(t, 640, *list.Media[0].Width)
}

func TestMediaClient_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "envelope", body: `{"media": {"id": "m1", "name": "cat.png"}}`},
		{name: "bare record", body: `{"id": "m1", "name": "cat.png"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/v3/buckets/test-bucket/media/m1", request.URL.Path)
				_, _ = writer.Write([]byte(tt.body))
			})

			media, err := client.Media().Get(context.Background(), "m1")
			require.NoError(t, err)
			assert.Equal(t, "m1", media.ID)
			assert.Equal(t, "cat.png", media.Name)
		})
	}
}

func TestMediaClient_Upload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/workers/v3/buckets/test-bucket/media/insert-one", request.URL.Path)
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "Bearer "+testWriteKey, request.Header.Get("Authorization"))
		assert.False(t, request.URL.Query().Has("write_key"))

		assert.NoError(t, request.ParseMultipartForm(1<<20))

		file, header, err := request.FormFile("media")
		if assert.NoError(t, err) {
			defer func() { _ = file.Close() }()

			data, _ := io.ReadAll(file)
			assert.Equal(t, "hello world", string(data))
			assert.Equal(t, "notes.txt", header.Filename)
		}

		assert.Equal(t, "docs", request.FormValue("folder"))

		_, _ = writer.Write([]byte(`{"media": {"id": "m2", "name": "notes.txt", "folder": "docs"}}`))
	})

	media, err := client.Media().Upload(context.Background(), &cosmic.MediaUpload{
		Filename: "notes.txt",
		Data:     []byte("hello world"),
		Folder:   "docs",
	})
	require.NoError(t, err)
	assert.Equal(t, "m2", media.ID)
}

func TestMediaClient_Delete(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v3/buckets/test-bucket/media/m1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, testWriteKey, request.URL.Query().Get("write_key"))

		_, _ = writer.Write([]byte(`{"message": "Media deleted"}`))
	})

	resp, err := client.Media().Delete(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Media deleted", resp.Message)

	_, err = client.Media().Delete(context.Background(), "")
	require.ErrorIs(t, err, cosmic.ErrMissingIdentifier)
}
