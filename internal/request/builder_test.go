package request_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	"github.com/fivetwenty-io/cosmic/internal/request"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

const testBaseURL = "https://api.example.com"

func resolve(t *testing.T, op endpoint.Operation, params endpoint.Params) *endpoint.Endpoint {
	t.Helper()

	if params.Bucket == "" {
		params.Bucket = "my-bucket"
	}

	ep, err := endpoint.NewResolver("https://workers.example.com").Resolve(op, params)
	require.NoError(t, err)

	return ep
}

func TestBuilder_Build_Read(t *testing.T) {
	t.Parallel()

	limit := 5
	ep := resolve(t, endpoint.Find, endpoint.Params{
		ObjectType: "posts",
		ReadKey:    "rk",
		Props:      "   ",
		Limit:      &limit,
	})

	req, err := request.NewBuilder(testBaseURL+"/").Build(ep, nil)
	require.NoError(t, err)

	parsed, err := url.Parse(req.URL)
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "find", req.Operation)
	assert.Equal(t, "api.example.com", parsed.Host)
	assert.Equal(t, "/v3/buckets/my-bucket/objects", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "rk", query.Get("read_key"))
	assert.Equal(t, "5", query.Get("limit"))
	assert.Equal(t, `{"type":"posts"}`, query.Get("query"))
	assert.False(t, query.Has("props"))
	assert.False(t, query.Has("sort"))
	assert.False(t, query.Has("status"))

	assert.Equal(t, "application/json", req.Headers.Get("Accept"))
	assert.Empty(t, req.Headers.Get("Content-Type"))
	assert.Empty(t, req.Headers.Get("Authorization"))
	assert.Nil(t, req.Body)
}

func TestBuilder_Build_Mutation(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.UpdateOne, endpoint.Params{ID: "abc", WriteKey: "wk"})

	req, err := request.NewBuilder(testBaseURL).Build(ep, map[string]any{"title": "A & B"})
	require.NoError(t, err)

	parsed, err := url.Parse(req.URL)
	require.NoError(t, err)

	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, "/v3/buckets/my-bucket/objects/abc", parsed.Path)
	assert.Equal(t, "wk", parsed.Query().Get("write_key"))
	assert.Equal(t, "Bearer wk", req.Headers.Get("Authorization"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.JSONEq(t, `{"title":"A & B"}`, string(req.Body))
	assert.Contains(t, string(req.Body), "A & B")
}

func TestBuilder_Build_WorkersEndpointIsUsedVerbatim(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.GenerateText, endpoint.Params{WriteKey: "wk"})

	req, err := request.NewBuilder(testBaseURL).Build(ep, cosmic.TextPrompt{Prompt: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "https://workers.example.com/v3/buckets/my-bucket/ai/text", req.URL)
	assert.Equal(t, "Bearer wk", req.Headers.Get("Authorization"))
	assert.JSONEq(t, `{"prompt":"hello"}`, string(req.Body))
}

func TestBuilder_Build_EscapesIdentifier(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.FindOne, endpoint.Params{ID: "a/b c", ReadKey: "rk"})

	req, err := request.NewBuilder(testBaseURL).Build(ep, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.URL, testBaseURL+"/v3/buckets/my-bucket/objects/a%2Fb%20c?"), req.URL)
}

func TestStripBlank(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"keep":  {"x"},
		"blank": {""},
		"space": {" \t\n"},
		"mixed": {"", "y"},
	}

	stripped := request.StripBlank(values)

	assert.Equal(t, url.Values{"keep": {"x"}, "mixed": {"y"}}, stripped)
	assert.Len(t, values, 4)
}

func TestDraftBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		draft    *cosmic.ObjectDraft
		expected string
	}{
		{
			name:     "nil draft",
			draft:    nil,
			expected: `{}`,
		},
		{
			name: "blank fields omitted",
			draft: &cosmic.ObjectDraft{
				Type:    "posts",
				Title:   "Hello",
				Content: " ",
			},
			expected: `{"type":"posts","title":"Hello"}`,
		},
		{
			name: "publish_at forces draft",
			draft: &cosmic.ObjectDraft{
				Title:     "Scheduled",
				Status:    cosmic.StatusPublished,
				PublishAt: "2030-01-01T00:00:00Z",
			},
			expected: `{"title":"Scheduled","status":"draft","publish_at":"2030-01-01T00:00:00Z"}`,
		},
		{
			name: "unpublish_at forces draft",
			draft: &cosmic.ObjectDraft{
				Title:       "Expiring",
				UnpublishAt: "2030-01-01T00:00:00Z",
			},
			expected: `{"title":"Expiring","status":"draft","unpublish_at":"2030-01-01T00:00:00Z"}`,
		},
		{
			name: "caller status kept",
			draft: &cosmic.ObjectDraft{
				Title:    "Live",
				Status:   cosmic.StatusPublished,
				Metadata: map[string]any{"price": 9.5},
			},
			expected: `{"title":"Live","status":"published","metadata":{"price":9.5}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := json.Marshal(request.DraftBody(tt.draft))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(encoded))
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		expected string
	}{
		{"photo.JPG", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"image.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"pic.webp", "image/webp"},
		{"logo.svg", "image/svg+xml"},
		{"doc.pdf", "application/pdf"},
		{"letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"sheet.xls", "application/vnd.ms-excel"},
		{"noextension", "application/octet-stream"},
		{"archive.zzzunknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, request.ContentTypeFor(tt.filename))
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestBuilder_BuildUpload(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.UploadMedia, endpoint.Params{WriteKey: "wk"})

	req, err := request.NewBuilder(testBaseURL).BuildUpload(ep, &cosmic.MediaUpload{
		Filename: "/tmp/photos/cat.png",
		Data:     []byte("PNGDATA"),
		Folder:   "pets",
		Metadata: map[string]any{"alt": "a cat"},
	})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://workers.example.com/v3/buckets/my-bucket/media/insert-one", req.URL)
	assert.Equal(t, "Bearer wk", req.Headers.Get("Authorization"))

	mediaType, params, err := mime.ParseMediaType(req.Headers.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	assert.True(t, strings.HasPrefix(params["boundary"], "cosmic-"))

	reader := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])

	parts := map[string][]byte{}
	partTypes := map[string]string{}
	filenames := map[string]string{}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)

		parts[part.FormName()] = data
		partTypes[part.FormName()] = part.Header.Get("Content-Type")
		filenames[part.FormName()] = part.FileName()
	}

	assert.Equal(t, "PNGDATA", string(parts["media"]))
	assert.Equal(t, "image/png", partTypes["media"])
	assert.Equal(t, "cat.png", filenames["media"])
	assert.Equal(t, "pets", string(parts["folder"]))
	assert.JSONEq(t, `{"alt":"a cat"}`, string(parts["metadata"]))
	assert.Equal(t, "application/json", partTypes["metadata"])
}

func TestBuilder_BuildUpload_Minimal(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.UploadMedia, endpoint.Params{WriteKey: "wk"})

	req, err := request.NewBuilder(testBaseURL).BuildUpload(ep, &cosmic.MediaUpload{
		Filename:    "notes",
		Data:        []byte("hello"),
		ContentType: "text/markdown",
	})
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(req.Headers.Get("Content-Type"))
	require.NoError(t, err)

	form, err := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Empty(t, form.Value["folder"])
	assert.Empty(t, form.Value["metadata"])
	require.Len(t, form.File["media"], 1)
	assert.Equal(t, "notes", form.File["media"][0].Filename)
	assert.Equal(t, "text/markdown", form.File["media"][0].Header.Get("Content-Type"))
}

func TestBuilder_BuildUpload_RequiresData(t *testing.T) {
	t.Parallel()

	ep := resolve(t, endpoint.UploadMedia, endpoint.Params{WriteKey: "wk"})
	builder := request.NewBuilder(testBaseURL)

	_, err := builder.BuildUpload(ep, nil)
	require.ErrorIs(t, err, cosmic.ErrUploadDataRequired)

	_, err = builder.BuildUpload(ep, &cosmic.MediaUpload{Filename: "empty.txt"})
	require.ErrorIs(t, err, cosmic.ErrUploadDataRequired)
}
