package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

const (
	testBucket   = "test-bucket"
	testReadKey  = "read-123"
	testWriteKey = "write-456"
)

// newTestClient starts a server for handler and returns a client pointed at
// it for both the primary and workers hosts.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	return newTestClientWithConfig(t, handler, &cosmic.Config{
		BucketSlug: testBucket,
		ReadKey:    testReadKey,
		WriteKey:   testWriteKey,
	})
}

func newTestClientWithConfig(t *testing.T, handler http.HandlerFunc, config *cosmic.Config) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.BaseURL = server.URL
	config.WorkersURL = server.URL + "/workers"

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// respondJSON writes body as a JSON response with the given status.
func respondJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		assert.NoError(t, json.NewEncoder(writer).Encode(body))
	}
}

// decodeBody decodes a JSON request body into a generic map.
func decodeBody(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))

	return body
}
