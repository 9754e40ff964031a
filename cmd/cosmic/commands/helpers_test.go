package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"draft", "Draft"},
		{"published", "Published"},
		{"check-boxes", "Check Boxes"},
		{"", constants.NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, titleCase(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a\n  b\tc", 10))
	assert.Equal(t, "héllo w...", truncate("héllo world again", 10))
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, constants.NotAvailable, formatSize(0))
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2*1024*1024))
}

func TestParseJSONObject(t *testing.T) {
	t.Parallel()

	object, err := parseJSONObject(`{"hosts": {"$in": ["a"]}}`, constants.ErrInvalidFilterJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hosts": map[string]any{"$in": []any{"a"}}}, object)

	object, err = parseJSONObject("  ", constants.ErrInvalidFilterJSON)
	require.NoError(t, err)
	assert.Nil(t, object)

	_, err = parseJSONObject(`[1, 2]`, constants.ErrInvalidMetadataJSON)
	require.ErrorIs(t, err, constants.ErrInvalidMetadataJSON)

	_, err = parseJSONObject(`null`, constants.ErrInvalidMetadataJSON)
	require.ErrorIs(t, err, constants.ErrInvalidMetadataJSON)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	assert.True(t, confirm(strings.NewReader("y\n"), &out, "Delete?"))
	assert.True(t, confirm(strings.NewReader("YES\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader("\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Delete?"))
	assert.Contains(t, out.String(), "Delete? (y/N): ")
}

func TestStderrLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	var logger cosmic.Logger = NewStderrLogger(&out)

	logger.Debug("HTTP Request", map[string]interface{}{"url": "https://api.example.com", "method": "GET"})
	logger.Error("failed", nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[DEBUG] HTTP Request method=GET url=https://api.example.com", lines[0])
	assert.Equal(t, "[ERROR] failed", lines[1])
}

func TestMetadataRows(t *testing.T) {
	t.Parallel()

	metadata := cosmic.ValuesMetadata(map[string]cosmic.Value{
		"subtitle": cosmic.String("Hello"),
		"count":    cosmic.Int(3),
	})

	assert.Equal(t, [][]string{
		{"metadata.count", "3"},
		{"metadata.subtitle", "Hello"},
	}, metadataRows(metadata))
	assert.Empty(t, metadataRows(nil))

	hero := cosmic.Array(cosmic.String("a.png"))
	fields := cosmic.FieldsMetadata([]cosmic.Metafield{
		{Type: cosmic.MetafieldFiles, Key: "hero", Value: &hero},
	})

	assert.Equal(t, [][]string{
		{"metadata.hero (Files)", `["a.png"]`},
	}, metadataRows(fields))
}

func TestDraftFlags(t *testing.T) {
	t.Parallel()

	flags := draftFlags{
		objectType: "posts",
		title:      "Hello",
		metadata:   `{"subtitle": "World"}`,
		status:     "published",
		publishAt:  "2026-01-01T00:00:00Z",
	}

	draft, err := flags.draft()
	require.NoError(t, err)
	assert.Equal(t, "posts", draft.Type)
	assert.Equal(t, "Hello", draft.Title)
	assert.Equal(t, map[string]any{"subtitle": "World"}, draft.Metadata)
	assert.Equal(t, cosmic.StatusPublished, draft.Status)
	assert.Equal(t, "2026-01-01T00:00:00Z", draft.PublishAt)

	flags.metadata = "not json"

	_, err = flags.draft()
	require.ErrorIs(t, err, constants.ErrInvalidMetadataJSON)
}

func TestConfig_SetAndMask(t *testing.T) {
	t.Parallel()

	config := &Config{}

	require.NoError(t, config.set("bucket", " my-bucket "))
	require.NoError(t, config.set("read_key", "rk"))
	require.NoError(t, config.set("write_key", "wk"))
	require.NoError(t, config.set("base_url", "https://api.example.com"))
	require.NoError(t, config.set("workers_url", "https://workers.example.com"))
	require.NoError(t, config.set("output", "json"))

	require.ErrorIs(t, config.set("write_key", "  "), constants.ErrEmptyWriteKey)
	require.ErrorIs(t, config.set("token", "x"), constants.ErrUnknownConfigKey)

	assert.Equal(t, "my-bucket", config.Bucket)

	masked := config.masked()
	assert.Equal(t, constants.MaskedSecret, masked.ReadKey)
	assert.Equal(t, constants.MaskedSecret, masked.WriteKey)
	assert.Equal(t, "rk", config.ReadKey)
}

// Tests below modify the global viper instance and must not run in parallel.

func TestSaveConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	require.NoError(t, os.WriteFile(configFile, []byte("bucket: old\n"), constants.ConfigFilePerm))
	require.NoError(t, viper.ReadInConfig())

	config := loadConfig()
	require.NoError(t, config.set("bucket", "new-bucket"))
	require.NoError(t, config.set("write_key", "wk"))
	require.NoError(t, saveConfig(config))

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config

	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "new-bucket", saved.Bucket)
	assert.Equal(t, "wk", saved.WriteKey)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
}

func TestNewClientFromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := newClientFromConfig()
	require.ErrorIs(t, err, constants.ErrBucketNotConfigured)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v3/buckets/cli-bucket", request.URL.Path)
		assert.Equal(t, "rk", request.URL.Query().Get("read_key"))
		assert.Equal(t, CLIUserAgent, request.Header.Get("User-Agent"))

		_, _ = writer.Write([]byte(`{"bucket": {"title": "CLI"}}`))
	}))
	defer server.Close()

	viper.Set("bucket", "cli-bucket")
	viper.Set("read_key", "rk")
	viper.Set("base_url", server.URL)

	client, err := newClientFromConfig()
	require.NoError(t, err)

	resp, err := client.Bucket().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CLI", resp.Bucket.Title)

	_, err = client.Objects().DeleteOne(context.Background(), "abc")
	require.ErrorIs(t, err, cosmic.ErrWriteKeyRequired)
}
