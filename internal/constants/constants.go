package constants

import "time"

// Service endpoints.
const (
	// DefaultBaseURL is the primary API host.
	DefaultBaseURL = "https://api.cosmicjs.com"

	// DefaultWorkersURL hosts uploads and AI generation.
	DefaultWorkersURL = "https://workers.cosmicjs.com"

	// APIVersion is the path prefix of every endpoint.
	APIVersion = "v3"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "cosmic-go/1.0"
)

// Content types.
const (
	// ContentTypeJSON is used for JSON request bodies and the Accept header.
	ContentTypeJSON = "application/json"

	// ContentTypeOctetStream is the upload fallback when no type is known.
	ContentTypeOctetStream = "application/octet-stream"

	// MultipartBoundaryPrefix prefixes the random multipart boundary.
	MultipartBoundaryPrefix = "cosmic-"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for uploads and AI generation.
	ExtendedHTTPTimeout = 120 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest is the first status treated as an error.
	HTTPStatusBadRequest = 400
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the indentation used for YAML and JSON output.
	JSONIndentSize = 2

	// ContentPreviewLength truncates long content in tables.
	ContentPreviewLength = 60
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
