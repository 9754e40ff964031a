// Package request turns a resolved endpoint and an optional body into a
// transport-ready request.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/internal/endpoint"
	internalhttp "github.com/fivetwenty-io/cosmic/internal/http"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// Builder composes requests against a primary base URL.
type Builder struct {
	baseURL string
}

// NewBuilder creates a builder. baseURL must already be normalized.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Build composes a request with an optional JSON body. A nil body sends no
// payload and no Content-Type.
func (b *Builder) Build(ep *endpoint.Endpoint, body any) (*internalhttp.Request, error) {
	target, err := b.url(ep)
	if err != nil {
		return nil, err
	}

	headers := b.headers(ep)

	var payload []byte

	if body != nil {
		payload, err = encodeJSON(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", ep.Operation, err)
		}

		headers.Set("Content-Type", constants.ContentTypeJSON)
	}

	return &internalhttp.Request{
		Operation: ep.Operation.String(),
		Method:    ep.Method,
		URL:       target,
		Headers:   headers,
		Body:      payload,
	}, nil
}

// BuildUpload composes a multipart/form-data upload with a "media" file
// part and optional "folder" and "metadata" parts.
func (b *Builder) BuildUpload(ep *endpoint.Endpoint, upload *cosmic.MediaUpload) (*internalhttp.Request, error) {
	if upload == nil || len(upload.Data) == 0 {
		return nil, cosmic.ErrUploadDataRequired
	}

	target, err := b.url(ep)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	err = writer.SetBoundary(constants.MultipartBoundaryPrefix + uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("setting multipart boundary: %w", err)
	}

	filename := uploadFilename(upload.Filename)

	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" {
		contentType = ContentTypeFor(filename)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating media part: %w", err)
	}

	_, err = part.Write(upload.Data)
	if err != nil {
		return nil, fmt.Errorf("writing media part: %w", err)
	}

	if folder := strings.TrimSpace(upload.Folder); folder != "" {
		err = writer.WriteField("folder", folder)
		if err != nil {
			return nil, fmt.Errorf("writing folder part: %w", err)
		}
	}

	if len(upload.Metadata) > 0 {
		err = writeMetadataPart(writer, upload.Metadata)
		if err != nil {
			return nil, err
		}
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	headers := b.headers(ep)
	headers.Set("Content-Type", writer.FormDataContentType())

	return &internalhttp.Request{
		Operation: ep.Operation.String(),
		Method:    ep.Method,
		URL:       target,
		Headers:   headers,
		Body:      buf.Bytes(),
	}, nil
}

func writeMetadataPart(writer *multipart.Writer, metadata map[string]any) error {
	encoded, err := encodeJSON(metadata)
	if err != nil {
		return fmt.Errorf("encoding upload metadata: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="metadata"`)
	header.Set("Content-Type", constants.ContentTypeJSON)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating metadata part: %w", err)
	}

	_, err = part.Write(encoded)
	if err != nil {
		return fmt.Errorf("writing metadata part: %w", err)
	}

	return nil
}

// url joins the endpoint path onto the base URL, unless the path is already
// absolute, and appends the non-blank query parameters.
func (b *Builder) url(ep *endpoint.Endpoint) (string, error) {
	target := ep.Path
	if !ep.Absolute && !isAbsolute(ep.Path) {
		target = b.baseURL + ep.Path
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", cosmic.ErrInvalidBaseURL, err.Error())
	}

	query := parsed.Query()
	for key, values := range StripBlank(ep.Query) {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func (b *Builder) headers(ep *endpoint.Endpoint) http.Header {
	headers := make(http.Header)
	headers.Set("Accept", constants.ContentTypeJSON)

	if ep.Authorize && ep.Method != http.MethodGet && strings.TrimSpace(ep.WriteKey) != "" {
		headers.Set("Authorization", "Bearer "+ep.WriteKey)
	}

	return headers
}

// StripBlank returns a copy of values without empty or whitespace-only
// entries. Keys left with no values are dropped.
func StripBlank(values url.Values) url.Values {
	stripped := make(url.Values, len(values))

	for key, entries := range values {
		for _, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				continue
			}

			stripped[key] = append(stripped[key], entry)
		}
	}

	return stripped
}

func isAbsolute(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

func encodeJSON(body any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(body)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func uploadFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}

	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return "upload"
	}

	return base
}

//nolint:gochecknoglobals // static lookup table
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentTypeFor guesses a file's MIME type from its extension, falling back
// to application/octet-stream.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return constants.ContentTypeOctetStream
	}

	if contentType, ok := contentTypes[ext]; ok {
		return contentType
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return constants.ContentTypeOctetStream
}

//nolint:gochecknoglobals // shared replacer
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
