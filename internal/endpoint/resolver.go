// Package endpoint maps a logical operation and its parameters onto the
// method, path and query string of the remote API. It performs no I/O.
package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// Params are the inputs of a resolution. Fields an operation does not
// accept are ignored.
type Params struct {
	ID         string
	Bucket     string
	ObjectType string
	ReadKey    string
	WriteKey   string

	Query  cosmic.QueryFilter
	Props  string
	Limit  *int
	Skip   *int
	Depth  *int
	Sort   cosmic.Sort
	Status cosmic.Status
}

// Endpoint is a resolved operation.
type Endpoint struct {
	Operation Operation
	Method    string
	// Path is relative to the primary base URL, or a full URL when Absolute.
	Path     string
	Query    url.Values
	Absolute bool
	// Authorize asks for an "Authorization: Bearer <WriteKey>" header.
	Authorize bool
	WriteKey  string
}

// Resolver resolves operations against a workers host.
type Resolver struct {
	workersURL string
}

// NewResolver creates a resolver. An empty workersURL selects the default
// workers host.
func NewResolver(workersURL string) *Resolver {
	workersURL = strings.TrimSuffix(strings.TrimSpace(workersURL), "/")
	if workersURL == "" {
		workersURL = constants.DefaultWorkersURL
	}

	return &Resolver{workersURL: workersURL}
}

// Resolve maps op and p to an Endpoint. It fails before any request is made
// when the bucket is missing, when a per-id operation has no id, or when a
// mutation has no write key.
func (r *Resolver) Resolve(op Operation, p Params) (*Endpoint, error) {
	capability, ok := capabilities[op]
	if !ok {
		return nil, fmt.Errorf("%w: %d", cosmic.ErrUnknownOperation, int(op))
	}

	bucket := strings.TrimSpace(p.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("%s: %w", op, cosmic.ErrBucketSlugRequired)
	}

	suffix := capability.path

	if capability.requiresID {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%s: %w", op, cosmic.ErrMissingIdentifier)
		}

		suffix = strings.ReplaceAll(suffix, "{id}", url.PathEscape(id))
	}

	if capability.requiresWriteKey && strings.TrimSpace(p.WriteKey) == "" {
		return nil, fmt.Errorf("%s: %w", op, cosmic.ErrWriteKeyRequired)
	}

	endpoint := &Endpoint{
		Operation: op,
		Method:    capability.method,
		Path:      "/" + constants.APIVersion + "/buckets/" + url.PathEscape(bucket) + suffix,
		Query:     url.Values{},
	}

	if capability.host == workersHost {
		endpoint.Path = r.workersURL + endpoint.Path
		endpoint.Absolute = true
	}

	if capability.readKey {
		endpoint.Query.Set("read_key", p.ReadKey)
	}

	if capability.requiresWriteKey {
		endpoint.Authorize = true
		endpoint.WriteKey = p.WriteKey

		if capability.host == primaryHost {
			endpoint.Query.Set("write_key", p.WriteKey)
		}
	}

	err := applyParams(endpoint.Query, capability.params, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return endpoint, nil
}

// applyParams emits optional parameters only when the caller supplied them.
// Blank strings are left in place; the request builder strips them.
func applyParams(query url.Values, accepted param, p Params) error {
	if accepted&paramQuery != 0 {
		filter, err := EncodeFilter(p.ObjectType, p.Query)
		if err != nil {
			return err
		}

		if filter != "" {
			query.Set("query", filter)
		}
	}

	if accepted&paramProps != 0 {
		query.Set("props", p.Props)
	}

	if accepted&paramLimit != 0 && p.Limit != nil {
		query.Set("limit", strconv.Itoa(*p.Limit))
	}

	if accepted&paramSkip != 0 && p.Skip != nil {
		query.Set("skip", strconv.Itoa(*p.Skip))
	}

	if accepted&paramSort != 0 {
		query.Set("sort", string(p.Sort))
	}

	if accepted&paramStatus != 0 {
		query.Set("status", string(p.Status))
	}

	if accepted&paramDepth != 0 && p.Depth != nil {
		query.Set("depth", strconv.Itoa(*p.Depth))
	}

	return nil
}

// EncodeFilter serializes the find filter: {"type": objectType} merged with
// the caller's conditions. The object type always wins over a caller
// supplied "type" key. It returns "" when there is neither a type nor a
// condition.
func EncodeFilter(objectType string, filter cosmic.QueryFilter) (string, error) {
	objectType = strings.TrimSpace(objectType)
	if objectType == "" && len(filter) == 0 {
		return "", nil
	}

	merged := make(map[string]any, len(filter)+1)
	for path, condition := range filter {
		merged[path] = condition
	}

	if objectType != "" {
		merged["type"] = objectType
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(merged)
	if err != nil {
		return "", fmt.Errorf("encoding query filter: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
