package cosmic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTimestamp is returned when a timestamp is neither a JSON string
// nor a JSON number.
var ErrInvalidTimestamp = errors.New("timestamp must be a JSON string or number")

// Timestamp is a date or time as transmitted by the service. The service
// sends either an ISO string or an epoch number; both decode into the same
// string form, numbers keeping their literal text.
type Timestamp string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*t = ""
	case trimmed[0] == '"':
		var text string

		err := json.Unmarshal(trimmed, &text)
		if err != nil {
			return fmt.Errorf("decoding timestamp: %w", err)
		}

		*t = Timestamp(text)
	default:
		var number json.Number

		err := json.Unmarshal(trimmed, &number)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTimestamp, firstToken(trimmed))
		}

		*t = Timestamp(number.String())
	}

	return nil
}

// String returns the canonical text.
func (t Timestamp) String() string { return string(t) }

// Status is the publication status of an object.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	// StatusAny is only meaningful as a find filter.
	StatusAny Status = "any"
)

// Sort is a server-side ordering for find.
type Sort string

const (
	SortCreatedAt      Sort = "created_at"
	SortCreatedAtDesc  Sort = "-created_at"
	SortModifiedAt     Sort = "modified_at"
	SortModifiedAtDesc Sort = "-modified_at"
	SortRandom         Sort = "random"
	SortOrder          Sort = "order"
)

// Object is a content record as returned by the service.
type Object struct {
	ID          string    `json:"id,omitempty"           yaml:"id,omitempty"`
	Slug        string    `json:"slug,omitempty"         yaml:"slug,omitempty"`
	Title       string    `json:"title"                  yaml:"title"`
	Content     string    `json:"content,omitempty"      yaml:"content,omitempty"`
	Bucket      string    `json:"bucket,omitempty"       yaml:"bucket,omitempty"`
	CreatedAt   Timestamp `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"   yaml:"created_by,omitempty"`
	ModifiedAt  Timestamp `json:"modified_at,omitempty"  yaml:"modified_at,omitempty"`
	ModifiedBy  string    `json:"modified_by,omitempty"  yaml:"modified_by,omitempty"`
	Status      Status    `json:"status,omitempty"       yaml:"status,omitempty"`
	PublishedAt Timestamp `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	PublishAt   Timestamp `json:"publish_at,omitempty"   yaml:"publish_at,omitempty"`
	UnpublishAt Timestamp `json:"unpublish_at,omitempty" yaml:"unpublish_at,omitempty"`
	Type        string    `json:"type,omitempty"         yaml:"type,omitempty"`
	Locale      string    `json:"locale,omitempty"       yaml:"locale,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"    yaml:"thumbnail,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
}

// UnmarshalJSON reads custom fields from "metadata", falling back to the
// legacy "metafields" key.
func (o *Object) UnmarshalJSON(data []byte) error {
	type objectAlias Object

	aux := struct {
		*objectAlias

		Metadata   json.RawMessage `json:"metadata"`
		Metafields json.RawMessage `json:"metafields"`
	}{objectAlias: (*objectAlias)(o)}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return fmt.Errorf("decoding object: %w", err)
	}

	metadata, err := DecodeMetadata(map[string]json.RawMessage{
		MetadataKey:         aux.Metadata,
		LegacyMetafieldsKey: aux.Metafields,
	}, MetadataKey, LegacyMetafieldsKey)
	if err != nil {
		return fmt.Errorf("decoding object %q: %w", o.ID, err)
	}

	o.Metadata = metadata

	return nil
}

// ObjectsResponse is the result of find and search.
type ObjectsResponse struct {
	Objects []Object `json:"objects"         yaml:"objects"`
	Total   int      `json:"total,omitempty" yaml:"total,omitempty"`
	Limit   int      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Skip    int      `json:"skip,omitempty"  yaml:"skip,omitempty"`
}

// ObjectResponse is the result of findOne.
type ObjectResponse struct {
	Object Object `json:"object" yaml:"object"`
}

// MutationResponse is returned by insert, update and delete.
type MutationResponse struct {
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
	Object  *Object `json:"object,omitempty"  yaml:"object,omitempty"`
}

// ObjectDraft is the writable subset of an object used as an insert or
// update body. Blank fields are left out of the request.
type ObjectDraft struct {
	Type        string
	Title       string
	Slug        string
	Content     string
	Metadata    map[string]any
	Status      Status
	PublishAt   string
	UnpublishAt string
	Thumbnail   string
	Locale      string
}

// Media is an uploaded file.
type Media struct {
	ID           string           `json:"id"                      yaml:"id"`
	Name         string           `json:"name"                    yaml:"name"`
	OriginalName string           `json:"original_name,omitempty" yaml:"original_name,omitempty"`
	Size         int64            `json:"size,omitempty"          yaml:"size,omitempty"`
	Type         string           `json:"type,omitempty"          yaml:"type,omitempty"`
	Bucket       string           `json:"bucket,omitempty"        yaml:"bucket,omitempty"`
	CreatedAt    Timestamp        `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
	Folder       string           `json:"folder,omitempty"        yaml:"folder,omitempty"`
	AltText      string           `json:"alt_text,omitempty"      yaml:"alt_text,omitempty"`
	Width        *int             `json:"width,omitempty"         yaml:"width,omitempty"`
	Height       *int             `json:"height,omitempty"        yaml:"height,omitempty"`
	URL          string           `json:"url"                     yaml:"url"`
	ImgixURL     string           `json:"imgix_url,omitempty"     yaml:"imgix_url,omitempty"`
	Metadata     map[string]Value `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
}

// MediaList is the result of listing media.
type MediaList struct {
	Media []Media `json:"media"           yaml:"media"`
	Total int     `json:"total"           yaml:"total"`
	Limit int     `json:"limit,omitempty" yaml:"limit,omitempty"`
	Skip  int     `json:"skip,omitempty"  yaml:"skip,omitempty"`
}

// MediaResponse wraps a single media record. Both {"media": {...}} and a
// bare media record decode.
type MediaResponse struct {
	Media Media `json:"media" yaml:"media"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *MediaResponse) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Media json.RawMessage `json:"media"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return fmt.Errorf("decoding media response: %w", err)
	}

	body := data

	trimmed := bytes.TrimSpace(envelope.Media)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		body = trimmed
	}

	err = json.Unmarshal(body, &r.Media)
	if err != nil {
		return fmt.Errorf("decoding media: %w", err)
	}

	return nil
}

// MediaUpload is a file to upload.
type MediaUpload struct {
	Filename string
	Data     []byte
	// ContentType overrides detection from the file extension.
	ContentType string
	Folder      string
	Metadata    map[string]any
}

// ObjectRevision is one saved version of an object.
type ObjectRevision struct {
	ID         string           `json:"id"                 yaml:"id"`
	Type       string           `json:"type,omitempty"     yaml:"type,omitempty"`
	Title      string           `json:"title"              yaml:"title"`
	Content    string           `json:"content,omitempty"  yaml:"content,omitempty"`
	Metadata   map[string]Value `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Status     Status           `json:"status,omitempty"   yaml:"status,omitempty"`
	CreatedAt  Timestamp        `json:"created_at"         yaml:"created_at"`
	ModifiedAt Timestamp        `json:"modified_at"        yaml:"modified_at"`
}

// RevisionsResponse lists the revisions of an object.
type RevisionsResponse struct {
	Revisions []ObjectRevision `json:"revisions" yaml:"revisions"`
	Total     int              `json:"total"     yaml:"total"`
}

// BucketSettings are the editable settings of a bucket.
type BucketSettings struct {
	Title           string            `json:"title,omitempty"             yaml:"title,omitempty"`
	Description     string            `json:"description,omitempty"       yaml:"description,omitempty"`
	Icon            string            `json:"icon,omitempty"              yaml:"icon,omitempty"`
	Website         string            `json:"website,omitempty"           yaml:"website,omitempty"`
	ObjectsWriteKey string            `json:"objects_write_key,omitempty" yaml:"objects_write_key,omitempty"`
	MediaWriteKey   string            `json:"media_write_key,omitempty"   yaml:"media_write_key,omitempty"`
	DeployHook      string            `json:"deploy_hook,omitempty"       yaml:"deploy_hook,omitempty"`
	Env             map[string]string `json:"env,omitempty"               yaml:"env,omitempty"`
}

// BucketResponse is the result of getting a bucket.
type BucketResponse struct {
	Bucket BucketSettings `json:"bucket" yaml:"bucket"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// User is a member of a bucket.
type User struct {
	ID         string    `json:"id"                    yaml:"id"`
	FirstName  string    `json:"first_name,omitempty"  yaml:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"   yaml:"last_name,omitempty"`
	Email      string    `json:"email"                 yaml:"email"`
	Role       string    `json:"role"                  yaml:"role"`
	Status     string    `json:"status,omitempty"      yaml:"status,omitempty"`
	CreatedAt  Timestamp `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	ModifiedAt Timestamp `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UsersResponse lists bucket users.
type UsersResponse struct {
	Users []User `json:"users" yaml:"users"`
	Total int    `json:"total" yaml:"total"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User User `json:"user" yaml:"user"`
}

// Webhook is a registered event callback.
type Webhook struct {
	ID         string    `json:"id"                    yaml:"id"`
	Event      string    `json:"event"                 yaml:"event"`
	Endpoint   string    `json:"endpoint"              yaml:"endpoint"`
	CreatedAt  Timestamp `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	ModifiedAt Timestamp `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
}

// WebhooksResponse lists webhooks.
type WebhooksResponse struct {
	Webhooks []Webhook `json:"webhooks" yaml:"webhooks"`
	Total    int       `json:"total"    yaml:"total"`
}

// Image generation defaults.
const (
	DefaultImageSize    = "1024x1024"
	DefaultImageQuality = "standard"
	DefaultImageStyle   = "vivid"
)

// TextPrompt is the body of a text generation request.
type TextPrompt struct {
	Prompt string `json:"prompt"`
}

// ImagePrompt is the body of an image generation request.
type ImagePrompt struct {
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

// NewImagePrompt returns a prompt with the default size, quality and style.
func NewImagePrompt(prompt string) *ImagePrompt {
	return &ImagePrompt{
		Prompt:  prompt,
		Size:    DefaultImageSize,
		Quality: DefaultImageQuality,
		Style:   DefaultImageStyle,
	}
}

// AITextResponse is the result of text generation.
type AITextResponse struct {
	Text  string           `json:"text"            yaml:"text"`
	Usage map[string]Value `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// AIImageResponse is the result of image generation. The generated image is
// stored as bucket media.
type AIImageResponse struct {
	Media         *Media `json:"media,omitempty"          yaml:"media,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty" yaml:"revised_prompt,omitempty"`
}
