package request

import (
	"strings"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// DraftBody turns an object draft into the insert/update payload. Blank
// fields are omitted. Scheduling a publish or unpublish time forces the
// status to draft, whatever status the caller asked for.
func DraftBody(draft *cosmic.ObjectDraft) map[string]any {
	body := make(map[string]any)
	if draft == nil {
		return body
	}

	setString(body, "type", draft.Type)
	setString(body, "title", draft.Title)
	setString(body, "slug", draft.Slug)
	setString(body, "content", draft.Content)
	setString(body, "thumbnail", draft.Thumbnail)
	setString(body, "locale", draft.Locale)
	setString(body, "publish_at", draft.PublishAt)
	setString(body, "unpublish_at", draft.UnpublishAt)

	if len(draft.Metadata) > 0 {
		body["metadata"] = draft.Metadata
	}

	switch {
	case strings.TrimSpace(draft.PublishAt) != "" || strings.TrimSpace(draft.UnpublishAt) != "":
		body["status"] = string(cosmic.StatusDraft)
	case strings.TrimSpace(string(draft.Status)) != "":
		body["status"] = string(draft.Status)
	}

	return body
}

func setString(body map[string]any, key, value string) {
	if strings.TrimSpace(value) != "" {
		body[key] = value
	}
}
