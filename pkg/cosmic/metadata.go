package cosmic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Wire keys probed when decoding an object's custom fields.
const (
	MetadataKey         = "metadata"
	LegacyMetafieldsKey = "metafields"
)

// ErrInvalidMetadataShape is returned when metadata is neither a JSON array
// nor a JSON object.
var ErrInvalidMetadataShape = errors.New("metadata must be a JSON array or object")

// MetafieldType is the wire name of a metafield's type.
type MetafieldType string

const (
	MetafieldText           MetafieldType = "text"
	MetafieldTextarea       MetafieldType = "textarea"
	MetafieldHTMLTextarea   MetafieldType = "html-textarea"
	MetafieldMarkdown       MetafieldType = "markdown"
	MetafieldSelectDropdown MetafieldType = "select-dropdown"
	MetafieldObject         MetafieldType = "object"
	MetafieldObjects        MetafieldType = "objects"
	MetafieldFile           MetafieldType = "file"
	MetafieldFiles          MetafieldType = "files"
	MetafieldDate           MetafieldType = "date"
	MetafieldJSON           MetafieldType = "json"
	MetafieldRadioButtons   MetafieldType = "radio-buttons"
	MetafieldCheckBoxes     MetafieldType = "check-boxes"
	MetafieldSwitch         MetafieldType = "switch"
	MetafieldColor          MetafieldType = "color"
	MetafieldParent         MetafieldType = "parent"
	MetafieldRepeater       MetafieldType = "repeater"
)

// Known reports whether t is one of the metafield types this package knows.
// Unknown types still decode.
func (t MetafieldType) Known() bool {
	switch t {
	case MetafieldText, MetafieldTextarea, MetafieldHTMLTextarea, MetafieldMarkdown,
		MetafieldSelectDropdown, MetafieldObject, MetafieldObjects, MetafieldFile,
		MetafieldFiles, MetafieldDate, MetafieldJSON, MetafieldRadioButtons,
		MetafieldCheckBoxes, MetafieldSwitch, MetafieldColor, MetafieldParent,
		MetafieldRepeater:
		return true
	default:
		return false
	}
}

// MetafieldOption is one choice of a select, radio or check-box field.
type MetafieldOption struct {
	Key   *string `json:"key,omitempty"   yaml:"key,omitempty"`
	Value string  `json:"value"           yaml:"value"`
}

// RepeaterField describes one sub-field of a repeater metafield.
type RepeaterField struct {
	Title    string        `json:"title"              yaml:"title"`
	Key      string        `json:"key"                yaml:"key"`
	Value    *Value        `json:"value,omitempty"    yaml:"value,omitempty"`
	Type     MetafieldType `json:"type"               yaml:"type"`
	Required *bool         `json:"required,omitempty" yaml:"required,omitempty"`
}

// Metafield is a typed custom field descriptor.
type Metafield struct {
	Type           MetafieldType     `json:"type"                      yaml:"type"`
	Title          string            `json:"title"                     yaml:"title"`
	Key            string            `json:"key"                       yaml:"key"`
	Value          *Value            `json:"value,omitempty"           yaml:"value,omitempty"`
	Required       *bool             `json:"required,omitempty"        yaml:"required,omitempty"`
	Options        []MetafieldOption `json:"options,omitempty"         yaml:"options,omitempty"`
	ObjectType     *string           `json:"object_type,omitempty"     yaml:"object_type,omitempty"`
	Children       []Metafield       `json:"children,omitempty"        yaml:"children,omitempty"`
	RepeaterFields []RepeaterField   `json:"repeater_fields,omitempty" yaml:"repeater_fields,omitempty"`
}

// UnmarshalJSON decodes the descriptor and its value. A null value decodes
// to nil.
func (m *Metafield) UnmarshalJSON(data []byte) error {
	type metafieldAlias Metafield

	aux := struct {
		*metafieldAlias

		Value json.RawMessage `json:"value"`
	}{metafieldAlias: (*metafieldAlias)(m)}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return fmt.Errorf("decoding metafield: %w", err)
	}

	value, err := decodeFieldValue(aux.Value)
	if err != nil {
		return fmt.Errorf("decoding metafield %q value: %w", m.Key, err)
	}

	m.Value = value

	return nil
}

// decodeFieldValue returns nil for an absent or null value. The declared
// type never changes the JSON type of the value: an array, object or bool
// stays one, and so does a string such as "true" or "".
func decodeFieldValue(raw json.RawMessage) (*Value, error) {
	if isAbsent(raw) {
		return nil, nil //nolint:nilnil // absent value
	}

	var value Value

	err := json.Unmarshal(raw, &value)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// MetadataShape tells which representation a Metadata holds.
type MetadataShape int

const (
	// MetadataFields is the list-of-descriptors representation.
	MetadataFields MetadataShape = iota + 1
	// MetadataValues is the free-form key/value representation.
	MetadataValues
)

// Metadata is the custom-field payload of an object in either of its two
// wire shapes. It always encodes in its own shape: an array for Fields, an
// object for Values.
type Metadata struct {
	shape  MetadataShape
	fields []Metafield
	values map[string]Value
}

// FieldsMetadata builds descriptor-list metadata.
func FieldsMetadata(fields []Metafield) *Metadata {
	list := make([]Metafield, len(fields))
	copy(list, fields)

	return &Metadata{shape: MetadataFields, fields: list}
}

// ValuesMetadata builds key/value metadata.
func ValuesMetadata(values map[string]Value) *Metadata {
	members := make(map[string]Value, len(values))
	for key, value := range values {
		members[key] = value
	}

	return &Metadata{shape: MetadataValues, values: members}
}

// DecodeMetadata reads metadata out of a decoded JSON object. primaryKey is
// probed first and legacyKey second; a null member counts as missing. It
// returns nil when neither key carries a value.
func DecodeMetadata(raw map[string]json.RawMessage, primaryKey, legacyKey string) (*Metadata, error) {
	for _, key := range []string{primaryKey, legacyKey} {
		member, ok := raw[key]
		if !ok || isAbsent(member) {
			continue
		}

		var metadata Metadata

		err := metadata.UnmarshalJSON(member)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}

		return &metadata, nil
	}

	return nil, nil //nolint:nilnil // no metadata present
}

// Shape returns the representation held by m.
func (m *Metadata) Shape() MetadataShape {
	if m == nil {
		return 0
	}

	return m.shape
}

// Fields returns the descriptors when m is in the Fields shape.
func (m *Metadata) Fields() ([]Metafield, bool) {
	if m == nil || m.shape != MetadataFields {
		return nil, false
	}

	list := make([]Metafield, len(m.fields))
	copy(list, m.fields)

	return list, true
}

// Values returns the raw members when m is in the Values shape.
func (m *Metadata) Values() (map[string]Value, bool) {
	if m == nil || m.shape != MetadataValues {
		return nil, false
	}

	members := make(map[string]Value, len(m.values))
	for key, value := range m.values {
		members[key] = value
	}

	return members, true
}

// Len returns the number of fields or members.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}

	if m.shape == MetadataFields {
		return len(m.fields)
	}

	return len(m.values)
}

// Lookup returns the value stored under key. For descriptor lists the first
// descriptor with a matching key wins; a descriptor without a value is
// reported as missing.
func (m *Metadata) Lookup(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	switch m.shape {
	case MetadataFields:
		for _, field := range m.fields {
			if field.Key != key {
				continue
			}

			if field.Value == nil {
				return Value{}, false
			}

			return *field.Value, true
		}
	case MetadataValues:
		value, ok := m.values[key]

		return value, ok
	}

	return Value{}, false
}

// Exists reports whether key is present with a value.
func (m *Metadata) Exists(key string) bool {
	_, ok := m.Lookup(key)

	return ok
}

// String returns the string stored under key.
func (m *Metadata) String(key string) (string, bool) {
	value, ok := m.Lookup(key)
	if !ok {
		return "", false
	}

	return value.AsString()
}

// Int returns the integer stored under key.
func (m *Metadata) Int(key string) (int64, bool) {
	value, ok := m.Lookup(key)
	if !ok {
		return 0, false
	}

	return value.AsInt()
}

// Bool returns the boolean stored under key.
func (m *Metadata) Bool(key string) (bool, bool) {
	value, ok := m.Lookup(key)
	if !ok {
		return false, false
	}

	return value.AsBool()
}

// Double returns the floating point number stored under key.
func (m *Metadata) Double(key string) (float64, bool) {
	value, ok := m.Lookup(key)
	if !ok {
		return 0, false
	}

	return value.AsDouble()
}

// ToMap projects m onto a key/value map. Descriptors without a value are
// skipped and, for duplicated keys, the first descriptor wins. It returns nil
// when there is nothing to project.
func (m *Metadata) ToMap() map[string]Value {
	if m == nil {
		return nil
	}

	out := make(map[string]Value)

	switch m.shape {
	case MetadataFields:
		for _, field := range m.fields {
			if field.Value == nil {
				continue
			}

			if _, seen := out[field.Key]; seen {
				continue
			}

			out[field.Key] = *field.Value
		}
	case MetadataValues:
		for key, value := range m.values {
			out[key] = value
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// MarshalJSON implements json.Marshaler.
func (m Metadata) MarshalJSON() ([]byte, error) {
	switch m.shape {
	case MetadataFields:
		fields := m.fields
		if fields == nil {
			fields = []Metafield{}
		}

		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encoding metafields: %w", err)
		}

		return data, nil
	default:
		data, err := Map(m.values).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding metadata values: %w", err)
		}

		return data, nil
	}
}

// UnmarshalJSON infers the shape from the JSON: an array becomes Fields, an
// object becomes Values.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrInvalidMetadataShape
	}

	switch trimmed[0] {
	case '[':
		var fields []Metafield

		err := json.Unmarshal(trimmed, &fields)
		if err != nil {
			return fmt.Errorf("decoding metafields: %w", err)
		}

		*m = *FieldsMetadata(fields)
	case '{':
		var value Value

		err := json.Unmarshal(trimmed, &value)
		if err != nil {
			return fmt.Errorf("decoding metadata values: %w", err)
		}

		members, _ := value.AsObject()
		*m = *ValuesMetadata(members)
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidMetadataShape, firstToken(trimmed))
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Metadata) MarshalYAML() (interface{}, error) {
	if m.shape == MetadataFields {
		return m.fields, nil
	}

	return Map(m.values).Interface(), nil
}

func firstToken(data []byte) string {
	const maxLen = 16
	if len(data) > maxLen {
		return string(data[:maxLen]) + "..."
	}

	return string(data)
}
