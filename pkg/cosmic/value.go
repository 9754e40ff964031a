package cosmic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrUnrepresentableValue = errors.New("value cannot be represented as JSON")
	ErrNonFiniteNumber      = errors.New("non-finite number cannot be encoded")
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable tagged union able to hold any JSON value. The zero
// Value is null.
//
// Decoding picks exactly one variant per JSON token: true/false become Bool,
// integral numbers that fit in 64 bits become Int, every other number becomes
// Double, strings stay String (a "true" string is never a Bool), arrays and
// objects recurse. Encoding reproduces the same shape, so decoding an encoded
// Value yields an equal Value.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double wraps a floating point number.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)

	return Value{kind: KindArray, arr: arr}
}

// Map wraps a map of values.
func Map(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for key, member := range members {
		obj[key] = member
	}

	return Value{kind: KindObject, obj: obj}
}

// ValueOf converts a Go value into a Value. Native JSON-like types are
// converted directly; anything else goes through encoding/json first.
func ValueOf(input any) (Value, error) {
	switch typed := input.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case *Value:
		if typed == nil {
			return Null(), nil
		}

		return *typed, nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case float32:
		return ValueOf(float64(typed))
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return Value{}, fmt.Errorf("%w: %v", ErrNonFiniteNumber, typed)
		}

		return Double(typed), nil
	case string:
		return String(typed), nil
	case json.Number:
		return numberValue(typed)
	case []any:
		arr := make([]Value, 0, len(typed))

		for index, item := range typed {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", index, err)
			}

			arr = append(arr, converted)
		}

		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(typed))

		for key, item := range typed {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			obj[key] = converted
		}

		return Value{kind: KindObject, obj: obj}, nil
	}

	data, err := json.Marshal(input)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrUnrepresentableValue, err)
	}

	var value Value

	err = json.Unmarshal(data, &value)
	if err != nil {
		return Value{}, err
	}

	return value, nil
}

// MustValueOf is like ValueOf but panics on error. Intended for literals in
// tests and examples.
func MustValueOf(input any) Value {
	value, err := ValueOf(input)
	if err != nil {
		panic(err)
	}

	return value
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

// AsInt returns the integer held by v. Doubles are not truncated.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}

	return v.i, true
}

// AsDouble returns the floating point number held by v. Integers are not
// widened; use AsNumber for that.
func (v Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}

	return v.f, true
}

// AsNumber returns v as a float64 when it is either an Int or a Double.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindDouble:
		return v.f, true
	default:
		return 0, false
	}
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.s, true
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return slices.Clone(v.arr), true
}

// AsObject returns a copy of the members held by v.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	obj := make(map[string]Value, len(v.obj))
	for key, member := range v.obj {
		obj[key] = member
	}

	return obj, true
}

// Lookup returns the member named key when v is an object.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	member, ok := v.obj[key]

	return member, ok
}

// Index returns the element at position i when v is an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}

	return v.arr[i], true
}

// Len returns the number of elements or members, or zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// ArrayOf converts every element of an array value with conv. It fails as a
// whole if v is not an array or any element does not convert.
func ArrayOf[T any](v Value, conv func(Value) (T, bool)) ([]T, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	out := make([]T, 0, len(v.arr))

	for _, item := range v.arr {
		converted, ok := conv(item)
		if !ok {
			return nil, false
		}

		out = append(out, converted)
	}

	return out, true
}

// MapOf converts every member of an object value with conv.
func MapOf[T any](v Value, conv func(Value) (T, bool)) (map[string]T, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	out := make(map[string]T, len(v.obj))

	for key, item := range v.obj {
		converted, ok := conv(item)
		if !ok {
			return nil, false
		}

		out[key] = converted
	}

	return out, true
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for index, item := range v.arr {
			out[index] = item.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for key, item := range v.obj {
			out[key] = item.Interface()
		}

		return out
	default:
		return nil
	}
}

// Equal reports whether v and other hold the same variant and contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindDouble:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}

		for key, member := range v.obj {
			otherMember, ok := other.obj[key]
			if !ok || !member.Equal(otherMember) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(data)
}

// MarshalJSON implements json.Marshaler. Object members are written in key
// order and integral doubles keep a fractional part.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.encode(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindDouble:
		text, err := formatDouble(v.f)
		if err != nil {
			return err
		}

		buf.WriteString(text)
	case KindString:
		return writeJSONString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')

		for index, item := range v.arr {
			if index > 0 {
				buf.WriteByte(',')
			}

			err := item.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')

		keys := make([]string, 0, len(v.obj))
		for key := range v.obj {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		for index, key := range keys {
			if index > 0 {
				buf.WriteByte(',')
			}

			err := writeJSONString(buf, key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = v.obj[key].encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: kind %s", ErrUnrepresentableValue, v.kind)
	}

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var encoded bytes.Buffer

	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(s)
	if err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}

	buf.Write(bytes.TrimSuffix(encoded.Bytes(), []byte("\n")))

	return nil
}

// formatDouble mirrors encoding/json float formatting, then forces a
// fractional part so the number decodes back as a Double.
func formatDouble(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrNonFiniteNumber, f)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	text := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}

	return text, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any

	err := decoder.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decoding dynamic value: %w", err)
	}

	decoded, err := fromDecoded(raw)
	if err != nil {
		return err
	}

	*v = decoded

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

func fromDecoded(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(typed), nil
	case json.Number:
		return numberValue(typed)
	case string:
		return String(typed), nil
	case []any:
		arr := make([]Value, 0, len(typed))

		for _, item := range typed {
			converted, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}

			arr = append(arr, converted)
		}

		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(typed))

		for key, item := range typed {
			converted, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}

			obj[key] = converted
		}

		return Value{kind: KindObject, obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnrepresentableValue, raw)
	}
}

func numberValue(number json.Number) (Value, error) {
	if i, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
		return Int(i), nil
	}

	f, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: number %s: %w", ErrUnrepresentableValue, number, err)
	}

	return Double(f), nil
}
