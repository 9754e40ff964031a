package cosmic_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

func TestValue_DecodeVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected cosmic.Kind
	}{
		{"null", `null`, cosmic.KindNull},
		{"bool", `true`, cosmic.KindBool},
		{"integer", `42`, cosmic.KindInt},
		{"negative integer", `-7`, cosmic.KindInt},
		{"fraction", `4.5`, cosmic.KindDouble},
		{"exponent", `1e3`, cosmic.KindDouble},
		{"integral double", `2.0`, cosmic.KindDouble},
		{"too large for int64", `18446744073709551616`, cosmic.KindDouble},
		{"string", `"hello"`, cosmic.KindString},
		{"string true stays string", `"true"`, cosmic.KindString},
		{"array", `[1, "a", null]`, cosmic.KindArray},
		{"object", `{"a": {"b": [true]}}`, cosmic.KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var value cosmic.Value

			require.NoError(t, json.Unmarshal([]byte(tt.input), &value))
			assert.Equal(t, tt.expected, value.Kind())
		})
	}
}

func TestValue_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`null`,
		`false`,
		`0`,
		`9223372036854775807`,
		`-1.25`,
		`3.0`,
		`1e-9`,
		`"<b>tags & quotes \" stay</b>"`,
		`[]`,
		`{}`,
		`[1, 2.5, "x", [true, null], {"k": "v"}]`,
		`{"z": 1, "a": {"nested": [1.0, 2]}, "m": "é"}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			var original cosmic.Value

			require.NoError(t, json.Unmarshal([]byte(input), &original))

			encoded, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded cosmic.Value

			require.NoError(t, json.Unmarshal(encoded, &decoded))
			assert.True(t, original.Equal(decoded), "%s != %s", original, decoded)
			assert.JSONEq(t, input, string(encoded))
		})
	}
}

func TestValue_EncodingIsStable(t *testing.T) {
	t.Parallel()

	value := cosmic.Map(map[string]cosmic.Value{
		"b":    cosmic.Double(1),
		"a":    cosmic.Int(1),
		"html": cosmic.String("<a>"),
	})

	encoded, err := value.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":1.0,"html":"<a>"}`, string(encoded))

	// encoding/json re-escapes HTML in Marshaler output unless told not to
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	require.NoError(t, encoder.Encode(value))
	assert.Equal(t, `{"a":1,"b":1.0,"html":"<a>"}`+"\n", buf.String())

	encoded, err = json.Marshal(value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":1.0,"html":"<a>"}`, string(encoded))
}

func TestValue_NonFinite(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(cosmic.Double(math.NaN()))
	require.ErrorIs(t, err, cosmic.ErrNonFiniteNumber)

	_, err = cosmic.ValueOf(math.Inf(1))
	require.ErrorIs(t, err, cosmic.ErrNonFiniteNumber)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	t.Run("strict accessors", func(t *testing.T) {
		t.Parallel()

		value := cosmic.Int(3)

		i, ok := value.AsInt()
		assert.True(t, ok)
		assert.Equal(t, int64(3), i)

		_, ok = value.AsDouble()
		assert.False(t, ok)

		number, ok := value.AsNumber()
		assert.True(t, ok)
		assert.InDelta(t, 3.0, number, 0)

		_, ok = value.AsString()
		assert.False(t, ok)

		_, ok = cosmic.String("true").AsBool()
		assert.False(t, ok)
	})

	t.Run("lookup and index", func(t *testing.T) {
		t.Parallel()

		value := cosmic.MustValueOf(map[string]any{
			"tags": []any{"go", "cms"},
			"meta": map[string]any{"count": 2},
		})

		tags, ok := value.Lookup("tags")
		require.True(t, ok)
		assert.Equal(t, 2, tags.Len())

		second, ok := tags.Index(1)
		require.True(t, ok)

		text, ok := second.AsString()
		assert.True(t, ok)
		assert.Equal(t, "cms", text)

		_, ok = tags.Index(5)
		assert.False(t, ok)

		_, ok = value.Lookup("missing")
		assert.False(t, ok)

		_, ok = cosmic.Int(1).Lookup("x")
		assert.False(t, ok)
	})

	t.Run("copies are independent", func(t *testing.T) {
		t.Parallel()

		value := cosmic.Array(cosmic.Int(1))

		items, ok := value.AsArray()
		require.True(t, ok)

		items[0] = cosmic.Int(99)

		first, _ := value.Index(0)
		i, _ := first.AsInt()
		assert.Equal(t, int64(1), i)
	})

	t.Run("typed collections", func(t *testing.T) {
		t.Parallel()

		value := cosmic.Array(cosmic.String("a"), cosmic.String("b"))

		strs, ok := cosmic.ArrayOf(value, cosmic.Value.AsString)
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, strs)

		_, ok = cosmic.ArrayOf(cosmic.Array(cosmic.String("a"), cosmic.Int(1)), cosmic.Value.AsString)
		assert.False(t, ok)

		counts, ok := cosmic.MapOf(cosmic.MustValueOf(map[string]any{"x": 1, "y": 2}), cosmic.Value.AsInt)
		assert.True(t, ok)
		assert.Equal(t, map[string]int64{"x": 1, "y": 2}, counts)
	})
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	type sample struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	value, err := cosmic.ValueOf(sample{Name: "widget", Price: 9.5})
	require.NoError(t, err)
	assert.Equal(t, cosmic.KindObject, value.Kind())

	price, ok := value.Lookup("price")
	require.True(t, ok)

	f, ok := price.AsDouble()
	assert.True(t, ok)
	assert.InDelta(t, 9.5, f, 0)

	_, err = cosmic.ValueOf(make(chan int))
	require.ErrorIs(t, err, cosmic.ErrUnrepresentableValue)
}

func TestValue_Interface(t *testing.T) {
	t.Parallel()

	value := cosmic.MustValueOf(map[string]any{"n": 1, "f": 1.5, "list": []any{true}})

	assert.Equal(t, map[string]any{
		"n":    int64(1),
		"f":    1.5,
		"list": []any{true},
	}, value.Interface())
}

func TestValue_MarshalYAML(t *testing.T) {
	t.Parallel()

	value := cosmic.MustValueOf(map[string]any{"title": "Hello", "count": 3})

	out, err := yaml.Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, "count: 3\ntitle: Hello\n", string(out))
}
