package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelyform/freelyform/model"
)

func field(t model.FieldType) model.Field {
	return model.Field{Label: "f", Type: t}
}

func choiceField(choices ...string) model.Field {
	return model.Field{
		Label:   "f",
		Type:    model.TypeMultipleChoice,
		Options: &model.Options{Choices: choices},
	}
}

func TestCoerceText(t *testing.T) {
	v, err := Coerce(json.RawMessage(`"hello"`), field(model.TypeText))
	require.NoError(t, err)
	assert.Equal(t, model.KindText, v.Kind())
	assert.Equal(t, "hello", v.Text())

	_, err = Coerce(json.RawMessage(`42`), field(model.TypeText))
	assertKind(t, err, TypeMismatch)
}

func TestCoerceNumber(t *testing.T) {
	accepted := []string{`"42"`, `"42.5"`, `"-3"`, `42`, `42.5`, `-3`}
	for _, raw := range accepted {
		v, err := Coerce(json.RawMessage(raw), field(model.TypeNumber))
		require.NoErrorf(t, err, "raw=%s", raw)
		assert.Equal(t, model.KindNumber, v.Kind())
	}

	rejected := []string{`"abc"`, `""`, `true`, `[1]`}
	for _, raw := range rejected {
		_, err := Coerce(json.RawMessage(raw), field(model.TypeNumber))
		assertKind(t, err, TypeMismatch)
	}
}

func TestCoerceNumberKeepsPrecision(t *testing.T) {
	v, err := Coerce(json.RawMessage(`"123456789012345678901234567890.5"`), field(model.TypeNumber))
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890.5", v.Number().String())
}

func TestCoerceDate(t *testing.T) {
	v, err := Coerce(json.RawMessage(`"2024-01-15"`), field(model.TypeDate))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", v.Text())

	rejected := []string{`"2024/01/15"`, `"15-01-2024"`, `"2024-1-15"`, `"2024-01-15T00:00:00"`, `"2024-02-30"`, `42`}
	for _, raw := range rejected {
		_, err := Coerce(json.RawMessage(raw), field(model.TypeDate))
		assertKind(t, err, TypeMismatch)
	}
}

func TestCoerceGeolocation(t *testing.T) {
	v, err := Coerce(json.RawMessage(`{"lat": 45.5, "lng": -73.5}`), field(model.TypeGeolocation))
	require.NoError(t, err)
	assert.Equal(t, 45.5, v.Location().Lat())
	assert.Equal(t, -73.5, v.Location().Lon())

	// a JSON string holding the object is unwrapped
	_, err = Coerce(json.RawMessage(`"{\"lat\": 45.5, \"lng\": -73.5}"`), field(model.TypeGeolocation))
	assert.NoError(t, err)

	// out-of-range coordinates are accepted as provided
	_, err = Coerce(json.RawMessage(`{"lat": 1000, "lng": -2000}`), field(model.TypeGeolocation))
	assert.NoError(t, err)

	rejected := []string{`{"lat": 45.5}`, `{"lng": -73.5}`, `{"lat": "x", "lng": 1}`, `42`}
	for _, raw := range rejected {
		_, err := Coerce(json.RawMessage(raw), field(model.TypeGeolocation))
		assertKind(t, err, TypeMismatch)
	}
}

func TestCoerceMultipleChoice(t *testing.T) {
	f := choiceField("A", "B")

	v, err := Coerce(json.RawMessage(`["A"]`), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, v.Choices())

	_, err = Coerce(json.RawMessage(`["A", "B"]`), f)
	assert.NoError(t, err)

	_, err = Coerce(json.RawMessage(`["C"]`), f)
	assertKind(t, err, TypeMismatch)

	// a bare string is not a sequence
	_, err = Coerce(json.RawMessage(`"A"`), f)
	assertKind(t, err, TypeMismatch)
}

func TestCoerceIsIdempotent(t *testing.T) {
	raw := json.RawMessage(`"42.5"`)
	f := field(model.TypeNumber)

	first, err1 := Coerce(raw, f)
	second, err2 := Coerce(raw, f)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.Truef(t, ok, "not a validation error: %v", err)
	assert.Equal(t, want, kind, "error: %v", err)
}
