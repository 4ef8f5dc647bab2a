package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/freelyform/freelyform/model"
)

const dateLayout = "2006-01-02"

// Coerce resolves a raw submitted answer against the field's declared
// type, producing the typed value or a TypeMismatch error. The
// submission's own type tag plays no part here.
func Coerce(raw json.RawMessage, field model.Field) (model.Value, error) {
	switch field.Type {
	case model.TypeText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.Value{}, errorf(TypeMismatch, "answer %s is not a string", raw)
		}
		return model.TextValue(s), nil

	case model.TypeNumber:
		return coerceNumber(raw)

	case model.TypeDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.Value{}, errorf(TypeMismatch, "answer %s has not a valid date format", raw)
		}
		// time.Parse is lenient about zero padding, so require the
		// round trip to reproduce the input exactly.
		t, err := time.Parse(dateLayout, s)
		if err != nil || t.Format(dateLayout) != s {
			return model.Value{}, errorf(TypeMismatch, "answer %q has not a valid date format", s)
		}
		return model.DateValue(s), nil

	case model.TypeGeolocation:
		p, err := ParseLocation(raw)
		if err != nil {
			return model.Value{}, err
		}
		return model.LocationValue(p), nil

	case model.TypeMultipleChoice:
		var cs []string
		if err := json.Unmarshal(raw, &cs); err != nil {
			return model.Value{}, errorf(TypeMismatch, "answer %s is not a list of choices", raw)
		}
		for _, c := range cs {
			if !contains(field.Choices(), c) {
				return model.Value{}, errorf(TypeMismatch,
					"answer %q is not a valid choice for field %q", c, field.Label)
			}
		}
		return model.ChoicesValue(cs), nil
	}

	return model.Value{}, errorf(TypeMismatch, "field %q has unsupported type %q", field.Label, field.Type)
}

func coerceNumber(raw json.RawMessage) (model.Value, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return model.Value{}, errorf(TypeMismatch, "answer %s is not a valid number", raw)
	}

	var repr string
	switch n := v.(type) {
	case json.Number:
		repr = n.String()
	case string:
		repr = n
	default:
		return model.Value{}, errorf(TypeMismatch, "answer %s is not a valid number", raw)
	}

	d, err := decimal.NewFromString(repr)
	if err != nil {
		return model.Value{}, errorf(TypeMismatch, "answer %q is not a valid number", repr)
	}
	return model.NumberValue(d), nil
}

type latLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// ParseLocation reads a {lat, lng} object into an orb.Point. A JSON
// string holding such an object is unwrapped first. Coordinates are
// taken as provided, without range checks.
func ParseLocation(raw json.RawMessage) (orb.Point, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}

	var ll latLng
	if err := json.Unmarshal(raw, &ll); err != nil {
		return orb.Point{}, errorf(TypeMismatch, "answer %s is not a valid geolocation", raw)
	}
	if ll.Lat == nil || ll.Lng == nil {
		return orb.Point{}, errorf(TypeMismatch, "geolocation answer must contain both 'lat' and 'lng'")
	}
	return orb.Point{*ll.Lng, *ll.Lat}, nil
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}
