package model

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
	KindDate
	KindChoices
	KindLocation
)

// Value is the typed form of a raw submitted answer, resolved once at
// the type-validation boundary so the rest of the pipeline never sees
// an untyped blob.
type Value struct {
	kind     ValueKind
	text     string
	number   decimal.Decimal
	choices  []string
	location orb.Point
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func NumberValue(d decimal.Decimal) Value {
	return Value{kind: KindNumber, number: d}
}

func DateValue(s string) Value {
	return Value{kind: KindDate, text: s}
}

func ChoicesValue(cs []string) Value {
	return Value{kind: KindChoices, choices: cs}
}

// LocationValue carries a coordinate as an orb.Point (lng, lat order,
// as orb has it).
func LocationValue(p orb.Point) Value {
	return Value{kind: KindLocation, location: p}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Text() string { return v.text }

func (v Value) Number() decimal.Decimal { return v.number }

func (v Value) Choices() []string { return v.choices }

func (v Value) Location() orb.Point { return v.location }

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return v.number.String()
	case KindChoices:
		return strings.Join(v.choices, ", ")
	case KindLocation:
		return fmt.Sprintf("%v,%v", v.location.Lat(), v.location.Lon())
	default:
		return v.text
	}
}
