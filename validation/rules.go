package validation

import (
	"strconv"
	"unicode/utf8"

	"github.com/freelyform/freelyform/model"
)

// RuleFunc validates a typed value against one constraint rule. The
// rule's string parameter, if any, comes in as param.
type RuleFunc func(v model.Value, field model.Field, param string) error

var rules = map[model.RuleType]RuleFunc{}

// RegisterRule adds a validator under a rule identifier. Built-ins are
// registered at init; callers may add their own before serving.
func RegisterRule(t model.RuleType, fn RuleFunc) {
	rules[t] = fn
}

// KnownRule reports whether a rule identifier has a registered
// validator. Prefabs carrying unknown identifiers are rejected at save
// time, not at match time.
func KnownRule(t model.RuleType) bool {
	_, ok := rules[t]
	return ok
}

func init() {
	RegisterRule(model.RuleMaxLength, maxLength)
	RegisterRule(model.RuleIsMultipleChoice, isMultipleChoice)
	// IS_RADIO only marks a field as single-select for the annotator;
	// it rejects nothing at validation time.
	RegisterRule(model.RuleIsRadio, func(model.Value, model.Field, string) error { return nil })
}

// applyRules runs the field's rules in the order the field declares
// them. The first violation aborts.
func applyRules(v model.Value, field model.Field) error {
	for _, r := range field.ValidationRules {
		fn, ok := rules[r.Type]
		if !ok {
			return errorf(RuleViolation, "field %q carries unknown rule %q", field.Label, r.Type)
		}
		if err := fn(v, field, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func maxLength(v model.Value, field model.Field, param string) error {
	max, err := strconv.Atoi(param)
	if err != nil {
		return errorf(RuleViolation, "field %q has a bad MAX_LENGTH parameter %q", field.Label, param)
	}
	if v.Kind() != model.KindText {
		return errorf(RuleViolation, "MAX_LENGTH applies to text, field %q is not text", field.Label)
	}
	if utf8.RuneCountInString(v.Text()) > max {
		return errorf(RuleViolation, "field %q must have a maximum length of %d", field.Label, max)
	}
	return nil
}

func isMultipleChoice(v model.Value, field model.Field, _ string) error {
	if v.Kind() != model.KindChoices {
		return errorf(RuleViolation, "the answer must be a list of choices for field %q", field.Label)
	}
	for _, c := range v.Choices() {
		if !contains(field.Choices(), c) {
			return errorf(RuleViolation, "answer %q is not a valid choice for field %q", c, field.Label)
		}
	}
	return nil
}
