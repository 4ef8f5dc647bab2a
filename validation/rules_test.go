package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelyform/freelyform/model"
)

func TestMaxLength(t *testing.T) {
	f := model.Field{
		Label:           "Nickname",
		Type:            model.TypeText,
		ValidationRules: []model.Rule{{Type: model.RuleMaxLength, Value: "5"}},
	}

	assert.NoError(t, applyRules(model.TextValue("abc"), f))
	assert.NoError(t, applyRules(model.TextValue("abcde"), f))

	err := applyRules(model.TextValue("abcdef"), f)
	assertKind(t, err, RuleViolation)
}

func TestMaxLengthCountsRunes(t *testing.T) {
	f := model.Field{
		Label:           "Nickname",
		Type:            model.TypeText,
		ValidationRules: []model.Rule{{Type: model.RuleMaxLength, Value: "3"}},
	}
	assert.NoError(t, applyRules(model.TextValue("héh"), f)) // 3 runes, 4 bytes
}

func TestIsMultipleChoiceRule(t *testing.T) {
	f := model.Field{
		Label:           "Colors",
		Type:            model.TypeMultipleChoice,
		Options:         &model.Options{Choices: []string{"red", "green"}},
		ValidationRules: []model.Rule{{Type: model.RuleIsMultipleChoice}},
	}

	assert.NoError(t, applyRules(model.ChoicesValue([]string{"red"}), f))

	err := applyRules(model.ChoicesValue([]string{"blue"}), f)
	assertKind(t, err, RuleViolation)

	err = applyRules(model.TextValue("red"), f)
	assertKind(t, err, RuleViolation)
}

func TestIsRadioRejectsNothing(t *testing.T) {
	f := model.Field{
		Label:           "Pick",
		Type:            model.TypeMultipleChoice,
		Options:         &model.Options{Choices: []string{"A", "B"}},
		ValidationRules: []model.Rule{{Type: model.RuleIsRadio}},
	}
	assert.NoError(t, applyRules(model.ChoicesValue([]string{"A"}), f))
}

func TestUnknownRule(t *testing.T) {
	f := model.Field{
		Label:           "X",
		Type:            model.TypeText,
		ValidationRules: []model.Rule{{Type: "NO_SUCH_RULE"}},
	}
	err := applyRules(model.TextValue("x"), f)
	assertKind(t, err, RuleViolation)
}

func TestRulesStopAtFirstViolation(t *testing.T) {
	f := model.Field{
		Label: "X",
		Type:  model.TypeText,
		ValidationRules: []model.Rule{
			{Type: model.RuleMaxLength, Value: "1"},
			{Type: "NO_SUCH_RULE"},
		},
	}
	err := applyRules(model.TextValue("too long"), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")
}

func TestRegisterRule(t *testing.T) {
	const custom = model.RuleType("ALWAYS_OK")
	require.False(t, KnownRule(custom))

	RegisterRule(custom, func(model.Value, model.Field, string) error { return nil })
	defer delete(rules, custom)

	assert.True(t, KnownRule(custom))
	f := model.Field{Label: "X", Type: model.TypeText, ValidationRules: []model.Rule{{Type: custom}}}
	assert.NoError(t, applyRules(model.TextValue("x"), f))
}
