package validation

import (
	"bytes"
	"encoding/json"

	"github.com/freelyform/freelyform/model"
)

// Match walks a submission's group/question tree against the prefab's
// group/field tree. Correspondence is positional and name-based at the
// same time: lengths are compared before names, and every leaf's
// question text must equal the field label regardless of position.
// The first failing check aborts the whole match.
//
// Callers are expected to pass the prefab with hidden fields already
// stripped (see Prefab.WithoutHidden).
func Match(prefab model.Prefab, sub model.AnswerGroup) error {
	if !prefab.Active {
		return errorf(Structural, "prefab %q is inactive", prefab.Name)
	}
	if len(prefab.Groups) != len(sub.Answers) {
		return errorf(Structural,
			"number of groups in the prefab (%d) does not match the number of answer groups (%d)",
			len(prefab.Groups), len(sub.Answers))
	}
	for i := range prefab.Groups {
		if err := matchGroup(prefab.Groups[i], sub.Answers[i], i); err != nil {
			return err
		}
	}
	return nil
}

func matchGroup(group model.Group, answers model.AnswerSubGroup, index int) error {
	if group.Name != answers.Group {
		return errorf(Structural,
			"group index %d: prefab and answer names don't match: prefab %q, answer %q",
			index, group.Name, answers.Group)
	}
	if len(group.Fields) != len(answers.Questions) {
		return errorf(Structural, "group index %d: mismatch in number of fields and questions", index)
	}
	for i := range group.Fields {
		if err := matchLeaf(group.Fields[i], answers.Questions[i]); err != nil {
			return err
		}
	}
	return nil
}

func matchLeaf(field model.Field, question model.AnswerQuestion) error {
	if field.Label != question.Question {
		return errorf(Structural,
			"field mismatch: field %q does not match question %q", field.Label, question.Question)
	}

	if isEmptyObject(question.Answer) {
		if field.Optional {
			return nil
		}
		return errorf(EmptyAnswer, "answer at question %q is empty", question.Question)
	}
	if isAbsent(question.Answer) {
		if field.Optional {
			return nil
		}
		return errorf(EmptyAnswer, "answer at question %q is empty", question.Question)
	}

	value, err := Coerce(question.Answer, field)
	if err != nil {
		return err
	}
	return applyRules(value, field)
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isEmptyObject detects an empty structured value ({}), which counts
// as no answer at all.
func isEmptyObject(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) == 0
}
