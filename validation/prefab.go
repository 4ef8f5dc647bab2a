package validation

import (
	"strconv"

	"github.com/freelyform/freelyform/model"
)

// CheckPrefab vets a prefab definition before it is saved: every field
// must carry a supported type, multiple-choice fields must declare
// options, and every rule identifier must resolve to a registered
// validator with a well-formed parameter. Matching assumes prefabs in
// the store already passed this.
func CheckPrefab(p model.Prefab) error {
	if p.Name == "" {
		return errorf(Structural, "prefab name is required")
	}
	if len(p.Groups) == 0 {
		return errorf(Structural, "prefab must contain at least one group")
	}
	for i, g := range p.Groups {
		if g.Name == "" {
			return errorf(Structural, "group index %d: name is required", i)
		}
		if len(g.Fields) == 0 {
			return errorf(Structural, "group %q must contain at least one field", g.Name)
		}
		for _, f := range g.Fields {
			if err := checkField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkField(f model.Field) error {
	if f.Label == "" {
		return errorf(Structural, "field label is required")
	}
	if !f.Type.Valid() {
		return errorf(Structural, "field %q has unsupported type %q", f.Label, f.Type)
	}
	if f.Type == model.TypeMultipleChoice && len(f.Choices()) == 0 {
		return errorf(Structural, "multiple choice field %q must declare options", f.Label)
	}
	for _, r := range f.ValidationRules {
		if !KnownRule(r.Type) {
			return errorf(Structural, "field %q carries unknown rule %q", f.Label, r.Type)
		}
		if r.Type == model.RuleMaxLength {
			if _, err := strconv.Atoi(r.Value); err != nil {
				return errorf(Structural, "field %q has a bad MAX_LENGTH parameter %q", f.Label, r.Value)
			}
		}
	}
	return nil
}
