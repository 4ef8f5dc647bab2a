package model

import "time"

type FieldType string

const (
	TypeText           FieldType = "TEXT"
	TypeNumber         FieldType = "NUMBER"
	TypeDate           FieldType = "DATE"
	TypeGeolocation    FieldType = "GEOLOCATION"
	TypeMultipleChoice FieldType = "MULTIPLE_CHOICE"
)

func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeGeolocation, TypeMultipleChoice:
		return true
	}
	return false
}

type RuleType string

const (
	RuleMaxLength        RuleType = "MAX_LENGTH"
	RuleIsMultipleChoice RuleType = "IS_MULTIPLE_CHOICE"
	RuleIsRadio          RuleType = "IS_RADIO"
)

// Rule is one named constraint attached to a field, with an optional
// string parameter (e.g. the N of MAX_LENGTH).
type Rule struct {
	Type  RuleType `json:"type"`
	Value string   `json:"value,omitempty"`
}

type Options struct {
	Choices []string `json:"choices"`
}

type Field struct {
	Label           string    `json:"label"`
	Type            FieldType `json:"type"`
	Optional        bool      `json:"optional"`
	Hidden          bool      `json:"hidden"`
	Options         *Options  `json:"options,omitempty"`
	ValidationRules []Rule    `json:"validationRules,omitempty"`
}

func (f Field) HasRule(t RuleType) bool {
	for _, r := range f.ValidationRules {
		if r.Type == t {
			return true
		}
	}
	return false
}

func (f Field) Choices() []string {
	if f.Options == nil {
		return nil
	}
	return f.Options.Choices
}

// Group is a named ordered sequence of fields. Field order is
// significant: answers are matched by position first, label second.
type Group struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Prefab is a reusable form schema owned by a single user.
type Prefab struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	Active      bool      `json:"active"`
	Groups      []Group   `json:"groups"`
	UserID      string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// WithoutHidden returns a copy of the prefab with hidden fields
// stripped out. Submissions are matched against this view, so hidden
// fields never take part in structural matching.
func (p Prefab) WithoutHidden() Prefab {
	groups := make([]Group, len(p.Groups))
	for i, g := range p.Groups {
		fields := make([]Field, 0, len(g.Fields))
		for _, f := range g.Fields {
			if !f.Hidden {
				fields = append(fields, f)
			}
		}
		groups[i] = Group{Name: g.Name, Fields: fields}
	}
	p.Groups = groups
	return p
}
