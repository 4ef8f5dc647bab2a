package model

import (
	"encoding/json"
	"time"
)

// GuestUserID is the sentinel identity for anonymous submissions.
// Guest submissions are never deduplicated.
const GuestUserID = "guest"

// AnswerQuestion is one answer leaf. Type and Choices are never
// trusted from the submission: they are filled in from the prefab at
// read time by the annotator.
type AnswerQuestion struct {
	Question string          `json:"question"`
	Type     FieldType       `json:"type,omitempty"`
	Answer   json.RawMessage `json:"answer,omitempty"`
	Choices  []string        `json:"choices,omitempty"`
}

type AnswerSubGroup struct {
	Group     string           `json:"group"`
	Questions []AnswerQuestion `json:"questions"`
}

// AnswerUser is display-only submitter info, resolved at read time.
type AnswerUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AnswerGroup is one complete submission against a prefab.
type AnswerGroup struct {
	ID        string           `json:"id,omitempty"`
	PrefabID  string           `json:"prefabId,omitempty"`
	UserID    string           `json:"-"`
	User      *AnswerUser      `json:"user,omitempty"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
	Answers   []AnswerSubGroup `json:"answers"`
}

func (g AnswerGroup) Guest() bool {
	return g.UserID == GuestUserID
}
