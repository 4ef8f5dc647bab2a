package answer

import (
	"context"
	"encoding/json"

	"github.com/freelyform/freelyform/model"
)

// annotate enriches a stored submission for reading: the declared
// field type is copied onto each leaf, multiple-choice leaves get the
// prefab's current options, radio answers are normalized, and the
// submitter identity is resolved. The input is left untouched.
func (s *Service) annotate(ctx context.Context, g model.AnswerGroup, prefab model.Prefab) model.AnswerGroup {
	user := model.AnswerUser{Name: "Guest"}
	if !g.Guest() {
		if u, err := s.users.Resolve(ctx, g.UserID); err == nil {
			user = model.AnswerUser{Name: u.DisplayName(), Email: u.Email}
		}
	}
	g.User = &user
	g.Answers = AnnotateAnswers(g.Answers, prefab)
	return g
}

// AnnotateAnswers is the pure part of the annotation pass. It walks
// the answer tree positionally against the prefab and returns a new
// tree; leaves beyond the prefab's current shape are copied as-is.
func AnnotateAnswers(answers []model.AnswerSubGroup, prefab model.Prefab) []model.AnswerSubGroup {
	out := make([]model.AnswerSubGroup, len(answers))
	for i, sub := range answers {
		questions := make([]model.AnswerQuestion, len(sub.Questions))
		for j, q := range sub.Questions {
			if i < len(prefab.Groups) && j < len(prefab.Groups[i].Fields) {
				q = annotateLeaf(q, prefab.Groups[i].Fields[j])
			}
			questions[j] = q
		}
		out[i] = model.AnswerSubGroup{Group: sub.Group, Questions: questions}
	}
	return out
}

func annotateLeaf(q model.AnswerQuestion, field model.Field) model.AnswerQuestion {
	q.Type = field.Type
	if field.Type != model.TypeMultipleChoice {
		return q
	}

	q.Choices = append([]string(nil), field.Choices()...)

	// Radio answers are stored as a bare string; wrapping them in a
	// one-element array gives single- and multi-choice answers the
	// same shape downstream. A second pass sees an array and leaves
	// it alone.
	if field.HasRule(model.RuleIsRadio) {
		var scalar string
		if err := json.Unmarshal(q.Answer, &scalar); err == nil {
			wrapped, err := json.Marshal([]string{scalar})
			if err == nil {
				q.Answer = wrapped
			}
		}
	}
	return q
}
