package answer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/freelyform/freelyform/model"
	"github.com/freelyform/freelyform/store"
	"github.com/freelyform/freelyform/validation"
)

// ErrForbidden reports a read attempt on answers of a prefab the
// caller does not own.
var ErrForbidden = errors.New("user does not own this prefab")

// Service runs the submission pipeline (uniqueness guard, then schema
// match, then save) and the annotated read paths.
type Service struct {
	prefabs store.PrefabStore
	answers store.AnswerStore
	users   store.UserStore
}

func NewService(prefabs store.PrefabStore, answers store.AnswerStore, users store.UserStore) *Service {
	return &Service{prefabs, answers, users}
}

// Submit validates sub against the prefab and persists it. userID is
// model.GuestUserID for anonymous submissions.
func (s *Service) Submit(ctx context.Context, prefabID, userID string, sub model.AnswerGroup) (model.AnswerGroup, error) {
	if err := s.checkUnique(ctx, prefabID, userID); err != nil {
		return model.AnswerGroup{}, err
	}

	// Hidden fields are stripped before matching: submissions answer
	// the prefab as its visitors see it.
	prefab, err := s.prefabs.Get(ctx, prefabID, false)
	if err != nil {
		return model.AnswerGroup{}, err
	}
	if err := validation.Match(prefab, sub); err != nil {
		return model.AnswerGroup{}, err
	}

	sub.PrefabID = prefabID
	sub.UserID = userID
	sub.CreatedAt = time.Now().UTC()
	return s.answers.Save(ctx, sub)
}

// checkUnique rejects a second submission by the same identified user.
// The guest sentinel always passes. The answer store's unique index
// covers the race between this check and the insert.
func (s *Service) checkUnique(ctx context.Context, prefabID, userID string) error {
	if userID == model.GuestUserID {
		return nil
	}
	exists, err := s.answers.ExistsFor(ctx, prefabID, userID)
	if err != nil {
		return err
	}
	if exists {
		return store.ErrDuplicate
	}
	return nil
}

// Get returns one annotated submission. Only the prefab owner may
// read it.
func (s *Service) Get(ctx context.Context, prefabID, answerID, ownerID string) (model.AnswerGroup, error) {
	prefab, err := s.ownedPrefab(ctx, prefabID, ownerID)
	if err != nil {
		return model.AnswerGroup{}, err
	}

	g, err := s.answers.FindOne(ctx, prefabID, answerID)
	if err != nil {
		return model.AnswerGroup{}, err
	}
	return s.annotate(ctx, g, prefab), nil
}

// List returns the prefab's annotated submissions, optionally filtered
// by distance from a reference point.
func (s *Service) List(ctx context.Context, prefabID, ownerID string, q GeoQuery) ([]model.AnswerGroup, error) {
	prefab, err := s.ownedPrefab(ctx, prefabID, ownerID)
	if err != nil {
		return nil, err
	}

	groups, err := s.answers.FindAllFor(ctx, prefabID)
	if err != nil {
		return nil, err
	}

	annotated := make([]model.AnswerGroup, len(groups))
	for i, g := range groups {
		annotated[i] = s.annotate(ctx, g, prefab)
	}

	if !q.Active() {
		return annotated, nil
	}
	return FilterByLocation(annotated, q), nil
}

func (s *Service) ownedPrefab(ctx context.Context, prefabID, ownerID string) (model.Prefab, error) {
	prefab, err := s.prefabs.Get(ctx, prefabID, false)
	if err != nil {
		return model.Prefab{}, err
	}
	if prefab.UserID != ownerID {
		return model.Prefab{}, ErrForbidden
	}
	return prefab, nil
}
