package store

import (
	"context"
	"errors"

	"github.com/freelyform/freelyform/model"
)

// ErrNotFound reports a missing prefab, answer or user.
var ErrNotFound = errors.New("not found")

// ErrDuplicate reports a second answer by the same identified user
// against the same prefab. The sqlite schema backs this with a partial
// unique index, so concurrent submissions cannot both slip past the
// existence check.
var ErrDuplicate = errors.New("duplicate answer")

type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

type PrefabStore interface {
	Create(ctx context.Context, p model.Prefab) (model.Prefab, error)
	Update(ctx context.Context, p model.Prefab) (model.Prefab, error)
	Delete(ctx context.Context, id string) error
	// Get returns the prefab whether active or not. With withHidden
	// false, hidden fields are stripped from the returned view.
	Get(ctx context.Context, id string, withHidden bool) (model.Prefab, error)
	ListByUser(ctx context.Context, userID string) ([]model.Prefab, error)
}

type AnswerStore interface {
	ExistsFor(ctx context.Context, prefabID, userID string) (bool, error)
	Save(ctx context.Context, g model.AnswerGroup) (model.AnswerGroup, error)
	FindAllFor(ctx context.Context, prefabID string) ([]model.AnswerGroup, error)
	FindOne(ctx context.Context, prefabID, answerID string) (model.AnswerGroup, error)
}

type UserStore interface {
	Resolve(ctx context.Context, id string) (User, error)
}
