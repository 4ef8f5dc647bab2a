package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type sqliteUsers struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) UserStore {
	return &sqliteUsers{db}
}

func (s *sqliteUsers) Resolve(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, role
		FROM user
		WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "user.resolve")
	}
	return u, nil
}
