package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/freelyform/freelyform/model"
)

type sqliteAnswers struct {
	db *sql.DB
}

func NewAnswerStore(db *sql.DB) AnswerStore {
	return &sqliteAnswers{db}
}

func (s *sqliteAnswers) ExistsFor(ctx context.Context, prefabID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM answer
		WHERE prefab_id = ?
			AND user_id = ?`,
		prefabID, userID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "answer.exists")
	}
	return exists, nil
}

func (s *sqliteAnswers) Save(ctx context.Context, g model.AnswerGroup) (model.AnswerGroup, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.AnswerGroup{}, errors.Wrap(err, "answer.id")
	}
	g.ID = id.String()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	answersJson, err := json.Marshal(g.Answers)
	if err != nil {
		return model.AnswerGroup{}, errors.Wrap(err, "answer.marshal")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO answer (id, prefab_id, user_id, created_at, answers)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.PrefabID, g.UserID, g.CreatedAt, string(answersJson),
	)
	if isUniqueViolation(err) {
		return model.AnswerGroup{}, ErrDuplicate
	}
	if err != nil {
		return model.AnswerGroup{}, errors.Wrap(err, "answer.insert")
	}
	return g, nil
}

func (s *sqliteAnswers) FindAllFor(ctx context.Context, prefabID string) ([]model.AnswerGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, prefab_id, user_id, created_at, answers
		FROM answer
		WHERE prefab_id = ?
		ORDER BY created_at`,
		prefabID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "answer.list")
	}
	defer rows.Close()

	groups := []model.AnswerGroup{}
	for rows.Next() {
		g, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "answer.list")
	}
	if len(groups) == 0 {
		return nil, ErrNotFound
	}
	return groups, nil
}

func (s *sqliteAnswers) FindOne(ctx context.Context, prefabID, answerID string) (model.AnswerGroup, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, prefab_id, user_id, created_at, answers
		FROM answer
		WHERE prefab_id = ?
			AND id = ?`,
		prefabID, answerID,
	)
	return scanAnswer(row)
}

func scanAnswer(row scanner) (g model.AnswerGroup, err error) {
	var answersJson string
	err = row.Scan(&g.ID, &g.PrefabID, &g.UserID, &g.CreatedAt, &answersJson)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrNotFound
	}
	if err != nil {
		return g, errors.Wrap(err, "answer.scan")
	}
	err = errors.Wrap(json.Unmarshal([]byte(answersJson), &g.Answers), "answer.unmarshal")
	return g, err
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
