package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/freelyform/freelyform/model"
)

type sqlitePrefabs struct {
	db *sql.DB
}

func NewPrefabStore(db *sql.DB) PrefabStore {
	return &sqlitePrefabs{db}
}

func (s *sqlitePrefabs) Create(ctx context.Context, p model.Prefab) (model.Prefab, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.Prefab{}, errors.Wrap(err, "prefab.id")
	}
	p.ID = id.String()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt

	groupsJson, err := json.Marshal(p.Groups)
	if err != nil {
		return model.Prefab{}, errors.Wrap(err, "prefab.groups.marshal")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prefab (id, name, description, tags, active, groups, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, strings.Join(p.Tags, ","), p.Active,
		string(groupsJson), p.UserID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return model.Prefab{}, errors.Wrap(err, "prefab.insert")
	}
	return p, nil
}

func (s *sqlitePrefabs) Update(ctx context.Context, p model.Prefab) (model.Prefab, error) {
	p.UpdatedAt = time.Now().UTC()

	groupsJson, err := json.Marshal(p.Groups)
	if err != nil {
		return model.Prefab{}, errors.Wrap(err, "prefab.groups.marshal")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE prefab
		SET name = ?, description = ?, tags = ?, active = ?, groups = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, strings.Join(p.Tags, ","), p.Active,
		string(groupsJson), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return model.Prefab{}, errors.Wrap(err, "prefab.update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Prefab{}, ErrNotFound
	}
	return p, nil
}

func (s *sqlitePrefabs) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prefab WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "prefab.delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlitePrefabs) Get(ctx context.Context, id string, withHidden bool) (model.Prefab, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, tags, active, groups, user_id, created_at, updated_at
		FROM prefab
		WHERE id = ?`,
		id,
	)

	p, err := scanPrefab(row)
	if err != nil {
		return model.Prefab{}, err
	}
	if !withHidden {
		p = p.WithoutHidden()
	}
	return p, nil
}

func (s *sqlitePrefabs) ListByUser(ctx context.Context, userID string) ([]model.Prefab, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, tags, active, groups, user_id, created_at, updated_at
		FROM prefab
		WHERE user_id = ?
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "prefab.list")
	}
	defer rows.Close()

	prefabs := []model.Prefab{}
	for rows.Next() {
		p, err := scanPrefab(rows)
		if err != nil {
			return nil, err
		}
		prefabs = append(prefabs, p)
	}
	return prefabs, rows.Err()
}

type scanner interface {
	Scan(dst ...any) error
}

func scanPrefab(row scanner) (p model.Prefab, err error) {
	var tags, groupsJson string
	err = row.Scan(
		&p.ID, &p.Name, &p.Description, &tags, &p.Active,
		&groupsJson, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, errors.Wrap(err, "prefab.scan")
	}

	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	err = errors.Wrap(json.Unmarshal([]byte(groupsJson), &p.Groups), "prefab.groups.unmarshal")
	return p, err
}
