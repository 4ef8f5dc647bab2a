package database

import (
	"database/sql"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelyform/freelyform/config"
	"github.com/freelyform/freelyform/log"
)

// SeedAdmin ensures the configured admin account exists. Without a
// configured password and with no admin on record, startup fails
// rather than serving an instance nobody can administer.
func SeedAdmin(db *sql.DB, cfg config.Config) error {
	var exists bool
	err := db.QueryRow("SELECT 1 FROM user WHERE username = ?", cfg.AdminUser).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, "seed.admin.check")
	}
	if exists {
		return nil
	}

	if cfg.AdminPassword == "" {
		return errors.New("no admin user on record and no -admin-password given")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "seed.admin.hash")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return errors.Wrap(err, "seed.admin.id")
	}

	_, err = db.Exec(`
		INSERT INTO user (id, username, password_hash, first_name, last_name, email, role)
		VALUES (?, ?, ?, 'Admin', '', '', 'admin')`,
		id.String(), cfg.AdminUser, string(hash),
	)
	if err != nil {
		return errors.Wrap(err, "seed.admin.insert")
	}

	log.Infof("seeded admin user %q", cfg.AdminUser)
	return nil
}
