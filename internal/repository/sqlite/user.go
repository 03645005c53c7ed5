package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/gitcompare/internal/apperror"
	"github.com/sakif/gitcompare/internal/model"
	"github.com/sakif/gitcompare/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new identity, generating its ID and timestamp.
//
// Duplicate detection happens here, not before: the INSERT hits the UNIQUE
// constraints on username and email, and a violation is translated to
// apperror.ErrConflict. Two concurrent signups for the same email can both
// pass the service's existence check; exactly one of them survives this
// insert.
func (db *DB) Create(ctx context.Context, identity *model.Identity) error {
	identity.ID = xid.New().String()
	identity.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		identity.ID,
		identity.Username,
		identity.Email,
		identity.PasswordHash,
		identity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user with this email or username already exists")
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", identity.Username, err)
	}

	return nil
}

// FindByEmail returns the identity registered under email, or
// apperror.ErrNotFound.
func (db *DB) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	return db.findOne(ctx, email,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE email = ?`,
		email,
	)
}

// FindByEmailOrUsername returns the first identity matching either value.
// Used by signup to reject duplicates up front (the insert-time constraint
// still backstops the race).
func (db *DB) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Identity, error) {
	return db.findOne(ctx, email,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE email = ? OR username = ?`,
		email, username,
	)
}

func (db *DB) findOne(ctx context.Context, key, query string, args ...any) (*model.Identity, error) {
	var u model.Identity

	err := db.conn.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: querying user: %w", err)
	}

	return &u, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite does not export a stable error type for
// this, so we match the driver's message, which is stable in practice.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
