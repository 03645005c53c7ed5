// Package repository defines the storage interfaces implemented by the
// sqlite subpackage. Services depend on these interfaces, never on the
// concrete database type, so tests can swap in an in-memory fake.
package repository

import (
	"context"

	"github.com/sakif/gitcompare/internal/model"
)

// UserRepository is the credential store.
//
// Lookups return apperror.ErrNotFound (wrapped) when no record matches.
// Create returns apperror.ErrConflict when the email or username is
// already taken — the uniqueness check happens inside the insert, so a
// concurrent signup racing past a prior existence check still loses here.
type UserRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Identity, error)
}
