package user

import (
	"context"

	"stockkeeper/internal/core/tx"
)

// Repository is the storage provider for users.
type Repository interface {
	Insert(ctx context.Context, handle tx.Handle, u User) error

	// FindByID returns NotFound when nothing matches.
	FindByID(ctx context.Context, handle tx.Handle, userID string) (*User, error)

	// FindByName matches case-insensitively and returns NotFound when nothing matches.
	FindByName(ctx context.Context, handle tx.Handle, name string) (*User, error)

	// Delete returns NotFound when nothing matches.
	Delete(ctx context.Context, handle tx.Handle, userID string) (bool, error)
}
