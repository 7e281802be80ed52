// Package auth_repo provides the PostgreSQL storage provider for user accounts.
package auth_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/user"
	"stockkeeper/internal/infrastructure/storage/postgres"
)

// userDocument is a users row.
type userDocument struct {
	Key          *string    `db:"_id"`
	ID           *string    `db:"id"`
	Name         *string    `db:"name"`
	PasswordHash *string    `db:"password_hash"`
	CreatedAt    *time.Time `db:"created_at"`
}

type userCodec struct{}

func (userCodec) Table() string    { return "users" }
func (userCodec) Entity() string   { return "user" }
func (userCodec) OwnerKey() string { return "" }

func (userCodec) ToDocument(u user.User) userDocument {
	return userDocument{
		ID:           postgres.Ptr(u.ID),
		Name:         postgres.Ptr(u.Name),
		PasswordHash: postgres.Ptr(u.PasswordHash),
		CreatedAt:    postgres.Ptr(u.CreatedAt),
	}
}

func (userCodec) FromDocument(d userDocument) (user.User, error) {
	var (
		u   user.User
		err error
	)
	if u.ID, err = postgres.Required("id", d.ID); err != nil {
		return u, err
	}
	if u.Name, err = postgres.Required("name", d.Name); err != nil {
		return u, err
	}
	if u.PasswordHash, err = postgres.Required("password_hash", d.PasswordHash); err != nil {
		return u, err
	}
	if u.CreatedAt, err = postgres.Required("created_at", d.CreatedAt); err != nil {
		return u, err
	}
	return u, nil
}

// UserRepo implements user.Repository.
type UserRepo struct {
	users *postgres.Collection[user.User, userDocument]
}

var _ user.Repository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: postgres.NewCollection[user.User, userDocument](userCodec{})}
}

// Insert creates a new user. A taken name is a Conflict.
func (r *UserRepo) Insert(ctx context.Context, handle tx.Handle, u user.User) error {
	return r.users.Insert(ctx, handle, u)
}

// FindByID retrieves user by ID.
func (r *UserRepo) FindByID(ctx context.Context, handle tx.Handle, userID string) (*user.User, error) {
	u, err := r.users.FindOne(ctx, handle, squirrel.Eq{"id": userID}, userID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByName retrieves user by name, ignoring case.
func (r *UserRepo) FindByName(ctx context.Context, handle tx.Handle, name string) (*user.User, error) {
	u, err := r.users.FindOne(ctx, handle, squirrel.Expr("lower(name) = lower(?)", name), name)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, handle tx.Handle, userID string) (bool, error) {
	return r.users.Delete(ctx, handle, squirrel.Eq{"id": userID}, userID)
}
