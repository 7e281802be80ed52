package user

import (
	"context"
	"time"

	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
)

// AtomicService provides single-collection operations for users.
type AtomicService struct {
	repo Repository
	txh  tx.Handler
	now  func() time.Time
}

// NewAtomicService creates a new user atomic service.
func NewAtomicService(repo Repository, txh tx.Handler) *AtomicService {
	return &AtomicService{repo: repo, txh: txh, now: time.Now}
}

// Create inserts a new user. A taken name is a Conflict raised by storage.
func (s *AtomicService) Create(ctx context.Context, handle tx.Handle, spec CreateSpec) (*User, error) {
	u := User{
		ID:           id.New(),
		Name:         spec.Name,
		PasswordHash: spec.PasswordHash,
		CreatedAt:    s.now().UTC(),
	}

	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*User, error) {
		if err := s.repo.Insert(ctx, h, u); err != nil {
			return nil, err
		}
		return &u, nil
	})
}

// ReadByID returns a user or NotFound.
func (s *AtomicService) ReadByID(ctx context.Context, handle tx.Handle, userID string) (*User, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*User, error) {
		return s.repo.FindByID(ctx, h, userID)
	})
}

// ReadByName returns a user or NotFound.
func (s *AtomicService) ReadByName(ctx context.Context, handle tx.Handle, name string) (*User, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*User, error) {
		return s.repo.FindByName(ctx, h, name)
	})
}

// Delete removes a user. Returns NotFound when nothing matched.
func (s *AtomicService) Delete(ctx context.Context, handle tx.Handle, userID string) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.Delete(ctx, h, userID)
	})
}
