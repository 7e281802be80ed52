package memstore

import (
	"context"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/user"
)

// Users implements user.Repository.
type Users struct {
	s *Store
}

var _ user.Repository = (*Users)(nil)

// Users returns the user repository backed by s.
func (s *Store) Users() *Users {
	return &Users{s: s}
}

func (r *Users) Insert(ctx context.Context, handle tx.Handle, u user.User) error {
	return r.s.exec(ctx, handle, OpUserInsert, true, func(st *state) error {
		if err := firstErr(checkID("id", u.ID), checkName(u.Name)); err != nil {
			return err
		}
		for _, rw := range st.users {
			if rw.v.ID == u.ID {
				return apperror.NewDuplicate("user", "id")
			}
			if sameName(rw.v.Name, u.Name) {
				return apperror.NewDuplicate("user", "name")
			}
		}
		st.users = append(st.users, row[user.User]{key: id.New(), v: u})
		return nil
	})
}

func (r *Users) find(ctx context.Context, handle tx.Handle, op, key string, match func(user.User) bool) (*user.User, error) {
	var found user.User
	err := r.s.exec(ctx, handle, op, false, func(st *state) error {
		for _, rw := range st.users {
			if match(rw.v) {
				found = rw.v
				return nil
			}
		}
		return apperror.NewNotFound("user", key)
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *Users) FindByID(ctx context.Context, handle tx.Handle, userID string) (*user.User, error) {
	return r.find(ctx, handle, OpUserFindByID, userID, func(u user.User) bool { return u.ID == userID })
}

func (r *Users) FindByName(ctx context.Context, handle tx.Handle, name string) (*user.User, error) {
	return r.find(ctx, handle, OpUserFindByName, name, func(u user.User) bool { return sameName(u.Name, name) })
}

func (r *Users) Delete(ctx context.Context, handle tx.Handle, userID string) (bool, error) {
	err := r.s.exec(ctx, handle, OpUserDelete, true, func(st *state) error {
		for i, rw := range st.users {
			if rw.v.ID == userID {
				st.users = append(st.users[:i:i], st.users[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFound("user", userID)
	})
	return err == nil, err
}
