// Package user provides the account that owns stock and shopping items.
package user

import (
	"time"
)

// User is an account. Its ID is the owner id of every item the user creates.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateSpec describes a new user. The password must already be hashed.
type CreateSpec struct {
	Name         string
	PasswordHash string
}
