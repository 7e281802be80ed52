// Package id generates and validates the string identifiers used by every entity.
// Identifiers are canonical 36-character UUID strings.
package id

import (
	"github.com/google/uuid"
)

// Length is the length of a canonical UUID string.
const Length = 36

// New generates a new UUIDv7 string.
// UUIDv7 is time-ordered, so ids sort by creation time.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// Valid reports whether s is a well-formed 36-character UUID.
// uuid.Parse alone also accepts the braced and urn forms.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// MustNew is New for fixtures.
func MustNew() string {
	return uuid.Must(uuid.NewV7()).String()
}
