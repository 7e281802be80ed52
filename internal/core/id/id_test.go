package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_IsValid(t *testing.T) {
	v := New()
	assert.Len(t, v, Length)
	assert.True(t, Valid(v))
	assert.NotEqual(t, v, New())
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("0b9e7f0e-6d4c-4c1e-9d2a-1f6a2b3c4d5e"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-uuid"))
	assert.False(t, Valid("{0b9e7f0e-6d4c-4c1e-9d2a-1f6a2b3c4d5e}"))
	assert.False(t, Valid("0b9e7f0e6d4c4c1e9d2a1f6a2b3c4d5e"))
}
