package dto

import (
	"time"

	"stockkeeper/internal/domain/auth"
	"stockkeeper/internal/domain/user"
)

// --- Request DTOs ---

// RegisterRequest for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToAuthRequest converts to domain request.
func (r *RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest for user login.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Name:     r.Name,
		Password: r.Password,
	}
}

// --- Response DTOs ---

// TokenResponse represents an issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	TokenType string    `json:"tokenType"`
}

// FromToken creates response from domain token.
func FromToken(t *auth.Token) *TokenResponse {
	return &TokenResponse{
		Token:     t.AccessToken,
		ExpiresAt: t.ExpiresAt,
		TokenType: t.TokenType,
	}
}

// UserResponse represents user in API response.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
