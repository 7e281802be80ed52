package auth

import (
	"time"
)

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Credentials for login.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterRequest for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
