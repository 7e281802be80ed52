package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/domain/user"
	"stockkeeper/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
	BcryptCost        int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

// Service registers users and issues access tokens.
type Service struct {
	users      *user.AtomicService
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(users *user.AtomicService, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		config:     config,
	}
}

// Register creates a new user. A taken name is a Conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if req.Name == "" {
		return nil, apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.NewValidation("password is too long").WithDetail("field", "password")
		}
		return nil, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}

	u, err := s.users.Create(ctx, nil, user.CreateSpec{
		Name:         req.Name,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", u.ID)

	return u, nil
}

// Login checks credentials and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *user.User, error) {
	u, err := s.users.ReadByName(ctx, nil, creds.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Name)
	if err != nil {
		return nil, nil, apperror.NewInternal(fmt.Errorf("generate access token: %w", err))
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID)

	return &Token{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, u, nil
}
