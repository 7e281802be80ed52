package auth_repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/domain/auth"
	"stockkeeper/internal/domain/user"
	"stockkeeper/internal/infrastructure/storage/postgres"
	"stockkeeper/internal/infrastructure/storage/postgres/auth_repo"
	"stockkeeper/internal/testutil/pgtest"
)

func TestUserRepo_Integration(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()

	txh := postgres.NewTxHandler(pool, postgres.DefaultTxOptions())
	users := user.NewAtomicService(auth_repo.NewUserRepo(), txh)

	created, err := users.Create(ctx, nil, user.CreateSpec{Name: "Alice", PasswordHash: "hash"})
	require.NoError(t, err)

	t.Run("lookup by name ignores case", func(t *testing.T) {
		got, err := users.ReadByName(ctx, nil, "aLiCe")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := users.ReadByID(ctx, nil, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, 0)
	})

	t.Run("name taken in another case", func(t *testing.T) {
		_, err := users.Create(ctx, nil, user.CreateSpec{Name: "ALICE", PasswordHash: "x"})
		assert.True(t, apperror.IsConflict(err), "got %v", err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := users.Create(ctx, nil, user.CreateSpec{Name: "", PasswordHash: "x"})
		assert.True(t, apperror.IsBadRequest(err), "got %v", err)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := users.Delete(ctx, nil, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = users.Delete(ctx, nil, created.ID)
		assert.True(t, apperror.IsNotFound(err))

		_, err = users.ReadByName(ctx, nil, "alice")
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestAuthService_Integration(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()

	txh := postgres.NewTxHandler(pool, postgres.DefaultTxOptions())
	users := user.NewAtomicService(auth_repo.NewUserRepo(), txh)
	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("integration-secret"))
	svc := auth.NewService(users, jwtSvc, auth.ServiceConfig{PasswordMinLength: 8, BcryptCost: 4})

	_, err := svc.Register(ctx, auth.RegisterRequest{Name: "bob", Password: "correct horse"})
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, auth.Credentials{Name: "BOB", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Name)

	uc, err := jwtSvc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uc.UserID)

	_, _, err = svc.Login(ctx, auth.Credentials{Name: "bob", Password: "wrong password"})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}
