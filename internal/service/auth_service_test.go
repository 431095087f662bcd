package service_test

import (
	"context"
	"testing"
	"time"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/repository"
	"vida-likes/internal/service"
	"vida-likes/internal/testutil"
	"vida-likes/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService(t *testing.T) {
	db := testutil.NewPostgres(t)
	ctx := context.Background()
	testutil.Truncate(t, db)

	tokens := utils.NewTokenManager("test-secret", time.Hour, "vida-likes-test")
	svc := service.NewAuthService(repository.NewStore(db).Users, tokens)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Password: "correct horse",
		Email:    "alice@example.com",
		Bio:      "hi",
	})
	require.NoError(t, err)
	assert.NotZero(t, registered.ID)
	assert.False(t, registered.IsStaff)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "another one"})
		assert.ErrorIs(t, err, service.ErrUsernameExists)
	})

	t.Run("login", func(t *testing.T) {
		data, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", data.TokenType)
		assert.Equal(t, int(time.Hour.Seconds()), data.ExpiresIn)
		assert.Equal(t, registered.ID, data.User.ID)

		claims, err := tokens.ParseToken(data.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, service.ErrInvalidCredential)

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "correct horse"})
		assert.ErrorIs(t, err, service.ErrInvalidCredential)
	})

	t.Run("current user and staff flag", func(t *testing.T) {
		info, err := svc.GetCurrentUser(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", info.Email)

		staff := testutil.CreateUser(t, db, "admin", true)
		isStaff, err := svc.IsStaff(ctx, staff.ID)
		require.NoError(t, err)
		assert.True(t, isStaff)

		isStaff, err = svc.IsStaff(ctx, registered.ID)
		require.NoError(t, err)
		assert.False(t, isStaff)

		_, err = svc.IsStaff(ctx, 999999)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
		_, err = svc.GetCurrentUser(ctx, 999999)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
