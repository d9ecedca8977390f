package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/security"
	"cyclerent-backend/internal/service"
)

const testSecret = "unit-test-secret-0123456789abcdefghij"

func newTestOperator(t *testing.T, password string) *domain.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Operator{
		ID:           1,
		Email:        "staff@shop.local",
		Name:         "Staff",
		PasswordHash: string(hash),
		Role:         domain.OperatorRoleStaff,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		op := newTestOperator(t, "hunter2")
		repo.On("GetByEmail", ctx, "staff@shop.local").Return(op, nil)

		got, access, refresh, err := svc.Login(ctx, "staff@shop.local", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, op.ID, got.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, int32(1), claims.OperatorID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "staff@shop.local").Return(newTestOperator(t, "hunter2"), nil)

		_, _, _, err := svc.Login(ctx, "staff@shop.local", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "ghost@shop.local").Return(nil, assert.AnError)

		_, _, _, err := svc.Login(ctx, "ghost@shop.local", "hunter2")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("refresh token rotates the pair", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		op := newTestOperator(t, "hunter2")
		repo.On("GetByID", ctx, int32(1)).Return(op, nil)

		refresh, err := tokens.GenerateRefreshToken(1, op.Email)
		require.NoError(t, err)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("access token is the wrong type", func(t *testing.T) {
		svc := service.NewAuthService(new(MockOperatorRepo), tokens)

		access, err := tokens.GenerateAccessToken(1, "staff@shop.local", "STAFF")
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}

func TestEnsureDefaultOperator(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("creates the admin when absent", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "admin@shop.local").Return(nil, assert.AnError)
		repo.On("Create", ctx, mock.MatchedBy(func(op *domain.Operator) bool {
			return op.Email == "admin@shop.local" && op.Role == domain.OperatorRoleAdmin && op.PasswordHash != ""
		})).Return(nil)

		require.NoError(t, svc.EnsureDefaultOperator(ctx, "admin@shop.local", "Admin", "secret"))
		repo.AssertExpectations(t)
	})

	t.Run("existing account untouched", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "admin@shop.local").Return(newTestOperator(t, "old"), nil)

		require.NoError(t, svc.EnsureDefaultOperator(ctx, "admin@shop.local", "Admin", "secret"))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("empty bootstrap config is a no-op", func(t *testing.T) {
		repo := new(MockOperatorRepo)
		svc := service.NewAuthService(repo, tokens)

		require.NoError(t, svc.EnsureDefaultOperator(ctx, "", "", ""))
		repo.AssertNotCalled(t, "GetByEmail")
	})
}
