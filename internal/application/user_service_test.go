package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shareloop/service-sharing/internal/domain"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService() *UserService {
	return NewUserService(memory.NewUserStore(), zap.NewNop())
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	u, err := svc.Create(ctx, userDomain.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	// The email is unique across the directory.
	_, err = svc.Create(ctx, userDomain.User{Name: "Other Ann", Email: "ann@example.com"})
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	u, err := svc.Create(ctx, userDomain.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, userDomain.User{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)

	t.Run("partial update keeps the other field", func(t *testing.T) {
		name := "Anna"
		updated, err := svc.Update(ctx, u.ID, userDomain.Update{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Anna", updated.Name)
		assert.Equal(t, "ann@example.com", updated.Email)
	})

	t.Run("taking another user's email conflicts", func(t *testing.T) {
		email := "ann@example.com"
		_, err := svc.Update(ctx, other.ID, userDomain.Update{Email: &email})
		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.Update(ctx, 999, userDomain.Update{Name: &name})
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestUserService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	u, err := svc.Create(ctx, userDomain.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Get(ctx, u.ID)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
}
