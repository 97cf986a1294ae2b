package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
)

func TestUsers_Lifecycle(t *testing.T) {
	c := newTestCache()
	users := NewUsers(newTestStore(t), c, discardLogger())
	ctx := context.Background()

	req := NewUserRequest{
		ID:     "u1",
		Name:   "Asha",
		Email:  "asha@example.com",
		Photo:  "https://example.com/a.png",
		Gender: models.GenderFemale,
		DOB:    time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
	}

	c.Set(cache.KeyAdminStats, []byte("{}"))
	u, created, err := users.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.False(t, c.Has(cache.KeyAdminStats))

	again, created, err := users.Create(ctx, NewUserRequest{ID: "u1"})
	require.NoError(t, err)
	assert.False(t, created, "existing user is returned as is")
	assert.Equal(t, "Asha", again.Name)

	all, err := users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, users.Delete(ctx, "u1"))
	_, err = users.Get(ctx, "u1")
	assertAppError(t, err, apperrors.CodeNotFound)
}

func TestUsers_CreateValidates(t *testing.T) {
	users := NewUsers(newTestStore(t), newTestCache(), discardLogger())

	_, _, err := users.Create(context.Background(), NewUserRequest{ID: "u9", Name: "X", Email: "not-an-email", Gender: "other"})

	assertAppError(t, err, apperrors.CodeValidation)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "email must be a valid email")
	assert.Contains(t, appErr.Details, "gender must be one of")
}
