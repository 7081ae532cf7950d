package repository

import (
	"context"
	"testing"

	"trailfund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := makeTestUser(t, "ur")

	t.Run("GetByIdentifier matches username", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, u.Username)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("GetByIdentifier matches email", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, u.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("GetByIdentifier returns nil for unknown", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "ghost_user_xyz")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Create rejects duplicate username", func(t *testing.T) {
		dup := &models.User{
			Username: u.Username,
			Email:    "different_" + u.Email,
			Password: "hashed",
			Name:     "Dup",
		}
		err := repo.Create(ctx, dup)
		require.Error(t, err)
		assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
		assert.Contains(t, err.Error(), "Username or Email already exists")
	})

	t.Run("RecordLogin", func(t *testing.T) {
		require.NoError(t, repo.RecordLogin(ctx, &models.LoginLog{
			UserID:    u.ID,
			IPAddress: "10.0.0.1",
			Status:    "success",
		}))

		var count int64
		testDB.Model(&models.LoginLog{}).Where("user_id = ?", u.ID).Count(&count)
		assert.EqualValues(t, 1, count)
	})
}
