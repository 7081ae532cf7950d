package repository

import (
	"context"
	"testing"

	"trailfund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignRepository_Integration(t *testing.T) {
	repo := NewCampaignRepository(testDB)
	ctx := context.Background()

	owner := makeTestUser(t, "co")
	reviewer := makeTestUser(t, "cr")
	testDB.Model(&models.User{}).Where("id = ?", reviewer.ID).Update("role", models.RoleFaculty)

	campaign := &models.Campaign{
		UserID:       owner.ID,
		Name:         "Winter coat drive",
		Description:  "Collecting coats for commuter students",
		TargetAmount: 500,
		DonationType: models.DonationTypeItems,
	}
	require.NoError(t, repo.Create(ctx, campaign))

	t.Run("New campaigns start pending", func(t *testing.T) {
		got, err := repo.GetByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusPending, got.Status)
		assert.Nil(t, got.ApprovedByID)
	})

	t.Run("Decide approves and writes history", func(t *testing.T) {
		got, err := repo.Decide(ctx, campaign.ID, reviewer.ID, models.ApprovalDecisionApproved, "Looks well organized")
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusApproved, got.Status)
		require.NotNil(t, got.ApprovedByID)
		assert.Equal(t, reviewer.ID, *got.ApprovedByID)
		assert.NotNil(t, got.DateApproved)

		history, err := repo.ApprovalHistory(ctx, campaign.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.ApprovalDecisionApproved, history[0].Decision)
		assert.Equal(t, reviewer.ID, history[0].UserID)
	})

	t.Run("Deciding twice is not found", func(t *testing.T) {
		_, err := repo.Decide(ctx, campaign.ID, reviewer.ID, models.ApprovalDecisionRejected, "changed my mind")
		require.Error(t, err)
		assert.Equal(t, models.ErrCodeNotFound, models.ErrorCodeOf(err))

		// Status unchanged, single history row
		got, err := repo.GetByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusApproved, got.Status)

		history, err := repo.ApprovalHistory(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("Rejection leaves approver empty", func(t *testing.T) {
		rejected := &models.Campaign{
			UserID:       owner.ID,
			Name:         "Midnight pizza fund",
			Description:  "Fuel for finals week",
			TargetAmount: 100,
		}
		require.NoError(t, repo.Create(ctx, rejected))

		got, err := repo.Decide(ctx, rejected.ID, reviewer.ID, models.ApprovalDecisionRejected, "Not a registered activity")
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusRejected, got.Status)
		assert.Equal(t, "Not a registered activity", got.AdminFeedback)
		assert.Nil(t, got.ApprovedByID)
		assert.Nil(t, got.DateApproved)
	})

	t.Run("List filters by status", func(t *testing.T) {
		approved, err := repo.List(ctx, models.CampaignStatusApproved, 50, 0)
		require.NoError(t, err)
		found := false
		for _, c := range approved {
			assert.Equal(t, models.CampaignStatusApproved, c.Status)
			if c.ID == campaign.ID {
				found = true
			}
		}
		assert.True(t, found)
	})
}
