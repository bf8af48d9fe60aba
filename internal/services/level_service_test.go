package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timaocord/wallet-backend/internal/models"
)

func newLevelFixture() (*levelService, *fakeLevelRepo, *fakeUserRepo) {
	levelRepo := newFakeLevelRepo()
	userRepo := newFakeUserRepo()
	svc := NewLevelService(levelRepo, userRepo).(*levelService)
	return svc, levelRepo, userRepo
}

func TestGetLevelConfig_SeedsDefaults(t *testing.T) {
	svc, levelRepo, _ := newLevelFixture()
	ctx := context.Background()

	levels, err := svc.GetLevelConfig(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 10)
	assert.Equal(t, "Iniciante", levels[0].Name)
	assert.Equal(t, 0, levels[0].XP)
	assert.Equal(t, "Divino", levels[9].Name)
	assert.Equal(t, 150000, levels[9].XP)

	// Seeded config is persisted, not recomputed
	assert.True(t, levelRepo.set)
}

func TestUpdateLevelConfig_Validation(t *testing.T) {
	svc, _, _ := newLevelFixture()
	ctx := context.Background()

	base := []models.LevelThreshold{
		{Level: 1, XP: 0, Name: "Iniciante", RewardType: models.LevelRewardNone},
		{Level: 2, XP: 500, Name: "Amador", RewardType: models.LevelRewardMoney, RewardAmount: 100},
	}

	t.Run("accepts a valid ladder", func(t *testing.T) {
		assert.NoError(t, svc.UpdateLevelConfig(ctx, base))
	})

	t.Run("rejects empty", func(t *testing.T) {
		assert.Error(t, svc.UpdateLevelConfig(ctx, nil))
	})

	t.Run("first level must be 1 at 0 xp", func(t *testing.T) {
		bad := []models.LevelThreshold{{Level: 1, XP: 100, Name: "X"}}
		assert.Error(t, svc.UpdateLevelConfig(ctx, bad))
	})

	t.Run("xp must ascend", func(t *testing.T) {
		bad := []models.LevelThreshold{
			{Level: 1, XP: 0, Name: "A"},
			{Level: 2, XP: 0, Name: "B"},
		}
		assert.Error(t, svc.UpdateLevelConfig(ctx, bad))
	})

	t.Run("levels must be sequential", func(t *testing.T) {
		bad := []models.LevelThreshold{
			{Level: 1, XP: 0, Name: "A"},
			{Level: 3, XP: 500, Name: "C"},
		}
		assert.Error(t, svc.UpdateLevelConfig(ctx, bad))
	})

	t.Run("money reward needs an amount", func(t *testing.T) {
		bad := []models.LevelThreshold{
			{Level: 1, XP: 0, Name: "A"},
			{Level: 2, XP: 500, Name: "B", RewardType: models.LevelRewardMoney},
		}
		assert.Error(t, svc.UpdateLevelConfig(ctx, bad))
	})

	t.Run("role reward needs a role ID", func(t *testing.T) {
		bad := []models.LevelThreshold{
			{Level: 1, XP: 0, Name: "A"},
			{Level: 2, XP: 500, Name: "B", RewardType: models.LevelRewardRole},
		}
		assert.Error(t, svc.UpdateLevelConfig(ctx, bad))
	})
}

func TestGetUserLevel(t *testing.T) {
	ctx := context.Background()

	t.Run("computes level and progress from xp", func(t *testing.T) {
		svc, _, userRepo := newLevelFixture()
		// 1000 xp sits between Amador (500) and Regular (1500)
		require.NoError(t, userRepo.Create(ctx, &models.User{DiscordID: "user-1", XP: 1000, Level: 2}))

		level, err := svc.GetUserLevel(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, level.Level)
		assert.Equal(t, "Amador", level.LevelName)
		assert.Equal(t, 1000, level.XP)
		assert.Equal(t, 1500, level.XPForNextLevel)
		assert.Equal(t, 50, level.Progress)
	})

	t.Run("corrects a drifted stored level", func(t *testing.T) {
		svc, _, userRepo := newLevelFixture()
		require.NoError(t, userRepo.Create(ctx, &models.User{DiscordID: "user-1", XP: 5000, Level: 1}))

		level, err := svc.GetUserLevel(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 5, level.Level)

		user, err := userRepo.FindByDiscordID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 5, user.Level)
	})

	t.Run("top level caps progress", func(t *testing.T) {
		svc, _, userRepo := newLevelFixture()
		require.NoError(t, userRepo.Create(ctx, &models.User{DiscordID: "user-1", XP: 999999, Level: 10}))

		level, err := svc.GetUserLevel(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 10, level.Level)
		assert.Equal(t, "Divino", level.LevelName)
		assert.Equal(t, 100, level.Progress)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newLevelFixture()
		_, err := svc.GetUserLevel(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
