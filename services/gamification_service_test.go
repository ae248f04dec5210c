package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillpath-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDetermineBadge(t *testing.T) {
	cases := []struct {
		xp    int
		badge string
	}{
		{0, "Beginner"},
		{49, "Beginner"},
		{50, "Explorer"},
		{149, "Explorer"},
		{150, "Apprentice"},
		{300, "Adept"},
		{999, "Expert"},
		{1000, "Master"},
		{5000, "Master"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.badge, DetermineBadge(tc.xp), "xp=%d", tc.xp)
	}
}

func TestNextBadgeInfo(t *testing.T) {
	next, toNext, progress := NextBadgeInfo(0, "Beginner")
	require.NotNil(t, next)
	assert.Equal(t, "Explorer", *next)
	assert.Equal(t, 50, toNext)
	assert.Equal(t, 0, progress)

	next, toNext, progress = NextBadgeInfo(25, "Beginner")
	require.NotNil(t, next)
	assert.Equal(t, 25, toNext)
	assert.Equal(t, 50, progress)

	next, toNext, progress = NextBadgeInfo(1200, "Master")
	assert.Nil(t, next)
	assert.Equal(t, 0, toNext)
	assert.Equal(t, 100, progress)
}

func TestAwardActivity_FirstAward(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityCompleteStep})
	require.NoError(t, err)

	assert.Equal(t, 10, result.XPEarned)
	assert.Equal(t, 10, result.TotalXP)
	assert.Equal(t, "Beginner", result.Badge)
	assert.False(t, result.BadgeUpgraded)

	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, "first_step", result.NewAchievements[0].ID)

	var profile models.GamificationProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	assert.Equal(t, 10, profile.XP)
	assert.Equal(t, "Beginner", profile.Badge)

	var ledgerCount int64
	db.Model(&models.ActivityLog{}).Where("user_id = ?", userID).Count(&ledgerCount)
	assert.Equal(t, int64(1), ledgerCount)
}

func TestAwardActivity_MissingUser(t *testing.T) {
	setupTestDB(t)

	_, err := AwardActivity(AwardInput{ActivityType: ActivityCompleteStep})
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestAwardActivity_BadgeUpgrade(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.GamificationProfile{UserID: userID, XP: 45, Badge: "Beginner"}).Error)

	result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityCompleteStep})
	require.NoError(t, err)

	assert.Equal(t, 55, result.TotalXP)
	assert.Equal(t, "Explorer", result.Badge)
	assert.True(t, result.BadgeUpgraded)
}

func TestAwardActivity_XPMonotonicAndBadgeConsistent(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	activities := []string{
		ActivityCompleteStep,
		ActivityParticipateDiscussion,
		ActivityShareResource,
		ActivityCompleteWeek,
		ActivityHelpPeer,
		ActivityCompleteRoadmap,
		ActivityCompleteStep,
	}

	lastXP := 0
	for _, activity := range activities {
		result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: activity})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.TotalXP, lastXP)
		assert.Equal(t, DetermineBadge(result.TotalXP), result.Badge)
		lastXP = result.TotalXP

		var profile models.GamificationProfile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, result.TotalXP, profile.XP)
		assert.Equal(t, result.Badge, profile.Badge)
	}
}

func TestAwardActivity_UnknownTypeIsZeroXPNoop(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: "attended_webinar"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.XPEarned)
	assert.Equal(t, 0, result.TotalXP)
	assert.Equal(t, "Beginner", result.Badge)
	assert.Empty(t, result.NewAchievements)

	// The ledger still records the unknown activity.
	var entry models.ActivityLog
	require.NoError(t, db.Where("user_id = ? AND activity_type = ?", userID, "attended_webinar").First(&entry).Error)
	assert.Equal(t, 0, entry.XPEarned)
}

func TestAwardActivity_AchievementUnlocksExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityCompleteStep})
		require.NoError(t, err)

		if i == 0 {
			require.Len(t, result.NewAchievements, 1)
			assert.Equal(t, "first_step", result.NewAchievements[0].ID)
		} else {
			assert.Empty(t, result.NewAchievements)
		}
	}

	var count int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, "first_step").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAwardActivity_XPMilestoneOnCrossing(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.GamificationProfile{UserID: userID, XP: 95, Badge: "Explorer"}).Error)

	result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityCompleteStep})
	require.NoError(t, err)
	assert.Equal(t, 105, result.TotalXP)

	ids := make([]string, 0, len(result.NewAchievements))
	for _, a := range result.NewAchievements {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "xp_milestone_100")

	result, err = AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityCompleteStep})
	require.NoError(t, err)
	assert.Empty(t, result.NewAchievements)

	var count int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, "xp_milestone_100").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func backdateLastLogin(t *testing.T, db *gorm.DB, userID uuid.UUID, daysAgo int) {
	t.Helper()
	err := db.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ?", userID, ActivityDailyLogin).
		Update("created_at", time.Now().AddDate(0, 0, -daysAgo)).Error
	require.NoError(t, err)
}

func TestAwardActivity_StreakContinuity(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	// First ever login starts the streak.
	result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityDailyLogin})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.True(t, result.StreakUpdated)

	// Next login on the following day continues it.
	backdateLastLogin(t, db, userID, 1)
	result, err = AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityDailyLogin})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.True(t, result.StreakUpdated)

	// A repeat login on the same day leaves the streak alone.
	result, err = AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityDailyLogin})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.False(t, result.StreakUpdated)

	// A 3-day gap resets to 1.
	err = db.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ?", userID, ActivityDailyLogin).
		Update("created_at", time.Now().AddDate(0, 0, -3)).Error
	require.NoError(t, err)
	result, err = AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityDailyLogin})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.True(t, result.StreakUpdated)
}

func TestAwardActivity_ThreeConsecutiveDays(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	streaks := []int{}
	for day := 0; day < 3; day++ {
		result, err := AwardActivity(AwardInput{UserID: userID, ActivityType: ActivityDailyLogin})
		require.NoError(t, err)
		streaks = append(streaks, result.Streak)

		// Age every existing login entry by one day to simulate the clock
		// moving forward overnight.
		err = db.Exec("UPDATE activity_logs SET created_at = ? WHERE user_id = ? AND activity_type = ?",
			time.Now().AddDate(0, 0, -1), userID, ActivityDailyLogin).Error
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, streaks)
}
