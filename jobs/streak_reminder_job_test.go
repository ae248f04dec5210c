package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points database.DB at a fresh in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GamificationProfile{},
		&models.ActivityLog{},
	))

	database.DB = db
	return db
}

func seedStreakUser(t *testing.T, db *gorm.DB, name string, streak int, lastLoginDaysAgo int) models.User {
	t.Helper()

	user := models.User{FullName: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.GamificationProfile{UserID: user.ID, Badge: "Beginner", LoginStreak: streak}
	require.NoError(t, db.Create(&profile).Error)

	if lastLoginDaysAgo >= 0 {
		entry := models.ActivityLog{
			UserID:       user.ID,
			ActivityType: services.ActivityDailyLogin,
			XPEarned:     2,
		}
		require.NoError(t, db.Create(&entry).Error)
		if lastLoginDaysAgo > 0 {
			err := db.Model(&models.ActivityLog{}).
				Where("id = ?", entry.ID).
				Update("created_at", time.Now().AddDate(0, 0, -lastLoginDaysAgo)).Error
			require.NoError(t, err)
		}
	}
	return user
}

func TestStreaksAtRisk(t *testing.T) {
	db := setupTestDB(t)

	atRisk := seedStreakUser(t, db, "amina", 4, 1)       // streak, last login yesterday
	seedStreakUser(t, db, "brian", 5, 0)                 // already logged in today
	seedStreakUser(t, db, "chen", 2, 1)                  // streak too short to protect
	neverToday := seedStreakUser(t, db, "diana", 3, -1)  // streak, no ledger entry at all

	targets, err := streaksAtRisk()
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(targets))
	for _, target := range targets {
		ids = append(ids, target.user.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{atRisk.ID, neverToday.ID}, ids)

	for _, target := range targets {
		if target.user.ID == atRisk.ID {
			assert.Equal(t, 4, target.streak)
		}
	}
}

func TestStreaksAtRisk_NoneQualify(t *testing.T) {
	db := setupTestDB(t)

	seedStreakUser(t, db, "erik", 10, 0)
	seedStreakUser(t, db, "farah", 1, 1)

	targets, err := streaksAtRisk()
	require.NoError(t, err)
	assert.Empty(t, targets)
}
