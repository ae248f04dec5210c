package services

import (
	"fmt"
	"testing"

	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
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
		&models.Skill{},
		&models.Roadmap{},
		&models.RoadmapStep{},
		&models.UserStepProgress{},
		&models.GamificationProfile{},
		&models.ActivityLog{},
		&models.UserAchievement{},
		&models.Discussion{},
		&models.DiscussionReply{},
		&models.Resource{},
		&models.Certificate{},
	))

	database.DB = db
	return db
}
