package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAchievement records a one-time unlock. The composite unique index is
// the storage-level guard against concurrent duplicate unlocks; the
// existence check in the service is only an optimization.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_achievement,unique,priority:1" json:"user_id"`
	AchievementID string    `gorm:"size:50;not null;index:idx_user_achievement,unique,priority:2" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}
