package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GamificationProfile is the one-row-per-user summary derived from the
// activity ledger. XP never decreases and badge always matches the highest
// tier whose minimum XP is <= XP.
type GamificationProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	XP          int       `gorm:"not null;default:0" json:"xp"`
	Badge       string    `gorm:"size:50;not null;default:'Beginner'" json:"badge"`
	LoginStreak int       `gorm:"not null;default:0" json:"login_streak"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityLog is the append-only ledger: one row per awarded activity.
// Rows are never updated or deleted.
type ActivityLog struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_activity_user_type,priority:1" json:"user_id"`
	ActivityType string            `gorm:"size:50;not null;index:idx_activity_user_type,priority:2" json:"activity_type"`
	XPEarned     int               `gorm:"not null;default:0" json:"xp_earned"`
	StepID       *uuid.UUID        `gorm:"type:uuid" json:"step_id,omitempty"`
	RoadmapID    *uuid.UUID        `gorm:"type:uuid;index" json:"roadmap_id,omitempty"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}
