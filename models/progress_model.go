package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
)

// UserStepProgress is upserted by the progress API and read-only to the
// gamification services.
type UserStepProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_step,unique,priority:1" json:"user_id"`
	StepID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_step,unique,priority:2" json:"step_id"`
	Status    string    `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
