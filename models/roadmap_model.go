package models

import (
	"time"

	"github.com/google/uuid"
)

type Roadmap struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SkillID       uuid.UUID `gorm:"type:uuid;not null" json:"skill_id"`
	DurationWeeks int       `gorm:"not null;default:4" json:"duration_weeks"`
	CreatedAt     time.Time `json:"created_at"`

	Skill Skill          `gorm:"foreignkey:SkillID" json:"skill,omitempty"`
	Steps []*RoadmapStep `gorm:"foreignkey:RoadmapID" json:"steps,omitempty"`
}

type RoadmapStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoadmapID   uuid.UUID `gorm:"type:uuid;not null;index:idx_roadmap_week,priority:1" json:"roadmap_id"`
	WeekNumber  int       `gorm:"not null;index:idx_roadmap_week,priority:2" json:"week_number"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Sequence    int       `gorm:"not null;default:0" json:"sequence"`
	CreatedAt   time.Time `json:"created_at"`
}
