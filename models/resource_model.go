package models

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoadmapID   uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	SharedByID  uuid.UUID `gorm:"type:uuid;not null" json:"shared_by_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
