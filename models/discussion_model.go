package models

import (
	"time"

	"github.com/google/uuid"
)

type Discussion struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoadmapID uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Replies []*DiscussionReply `gorm:"foreignkey:DiscussionID" json:"replies,omitempty"`
}

type DiscussionReply struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DiscussionID uuid.UUID `gorm:"type:uuid;not null;index" json:"discussion_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	IsHelpful    bool      `gorm:"default:false" json:"is_helpful"`
	CreatedAt    time.Time `json:"created_at"`
}
