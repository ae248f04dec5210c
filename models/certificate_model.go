package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap_cert,unique,priority:1" json:"user_id"`
	RoadmapID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap_cert,unique,priority:2" json:"roadmap_id"`
	Serial         string    `gorm:"size:20;not null;unique" json:"serial"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `json:"completion_date"`
	CertificateURL string    `gorm:"type:text;not null" json:"certificate_url"`
}
