package model

import (
	"time"

	"gorm.io/gorm"
)

type Assessment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	JobID     *uint          `gorm:"index" json:"jobId,omitempty"`
	Title     string         `gorm:"not null" json:"title"`
	Questions []Question     `gorm:"foreignKey:AssessmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AssessmentDraft is the autosaved, not-yet-validated builder state for one
// assessment. One row per assessment id, overwritten on every save.
type AssessmentDraft struct {
	AssessmentID uint      `gorm:"primarykey" json:"assessmentId"`
	Payload      []byte    `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
