package model

import (
	"time"

	"gorm.io/gorm"
)

// Hiring pipeline stages, in pipeline order.
const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

func ValidStage(stage string) bool {
	switch stage {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

type Candidate struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;index" json:"email"`
	Stage     string         `gorm:"not null;default:'applied'" json:"stage"`
	JobID     *uint          `gorm:"index" json:"jobId,omitempty"`
	Events    []StageEvent   `gorm:"foreignKey:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"events,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// StageEvent is one entry in a candidate's stage timeline.
type StageEvent struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CandidateID uint      `gorm:"not null;index" json:"candidateId"`
	Stage       string    `gorm:"not null" json:"stage"`
	OccurredAt  time.Time `gorm:"autoCreateTime" json:"occurredAt"`
}
