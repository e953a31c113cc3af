package model

import (
	"encoding/json"
	"time"
)

// Submission is the immutable record of one accepted assessment attempt.
// It is created exactly once and never updated; deleting the assessment
// later leaves AssessmentID dangling and the record readable.
type Submission struct {
	ID             uint               `gorm:"primarykey" json:"id"`
	AssessmentID   uint               `gorm:"not null;index" json:"assessmentId"`
	CandidateName  string             `gorm:"not null" json:"candidateName"`
	CandidateEmail string             `json:"candidateEmail"`
	Answers        []SubmissionAnswer `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers,omitempty"`

	// Score fields are nil as a group when the assessment had no gradable
	// points ("ungraded", never "0%").
	TotalPoints *float64 `json:"totalPoints,omitempty"`
	Obtained    *float64 `json:"obtained,omitempty"`
	Percentage  *int     `json:"percentage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SubmissionAnswer holds the raw answer value for one question, one row per
// question in the assessment at submission time. Value is JSON null when the
// question was unanswered (and not required, or out of scope).
type SubmissionAnswer struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	SubmissionID uint            `gorm:"not null;index" json:"submissionId"`
	QuestionID   uint            `gorm:"not null;index" json:"questionId"`
	Position     int             `gorm:"not null" json:"position"`
	Value        json.RawMessage `gorm:"type:jsonb" json:"value"`
}
