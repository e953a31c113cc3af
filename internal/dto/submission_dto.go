package dto

import (
	"encoding/json"
	"time"
)

// AnswerInputDTO carries one raw answer value. Value decodes to a JSON string
// for text, number, single-choice and file questions, and to an array of
// strings for multi-choice.
type AnswerInputDTO struct {
	QuestionID uint            `json:"questionId" binding:"required"`
	Value      json.RawMessage `json:"value"`
}

type SubmissionCreateDTO struct {
	CandidateName  string           `json:"candidateName"`
	CandidateEmail string           `json:"candidateEmail" binding:"omitempty,email"`
	Answers        []AnswerInputDTO `json:"answers" binding:"dive"`
}

type ScoreDTO struct {
	TotalPoints float64 `json:"totalPoints"`
	Obtained    float64 `json:"obtained"` // rounded to hundredths for display
	Percentage  int     `json:"percentage"`
}

type SubmissionAnswerDTO struct {
	QuestionID uint            `json:"questionId"`
	Value      json.RawMessage `json:"value"`
}

type SubmissionDetailDTO struct {
	ID             uint                  `json:"id"`
	AssessmentID   uint                  `json:"assessmentId"`
	CandidateName  string                `json:"candidateName"`
	CandidateEmail string                `json:"candidateEmail,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	Answers        []SubmissionAnswerDTO `json:"answers"`
	Score          *ScoreDTO             `json:"score,omitempty"`
}

type SubmissionSummaryDTO struct {
	ID             uint      `json:"id"`
	AssessmentID   uint      `json:"assessmentId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Score          *ScoreDTO `json:"score,omitempty"`
}
