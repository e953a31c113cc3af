package dto

import "time"

// NumericRangeDTO bounds a number question; min < max is enforced at save.
type NumericRangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ConditionalDTO makes a question visible only while the referenced earlier
// question's answer equals EqualsValue.
type ConditionalDTO struct {
	SourceQuestionID uint   `json:"sourceQuestionId"`
	EqualsValue      string `json:"equalsValue"`
}

type OptionDTO struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// OptionPublicDTO is the candidate-facing option shape: no answer key.
type OptionPublicDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuestionDTO struct {
	ID           uint             `json:"id"`
	Type         string           `json:"type"`
	Text         string           `json:"text"`
	Required     bool             `json:"required"`
	Points       float64          `json:"points"`
	Options      []OptionDTO      `json:"options,omitempty"`
	NumericRange *NumericRangeDTO `json:"numericRange,omitempty"`
	MaxLength    *int             `json:"maxLength,omitempty"`
	Conditional  *ConditionalDTO  `json:"conditional,omitempty"`
}

type QuestionPublicDTO struct {
	ID           uint              `json:"id"`
	Type         string            `json:"type"`
	Text         string            `json:"text"`
	Required     bool              `json:"required"`
	Options      []OptionPublicDTO `json:"options,omitempty"`
	NumericRange *NumericRangeDTO  `json:"numericRange,omitempty"`
	MaxLength    *int              `json:"maxLength,omitempty"`
	Conditional  *ConditionalDTO   `json:"conditional,omitempty"`
}

type AssessmentResponseDTO struct {
	ID        uint          `json:"id"`
	JobID     *uint         `json:"jobId,omitempty"`
	Title     string        `json:"title"`
	Questions []QuestionDTO `json:"questions"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AssessmentPublicDTO is the take-flow shape, options stripped of isCorrect.
type AssessmentPublicDTO struct {
	ID        uint                `json:"id"`
	JobID     *uint               `json:"jobId,omitempty"`
	Title     string              `json:"title"`
	Questions []QuestionPublicDTO `json:"questions"`
}

type AssessmentSummaryDTO struct {
	ID            uint      `json:"id"`
	JobID         *uint     `json:"jobId,omitempty"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// --- Authoring (save / draft) DTOs ---

type OptionSaveDTO struct {
	ID        *uint  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionSaveDTO struct {
	ID           *uint            `json:"id"`
	Type         string           `json:"type" binding:"required,oneof=single-choice multi-choice short-text long-text number file"`
	Text         string           `json:"text"`
	Required     bool             `json:"required"`
	Points       float64          `json:"points" binding:"min=0"`
	Options      []OptionSaveDTO  `json:"options" binding:"dive"`
	NumericRange *NumericRangeDTO `json:"numericRange"`
	MaxLength    *int             `json:"maxLength"`
	Conditional  *ConditionalDTO  `json:"conditional"`
}

type AssessmentSaveDTO struct {
	Title     string            `json:"title"`
	JobID     *uint             `json:"jobId"`
	Questions []QuestionSaveDTO `json:"questions" binding:"dive"`
}

// PreviewScoreDTO is the builder live-preview payload: a transient form plus
// in-progress answers, validated and scored without persisting anything.
type PreviewScoreDTO struct {
	Questions []QuestionDTO    `json:"questions" binding:"required,dive"`
	Answers   []AnswerInputDTO `json:"answers" binding:"dive"`
}

type PreviewScoreResultDTO struct {
	Failures []ValidationFailure `json:"failures,omitempty"`
	Score    *ScoreDTO           `json:"score,omitempty"`
}
