package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionType is the closed set of form field kinds. Validation and scoring
// switch exhaustively over these; adding a type means updating both.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionNumber       QuestionType = "number"
	QuestionFile         QuestionType = "file"
)

func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumber, QuestionFile:
		return true
	}
	return false
}

// Gradable reports whether the type contributes to scoring.
func (t QuestionType) Gradable() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// Text reports whether the type accepts free text subject to MaxLength.
func (t QuestionType) Text() bool {
	return t == QuestionShortText || t == QuestionLongText
}

type Question struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	AssessmentID uint         `gorm:"not null;index" json:"assessmentId"`
	Position     int          `gorm:"not null" json:"position"`
	Type         QuestionType `gorm:"not null" json:"type"`
	Text         string       `gorm:"type:text" json:"text"`
	Required     bool         `gorm:"not null;default:false" json:"required"`
	Points       float64      `gorm:"not null;default:1" json:"points"`
	Options      []Option     `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`

	// Type-specific constraints; nil when not applicable.
	MaxLength *int     `json:"maxLength,omitempty"` // short-text / long-text
	RangeMin  *float64 `json:"rangeMin,omitempty"`  // number
	RangeMax  *float64 `json:"rangeMax,omitempty"`  // number

	// Conditional display rule. The source question must appear earlier in
	// the same assessment; one hop only.
	CondSourceID *uint   `json:"condSourceId,omitempty"`
	CondEquals   *string `json:"condEquals,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Option struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Position   int    `gorm:"not null" json:"position"`
	Text       string `gorm:"not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
}
