package service

import (
	"math"

	"github.com/vhtran/talentflow/internal/model"
)

// Score is the result of grading one answer set. Obtained keeps full
// fractional precision; round only at the display boundary.
type Score struct {
	TotalPoints float64
	Obtained    float64
	Percentage  int
}

// ScoringService computes a deterministic score for a finalized answer set.
// Only single-choice and multi-choice questions are gradable; everything
// else is validated but never graded.
type ScoringService interface {
	// Score returns nil when the assessment carries no gradable points:
	// such an assessment is ungraded, not scored 0%.
	Score(assessment *model.Assessment, answers AnswerSet) *Score
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Score(assessment *model.Assessment, answers AnswerSet) *Score {
	var totalPoints, obtained float64

	for _, q := range assessment.Questions {
		if !q.Type.Gradable() {
			continue
		}
		// Questions hidden by their conditional contribute nothing, in
		// either direction.
		if !questionInScope(q, answers) {
			continue
		}

		switch q.Type {
		case model.QuestionSingleChoice:
			totalPoints += q.Points
			value, ok := scalarAnswer(answers[q.ID])
			if !ok {
				continue
			}
			for _, opt := range q.Options {
				if opt.IsCorrect && value == opt.Text {
					obtained += q.Points
					break
				}
			}
		case model.QuestionMultiChoice:
			correctSet := make(map[string]bool)
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correctSet[opt.Text] = true
				}
			}
			// No answer key at all: the question is excluded entirely,
			// from the total as well.
			if len(correctSet) == 0 {
				continue
			}
			totalPoints += q.Points

			selected, _ := listAnswer(answers[q.ID])
			correctSelected := 0
			for _, sel := range selected {
				if correctSet[sel] {
					correctSelected++
				}
			}
			incorrectSelected := len(selected) - correctSelected

			rawScore := float64(correctSelected-incorrectSelected) / math.Max(1, float64(len(correctSet)))
			obtained += math.Max(0, rawScore) * q.Points
		}
	}

	if totalPoints <= 0 {
		return nil
	}
	return &Score{
		TotalPoints: totalPoints,
		Obtained:    obtained,
		Percentage:  int(math.Round(obtained / totalPoints * 100)),
	}
}

// RoundForDisplay rounds the exact obtained value to hundredths.
func RoundForDisplay(obtained float64) float64 {
	return math.Round(obtained*100) / 100
}
