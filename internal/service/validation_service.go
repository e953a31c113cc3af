package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
)

// Failure reasons surfaced to candidates.
const (
	ReasonRequiredFieldMissing = "required_field_missing"
	ReasonLengthExceeded       = "length_exceeded"
	ReasonNumberOutOfRange     = "number_out_of_range"
)

// ValidationService checks a candidate's answer set against an assessment.
// It is pure: same inputs, same result, no side effects.
type ValidationService interface {
	// Validate walks questions in display order and returns nil when the
	// answer set is acceptable. It is fail-fast: the first defect found is
	// the only one reported, matching the take-flow's field-by-field
	// correction loop.
	Validate(assessment *model.Assessment, answers AnswerSet) []dto.ValidationFailure
}

type validationService struct{}

func NewValidationService() ValidationService {
	return &validationService{}
}

func (s *validationService) Validate(assessment *model.Assessment, answers AnswerSet) []dto.ValidationFailure {
	for _, q := range assessment.Questions {
		// Out-of-scope questions are invisible to the candidate and exempt
		// from every check, required included.
		if !questionInScope(q, answers) {
			continue
		}

		raw := answers[q.ID]

		if q.Required && answerEmpty(q, raw) {
			return []dto.ValidationFailure{{
				QuestionID: q.ID,
				Reason:     ReasonRequiredFieldMissing,
				Message:    fmt.Sprintf("question %q requires an answer", q.Text),
			}}
		}

		switch q.Type {
		case model.QuestionShortText, model.QuestionLongText:
			if q.MaxLength == nil {
				continue
			}
			value, ok := scalarAnswer(raw)
			if ok && utf8.RuneCountInString(value) > *q.MaxLength {
				return []dto.ValidationFailure{{
					QuestionID: q.ID,
					Reason:     ReasonLengthExceeded,
					Message:    fmt.Sprintf("answer for %q exceeds %d characters", q.Text, *q.MaxLength),
				}}
			}
		case model.QuestionNumber:
			// Unanswered and not required: nothing to range-check.
			if answerEmpty(q, raw) {
				continue
			}
			if q.RangeMin == nil || q.RangeMax == nil {
				// Missing bounds are an authoring defect, not a
				// per-submission failure.
				continue
			}
			value, ok := scalarAnswer(raw)
			if !ok {
				return numberFailure(q)
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || n < *q.RangeMin || n > *q.RangeMax {
				return numberFailure(q)
			}
		case model.QuestionSingleChoice, model.QuestionMultiChoice, model.QuestionFile:
			// No per-type constraints beyond the required check.
		}
	}
	return nil
}

func numberFailure(q model.Question) []dto.ValidationFailure {
	return []dto.ValidationFailure{{
		QuestionID: q.ID,
		Reason:     ReasonNumberOutOfRange,
		Message:    fmt.Sprintf("answer for %q must be a number between %g and %g", q.Text, *q.RangeMin, *q.RangeMax),
	}}
}
