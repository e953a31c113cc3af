package service

import (
	"strings"
	"testing"

	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func saveOpt(text string, correct bool) dto.OptionSaveDTO {
	return dto.OptionSaveDTO{Text: text, IsCorrect: correct}
}

func validSave() dto.AssessmentSaveDTO {
	return dto.AssessmentSaveDTO{
		Title: "Backend Screening",
		Questions: []dto.QuestionSaveDTO{
			{
				ID:      uintPtr(1),
				Type:    "single-choice",
				Text:    "Which language?",
				Points:  2,
				Options: []dto.OptionSaveDTO{saveOpt("Go", true), saveOpt("COBOL", false)},
			},
			{
				ID:        uintPtr(2),
				Type:      "short-text",
				Text:      "Tell us more",
				MaxLength: intPtr(200),
			},
		},
	}
}

func TestAuthoringDefects_ValidAssessment(t *testing.T) {
	if defects := AuthoringDefects(validSave()); len(defects) != 0 {
		t.Fatalf("expected no defects, got %v", defects)
	}
}

func TestAuthoringDefects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.AssessmentSaveDTO)
		expects string
	}{
		{
			name:    "missing title",
			mutate:  func(a *dto.AssessmentSaveDTO) { a.Title = "" },
			expects: "title is required",
		},
		{
			name:    "missing question text",
			mutate:  func(a *dto.AssessmentSaveDTO) { a.Questions[0].Text = "" },
			expects: "must have text",
		},
		{
			name:    "unknown question type",
			mutate:  func(a *dto.AssessmentSaveDTO) { a.Questions[0].Type = "essay" },
			expects: "unknown type",
		},
		{
			name:    "negative points",
			mutate:  func(a *dto.AssessmentSaveDTO) { a.Questions[0].Points = -1 },
			expects: "points must not be negative",
		},
		{
			name: "choice with one option",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].Options = []dto.OptionSaveDTO{saveOpt("Go", true)}
			},
			expects: "at least 2 options",
		},
		{
			name: "choice with no correct option",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].Options = []dto.OptionSaveDTO{saveOpt("Go", false), saveOpt("COBOL", false)}
			},
			expects: "at least one correct option",
		},
		{
			name: "options on a text question",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[1].Options = []dto.OptionSaveDTO{saveOpt("stray", false)}
			},
			expects: "only choice questions may have options",
		},
		{
			name: "number question without range",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[1] = dto.QuestionSaveDTO{Type: "number", Text: "How many?"}
			},
			expects: "min < max",
		},
		{
			name: "number question min equals max",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[1] = dto.QuestionSaveDTO{
					Type: "number", Text: "How many?",
					NumericRange: &dto.NumericRangeDTO{Min: 5, Max: 5},
				}
			},
			expects: "min < max",
		},
		{
			name: "numeric range on a text question",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[1].NumericRange = &dto.NumericRangeDTO{Min: 0, Max: 10}
			},
			expects: "only applies to number questions",
		},
		{
			name: "max length on a choice question",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].MaxLength = intPtr(10)
			},
			expects: "only applies to text questions",
		},
		{
			name: "non-positive max length",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[1].MaxLength = intPtr(0)
			},
			expects: "must be positive",
		},
		{
			name: "conditional referencing itself",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].Conditional = &dto.ConditionalDTO{SourceQuestionID: 1, EqualsValue: "Go"}
			},
			expects: "earlier question",
		},
		{
			name: "conditional referencing a later question",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].Conditional = &dto.ConditionalDTO{SourceQuestionID: 2, EqualsValue: "x"}
			},
			expects: "earlier question",
		},
		{
			name: "conditional referencing an unsaved question",
			mutate: func(a *dto.AssessmentSaveDTO) {
				a.Questions[0].ID = nil
				a.Questions[1].Conditional = &dto.ConditionalDTO{SourceQuestionID: 1, EqualsValue: "Go"}
			},
			expects: "earlier question",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validSave()
			tc.mutate(&req)
			defects := AuthoringDefects(req)
			if len(defects) == 0 {
				t.Fatal("expected defects, got none")
			}
			found := false
			for _, d := range defects {
				if strings.Contains(d, tc.expects) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("expected a defect containing %q, got %v", tc.expects, defects)
			}
		})
	}
}

func TestAuthoringDefects_ConditionalOnEarlierQuestion(t *testing.T) {
	req := validSave()
	req.Questions[1].Conditional = &dto.ConditionalDTO{SourceQuestionID: 1, EqualsValue: "Go"}
	if defects := AuthoringDefects(req); len(defects) != 0 {
		t.Fatalf("expected no defects for backward reference, got %v", defects)
	}
}

func TestQuestionTemplate(t *testing.T) {
	svc := NewAssessmentService(nil, NewValidationService(), NewScoringService())

	tests := []struct {
		questionType string
		check        func(t *testing.T, tmpl *dto.QuestionSaveDTO)
	}{
		{questionType: "single-choice", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if len(tmpl.Options) != 2 {
				t.Fatalf("expected 2 seeded options, got %d", len(tmpl.Options))
			}
		}},
		{questionType: "multi-choice", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if len(tmpl.Options) != 2 {
				t.Fatalf("expected 2 seeded options, got %d", len(tmpl.Options))
			}
		}},
		{questionType: "number", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if tmpl.NumericRange == nil || tmpl.NumericRange.Min != 0 || tmpl.NumericRange.Max != 100 {
				t.Fatalf("expected default range 0..100, got %+v", tmpl.NumericRange)
			}
		}},
		{questionType: "short-text", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if tmpl.MaxLength == nil || *tmpl.MaxLength != 200 {
				t.Fatalf("expected default max length 200, got %v", tmpl.MaxLength)
			}
		}},
		{questionType: "long-text", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if tmpl.MaxLength == nil || *tmpl.MaxLength != 200 {
				t.Fatalf("expected default max length 200, got %v", tmpl.MaxLength)
			}
		}},
		{questionType: "file", check: func(t *testing.T, tmpl *dto.QuestionSaveDTO) {
			if tmpl.Options != nil || tmpl.NumericRange != nil || tmpl.MaxLength != nil {
				t.Fatalf("expected a bare template, got %+v", tmpl)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.questionType, func(t *testing.T) {
			tmpl, err := svc.QuestionTemplate(tc.questionType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tmpl.Type != tc.questionType {
				t.Fatalf("expected type %q, got %q", tc.questionType, tmpl.Type)
			}
			if tmpl.Points != 1 {
				t.Fatalf("expected default points 1, got %v", tmpl.Points)
			}
			tc.check(t, tmpl)
		})
	}

	if _, err := svc.QuestionTemplate("essay"); err == nil {
		t.Fatal("expected error for unknown question type")
	}
}

func TestPreviewScore(t *testing.T) {
	svc := NewAssessmentService(nil, NewValidationService(), NewScoringService())

	questions := []dto.QuestionDTO{
		{ID: 1, Type: "single-choice", Text: "gate", Points: 2,
			Options: []dto.OptionDTO{{Text: "Yes", IsCorrect: true}, {Text: "No"}}},
		{ID: 2, Type: "number", Text: "count", Required: true,
			NumericRange: &dto.NumericRangeDTO{Min: 0, Max: 10}},
	}

	t.Run("validation failure short-circuits scoring", func(t *testing.T) {
		result, err := svc.PreviewScore(dto.PreviewScoreDTO{
			Questions: questions,
			Answers:   []dto.AnswerInputDTO{{QuestionID: 1, Value: []byte(`"Yes"`)}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Failures) != 1 || result.Failures[0].Reason != ReasonRequiredFieldMissing {
			t.Fatalf("expected required failure, got %+v", result.Failures)
		}
		if result.Score != nil {
			t.Fatalf("expected no score alongside failures, got %+v", result.Score)
		}
	})

	t.Run("valid answers are scored", func(t *testing.T) {
		result, err := svc.PreviewScore(dto.PreviewScoreDTO{
			Questions: questions,
			Answers: []dto.AnswerInputDTO{
				{QuestionID: 1, Value: []byte(`"Yes"`)},
				{QuestionID: 2, Value: []byte(`"5"`)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Failures != nil {
			t.Fatalf("expected no failures, got %+v", result.Failures)
		}
		if result.Score == nil || result.Score.Percentage != 100 {
			t.Fatalf("expected 100%%, got %+v", result.Score)
		}
	})

	t.Run("ungradable form yields no score", func(t *testing.T) {
		result, err := svc.PreviewScore(dto.PreviewScoreDTO{
			Questions: []dto.QuestionDTO{{ID: 1, Type: "long-text", Text: "essay"}},
			Answers:   []dto.AnswerInputDTO{{QuestionID: 1, Value: []byte(`"words"`)}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Failures != nil || result.Score != nil {
			t.Fatalf("expected empty result, got %+v", result)
		}
	})
}

func TestQuestionTypeHelpers(t *testing.T) {
	gradable := map[model.QuestionType]bool{
		model.QuestionSingleChoice: true,
		model.QuestionMultiChoice:  true,
		model.QuestionShortText:    false,
		model.QuestionLongText:     false,
		model.QuestionNumber:       false,
		model.QuestionFile:         false,
	}
	for qt, want := range gradable {
		if !model.ValidQuestionType(qt) {
			t.Fatalf("expected %q to be a valid type", qt)
		}
		if got := qt.Gradable(); got != want {
			t.Fatalf("%q: expected gradable=%v, got %v", qt, want, got)
		}
	}
	if model.ValidQuestionType("essay") {
		t.Fatal("expected unknown type to be invalid")
	}
}
