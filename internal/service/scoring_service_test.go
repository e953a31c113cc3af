package service

import (
	"encoding/json"
	"testing"

	"github.com/vhtran/talentflow/internal/model"
)

func choiceQuestion(id uint, qt model.QuestionType, points float64, options ...model.Option) model.Question {
	return model.Question{ID: id, Type: qt, Points: points, Options: options}
}

func opt(text string, correct bool) model.Option {
	return model.Option{Text: text, IsCorrect: correct}
}

func answers(pairs map[uint]string) AnswerSet {
	set := make(AnswerSet, len(pairs))
	for id, raw := range pairs {
		set[id] = json.RawMessage(raw)
	}
	return set
}

func TestScore_SingleChoice(t *testing.T) {
	assessment := &model.Assessment{Questions: []model.Question{
		choiceQuestion(1, model.QuestionSingleChoice, 2, opt("A", false), opt("B", true)),
	}}

	tests := []struct {
		name       string
		answer     string
		obtained   float64
		percentage int
	}{
		{name: "correct option text", answer: `"B"`, obtained: 2, percentage: 100},
		{name: "wrong option text", answer: `"A"`, obtained: 0, percentage: 0},
		{name: "text not among options", answer: `"C"`, obtained: 0, percentage: 0},
		{name: "unanswered", answer: "", obtained: 0, percentage: 0},
	}

	scorer := NewScoringService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set := AnswerSet{}
			if tc.answer != "" {
				set[1] = json.RawMessage(tc.answer)
			}
			got := scorer.Score(assessment, set)
			if got == nil {
				t.Fatal("expected a score, got nil")
			}
			if got.TotalPoints != 2 {
				t.Fatalf("expected totalPoints=2, got %v", got.TotalPoints)
			}
			if got.Obtained != tc.obtained {
				t.Fatalf("expected obtained=%v, got %v", tc.obtained, got.Obtained)
			}
			if got.Percentage != tc.percentage {
				t.Fatalf("expected percentage=%d, got %d", tc.percentage, got.Percentage)
			}
		})
	}
}

func TestScore_MultiChoice(t *testing.T) {
	assessment := &model.Assessment{Questions: []model.Question{
		choiceQuestion(1, model.QuestionMultiChoice, 4, opt("X", true), opt("Y", true), opt("Z", false)),
	}}

	tests := []struct {
		name       string
		answer     string
		obtained   float64
		percentage int
	}{
		{name: "all correct selected", answer: `["X","Y"]`, obtained: 4, percentage: 100},
		{name: "one of two correct", answer: `["X"]`, obtained: 2, percentage: 50},
		{name: "correct plus incorrect cancel", answer: `["X","Z"]`, obtained: 0, percentage: 0},
		{name: "full set plus incorrect", answer: `["X","Y","Z"]`, obtained: 2, percentage: 50},
		{name: "only incorrect clamps to zero", answer: `["Z"]`, obtained: 0, percentage: 0},
		{name: "unanswered", answer: "", obtained: 0, percentage: 0},
	}

	scorer := NewScoringService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set := AnswerSet{}
			if tc.answer != "" {
				set[1] = json.RawMessage(tc.answer)
			}
			got := scorer.Score(assessment, set)
			if got == nil {
				t.Fatal("expected a score, got nil")
			}
			if got.Obtained != tc.obtained {
				t.Fatalf("expected obtained=%v, got %v", tc.obtained, got.Obtained)
			}
			if got.Percentage != tc.percentage {
				t.Fatalf("expected percentage=%d, got %d", tc.percentage, got.Percentage)
			}
		})
	}
}

func TestScore_MultiChoiceWithoutAnswerKey(t *testing.T) {
	// A multi-choice question with no correct option has no answer key and
	// must not contribute to the total either.
	assessment := &model.Assessment{Questions: []model.Question{
		choiceQuestion(1, model.QuestionMultiChoice, 4, opt("X", false), opt("Y", false)),
		choiceQuestion(2, model.QuestionSingleChoice, 2, opt("A", true), opt("B", false)),
	}}

	got := NewScoringService().Score(assessment, answers(map[uint]string{1: `["X"]`, 2: `"A"`}))
	if got == nil {
		t.Fatal("expected a score, got nil")
	}
	if got.TotalPoints != 2 {
		t.Fatalf("expected keyless question excluded from total, got totalPoints=%v", got.TotalPoints)
	}
	if got.Percentage != 100 {
		t.Fatalf("expected percentage=100, got %d", got.Percentage)
	}
}

func TestScore_NoGradablePoints(t *testing.T) {
	maxLen := 200
	tests := []struct {
		name      string
		questions []model.Question
	}{
		{name: "no questions", questions: nil},
		{name: "only ungradable types", questions: []model.Question{
			{ID: 1, Type: model.QuestionShortText, MaxLength: &maxLen},
			{ID: 2, Type: model.QuestionLongText},
			{ID: 3, Type: model.QuestionFile},
		}},
		{name: "gradable but zero points", questions: []model.Question{
			choiceQuestion(1, model.QuestionSingleChoice, 0, opt("A", true), opt("B", false)),
		}},
	}

	scorer := NewScoringService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.Score(&model.Assessment{Questions: tc.questions}, answers(map[uint]string{1: `"A"`}))
			if got != nil {
				t.Fatalf("expected ungraded (nil), got %+v", got)
			}
		})
	}
}

func TestScore_HiddenQuestionExcluded(t *testing.T) {
	src := uint(1)
	equals := "Yes"
	hidden := choiceQuestion(2, model.QuestionSingleChoice, 5, opt("A", true), opt("B", false))
	hidden.CondSourceID, hidden.CondEquals = &src, &equals

	assessment := &model.Assessment{Questions: []model.Question{
		choiceQuestion(1, model.QuestionSingleChoice, 2, opt("Yes", true), opt("No", false)),
		hidden,
	}}
	scorer := NewScoringService()

	// Source answered "No": the dependent question is out of scope and
	// contributes neither points nor total.
	got := scorer.Score(assessment, answers(map[uint]string{1: `"No"`, 2: `"A"`}))
	if got == nil {
		t.Fatal("expected a score, got nil")
	}
	if got.TotalPoints != 2 || got.Obtained != 0 {
		t.Fatalf("expected totalPoints=2 obtained=0, got total=%v obtained=%v", got.TotalPoints, got.Obtained)
	}

	// Source answered "Yes": both questions count.
	got = scorer.Score(assessment, answers(map[uint]string{1: `"Yes"`, 2: `"A"`}))
	if got == nil {
		t.Fatal("expected a score, got nil")
	}
	if got.TotalPoints != 7 || got.Obtained != 7 || got.Percentage != 100 {
		t.Fatalf("expected 7/7 100%%, got total=%v obtained=%v pct=%d", got.TotalPoints, got.Obtained, got.Percentage)
	}
}

func TestScore_Deterministic(t *testing.T) {
	assessment := &model.Assessment{Questions: []model.Question{
		choiceQuestion(1, model.QuestionMultiChoice, 3, opt("X", true), opt("Y", true), opt("Z", true)),
		choiceQuestion(2, model.QuestionSingleChoice, 1, opt("A", true), opt("B", false)),
	}}
	set := answers(map[uint]string{1: `["X","Y"]`, 2: `"B"`})
	scorer := NewScoringService()

	first := scorer.Score(assessment, set)
	second := scorer.Score(assessment, set)
	if first == nil || second == nil {
		t.Fatal("expected scores, got nil")
	}
	if *first != *second {
		t.Fatalf("same inputs produced different scores: %+v vs %+v", *first, *second)
	}
}

func TestRoundForDisplay(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 2.0 / 3.0, want: 0.67},
		{in: 1.005, want: 1.0},
		{in: 0.125, want: 0.13},
		{in: 5, want: 5},
	}
	for _, tc := range tests {
		if got := RoundForDisplay(tc.in); got != tc.want {
			t.Fatalf("RoundForDisplay(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
