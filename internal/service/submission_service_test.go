package service

import (
	"errors"
	"testing"

	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
	"gorm.io/gorm"
)

type fakeAssessmentRepo struct {
	assessments map[uint]*model.Assessment
}

func (r *fakeAssessmentRepo) Create(a *model.Assessment) error           { return nil }
func (r *fakeAssessmentRepo) ReplaceQuestions(a *model.Assessment) error { return nil }
func (r *fakeAssessmentRepo) Delete(id uint) error                       { return nil }
func (r *fakeAssessmentRepo) SaveDraft(d *model.AssessmentDraft) error   { return nil }
func (r *fakeAssessmentRepo) DeleteDraft(id uint) error                  { return nil }

func (r *fakeAssessmentRepo) FindByID(id uint) (*model.Assessment, error) {
	return r.FindByIDWithQuestions(id)
}

func (r *fakeAssessmentRepo) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAssessmentRepo) FindDraft(id uint) (*model.AssessmentDraft, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentRepo) FindAllWithQuestionCount(jobID *uint) ([]struct {
	model.Assessment
	QuestionCount int
}, error) {
	return nil, nil
}

type fakeSubmissionRepo struct {
	submissions map[uint]*model.Submission
	nextID      uint
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uint]*model.Submission), nextID: 1}
}

func (r *fakeSubmissionRepo) Create(sub *model.Submission) error {
	sub.ID = r.nextID
	r.nextID++
	r.submissions[sub.ID] = sub
	return nil
}

func (r *fakeSubmissionRepo) FindByIDWithAnswers(id uint) (*model.Submission, error) {
	sub, ok := r.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (r *fakeSubmissionRepo) FindAllByAssessment(assessmentID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, sub := range r.submissions {
		if sub.AssessmentID == assessmentID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func newSubmissionFixture(questions ...model.Question) (SubmissionService, *fakeSubmissionRepo) {
	assessmentRepo := &fakeAssessmentRepo{assessments: map[uint]*model.Assessment{
		1: {ID: 1, Title: "Screening", Questions: questions},
	}}
	submissionRepo := newFakeSubmissionRepo()
	svc := NewSubmissionService(assessmentRepo, submissionRepo, NewValidationService(), NewScoringService())
	return svc, submissionRepo
}

func TestSubmit_AcceptedAndScored(t *testing.T) {
	svc, repo := newSubmissionFixture(
		choiceQuestion(10, model.QuestionSingleChoice, 2, opt("A", false), opt("B", true)),
		textQuestion(11, model.QuestionLongText, false, 0),
	)

	detail, err := svc.Submit(1, dto.SubmissionCreateDTO{
		CandidateName: "Dana",
		Answers:       []dto.AnswerInputDTO{{QuestionID: 10, Value: []byte(`"B"`)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Score == nil || detail.Score.Percentage != 100 {
		t.Fatalf("expected a 100%% score, got %+v", detail.Score)
	}
	if len(detail.Answers) != 2 {
		t.Fatalf("expected one answer row per question, got %d", len(detail.Answers))
	}
	if string(detail.Answers[1].Value) != "null" {
		t.Fatalf("expected unanswered question stored as JSON null, got %s", detail.Answers[1].Value)
	}
	if len(repo.submissions) != 1 {
		t.Fatalf("expected one persisted submission, got %d", len(repo.submissions))
	}
}

func TestSubmit_RejectedPersistsNothing(t *testing.T) {
	svc, repo := newSubmissionFixture(
		textQuestion(10, model.QuestionShortText, true, 0),
	)

	_, err := svc.Submit(1, dto.SubmissionCreateDTO{})
	var rejected *SubmissionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected SubmissionRejectedError, got %v", err)
	}
	if len(rejected.Failures) != 1 || rejected.Failures[0].Reason != ReasonRequiredFieldMissing {
		t.Fatalf("expected one required failure, got %+v", rejected.Failures)
	}
	if len(repo.submissions) != 0 {
		t.Fatal("expected nothing persisted for a rejected submission")
	}
}

func TestSubmit_UngradedAssessment(t *testing.T) {
	svc, _ := newSubmissionFixture(
		textQuestion(10, model.QuestionLongText, false, 0),
	)

	detail, err := svc.Submit(1, dto.SubmissionCreateDTO{
		Answers: []dto.AnswerInputDTO{{QuestionID: 10, Value: []byte(`"essay"`)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Score != nil {
		t.Fatalf("expected ungraded submission to carry no score, got %+v", detail.Score)
	}
	if detail.CandidateName != "Anonymous" {
		t.Fatalf("expected default candidate name, got %q", detail.CandidateName)
	}
}

func TestSubmit_UnknownAssessment(t *testing.T) {
	svc, _ := newSubmissionFixture()
	if _, err := svc.Submit(99, dto.SubmissionCreateDTO{}); err == nil {
		t.Fatal("expected error for unknown assessment")
	}
}

func TestSubmissionRoundTrip(t *testing.T) {
	svc, _ := newSubmissionFixture(
		choiceQuestion(10, model.QuestionMultiChoice, 4, opt("X", true), opt("Y", true)),
	)

	created, err := svc.Submit(1, dto.SubmissionCreateDTO{
		CandidateName: "Dana",
		Answers:       []dto.AnswerInputDTO{{QuestionID: 10, Value: []byte(`["X"]`)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Score == nil || fetched.Score.Percentage != 50 {
		t.Fatalf("expected 50%%, got %+v", fetched.Score)
	}
	if string(fetched.Answers[0].Value) != `["X"]` {
		t.Fatalf("expected raw answer preserved, got %s", fetched.Answers[0].Value)
	}

	summaries, err := svc.ListForAssessment(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].CandidateName != "Dana" {
		t.Fatalf("expected one summary for Dana, got %+v", summaries)
	}
}
