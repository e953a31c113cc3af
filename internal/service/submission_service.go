package service

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
	"github.com/vhtran/talentflow/internal/repository"
)

// SubmissionService runs the submit pipeline: validate the answer set, score
// it, persist the immutable record. A rejected submission persists nothing
// and returns the failures so the candidate can correct and resubmit.
type SubmissionService interface {
	Submit(assessmentID uint, req dto.SubmissionCreateDTO) (*dto.SubmissionDetailDTO, error)
	Get(submissionID uint) (*dto.SubmissionDetailDTO, error)
	ListForAssessment(assessmentID uint) ([]dto.SubmissionSummaryDTO, error)
}

type submissionService struct {
	assessmentRepo repository.AssessmentRepository
	submissionRepo repository.SubmissionRepository
	validator      ValidationService
	scorer         ScoringService
}

func NewSubmissionService(
	assessmentRepo repository.AssessmentRepository,
	submissionRepo repository.SubmissionRepository,
	validator ValidationService,
	scorer ScoringService,
) SubmissionService {
	return &submissionService{
		assessmentRepo: assessmentRepo,
		submissionRepo: submissionRepo,
		validator:      validator,
		scorer:         scorer,
	}
}

func (s *submissionService) Submit(assessmentID uint, req dto.SubmissionCreateDTO) (*dto.SubmissionDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Submit: assessment not found")
		return nil, fmt.Errorf("assessment not found with ID %d: %w", assessmentID, err)
	}

	answers := NewAnswerSet(req.Answers)

	if failures := s.validator.Validate(assessment, answers); len(failures) > 0 {
		log.Info().Uint("assessmentID", assessmentID).Int("failures", len(failures)).
			Msg("Submit: rejected by validation")
		return nil, &SubmissionRejectedError{Failures: failures}
	}

	score := s.scorer.Score(assessment, answers)

	candidateName := req.CandidateName
	if candidateName == "" {
		candidateName = "Anonymous"
	}

	submission := &model.Submission{
		AssessmentID:   assessmentID,
		CandidateName:  candidateName,
		CandidateEmail: req.CandidateEmail,
	}
	if score != nil {
		totalPoints, obtained, percentage := score.TotalPoints, score.Obtained, score.Percentage
		submission.TotalPoints = &totalPoints
		submission.Obtained = &obtained
		submission.Percentage = &percentage
	}

	// One answer row per question in display order; JSON null when the
	// question went unanswered or was out of scope.
	for _, q := range assessment.Questions {
		value := json.RawMessage("null")
		if raw, ok := answers[q.ID]; ok && len(raw) > 0 {
			value = raw
		}
		submission.Answers = append(submission.Answers, model.SubmissionAnswer{
			QuestionID: q.ID,
			Position:   q.Position,
			Value:      value,
		})
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Submit: failed to persist submission")
		return nil, fmt.Errorf("database error saving submission: %w", err)
	}

	log.Info().Uint("submissionID", submission.ID).Uint("assessmentID", assessmentID).
		Msg("Submit: submission accepted")
	resp := submissionToDetailDTO(submission)
	return &resp, nil
}

func (s *submissionService) Get(submissionID uint) (*dto.SubmissionDetailDTO, error) {
	submission, err := s.submissionRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission not found with ID %d: %w", submissionID, err)
	}
	resp := submissionToDetailDTO(submission)
	return &resp, nil
}

// ListForAssessment works even when the assessment itself was deleted;
// orphaned submissions stay readable by the old id.
func (s *submissionService) ListForAssessment(assessmentID uint) ([]dto.SubmissionSummaryDTO, error) {
	submissions, err := s.submissionRepo.FindAllByAssessment(assessmentID)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Failed to list submissions")
		return nil, fmt.Errorf("error fetching submissions for assessment %d: %w", assessmentID, err)
	}

	dtos := make([]dto.SubmissionSummaryDTO, 0, len(submissions))
	for _, sub := range submissions {
		dtos = append(dtos, dto.SubmissionSummaryDTO{
			ID:             sub.ID,
			AssessmentID:   sub.AssessmentID,
			CandidateName:  sub.CandidateName,
			CandidateEmail: sub.CandidateEmail,
			CreatedAt:      sub.CreatedAt,
			Score:          scoreDTOFromSubmission(&sub),
		})
	}
	return dtos, nil
}

func submissionToDetailDTO(sub *model.Submission) dto.SubmissionDetailDTO {
	resp := dto.SubmissionDetailDTO{
		ID:             sub.ID,
		AssessmentID:   sub.AssessmentID,
		CandidateName:  sub.CandidateName,
		CandidateEmail: sub.CandidateEmail,
		CreatedAt:      sub.CreatedAt,
		Score:          scoreDTOFromSubmission(sub),
	}
	resp.Answers = make([]dto.SubmissionAnswerDTO, len(sub.Answers))
	for i, ans := range sub.Answers {
		resp.Answers[i] = dto.SubmissionAnswerDTO{QuestionID: ans.QuestionID, Value: ans.Value}
	}
	return resp
}

func scoreDTOFromSubmission(sub *model.Submission) *dto.ScoreDTO {
	if sub.TotalPoints == nil || sub.Obtained == nil || sub.Percentage == nil {
		return nil
	}
	return &dto.ScoreDTO{
		TotalPoints: *sub.TotalPoints,
		Obtained:    RoundForDisplay(*sub.Obtained),
		Percentage:  *sub.Percentage,
	}
}
