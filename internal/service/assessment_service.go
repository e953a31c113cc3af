package service

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
	"github.com/vhtran/talentflow/internal/repository"
)

// AssessmentService covers the authoring side: validated saves, drafts,
// builder helpers and the live-preview scorer.
type AssessmentService interface {
	Create(req dto.AssessmentSaveDTO) (*dto.AssessmentResponseDTO, error)
	Update(id uint, req dto.AssessmentSaveDTO) (*dto.AssessmentResponseDTO, error)
	Get(id uint) (*dto.AssessmentResponseDTO, error)
	GetPublic(id uint) (*dto.AssessmentPublicDTO, error)
	List(jobID *uint) ([]dto.AssessmentSummaryDTO, error)
	Delete(id uint) error

	SaveDraft(id uint, req dto.AssessmentSaveDTO) error
	GetDraft(id uint) (json.RawMessage, error)
	DiscardDraft(id uint) error

	QuestionTemplate(questionType string) (*dto.QuestionSaveDTO, error)
	PreviewScore(req dto.PreviewScoreDTO) (*dto.PreviewScoreResultDTO, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	validator      ValidationService
	scorer         ScoringService
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	validator ValidationService,
	scorer ScoringService,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		validator:      validator,
		scorer:         scorer,
	}
}

// AuthoringDefects runs the author-side validation pass that gates every
// save. It returns one message per defect; an empty result means the
// assessment may be persisted.
func AuthoringDefects(req dto.AssessmentSaveDTO) []string {
	var defects []string

	if req.Title == "" {
		defects = append(defects, "assessment title is required")
	}

	seenIDs := make(map[uint]bool)
	for i, q := range req.Questions {
		qt := model.QuestionType(q.Type)
		if !model.ValidQuestionType(qt) {
			defects = append(defects, fmt.Sprintf("question %d: unknown type %q", i+1, q.Type))
			continue
		}
		if q.Text == "" {
			defects = append(defects, fmt.Sprintf("question %d: all questions must have text", i+1))
		}
		if q.Points < 0 {
			defects = append(defects, fmt.Sprintf("question %d: points must not be negative", i+1))
		}

		if qt.Gradable() {
			if len(q.Options) < 2 {
				defects = append(defects, fmt.Sprintf("question %d: choice questions must have at least 2 options", i+1))
			}
			anyCorrect := false
			for _, opt := range q.Options {
				if opt.IsCorrect {
					anyCorrect = true
					break
				}
			}
			if !anyCorrect {
				defects = append(defects, fmt.Sprintf("question %d: mark at least one correct option", i+1))
			}
		} else if len(q.Options) > 0 {
			defects = append(defects, fmt.Sprintf("question %d: only choice questions may have options", i+1))
		}

		if qt == model.QuestionNumber {
			if q.NumericRange == nil || q.NumericRange.Min >= q.NumericRange.Max {
				defects = append(defects, fmt.Sprintf("question %d: number questions must have a valid min < max", i+1))
			}
		} else if q.NumericRange != nil {
			defects = append(defects, fmt.Sprintf("question %d: numeric range only applies to number questions", i+1))
		}

		if q.MaxLength != nil && !qt.Text() {
			defects = append(defects, fmt.Sprintf("question %d: max length only applies to text questions", i+1))
		}
		if q.MaxLength != nil && *q.MaxLength <= 0 {
			defects = append(defects, fmt.Sprintf("question %d: max length must be positive", i+1))
		}

		// Conditionals may only point backwards, at a question that
		// already has a stable id. This rules out self references,
		// forward references and cycles in one check.
		if q.Conditional != nil {
			if !seenIDs[q.Conditional.SourceQuestionID] {
				defects = append(defects, fmt.Sprintf("question %d: conditional must reference an earlier question", i+1))
			}
		}

		if q.ID != nil && *q.ID != 0 {
			seenIDs[*q.ID] = true
		}
	}
	return defects
}

func (s *assessmentService) Create(req dto.AssessmentSaveDTO) (*dto.AssessmentResponseDTO, error) {
	if defects := AuthoringDefects(req); len(defects) > 0 {
		return nil, &AuthoringError{Details: defects}
	}

	assessment := buildAssessmentModel(0, req)
	if err := s.assessmentRepo.Create(assessment); err != nil {
		log.Error().Err(err).Msg("Failed to create assessment")
		return nil, fmt.Errorf("database error creating assessment: %w", err)
	}
	return s.finishSave(assessment.ID)
}

func (s *assessmentService) Update(id uint, req dto.AssessmentSaveDTO) (*dto.AssessmentResponseDTO, error) {
	if defects := AuthoringDefects(req); len(defects) > 0 {
		return nil, &AuthoringError{Details: defects}
	}
	if _, err := s.assessmentRepo.FindByID(id); err != nil {
		return nil, fmt.Errorf("assessment not found with ID %d: %w", id, err)
	}

	assessment := buildAssessmentModel(id, req)
	if err := s.assessmentRepo.ReplaceQuestions(assessment); err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to update assessment")
		return nil, fmt.Errorf("database error updating assessment: %w", err)
	}
	return s.finishSave(id)
}

// finishSave reloads the persisted assessment for the response and discards
// any autosaved draft, which the save supersedes.
func (s *assessmentService) finishSave(id uint) (*dto.AssessmentResponseDTO, error) {
	if err := s.assessmentRepo.DeleteDraft(id); err != nil {
		log.Warn().Err(err).Uint("assessmentID", id).Msg("Failed to discard superseded draft")
	}

	saved, err := s.assessmentRepo.FindByIDWithQuestions(id)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to reload saved assessment")
		return nil, fmt.Errorf("error loading saved assessment: %w", err)
	}
	resp := assessmentToDTO(saved)
	return &resp, nil
}

func (s *assessmentService) Get(id uint) (*dto.AssessmentResponseDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, fmt.Errorf("assessment not found with ID %d: %w", id, err)
	}
	resp := assessmentToDTO(assessment)
	return &resp, nil
}

func (s *assessmentService) GetPublic(id uint) (*dto.AssessmentPublicDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, fmt.Errorf("assessment not found with ID %d: %w", id, err)
	}

	resp := dto.AssessmentPublicDTO{
		ID:    assessment.ID,
		JobID: assessment.JobID,
		Title: assessment.Title,
	}
	resp.Questions = make([]dto.QuestionPublicDTO, len(assessment.Questions))
	for i, q := range assessment.Questions {
		full := questionToDTO(q)
		pub := dto.QuestionPublicDTO{
			ID:           full.ID,
			Type:         full.Type,
			Text:         full.Text,
			Required:     full.Required,
			NumericRange: full.NumericRange,
			MaxLength:    full.MaxLength,
			Conditional:  full.Conditional,
		}
		for _, opt := range full.Options {
			pub.Options = append(pub.Options, dto.OptionPublicDTO{ID: opt.ID, Text: opt.Text})
		}
		resp.Questions[i] = pub
	}
	return &resp, nil
}

func (s *assessmentService) List(jobID *uint) ([]dto.AssessmentSummaryDTO, error) {
	withCounts, err := s.assessmentRepo.FindAllWithQuestionCount(jobID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assessments")
		return nil, fmt.Errorf("error fetching assessments: %w", err)
	}

	dtos := make([]dto.AssessmentSummaryDTO, 0, len(withCounts))
	for _, wc := range withCounts {
		dtos = append(dtos, dto.AssessmentSummaryDTO{
			ID:            wc.Assessment.ID,
			JobID:         wc.Assessment.JobID,
			Title:         wc.Assessment.Title,
			QuestionCount: wc.QuestionCount,
			CreatedAt:     wc.Assessment.CreatedAt,
		})
	}
	return dtos, nil
}

// Delete removes the assessment. Submission records survive and keep the
// old assessment id.
func (s *assessmentService) Delete(id uint) error {
	if _, err := s.assessmentRepo.FindByID(id); err != nil {
		return fmt.Errorf("assessment not found with ID %d: %w", id, err)
	}
	if err := s.assessmentRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to delete assessment")
		return fmt.Errorf("database error deleting assessment: %w", err)
	}
	return nil
}

// SaveDraft stores the serialized builder state without any authoring
// validation. Debouncing is the caller's concern.
func (s *assessmentService) SaveDraft(id uint, req dto.AssessmentSaveDTO) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("error serializing draft: %w", err)
	}
	draft := &model.AssessmentDraft{AssessmentID: id, Payload: payload}
	if err := s.assessmentRepo.SaveDraft(draft); err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to save draft")
		return fmt.Errorf("database error saving draft: %w", err)
	}
	return nil
}

func (s *assessmentService) GetDraft(id uint) (json.RawMessage, error) {
	draft, err := s.assessmentRepo.FindDraft(id)
	if err != nil {
		return nil, fmt.Errorf("no draft for assessment %d: %w", id, err)
	}
	return json.RawMessage(draft.Payload), nil
}

func (s *assessmentService) DiscardDraft(id uint) error {
	return s.assessmentRepo.DeleteDraft(id)
}

// QuestionTemplate returns the builder's defaults for a new question of the
// given type: two seeded options for choice questions, a 0..100 range for
// numbers, a 200 character cap for text.
func (s *assessmentService) QuestionTemplate(questionType string) (*dto.QuestionSaveDTO, error) {
	qt := model.QuestionType(questionType)
	if !model.ValidQuestionType(qt) {
		return nil, fmt.Errorf("unknown question type %q", questionType)
	}

	tmpl := &dto.QuestionSaveDTO{
		Type:   questionType,
		Points: 1,
	}
	switch qt {
	case model.QuestionSingleChoice, model.QuestionMultiChoice:
		tmpl.Options = []dto.OptionSaveDTO{
			{Text: "Option 1"},
			{Text: "Option 2"},
		}
	case model.QuestionNumber:
		tmpl.NumericRange = &dto.NumericRangeDTO{Min: 0, Max: 100}
	case model.QuestionShortText, model.QuestionLongText:
		maxLen := 200
		tmpl.MaxLength = &maxLen
	case model.QuestionFile:
	}
	return tmpl, nil
}

// PreviewScore runs submission validation and scoring against a transient
// assessment for the builder's live preview. Nothing is persisted.
func (s *assessmentService) PreviewScore(req dto.PreviewScoreDTO) (*dto.PreviewScoreResultDTO, error) {
	assessment := &model.Assessment{}
	for i, q := range req.Questions {
		assessment.Questions = append(assessment.Questions, questionFromDTO(q, i))
	}
	answers := NewAnswerSet(req.Answers)

	if failures := s.validator.Validate(assessment, answers); len(failures) > 0 {
		return &dto.PreviewScoreResultDTO{Failures: failures}, nil
	}

	result := &dto.PreviewScoreResultDTO{}
	if score := s.scorer.Score(assessment, answers); score != nil {
		result.Score = &dto.ScoreDTO{
			TotalPoints: score.TotalPoints,
			Obtained:    RoundForDisplay(score.Obtained),
			Percentage:  score.Percentage,
		}
	}
	return result, nil
}

// --- model <-> DTO mapping ---

func buildAssessmentModel(id uint, req dto.AssessmentSaveDTO) *model.Assessment {
	assessment := &model.Assessment{
		ID:    id,
		Title: req.Title,
		JobID: req.JobID,
	}
	for i, q := range req.Questions {
		question := model.Question{
			Position: i,
			Type:     model.QuestionType(q.Type),
			Text:     q.Text,
			Required: q.Required,
			Points:   q.Points,
		}
		if q.ID != nil {
			question.ID = *q.ID
		}
		if q.NumericRange != nil {
			min, max := q.NumericRange.Min, q.NumericRange.Max
			question.RangeMin, question.RangeMax = &min, &max
		}
		if q.MaxLength != nil {
			maxLen := *q.MaxLength
			question.MaxLength = &maxLen
		}
		if q.Conditional != nil {
			src, equals := q.Conditional.SourceQuestionID, q.Conditional.EqualsValue
			question.CondSourceID, question.CondEquals = &src, &equals
		}
		for j, opt := range q.Options {
			option := model.Option{Position: j, Text: opt.Text, IsCorrect: opt.IsCorrect}
			if opt.ID != nil {
				option.ID = *opt.ID
			}
			question.Options = append(question.Options, option)
		}
		assessment.Questions = append(assessment.Questions, question)
	}
	return assessment
}

func assessmentToDTO(a *model.Assessment) dto.AssessmentResponseDTO {
	var resp dto.AssessmentResponseDTO
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Msg("Failed to copy Assessment model to DTO")
	}
	resp.Questions = make([]dto.QuestionDTO, len(a.Questions))
	for i, q := range a.Questions {
		resp.Questions[i] = questionToDTO(q)
	}
	return resp
}

func questionToDTO(q model.Question) dto.QuestionDTO {
	d := dto.QuestionDTO{
		ID:       q.ID,
		Type:     string(q.Type),
		Text:     q.Text,
		Required: q.Required,
		Points:   q.Points,
	}
	for _, opt := range q.Options {
		d.Options = append(d.Options, dto.OptionDTO{ID: opt.ID, Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	if q.RangeMin != nil && q.RangeMax != nil {
		d.NumericRange = &dto.NumericRangeDTO{Min: *q.RangeMin, Max: *q.RangeMax}
	}
	if q.MaxLength != nil {
		maxLen := *q.MaxLength
		d.MaxLength = &maxLen
	}
	if q.CondSourceID != nil && q.CondEquals != nil {
		d.Conditional = &dto.ConditionalDTO{SourceQuestionID: *q.CondSourceID, EqualsValue: *q.CondEquals}
	}
	return d
}

func questionFromDTO(q dto.QuestionDTO, position int) model.Question {
	question := model.Question{
		ID:       q.ID,
		Position: position,
		Type:     model.QuestionType(q.Type),
		Text:     q.Text,
		Required: q.Required,
		Points:   q.Points,
	}
	for j, opt := range q.Options {
		question.Options = append(question.Options, model.Option{
			ID: opt.ID, Position: j, Text: opt.Text, IsCorrect: opt.IsCorrect,
		})
	}
	if q.NumericRange != nil {
		min, max := q.NumericRange.Min, q.NumericRange.Max
		question.RangeMin, question.RangeMax = &min, &max
	}
	if q.MaxLength != nil {
		maxLen := *q.MaxLength
		question.MaxLength = &maxLen
	}
	if q.Conditional != nil {
		src, equals := q.Conditional.SourceQuestionID, q.Conditional.EqualsValue
		question.CondSourceID, question.CondEquals = &src, &equals
	}
	return question
}
