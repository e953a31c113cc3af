package service

import (
	"fmt"
	"math"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
	"github.com/vhtran/talentflow/internal/repository"
)

type CandidateService interface {
	Create(req dto.CandidateCreateDTO) (*dto.CandidateResponseDTO, error)
	List(search, stage string, jobID *uint, page, pageSize int) (*dto.CandidateListDTO, error)
	UpdateStage(id uint, req dto.CandidateStageDTO) (*dto.CandidateResponseDTO, error)
	Timeline(id uint) ([]dto.StageEventDTO, error)
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
}

func NewCandidateService(candidateRepo repository.CandidateRepository) CandidateService {
	return &candidateService{candidateRepo: candidateRepo}
}

func (s *candidateService) Create(req dto.CandidateCreateDTO) (*dto.CandidateResponseDTO, error) {
	candidate := &model.Candidate{
		Name:  req.Name,
		Email: req.Email,
		Stage: model.StageApplied,
		JobID: req.JobID,
	}
	if err := s.candidateRepo.Create(candidate); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create candidate")
		return nil, fmt.Errorf("database error creating candidate: %w", err)
	}

	event := &model.StageEvent{CandidateID: candidate.ID, Stage: candidate.Stage}
	if err := s.candidateRepo.AppendStageEvent(event); err != nil {
		log.Warn().Err(err).Uint("candidateID", candidate.ID).Msg("Failed to record initial stage event")
	}

	resp := candidateToDTO(candidate)
	return &resp, nil
}

func (s *candidateService) List(search, stage string, jobID *uint, page, pageSize int) (*dto.CandidateListDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 25
	}
	if stage != "" && !model.ValidStage(stage) {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}

	candidates, total, err := s.candidateRepo.Search(search, stage, jobID, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search candidates")
		return nil, fmt.Errorf("error fetching candidates: %w", err)
	}

	resp := &dto.CandidateListDTO{
		Candidates: make([]dto.CandidateResponseDTO, 0, len(candidates)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
	for i := range candidates {
		resp.Candidates = append(resp.Candidates, candidateToDTO(&candidates[i]))
	}
	return resp, nil
}

// UpdateStage moves the candidate through the pipeline and appends the
// matching timeline event.
func (s *candidateService) UpdateStage(id uint, req dto.CandidateStageDTO) (*dto.CandidateResponseDTO, error) {
	candidate, err := s.candidateRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("candidate not found with ID %d: %w", id, err)
	}

	candidate.Stage = req.Stage
	if err := s.candidateRepo.Update(candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("Failed to update candidate stage")
		return nil, fmt.Errorf("database error updating candidate: %w", err)
	}

	event := &model.StageEvent{CandidateID: candidate.ID, Stage: req.Stage}
	if err := s.candidateRepo.AppendStageEvent(event); err != nil {
		log.Warn().Err(err).Uint("candidateID", id).Msg("Failed to record stage event")
	}

	resp := candidateToDTO(candidate)
	return &resp, nil
}

func (s *candidateService) Timeline(id uint) ([]dto.StageEventDTO, error) {
	if _, err := s.candidateRepo.FindByID(id); err != nil {
		return nil, fmt.Errorf("candidate not found with ID %d: %w", id, err)
	}

	events, err := s.candidateRepo.FindTimeline(id)
	if err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("Failed to fetch candidate timeline")
		return nil, fmt.Errorf("error fetching timeline for candidate %d: %w", id, err)
	}

	dtos := make([]dto.StageEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, dto.StageEventDTO{Stage: event.Stage, OccurredAt: event.OccurredAt})
	}
	return dtos, nil
}

func candidateToDTO(candidate *model.Candidate) dto.CandidateResponseDTO {
	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, candidate); err != nil {
		log.Error().Err(err).Msg("Failed to copy Candidate model to DTO")
	}
	return resp
}
