package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
	"github.com/vhtran/talentflow/internal/repository"
)

type JobService interface {
	Create(req dto.JobCreateDTO) (*dto.JobResponseDTO, error)
	Update(id uint, req dto.JobUpdateDTO) (*dto.JobResponseDTO, error)
	Get(id uint) (*dto.JobResponseDTO, error)
	List(search, status, tag string, page, pageSize int) (*dto.JobListDTO, error)
	ToggleArchive(id uint) (*dto.JobResponseDTO, error)
	Reorder(id uint, req dto.JobReorderDTO) error
}

type jobService struct {
	jobRepo repository.JobRepository
}

func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9-]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleaner.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

func (s *jobService) Create(req dto.JobCreateDTO) (*dto.JobResponseDTO, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}

	maxOrder, err := s.jobRepo.MaxDisplayOrder()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read max job display order")
		return nil, fmt.Errorf("error creating job: %w", err)
	}

	job := &model.Job{
		Title:        req.Title,
		Slug:         slugify(req.Title),
		Status:       status,
		Tags:         strings.Join(req.Tags, ","),
		DisplayOrder: maxOrder + 1,
	}
	if err := s.jobRepo.Create(job); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create job")
		return nil, fmt.Errorf("database error creating job: %w", err)
	}
	resp := jobToDTO(job)
	return &resp, nil
}

func (s *jobService) Update(id uint, req dto.JobUpdateDTO) (*dto.JobResponseDTO, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("job not found with ID %d: %w", id, err)
	}

	job.Title = req.Title
	job.Slug = slugify(req.Title)
	job.Status = req.Status
	job.Tags = strings.Join(req.Tags, ",")
	if err := s.jobRepo.Update(job); err != nil {
		log.Error().Err(err).Uint("jobID", id).Msg("Failed to update job")
		return nil, fmt.Errorf("database error updating job: %w", err)
	}
	resp := jobToDTO(job)
	return &resp, nil
}

func (s *jobService) Get(id uint) (*dto.JobResponseDTO, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("job not found with ID %d: %w", id, err)
	}
	resp := jobToDTO(job)
	return &resp, nil
}

func (s *jobService) List(search, status, tag string, page, pageSize int) (*dto.JobListDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := s.jobRepo.Search(search, status, tag, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search jobs")
		return nil, fmt.Errorf("error fetching jobs: %w", err)
	}

	resp := &dto.JobListDTO{
		Jobs:       make([]dto.JobResponseDTO, 0, len(jobs)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, jobToDTO(&jobs[i]))
	}
	return resp, nil
}

func (s *jobService) ToggleArchive(id uint) (*dto.JobResponseDTO, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("job not found with ID %d: %w", id, err)
	}

	if job.Status == "archived" {
		job.Status = "active"
	} else {
		job.Status = "archived"
	}
	if err := s.jobRepo.Update(job); err != nil {
		log.Error().Err(err).Uint("jobID", id).Msg("Failed to toggle job archive status")
		return nil, fmt.Errorf("database error updating job: %w", err)
	}
	resp := jobToDTO(job)
	return &resp, nil
}

func (s *jobService) Reorder(id uint, req dto.JobReorderDTO) error {
	if err := s.jobRepo.Reorder(id, req.FromOrder, req.ToOrder); err != nil {
		log.Error().Err(err).Uint("jobID", id).
			Int("fromOrder", req.FromOrder).Int("toOrder", req.ToOrder).
			Msg("Failed to reorder job")
		return fmt.Errorf("error reordering job %d: %w", id, err)
	}
	return nil
}

func jobToDTO(job *model.Job) dto.JobResponseDTO {
	var resp dto.JobResponseDTO
	if err := copier.Copy(&resp, job); err != nil {
		log.Error().Err(err).Msg("Failed to copy Job model to DTO")
	}
	resp.Tags = nil
	if job.Tags != "" {
		for _, tag := range strings.Split(job.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				resp.Tags = append(resp.Tags, tag)
			}
		}
	}
	return resp
}
