package repository

import (
	"github.com/vhtran/talentflow/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository interface {
	Create(candidate *model.Candidate) error
	Update(candidate *model.Candidate) error
	FindByID(id uint) (*model.Candidate, error)
	Search(search, stage string, jobID *uint, page, pageSize int) ([]model.Candidate, int64, error)
	AppendStageEvent(event *model.StageEvent) error
	FindTimeline(candidateID uint) ([]model.StageEvent, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *candidateRepository) Update(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *candidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.First(&candidate, id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) Search(search, stage string, jobID *uint, page, pageSize int) ([]model.Candidate, int64, error) {
	query := r.db.Model(&model.Candidate{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var candidates []model.Candidate
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *candidateRepository) AppendStageEvent(event *model.StageEvent) error {
	return r.db.Create(event).Error
}

func (r *candidateRepository) FindTimeline(candidateID uint) ([]model.StageEvent, error) {
	var events []model.StageEvent
	err := r.db.Where("candidate_id = ?", candidateID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}
