package repository

import (
	"github.com/vhtran/talentflow/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindByIDWithAnswers(id uint) (*model.Submission, error)
	FindAllByAssessment(assessmentID uint) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	// Create with associations persists the answer rows in the same
	// transaction; a submission is never written partially.
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(submission).Error
	})
}

func (r *submissionRepository) FindByIDWithAnswers(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("submission_answers.position ASC")
		}).
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindAllByAssessment(assessmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.Where("assessment_id = ?", assessmentID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}
