package repository

import (
	"github.com/vhtran/talentflow/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	// ReplaceQuestions persists an edited assessment: metadata updated,
	// existing question and option rows replaced by the given set.
	ReplaceQuestions(assessment *model.Assessment) error
	FindByID(id uint) (*model.Assessment, error)
	FindByIDWithQuestions(id uint) (*model.Assessment, error)
	FindAllWithQuestionCount(jobID *uint) ([]struct {
		model.Assessment
		QuestionCount int
	}, error)
	Delete(id uint) error

	SaveDraft(draft *model.AssessmentDraft) error
	FindDraft(assessmentID uint) (*model.AssessmentDraft, error)
	DeleteDraft(assessmentID uint) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	// Create with associations persists questions and their options too.
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) ReplaceQuestions(assessment *model.Assessment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", assessment.ID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Unscoped().Where("question_id IN ?", questionIDs).
				Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("assessment_id = ?", assessment.ID).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(assessment).Error
	})
}

func (r *assessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.position ASC")
		}).
		First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindAllWithQuestionCount(jobID *uint) ([]struct {
	model.Assessment
	QuestionCount int
}, error) {
	var results []struct {
		model.Assessment
		QuestionCount int
	}
	query := r.db.Model(&model.Assessment{}).
		Select("assessments.*, (SELECT COUNT(*) FROM questions WHERE questions.assessment_id = assessments.id AND questions.deleted_at IS NULL) as question_count").
		Where("assessments.deleted_at IS NULL").
		Order("assessments.created_at DESC")
	if jobID != nil {
		query = query.Where("assessments.job_id = ?", *jobID)
	}
	err := query.Scan(&results).Error
	return results, err
}

// Delete removes the assessment and its questions. Submissions are left in
// place; they reference the assessment id and may dangle.
func (r *assessmentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentDraft{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *assessmentRepository) SaveDraft(draft *model.AssessmentDraft) error {
	return r.db.Save(draft).Error
}

func (r *assessmentRepository) FindDraft(assessmentID uint) (*model.AssessmentDraft, error) {
	var draft model.AssessmentDraft
	if err := r.db.First(&draft, "assessment_id = ?", assessmentID).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *assessmentRepository) DeleteDraft(assessmentID uint) error {
	return r.db.Delete(&model.AssessmentDraft{}, "assessment_id = ?", assessmentID).Error
}
