package repository

import (
	"github.com/vhtran/talentflow/internal/model"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(job *model.Job) error
	Update(job *model.Job) error
	FindByID(id uint) (*model.Job, error)
	Search(search, status, tag string, page, pageSize int) ([]model.Job, int64, error)
	MaxDisplayOrder() (int, error)
	Reorder(jobID uint, fromOrder, toOrder int) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) Update(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) FindByID(id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Search(search, status, tag string, page, pageSize int) ([]model.Job, int64, error) {
	query := r.db.Model(&model.Job{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR tags ILIKE ?", like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tag != "" {
		query = query.Where("tags ILIKE ?", "%"+tag+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []model.Job
	err := query.Order("display_order ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepository) MaxDisplayOrder() (int, error) {
	var max *int
	err := r.db.Model(&model.Job{}).Select("MAX(display_order)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

// Reorder moves one job from fromOrder to toOrder and renumbers the whole
// listing contiguously, inside a single transaction.
func (r *jobRepository) Reorder(jobID uint, fromOrder, toOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var jobs []model.Job
		if err := tx.Order("display_order ASC").Find(&jobs).Error; err != nil {
			return err
		}

		moved := -1
		for i := range jobs {
			if jobs[i].ID == jobID {
				moved = i
				break
			}
		}
		if moved == -1 {
			return gorm.ErrRecordNotFound
		}

		job := jobs[moved]
		jobs = append(jobs[:moved], jobs[moved+1:]...)

		// Display orders are 1-based; clamp the target into the listing.
		at := toOrder - 1
		if at < 0 {
			at = 0
		}
		if at > len(jobs) {
			at = len(jobs)
		}
		jobs = append(jobs[:at], append([]model.Job{job}, jobs[at:]...)...)

		for i := range jobs {
			if jobs[i].DisplayOrder == i+1 {
				continue
			}
			if err := tx.Model(&model.Job{}).Where("id = ?", jobs[i].ID).
				Update("display_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
