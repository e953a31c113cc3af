package dto

import "time"

type JobCreateDTO struct {
	Title  string   `json:"title" binding:"required"`
	Status string   `json:"status" binding:"omitempty,oneof=active archived draft closed"`
	Tags   []string `json:"tags"`
}

type JobUpdateDTO struct {
	Title  string   `json:"title" binding:"required"`
	Status string   `json:"status" binding:"required,oneof=active archived draft closed"`
	Tags   []string `json:"tags"`
}

// JobReorderDTO mirrors the drag-and-drop move: the job's old and new
// positions in the ordered listing. Positions start at 1.
type JobReorderDTO struct {
	FromOrder int `json:"fromOrder" binding:"min=0"`
	ToOrder   int `json:"toOrder" binding:"min=0"`
}

type JobResponseDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Status       string    `json:"status"`
	Tags         []string  `json:"tags"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

type JobListDTO struct {
	Jobs       []JobResponseDTO `json:"jobs"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
