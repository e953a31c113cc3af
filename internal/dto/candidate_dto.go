package dto

import "time"

type CandidateCreateDTO struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	JobID *uint  `json:"jobId"`
}

type CandidateStageDTO struct {
	Stage string `json:"stage" binding:"required,oneof=applied screen tech offer hired rejected"`
}

type CandidateResponseDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     string    `json:"stage"`
	JobID     *uint     `json:"jobId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CandidateListDTO struct {
	Candidates []CandidateResponseDTO `json:"candidates"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

type StageEventDTO struct {
	Stage      string    `json:"stage"`
	OccurredAt time.Time `json:"occurredAt"`
}
