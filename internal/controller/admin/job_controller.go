package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/service"
	"gorm.io/gorm"
)

type JobController struct {
	jobService service.JobService
}

func NewJobController(jobService service.JobService) *JobController {
	return &JobController{jobService: jobService}
}

// CreateJob godoc
// @Summary (Admin) Create a job listing
// @Tags Admin - Jobs
// @Accept json
// @Produce json
// @Param job body dto.JobCreateDTO true "Job data"
// @Success 201 {object} dto.JobResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.JobCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateJob: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	job, err := c.jobService.Create(req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create job", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, job)
}

// ListJobs godoc
// @Summary (Admin) List job listings
// @Tags Admin - Jobs
// @Produce json
// @Param search query string false "Match title or tags"
// @Param status query string false "Filter by status"
// @Param tag query string false "Filter by tag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.JobListDTO
// @Router /admin/jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	jobs, err := c.jobService.List(ctx.Query("search"), ctx.Query("status"), ctx.Query("tag"), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve jobs", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary (Admin) Get one job listing
// @Tags Admin - Jobs
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {object} dto.JobResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/jobs/{job_id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	id, ok := pathID(ctx, "job_id")
	if !ok {
		return
	}
	job, err := c.jobService.Get(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Job not found")
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// UpdateJob godoc
// @Summary (Admin) Update a job listing
// @Tags Admin - Jobs
// @Accept json
// @Produce json
// @Param job_id path int true "Job ID"
// @Param job body dto.JobUpdateDTO true "Job data"
// @Success 200 {object} dto.JobResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/jobs/{job_id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	id, ok := pathID(ctx, "job_id")
	if !ok {
		return
	}
	var req dto.JobUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	job, err := c.jobService.Update(id, req)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Job not found")
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// ToggleArchive godoc
// @Summary (Admin) Toggle a job between active and archived
// @Tags Admin - Jobs
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {object} dto.JobResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/jobs/{job_id}/archive [patch]
func (c *JobController) ToggleArchive(ctx *gin.Context) {
	id, ok := pathID(ctx, "job_id")
	if !ok {
		return
	}
	job, err := c.jobService.ToggleArchive(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Job not found")
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// ReorderJob godoc
// @Summary (Admin) Persist a drag-and-drop job reorder
// @Tags Admin - Jobs
// @Accept json
// @Param job_id path int true "Job ID"
// @Param move body dto.JobReorderDTO true "Old and new positions"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/jobs/{job_id}/reorder [patch]
func (c *JobController) ReorderJob(ctx *gin.Context) {
	id, ok := pathID(ctx, "job_id")
	if !ok {
		return
	}
	var req dto.JobReorderDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.jobService.Reorder(id, req); err != nil {
		respondNotFoundOrError(ctx, err, "Job not found")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// pathID parses a uint path parameter, writing the 400 response itself when
// the value is malformed.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func respondNotFoundOrError(ctx *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: notFoundMsg})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal error", Details: []string{err.Error()}})
}
