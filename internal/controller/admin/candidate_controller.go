package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/service"
)

type CandidateController struct {
	candidateService service.CandidateService
}

func NewCandidateController(candidateService service.CandidateService) *CandidateController {
	return &CandidateController{candidateService: candidateService}
}

// CreateCandidate godoc
// @Summary (Admin) Add a candidate to the roster
// @Tags Admin - Candidates
// @Accept json
// @Produce json
// @Param candidate body dto.CandidateCreateDTO true "Candidate data"
// @Success 201 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/candidates [post]
func (c *CandidateController) CreateCandidate(ctx *gin.Context) {
	var req dto.CandidateCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateCandidate: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	candidate, err := c.candidateService.Create(req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create candidate", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, candidate)
}

// ListCandidates godoc
// @Summary (Admin) List candidates
// @Description Search by name or email, filter by pipeline stage and job, paginate.
// @Tags Admin - Candidates
// @Produce json
// @Param search query string false "Match name or email"
// @Param stage query string false "Filter by stage"
// @Param job_id query int false "Filter by job"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.CandidateListDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/candidates [get]
func (c *CandidateController) ListCandidates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "25"))

	var jobID *uint
	if raw := ctx.Query("job_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid job_id format"})
			return
		}
		id := uint(val)
		jobID = &id
	}

	candidates, err := c.candidateService.List(ctx.Query("search"), ctx.Query("stage"), jobID, page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to retrieve candidates", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, candidates)
}

// UpdateStage godoc
// @Summary (Admin) Move a candidate to another pipeline stage
// @Tags Admin - Candidates
// @Accept json
// @Produce json
// @Param candidate_id path int true "Candidate ID"
// @Param stage body dto.CandidateStageDTO true "Target stage"
// @Success 200 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/candidates/{candidate_id}/stage [patch]
func (c *CandidateController) UpdateStage(ctx *gin.Context) {
	id, ok := pathID(ctx, "candidate_id")
	if !ok {
		return
	}
	var req dto.CandidateStageDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	candidate, err := c.candidateService.UpdateStage(id, req)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Candidate not found")
		return
	}
	ctx.JSON(http.StatusOK, candidate)
}

// GetTimeline godoc
// @Summary (Admin) Get a candidate's stage timeline
// @Tags Admin - Candidates
// @Produce json
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {array} dto.StageEventDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/candidates/{candidate_id}/timeline [get]
func (c *CandidateController) GetTimeline(ctx *gin.Context) {
	id, ok := pathID(ctx, "candidate_id")
	if !ok {
		return
	}
	events, err := c.candidateService.Timeline(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Candidate not found")
		return
	}
	ctx.JSON(http.StatusOK, events)
}
