package candidate

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

// TakeController serves the candidate-facing take flow: fetch an assessment
// (without the answer key) and submit an answer set.
type TakeController struct {
	assessmentService service.AssessmentService
	submissionService service.SubmissionService
}

func NewTakeController(
	assessmentService service.AssessmentService,
	submissionService service.SubmissionService,
) *TakeController {
	return &TakeController{
		assessmentService: assessmentService,
		submissionService: submissionService,
	}
}

// GetAssessment godoc
// @Summary (Candidate) Fetch an assessment to take
// @Description Returns the form definition with options stripped of their answer key.
// @Tags Candidate - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentPublicDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{assessment_id} [get]
func (c *TakeController) GetAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	assessment, err := c.assessmentService.GetPublic(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Assessment not found")
		return
	}
	ctx.JSON(http.StatusOK, assessment)
}

// SubmitAssessment godoc
// @Summary (Candidate) Submit answers for an assessment
// @Description Validates the answer set; on rejection returns 422 with the failures and persists nothing. On acceptance scores the attempt once and stores the immutable submission record.
// @Tags Candidate - Assessments
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param submission body dto.SubmissionCreateDTO true "Candidate identity and answers"
// @Success 201 {object} dto.SubmissionDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.RejectedResponse "Validation failures; correct and resubmit"
// @Router /assessments/{assessment_id}/submissions [post]
func (c *TakeController) SubmitAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.SubmissionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	submission, err := c.submissionService.Submit(id, req)
	if err != nil {
		var rejected *service.SubmissionRejectedError
		if errors.As(err, &rejected) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.RejectedResponse{
				Message:  "Submission rejected",
				Failures: rejected.Failures,
			})
			return
		}
		respondNotFoundOrError(ctx, err, "Assessment not found")
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// GetSubmission godoc
// @Summary (Candidate) Fetch one submission record
// @Tags Candidate - Assessments
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions/{submission_id} [get]
func (c *TakeController) GetSubmission(ctx *gin.Context) {
	id, ok := pathID(ctx, "submission_id")
	if !ok {
		return
	}
	submission, err := c.submissionService.Get(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Submission not found")
		return
	}
	ctx.JSON(http.StatusOK, submission)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
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
