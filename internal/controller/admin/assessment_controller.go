package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/service"
)

type AssessmentController struct {
	assessmentService service.AssessmentService
	submissionService service.SubmissionService
}

func NewAssessmentController(
	assessmentService service.AssessmentService,
	submissionService service.SubmissionService,
) *AssessmentController {
	return &AssessmentController{
		assessmentService: assessmentService,
		submissionService: submissionService,
	}
}

// CreateAssessment godoc
// @Summary (Admin) Create an assessment
// @Description Persists a new assessment after authoring validation: non-empty title and question text, choice questions with at least 2 options and a marked answer, number questions with min < max, conditionals referencing earlier questions only.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param assessment body dto.AssessmentSaveDTO true "Assessment definition"
// @Success 201 {object} dto.AssessmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Authoring validation failed; nothing saved"
// @Router /admin/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req dto.AssessmentSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	assessment, err := c.assessmentService.Create(req)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, assessment)
}

// UpdateAssessment godoc
// @Summary (Admin) Save an edited assessment
// @Description Replaces the assessment's questions after the same authoring validation as creation. Question ids provided by the caller are kept stable.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param assessment body dto.AssessmentSaveDTO true "Assessment definition"
// @Success 200 {object} dto.AssessmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{assessment_id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.AssessmentSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	assessment, err := c.assessmentService.Update(id, req)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assessment)
}

// ListAssessments godoc
// @Summary (Admin) List assessments
// @Tags Admin - Assessments
// @Produce json
// @Param job_id query int false "Filter by job"
// @Success 200 {array} dto.AssessmentSummaryDTO
// @Router /admin/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
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

	assessments, err := c.assessmentService.List(jobID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve assessments", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, assessments)
}

// GetAssessment godoc
// @Summary (Admin) Get an assessment with its full answer key
// @Tags Admin - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{assessment_id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	assessment, err := c.assessmentService.Get(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "Assessment not found")
		return
	}
	ctx.JSON(http.StatusOK, assessment)
}

// DeleteAssessment godoc
// @Summary (Admin) Delete an assessment
// @Description Submissions are kept; they stay readable under the deleted assessment's id.
// @Tags Admin - Assessments
// @Param assessment_id path int true "Assessment ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{assessment_id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	if err := c.assessmentService.Delete(id); err != nil {
		respondNotFoundOrError(ctx, err, "Assessment not found")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SaveDraft godoc
// @Summary (Admin) Autosave the builder's draft state
// @Description Stores the draft as-is, without authoring validation. Debounce on the caller side.
// @Tags Admin - Assessments
// @Accept json
// @Param assessment_id path int true "Assessment ID"
// @Param draft body dto.AssessmentSaveDTO true "Draft state"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/assessments/{assessment_id}/draft [put]
func (c *AssessmentController) SaveDraft(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.AssessmentSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.assessmentService.SaveDraft(id, req); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save draft", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetDraft godoc
// @Summary (Admin) Load the autosaved draft
// @Tags Admin - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentSaveDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{assessment_id}/draft [get]
func (c *AssessmentController) GetDraft(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	draft, err := c.assessmentService.GetDraft(id)
	if err != nil {
		respondNotFoundOrError(ctx, err, "No draft for this assessment")
		return
	}
	ctx.Data(http.StatusOK, "application/json", draft)
}

// DiscardDraft godoc
// @Summary (Admin) Discard the autosaved draft
// @Tags Admin - Assessments
// @Param assessment_id path int true "Assessment ID"
// @Success 204
// @Router /admin/assessments/{assessment_id}/draft [delete]
func (c *AssessmentController) DiscardDraft(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	if err := c.assessmentService.DiscardDraft(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to discard draft", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// QuestionTemplate godoc
// @Summary (Admin) Get builder defaults for a new question
// @Tags Admin - Assessments
// @Produce json
// @Param type path string true "Question type"
// @Success 200 {object} dto.QuestionSaveDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/assessments/question-defaults/{type} [get]
func (c *AssessmentController) QuestionTemplate(ctx *gin.Context) {
	tmpl, err := c.assessmentService.QuestionTemplate(ctx.Param("type"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown question type", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tmpl)
}

// PreviewScore godoc
// @Summary (Admin) Validate and score the builder's live preview
// @Description Runs submission validation and the scoring engine against a transient assessment without persisting anything.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param preview body dto.PreviewScoreDTO true "Questions and in-progress answers"
// @Success 200 {object} dto.PreviewScoreResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/assessments/preview-score [post]
func (c *AssessmentController) PreviewScore(ctx *gin.Context) {
	var req dto.PreviewScoreDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.assessmentService.PreviewScore(req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute preview", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListSubmissions godoc
// @Summary (Admin) List submissions for an assessment
// @Description Works for deleted assessments too; orphaned submissions remain listed.
// @Tags Admin - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {array} dto.SubmissionSummaryDTO
// @Router /admin/assessments/{assessment_id}/submissions [get]
func (c *AssessmentController) ListSubmissions(ctx *gin.Context) {
	id, ok := pathID(ctx, "assessment_id")
	if !ok {
		return
	}
	submissions, err := c.submissionService.ListForAssessment(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve submissions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

func respondAssessmentError(ctx *gin.Context, err error) {
	var authErr *service.AuthoringError
	if errors.As(err, &authErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Assessment failed authoring validation", Details: authErr.Details})
		return
	}
	respondNotFoundOrError(ctx, err, "Assessment not found")
}
