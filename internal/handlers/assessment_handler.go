package handlers

import (
	"net/http"
	"time"

	"github.com/fitcoach/trainer-service/internal/repositories"
	"github.com/fitcoach/trainer-service/internal/services"
	"github.com/fitcoach/trainer-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// CreateAssessment records a new physical assessment for a student
// @Summary Create assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body services.CreateAssessmentRequest true "Assessment data"
// @Success 201 {object} models.PhysicalAssessment
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment retrieves an assessment by ID
// @Summary Get assessment
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} models.PhysicalAssessment
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetLatestByStudent retrieves the student's most recent assessment
// @Summary Get latest assessment for student
// @Tags assessments
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {object} models.PhysicalAssessment
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id}/assessments/latest [get]
func (h *AssessmentHandler) GetLatestByStudent(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	assessment, err := h.assessmentService.GetLatestByStudent(c.Request.Context(), studentID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ListAssessmentsByStudent pages through a student's assessments
// @Summary List assessments for student
// @Tags assessments
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param date_from query string false "Earliest assessment date (RFC 3339)"
// @Param date_to query string false "Latest assessment date (RFC 3339)"
// @Success 200 {object} services.AssessmentListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /students/{student_id}/assessments [get]
func (h *AssessmentHandler) ListAssessmentsByStudent(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 10)
	if size > 100 {
		size = 100
	}
	filters := repositories.AssessmentFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}

	for _, q := range []struct {
		param string
		dest  **time.Time
	}{
		{"date_from", &filters.DateFrom},
		{"date_to", &filters.DateTo},
	} {
		value := c.Query(q.param)
		if value == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid " + q.param,
				Details: "must be an RFC 3339 timestamp",
			})
			return
		}
		*q.dest = &parsed
	}

	response, err := h.assessmentService.ListByStudent(c.Request.Context(), studentID, filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateAssessment corrects an assessment, archiving the previous version
// @Summary Update assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path uint true "Assessment ID"
// @Param assessment body services.UpdateAssessmentRequest true "Fields to update"
// @Success 200 {object} models.PhysicalAssessment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Updating assessment", "assessment_id", id)

	assessment, err := h.assessmentService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// DeleteAssessment removes an assessment and its archived versions
// @Summary Delete assessment
// @Tags assessments
// @Param id path uint true "Assessment ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	if err := h.assessmentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Assessment deleted successfully",
	})
}

// GetAssessmentHistory lists the archived versions of an assessment
// @Summary Get assessment version history
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {array} models.AssessmentHistoryRecord
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/history [get]
func (h *AssessmentHandler) GetAssessmentHistory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	history, err := h.assessmentService.GetHistory(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
