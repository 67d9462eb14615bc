package handlers

import (
	"net/http"

	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"github.com/fitcoach/trainer-service/internal/services"
	"github.com/fitcoach/trainer-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// CreateStudent registers a new student under the authenticated trainer
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
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

	student, err := h.studentService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags students
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := parseIDParam(c, "student_id")
	if id == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents lists the authenticated trainer's students
// @Summary List students
// @Tags students
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search by name or email"
// @Success 200 {object} services.StudentListResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	filters := h.parseStudentFilters(c)

	h.LogRequest(c, "Listing students", "trainer_id", userID)

	resp, err := h.studentService.ListByTrainer(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateStudent updates a student's profile
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param student body services.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} models.Student
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := parseIDParam(c, "student_id")
	if id == 0 {
		return
	}

	var req services.UpdateStudentRequest
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

	student, err := h.studentService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student
// @Summary Delete student
// @Tags students
// @Param student_id path uint true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := parseIDParam(c, "student_id")
	if id == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Student deleted successfully",
	})
}

func (h *StudentHandler) parseStudentFilters(c *gin.Context) repositories.StudentFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 10)
	if size > 100 {
		size = 100
	}

	filters := repositories.StudentFilters{
		Search:    c.Query("search"),
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.StudentStatus(statusStr)
		filters.Status = &status
	}

	return filters
}
