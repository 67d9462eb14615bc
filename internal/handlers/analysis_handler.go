package handlers

import (
	"fmt"
	"net/http"

	"github.com/fitcoach/trainer-service/internal/services"
	"github.com/fitcoach/trainer-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnalysisHandler struct {
	BaseHandler
	analysisService services.AnalysisService
	exportService   services.ReportExportService
}

func NewAnalysisHandler(
	analysisService services.AnalysisService,
	exportService services.ReportExportService,
	logger utils.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:     NewBaseHandler(logger),
		analysisService: analysisService,
		exportService:   exportService,
	}
}

// GetAnalysis generates the progress analysis for a student's latest
// assessment
// @Summary Get progress analysis
// @Tags analysis
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {object} analytics.AnalysisResult
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id}/analysis [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Generating progress analysis", "student_id", studentID)

	result, err := h.analysisService.GenerateForStudent(c.Request.Context(), studentID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportAnalysis downloads the analysis as a spreadsheet
// @Summary Export progress analysis
// @Tags analysis
// @Produce application/octet-stream
// @Param student_id path uint true "Student ID"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id}/analysis/export [get]
func (h *AnalysisHandler) ExportAnalysis(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	userID := h.requireUserID(c)
	if userID == "" {
		return
	}

	format := c.DefaultQuery("format", "xlsx")

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportAnalysisToExcel(c.Request.Context(), studentID, userID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, err = h.exportService.ExportAnalysisToCSV(c.Request.Context(), studentID, userID)
		contentType = "text/csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid format",
			Details: "supported formats: xlsx, csv",
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("analise-aluno-%d.%s", studentID, format)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
