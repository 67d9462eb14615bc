package handlers

import (
	"net/http"

	"github.com/fitcoach/trainer-service/internal/services"
	"github.com/fitcoach/trainer-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	studentHandler    *StudentHandler
	assessmentHandler *AssessmentHandler
	analysisHandler   *AnalysisHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		analysisHandler:   NewAnalysisHandler(serviceManager.Analysis(), serviceManager.ReportExport(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(UserContextMiddleware())
	{
		// Student routes
		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:student_id", hm.studentHandler.GetStudent)
			students.PUT("/:student_id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:student_id", hm.studentHandler.DeleteStudent)

			// Per-student assessment and analysis routes
			students.GET("/:student_id/assessments", hm.assessmentHandler.ListAssessmentsByStudent)
			students.GET("/:student_id/assessments/latest", hm.assessmentHandler.GetLatestByStudent)
			students.GET("/:student_id/analysis", hm.analysisHandler.GetAnalysis)
			students.GET("/:student_id/analysis/export", hm.analysisHandler.ExportAnalysis)
		}

		// Assessment routes
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.GET("/:id/history", hm.assessmentHandler.GetAssessmentHistory)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "trainer-service",
		})
	})
}

// UserContextMiddleware resolves the authenticated user id for downstream
// handlers. The upstream gateway authenticates requests and forwards the
// subject in the X-User-ID header.
func UserContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}
