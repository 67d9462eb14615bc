package services

import (
	"log/slog"
	"time"

	"github.com/fitcoach/trainer-service/internal/analytics"
	"github.com/fitcoach/trainer-service/internal/cache"
	"github.com/fitcoach/trainer-service/internal/events"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"github.com/fitcoach/trainer-service/internal/validator"
)

// ServiceManager aggregates all business services for handler wiring
type ServiceManager interface {
	Student() StudentService
	Assessment() AssessmentService
	Analysis() AnalysisService
	ReportExport() ReportExportService
}

type serviceManager struct {
	student      StudentService
	assessment   AssessmentService
	analysis     AnalysisService
	reportExport ReportExportService
}

func NewServiceManager(
	repo repositories.Repository,
	engine *analytics.Engine,
	cacheService cache.CacheService,
	analysisCacheTTL time.Duration,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	analysis := NewAnalysisService(repo, engine, cacheService, analysisCacheTTL, logger, publisher)
	return &serviceManager{
		student:      NewStudentService(repo, logger, validator),
		assessment:   NewAssessmentService(repo, logger, validator, publisher, cacheService),
		analysis:     analysis,
		reportExport: NewReportExportService(analysis, logger),
	}
}

func (m *serviceManager) Student() StudentService           { return m.student }
func (m *serviceManager) Assessment() AssessmentService     { return m.assessment }
func (m *serviceManager) Analysis() AnalysisService         { return m.analysis }
func (m *serviceManager) ReportExport() ReportExportService { return m.reportExport }
