package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitcoach/trainer-service/internal/analytics"
	"github.com/fitcoach/trainer-service/internal/cache"
	"github.com/fitcoach/trainer-service/internal/events"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"gorm.io/gorm"
)

// AnalysisService produces the progress analysis for a student's latest
// physical assessment
type AnalysisService interface {
	GenerateForStudent(ctx context.Context, studentID uint, userID string) (*analytics.AnalysisResult, error)
}

type analysisService struct {
	repo      repositories.Repository
	engine    *analytics.Engine
	cache     cache.CacheService
	cacheTTL  time.Duration
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewAnalysisService(
	repo repositories.Repository,
	engine *analytics.Engine,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	logger *slog.Logger,
	publisher events.EventPublisher,
) AnalysisService {
	return &analysisService{
		repo:      repo,
		engine:    engine,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		logger:    logger,
		publisher: publisher,
	}
}

// GenerateForStudent loads the student's latest assessment and its archived
// history, then runs the analytics engine over it. Results are cached keyed
// by assessment id and version, so an assessment update (which bumps the
// version) naturally misses the stale entry.
func (s *analysisService) GenerateForStudent(ctx context.Context, studentID uint, userID string) (*analytics.AnalysisResult, error) {
	canAccess, err := s.repo.Student().CanAccess(ctx, studentID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, NewPermissionError(userID, studentID, "student", "analyze", "not the owning trainer")
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	current, err := s.repo.Assessment().GetLatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAssessmentForStudent
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}

	cacheKey := analysisCacheKey(studentID, current.ID, current.Version)
	if s.cache != nil {
		var cached analytics.AnalysisResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Analysis served from cache", "student_id", studentID, "key", cacheKey)
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Analysis cache lookup failed", "key", cacheKey, "error", err)
		}
	}

	history, err := s.repo.Assessment().GetHistory(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment history: %w", err)
	}

	result := s.engine.Analyze(ctx, current, student, history)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache analysis", "key", cacheKey, "error", err)
		}
	}

	s.publishGenerated(ctx, current.TrainerID, result)

	s.logger.Info("Analysis generated",
		"student_id", studentID,
		"assessment_id", current.ID,
		"history_points", len(history))
	return result, nil
}

// analysisCacheKey builds the version-scoped cache key for one analysis. The
// version suffix makes entries for superseded assessment versions
// unreachable without an explicit purge.
func analysisCacheKey(studentID, assessmentID uint, version int) string {
	return fmt.Sprintf("analysis:student:%d:assessment:%d:v%d", studentID, assessmentID, version)
}

// analysisStudentPattern matches every cached analysis for one student.
func analysisStudentPattern(studentID uint) string {
	return fmt.Sprintf("analysis:student:%d:*", studentID)
}

func (s *analysisService) publishGenerated(ctx context.Context, trainerID string, result *analytics.AnalysisResult) {
	if s.publisher == nil {
		return
	}

	var improving, worsening int
	for _, trend := range result.Metrics {
		switch trend.Trend {
		case analytics.TrendImproving:
			improving++
		case analytics.TrendWorsening:
			worsening++
		}
	}

	err := s.publisher.PublishAssessmentEvent(ctx, events.EventAnalysisGenerated, events.AnalysisGeneratedEvent{
		AssessmentID:      result.Assessment.AssessmentID,
		StudentID:         result.Student.ID,
		TrainerID:         trainerID,
		MetricsAnalyzed:   len(result.Metrics),
		ImprovingMetrics:  improving,
		WorseningMetrics:  worsening,
		DaysSincePrevious: result.Assessment.DaysSincePrevious,
	})
	if err != nil {
		s.logger.Error("Failed to publish analysis event", "error", err)
	}
}
