package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitcoach/trainer-service/internal/cache"
	"github.com/fitcoach/trainer-service/internal/events"
	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"github.com/fitcoach/trainer-service/internal/validator"
	"gorm.io/gorm"
)

// AssessmentService manages physical assessments and their version history
type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, userID string) (*models.PhysicalAssessment, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.PhysicalAssessment, error)
	GetLatestByStudent(ctx context.Context, studentID uint, userID string) (*models.PhysicalAssessment, error)
	ListByStudent(ctx context.Context, studentID uint, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, userID string) (*models.PhysicalAssessment, error)
	Delete(ctx context.Context, id uint, userID string) error
	GetHistory(ctx context.Context, id uint, userID string) ([]models.AssessmentHistoryRecord, error)
}

type CreateAssessmentRequest struct {
	StudentID     uint      `json:"student_id" validate:"required"`
	AssessedAt    time.Time `json:"assessed_at" validate:"required"`
	WeightKg      float64   `json:"weight_kg" validate:"omitempty,min=0,max=500"`
	HeightCm      float64   `json:"height_cm" validate:"omitempty,min=0,max=300"`
	BodyFatPct    float64   `json:"body_fat_pct" validate:"omitempty,min=0,max=100"`
	MuscleMassPct float64   `json:"muscle_mass_pct" validate:"omitempty,min=0,max=100"`
	WaistCircCm   float64   `json:"waist_circ_cm" validate:"omitempty,min=0,max=300"`
	HipCircCm     float64   `json:"hip_circ_cm" validate:"omitempty,min=0,max=300"`
	RestingHR     float64   `json:"resting_hr" validate:"omitempty,min=0,max=250"`
	Notes         *string   `json:"notes"`
}

type UpdateAssessmentRequest struct {
	AssessedAt    *time.Time `json:"assessed_at"`
	WeightKg      *float64   `json:"weight_kg" validate:"omitempty,min=0,max=500"`
	HeightCm      *float64   `json:"height_cm" validate:"omitempty,min=0,max=300"`
	BodyFatPct    *float64   `json:"body_fat_pct" validate:"omitempty,min=0,max=100"`
	MuscleMassPct *float64   `json:"muscle_mass_pct" validate:"omitempty,min=0,max=100"`
	WaistCircCm   *float64   `json:"waist_circ_cm" validate:"omitempty,min=0,max=300"`
	HipCircCm     *float64   `json:"hip_circ_cm" validate:"omitempty,min=0,max=300"`
	RestingHR     *float64   `json:"resting_hr" validate:"omitempty,min=0,max=250"`
	Notes         *string    `json:"notes"`
}

type AssessmentListResponse struct {
	Assessments []*models.PhysicalAssessment `json:"assessments"`
	Total       int64                        `json:"total"`
	Limit       int                          `json:"limit"`
	Offset      int                          `json:"offset"`
}

type assessmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	cache     cache.CacheService
}

func NewAssessmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheService cache.CacheService) AssessmentService {
	return &assessmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		cache:     cacheService,
	}
}

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, userID string) (*models.PhysicalAssessment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	canAccess, err := s.repo.Student().CanAccess(ctx, req.StudentID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, NewPermissionError(userID, req.StudentID, "student", "assess", "not the owning trainer")
	}

	assessment := &models.PhysicalAssessment{
		StudentID:     req.StudentID,
		TrainerID:     userID,
		AssessedAt:    req.AssessedAt,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		BodyFatPct:    req.BodyFatPct,
		MuscleMassPct: req.MuscleMassPct,
		WaistCircCm:   req.WaistCircCm,
		HipCircCm:     req.HipCircCm,
		RestingHR:     req.RestingHR,
		Notes:         req.Notes,
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.publishEvent(ctx, events.EventAssessmentCreated, events.AssessmentCreatedEvent{
		AssessmentID: assessment.ID,
		StudentID:    assessment.StudentID,
		TrainerID:    assessment.TrainerID,
		AssessedAt:   assessment.AssessedAt,
	})

	s.logger.Info("Assessment created", "assessment_id", assessment.ID, "student_id", assessment.StudentID)
	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint, userID string) (*models.PhysicalAssessment, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.checkAccess(ctx, assessment, userID, "view"); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) GetLatestByStudent(ctx context.Context, studentID uint, userID string) (*models.PhysicalAssessment, error) {
	canAccess, err := s.repo.Student().CanAccess(ctx, studentID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, NewPermissionError(userID, studentID, "student", "view_assessments", "not the owning trainer")
	}

	assessment, err := s.repo.Assessment().GetLatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAssessmentForStudent
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}
	return assessment, nil
}

// ListByStudent pages through a student's assessments, optionally bounded by
// an assessment date window.
func (s *assessmentService) ListByStudent(ctx context.Context, studentID uint, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error) {
	canAccess, err := s.repo.Student().CanAccess(ctx, studentID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, NewPermissionError(userID, studentID, "student", "view_assessments", "not the owning trainer")
	}

	filters.StudentID = &studentID
	assessments, total, err := s.repo.Assessment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	return &AssessmentListResponse{
		Assessments: assessments,
		Total:       total,
		Limit:       filters.Limit,
		Offset:      filters.Offset,
	}, nil
}

// Update archives the previous state into the history (done inside the
// repository transaction) and publishes an update event so downstream
// consumers can invalidate derived artifacts.
func (s *assessmentService) Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, userID string) (*models.PhysicalAssessment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	assessment, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	previousVersion := assessment.Version

	if req.AssessedAt != nil {
		assessment.AssessedAt = *req.AssessedAt
	}
	if req.WeightKg != nil {
		assessment.WeightKg = *req.WeightKg
	}
	if req.HeightCm != nil {
		assessment.HeightCm = *req.HeightCm
	}
	if req.BodyFatPct != nil {
		assessment.BodyFatPct = *req.BodyFatPct
	}
	if req.MuscleMassPct != nil {
		assessment.MuscleMassPct = *req.MuscleMassPct
	}
	if req.WaistCircCm != nil {
		assessment.WaistCircCm = *req.WaistCircCm
	}
	if req.HipCircCm != nil {
		assessment.HipCircCm = *req.HipCircCm
	}
	if req.RestingHR != nil {
		assessment.RestingHR = *req.RestingHR
	}
	if req.Notes != nil {
		assessment.Notes = req.Notes
	}

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	// The analysis for the superseded version is already unreachable through
	// its version-scoped key; drop it early instead of waiting for the TTL.
	if s.cache != nil {
		staleKey := analysisCacheKey(assessment.StudentID, assessment.ID, previousVersion)
		if err := s.cache.Delete(ctx, staleKey); err != nil {
			s.logger.Warn("Failed to drop stale analysis cache entry", "key", staleKey, "error", err)
		}
	}

	s.publishEvent(ctx, events.EventAssessmentUpdated, events.AssessmentUpdatedEvent{
		AssessmentID:    assessment.ID,
		StudentID:       assessment.StudentID,
		TrainerID:       assessment.TrainerID,
		PreviousVersion: previousVersion,
		NewVersion:      assessment.Version,
		AssessedAt:      assessment.AssessedAt,
	})

	s.logger.Info("Assessment updated", "assessment_id", id, "version", assessment.Version)
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, id uint, userID string) error {
	assessment, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	if s.cache != nil {
		pattern := analysisStudentPattern(assessment.StudentID)
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.Warn("Failed to purge analysis cache", "pattern", pattern, "error", err)
		}
	}

	s.publishEvent(ctx, events.EventAssessmentDeleted, events.AssessmentDeletedEvent{
		AssessmentID: assessment.ID,
		StudentID:    assessment.StudentID,
		TrainerID:    assessment.TrainerID,
	})

	s.logger.Info("Assessment deleted", "assessment_id", id, "user_id", userID)
	return nil
}

func (s *assessmentService) GetHistory(ctx context.Context, id uint, userID string) ([]models.AssessmentHistoryRecord, error) {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return nil, err
	}

	history, err := s.repo.Assessment().GetHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment history: %w", err)
	}
	return history, nil
}

func (s *assessmentService) checkAccess(ctx context.Context, assessment *models.PhysicalAssessment, userID, action string) error {
	canAccess, err := s.repo.Student().CanAccess(ctx, assessment.StudentID, userID)
	if err != nil {
		return err
	}
	if !canAccess {
		return NewPermissionError(userID, assessment.ID, "assessment", action, "not the owning trainer")
	}
	return nil
}

// publishEvent is best-effort; a broken event stream must not fail the
// write that already committed.
func (s *assessmentService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAssessmentEvent(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish assessment event", "event_type", eventType, "error", err)
	}
}
