package repositories

import (
	"context"
	"time"

	"github.com/fitcoach/trainer-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Status    *models.StudentStatus `json:"status"`
	TrainerID *string               `json:"trainer_id"`
	Search    string                `json:"search"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "name"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type AssessmentFilters struct {
	StudentID *uint      `json:"student_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByTrainer(ctx context.Context, trainerID string, filters StudentFilters) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	CanAccess(ctx context.Context, studentID uint, userID string) (bool, error)
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.PhysicalAssessment) error
	GetByID(ctx context.Context, id uint) (*models.PhysicalAssessment, error)
	GetLatestByStudent(ctx context.Context, studentID uint) (*models.PhysicalAssessment, error)
	List(ctx context.Context, filters AssessmentFilters) ([]*models.PhysicalAssessment, int64, error)

	// Update archives the stored state into an AssessmentHistoryRecord and
	// applies the new values in one transaction, bumping the version.
	Update(ctx context.Context, assessment *models.PhysicalAssessment) error

	// Delete removes the assessment and cascades to its history records.
	Delete(ctx context.Context, id uint) error

	// GetHistory returns the archived versions of an assessment, in no
	// particular order; callers sort as needed.
	GetHistory(ctx context.Context, assessmentID uint) ([]models.AssessmentHistoryRecord, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Repository aggregates all repositories behind a single dependency.
type Repository interface {
	Student() StudentRepository
	Assessment() AssessmentRepository
	User() UserRepository
}
