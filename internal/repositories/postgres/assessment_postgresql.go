package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/fitcoach/trainer-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.PhysicalAssessment) error {
	assessment.Version = 1
	if err := a.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.PhysicalAssessment, error) {
	var assessment models.PhysicalAssessment
	err := a.db.WithContext(ctx).
		Preload("Student").
		First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) GetLatestByStudent(ctx context.Context, studentID uint) (*models.PhysicalAssessment, error) {
	var assessment models.PhysicalAssessment
	err := a.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("assessed_at DESC").
		First(&assessment).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.PhysicalAssessment, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.PhysicalAssessment{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.DateFrom != nil {
		query = query.Where("assessed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("assessed_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assessments: %w", err)
	}

	query = query.Order("assessed_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var assessments []*models.PhysicalAssessment
	if err := query.Find(&assessments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}

	return assessments, total, nil
}

// Update archives the currently stored values as an AssessmentHistoryRecord,
// then applies the new values with a bumped version, all in one transaction.
// The archive keeps the timestamp the previous state was valid for.
func (a *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.PhysicalAssessment) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.PhysicalAssessment
		if err := tx.First(&stored, assessment.ID).Error; err != nil {
			return fmt.Errorf("failed to load assessment for archiving: %w", err)
		}

		record := &models.AssessmentHistoryRecord{
			AssessmentID:  stored.ID,
			Version:       stored.Version,
			AssessedAt:    stored.AssessedAt,
			WeightKg:      stored.WeightKg,
			HeightCm:      stored.HeightCm,
			BodyFatPct:    stored.BodyFatPct,
			MuscleMassPct: stored.MuscleMassPct,
			WaistCircCm:   stored.WaistCircCm,
			HipCircCm:     stored.HipCircCm,
			RestingHR:     stored.RestingHR,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to archive assessment version %d: %w", stored.Version, err)
		}

		assessment.Version = stored.Version + 1
		if err := tx.Save(assessment).Error; err != nil {
			return fmt.Errorf("failed to update assessment: %w", err)
		}

		return nil
	})
}

// Delete removes the assessment and its archived history.
func (a *AssessmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&models.AssessmentHistoryRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete assessment history: %w", err)
		}
		if err := tx.Delete(&models.PhysicalAssessment{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}
		return nil
	})
}

func (a *AssessmentPostgreSQL) GetHistory(ctx context.Context, assessmentID uint) ([]models.AssessmentHistoryRecord, error) {
	var history []models.AssessmentHistoryRecord
	err := a.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment history: %w", err)
	}
	return history, nil
}
