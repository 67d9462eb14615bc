package models

import (
	"time"

	"gorm.io/gorm"
)

// PhysicalAssessment is a point-in-time physical evaluation of a student.
// Metric fields are zero when not measured; the analytics engine treats
// missing values as absent data points rather than errors.
type PhysicalAssessment struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"not null;index"`
	TrainerID string `json:"trainer_id" gorm:"not null;index;size:255"`

	AssessedAt time.Time `json:"assessed_at" gorm:"not null;index" validate:"required"`

	// Tracked metrics
	WeightKg      float64 `json:"weight_kg" validate:"omitempty,min=0,max=500"`
	HeightCm      float64 `json:"height_cm" validate:"omitempty,min=0,max=300"`
	BodyFatPct    float64 `json:"body_fat_pct" validate:"omitempty,min=0,max=100"`
	MuscleMassPct float64 `json:"muscle_mass_pct" validate:"omitempty,min=0,max=100"`
	WaistCircCm   float64 `json:"waist_circ_cm" validate:"omitempty,min=0,max=300"`
	HipCircCm     float64 `json:"hip_circ_cm" validate:"omitempty,min=0,max=300"`
	RestingHR     float64 `json:"resting_hr" validate:"omitempty,min=0,max=250"`

	Notes *string `json:"notes" gorm:"type:text"`

	// Incremented on every update; each update archives the previous state
	// into an AssessmentHistoryRecord before the new values are applied.
	Version int `json:"version" gorm:"default:1"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student Student                   `json:"student" gorm:"foreignKey:StudentID"`
	History []AssessmentHistoryRecord `json:"history,omitempty" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`
}

func (PhysicalAssessment) TableName() string {
	return "physical_assessments"
}

// AssessmentHistoryRecord is an append-only snapshot of an assessment's
// metric values before an update was applied. Never mutated; deleted only
// by cascade when the parent assessment is deleted.
type AssessmentHistoryRecord struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index"`
	Version      int  `json:"version" gorm:"not null"`

	// Timestamp of the assessment this snapshot was valid for.
	AssessedAt time.Time `json:"assessed_at" gorm:"not null"`

	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	BodyFatPct    float64 `json:"body_fat_pct"`
	MuscleMassPct float64 `json:"muscle_mass_pct"`
	WaistCircCm   float64 `json:"waist_circ_cm"`
	HipCircCm     float64 `json:"hip_circ_cm"`
	RestingHR     float64 `json:"resting_hr"`

	CreatedAt time.Time `json:"created_at"`
}

func (AssessmentHistoryRecord) TableName() string {
	return "assessment_history_records"
}
