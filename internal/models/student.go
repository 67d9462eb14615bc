package models

import (
	"time"

	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "Active"
	StudentInactive StudentStatus = "Inactive"
	StudentArchived StudentStatus = "Archived"
)

type Student struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	TrainerID string        `json:"trainer_id" gorm:"not null;index;size:255"`
	Name      string        `json:"name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email     *string       `json:"email" gorm:"size:255" validate:"omitempty,email"`
	Phone     *string       `json:"phone" gorm:"size:20"`
	BirthDate *time.Time    `json:"birth_date"`
	Gender    *string       `json:"gender" gorm:"size:20"`
	Status    StudentStatus `json:"status" gorm:"default:Active;index" validate:"omitempty,oneof=Active Inactive Archived"`

	// Profile measurements kept on the student as a fallback when the
	// latest assessment is missing them.
	HeightCm float64 `json:"height_cm" validate:"omitempty,min=0,max=300"`

	// Free-text training objective ("quero perder peso", "ganhar massa", ...).
	// Drives the goal-aware trend classification of the weight metric.
	Goal string `json:"goal" gorm:"type:text"`

	Notes *string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Trainer     User                 `json:"trainer" gorm:"foreignKey:TrainerID"`
	Assessments []PhysicalAssessment `json:"assessments,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}
