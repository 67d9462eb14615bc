package events

import (
	"time"
)

// EventType represents the assessment lifecycle events consumed by the
// notification scheduler downstream.
type EventType string

const (
	EventAssessmentCreated EventType = "assessment.created"
	EventAssessmentUpdated EventType = "assessment.updated"
	EventAssessmentDeleted EventType = "assessment.deleted"

	EventAnalysisGenerated EventType = "analysis.generated"
)

// AssessmentEvent is the base envelope for all published events.
type AssessmentEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AssessmentCreatedEvent struct {
	AssessmentID uint      `json:"assessment_id"`
	StudentID    uint      `json:"student_id"`
	TrainerID    string    `json:"trainer_id"`
	AssessedAt   time.Time `json:"assessed_at"`
}

type AssessmentUpdatedEvent struct {
	AssessmentID    uint      `json:"assessment_id"`
	StudentID       uint      `json:"student_id"`
	TrainerID       string    `json:"trainer_id"`
	PreviousVersion int       `json:"previous_version"`
	NewVersion      int       `json:"new_version"`
	AssessedAt      time.Time `json:"assessed_at"`
}

type AssessmentDeletedEvent struct {
	AssessmentID uint   `json:"assessment_id"`
	StudentID    uint   `json:"student_id"`
	TrainerID    string `json:"trainer_id"`
}

type AnalysisGeneratedEvent struct {
	AssessmentID      uint   `json:"assessment_id"`
	StudentID         uint   `json:"student_id"`
	TrainerID         string `json:"trainer_id"`
	MetricsAnalyzed   int    `json:"metrics_analyzed"`
	WorseningMetrics  int    `json:"worsening_metrics"`
	ImprovingMetrics  int    `json:"improving_metrics"`
	DaysSincePrevious int    `json:"days_since_previous"`
}
