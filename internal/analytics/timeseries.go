package analytics

import (
	"sort"
	"time"

	"github.com/fitcoach/trainer-service/internal/models"
)

// DataPoint is one (timestamp, value) observation in a metric series.
type DataPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// BuildSeries assembles the ascending-by-time value series for one stored
// metric from the archived history plus the current assessment.
//
// Historical snapshots where the metric is zero are skipped: a zero in an
// archive row means the metric was not measured at that time. The current
// assessment's value is always appended as the final point, zero included.
// The asymmetry mirrors how the data was recorded upstream.
func BuildSeries(m Metric, current *models.PhysicalAssessment, history []models.AssessmentHistoryRecord) []DataPoint {
	series := make([]DataPoint, 0, len(history)+1)

	for i := range history {
		v, ok := historyValue(m, &history[i])
		if !ok || v == 0 {
			continue
		}
		series = append(series, DataPoint{Timestamp: history[i].AssessedAt, Value: v})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	if current != nil {
		if v, ok := assessmentValue(m, current); ok {
			series = append(series, DataPoint{Timestamp: current.AssessedAt, Value: v})
		}
	}

	return series
}
