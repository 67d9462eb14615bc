package analytics

import (
	"github.com/fitcoach/trainer-service/internal/models"
)

// MetricTrend is the full per-metric analysis output. Derived on every
// request, never persisted.
type MetricTrend struct {
	Metric        Metric      `json:"metric"`
	Label         string      `json:"label"`
	Unit          string      `json:"unit"`
	Points        []DataPoint `json:"points"`
	CurrentValue  float64     `json:"current_value"`
	PreviousValue *float64    `json:"previous_value,omitempty"`
	Delta         float64     `json:"delta"`
	DeltaPct      float64     `json:"delta_pct"`
	Trend         Trend       `json:"trend"`
	Projection    Projection  `json:"projection"`
}

// AnalyzeMetric runs the full pipeline for one metric: series assembly,
// delta against the immediately preceding point, trend classification and
// linear projection. The goal polarity is parsed once by the caller and
// shared across metrics.
func AnalyzeMetric(m Metric, current *models.PhysicalAssessment, student *models.Student, history []models.AssessmentHistoryRecord, goal GoalPolarity) MetricTrend {
	policy, _ := PolicyFor(m)
	result := MetricTrend{
		Metric: m,
		Label:  policy.Label,
		Unit:   policy.Unit,
		Trend:  TrendUnknown,
	}

	var series []DataPoint
	if m == MetricBMI {
		series = buildBMISeries(current, student, history)
	} else {
		series = BuildSeries(m, current, history)
	}
	result.Points = series

	if len(series) == 0 {
		return result
	}

	last := series[len(series)-1]
	result.CurrentValue = last.Value

	if len(series) >= 2 {
		prev := series[len(series)-2]
		result.PreviousValue = &prev.Value
		result.Delta = last.Value - prev.Value
		if prev.Value != 0 {
			result.DeltaPct = result.Delta / prev.Value * 100
		}
	}

	if m == MetricBMI {
		result.Trend = ClassifyBMITrend(result.CurrentValue, result.Delta)
	} else {
		result.Trend = ClassifyTrend(m, result.Delta, goal)
	}

	result.Projection = Project(series)
	return result
}

// buildBMISeries derives BMI from the weight series under a single fixed
// height: the current assessment's height, falling back to the student's
// profile height. Historical heights are not consulted, so a student whose
// height changed over time gets a slightly distorted BMI history. Known
// data-modeling limitation; do not change without product sign-off.
//
// With no usable height every BMI value is 0 rather than an error.
func buildBMISeries(current *models.PhysicalAssessment, student *models.Student, history []models.AssessmentHistoryRecord) []DataPoint {
	heightCm := 0.0
	if current != nil && current.HeightCm > 0 {
		heightCm = current.HeightCm
	} else if student != nil && student.HeightCm > 0 {
		heightCm = student.HeightCm
	}

	weights := BuildSeries(MetricWeight, current, history)
	series := make([]DataPoint, 0, len(weights))
	for _, p := range weights {
		series = append(series, DataPoint{
			Timestamp: p.Timestamp,
			Value:     computeBMI(p.Value, heightCm),
		})
	}
	return series
}

func computeBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}
