package analytics

import (
	"github.com/fitcoach/trainer-service/internal/models"
)

// Metric identifies one tracked numeric health indicator.
type Metric string

const (
	MetricWeight     Metric = "weight"
	MetricBMI        Metric = "bmi"
	MetricBodyFat    Metric = "bodyFat"
	MetricMuscleMass Metric = "muscleMass"
	MetricWaistCirc  Metric = "waistCirc"
	MetricHipCirc    Metric = "hipCirc"
	MetricRestingHR  Metric = "restingHR"
)

// Polarity describes which direction of change is desirable for a metric.
type Polarity string

const (
	// PolarityLowerIsBetter: a negative delta classifies as improving.
	PolarityLowerIsBetter Polarity = "lower_is_better"
	// PolarityHigherIsBetter: a positive delta classifies as improving.
	PolarityHigherIsBetter Polarity = "higher_is_better"
	// PolarityGoalAware: direction depends on the student's stated goal (weight).
	PolarityGoalAware Polarity = "goal_aware"
	// PolarityNormalRange: trend depends on distance to a normal range (BMI).
	PolarityNormalRange Polarity = "normal_range"
)

// MetricPolicy is the per-metric classification record: polarity plus the
// pt-BR display label and unit used by insights, charts and exports.
type MetricPolicy struct {
	Metric   Metric
	Label    string
	Unit     string
	Polarity Polarity
}

var metricPolicies = map[Metric]MetricPolicy{
	MetricWeight:     {Metric: MetricWeight, Label: "Peso", Unit: "kg", Polarity: PolarityGoalAware},
	MetricBMI:        {Metric: MetricBMI, Label: "IMC", Unit: "kg/m²", Polarity: PolarityNormalRange},
	MetricBodyFat:    {Metric: MetricBodyFat, Label: "Gordura corporal", Unit: "%", Polarity: PolarityLowerIsBetter},
	MetricMuscleMass: {Metric: MetricMuscleMass, Label: "Massa muscular", Unit: "%", Polarity: PolarityHigherIsBetter},
	MetricWaistCirc:  {Metric: MetricWaistCirc, Label: "Circunferência da cintura", Unit: "cm", Polarity: PolarityLowerIsBetter},
	MetricHipCirc:    {Metric: MetricHipCirc, Label: "Circunferência do quadril", Unit: "cm", Polarity: PolarityLowerIsBetter},
	MetricRestingHR:  {Metric: MetricRestingHR, Label: "Frequência cardíaca de repouso", Unit: "bpm", Polarity: PolarityLowerIsBetter},
}

// TrackedMetrics is the fixed, ordered set of metrics every analysis covers.
// The order is also the iteration order for insight generation, which keeps
// analysis output deterministic for identical inputs.
var TrackedMetrics = []Metric{
	MetricWeight,
	MetricBMI,
	MetricBodyFat,
	MetricMuscleMass,
	MetricWaistCirc,
	MetricHipCirc,
	MetricRestingHR,
}

// PolicyFor returns the policy record for a metric. The second return is
// false for metrics without a policy entry; those classify as unknown.
func PolicyFor(m Metric) (MetricPolicy, bool) {
	p, ok := metricPolicies[m]
	return p, ok
}

// assessmentValue extracts a stored metric value from a current assessment.
// BMI has no stored field; it is derived by the analyzer.
func assessmentValue(m Metric, a *models.PhysicalAssessment) (float64, bool) {
	switch m {
	case MetricWeight:
		return a.WeightKg, true
	case MetricBodyFat:
		return a.BodyFatPct, true
	case MetricMuscleMass:
		return a.MuscleMassPct, true
	case MetricWaistCirc:
		return a.WaistCircCm, true
	case MetricHipCirc:
		return a.HipCircCm, true
	case MetricRestingHR:
		return a.RestingHR, true
	default:
		return 0, false
	}
}

// historyValue extracts a stored metric value from an archived snapshot.
func historyValue(m Metric, h *models.AssessmentHistoryRecord) (float64, bool) {
	switch m {
	case MetricWeight:
		return h.WeightKg, true
	case MetricBodyFat:
		return h.BodyFatPct, true
	case MetricMuscleMass:
		return h.MuscleMassPct, true
	case MetricWaistCirc:
		return h.WaistCircCm, true
	case MetricHipCirc:
		return h.HipCircCm, true
	case MetricRestingHR:
		return h.RestingHR, true
	default:
		return 0, false
	}
}
