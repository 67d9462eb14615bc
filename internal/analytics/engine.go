package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fitcoach/trainer-service/internal/charts"
	"github.com/fitcoach/trainer-service/internal/models"
)

const msPerDay = 86400000.0

// StudentInfo is the analysis header's view of the student.
type StudentInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Goal string `json:"goal"`
}

// AssessmentSummary relates the current assessment to the most recent prior
// version.
type AssessmentSummary struct {
	AssessmentID       uint       `json:"assessment_id"`
	AssessedAt         time.Time  `json:"assessed_at"`
	PreviousAssessedAt *time.Time `json:"previous_assessed_at,omitempty"`
	DaysSincePrevious  int        `json:"days_since_previous"`
}

// AnalysisResult is the complete progress analysis for one student. Derived
// per request; the chart artifacts are opaque payloads for the report
// collaborator downstream.
type AnalysisResult struct {
	Student     StudentInfo            `json:"student"`
	Assessment  AssessmentSummary      `json:"assessment"`
	Metrics     map[Metric]MetricTrend `json:"metrics"`
	Insights    Insights               `json:"insights"`
	Charts      []charts.Artifact      `json:"charts"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Engine drives the full analysis pipeline over every tracked metric and
// requests chart artifacts from the rendering collaborator.
type Engine struct {
	renderer charts.Renderer
	logger   *slog.Logger
}

func NewEngine(renderer charts.Renderer, logger *slog.Logger) *Engine {
	return &Engine{
		renderer: renderer,
		logger:   logger,
	}
}

// Analyze computes the progress analysis for a student's current assessment
// against its archived history. The numeric and text pipeline is pure and
// deterministic; only chart rendering touches the outside world, and a
// failed chart degrades to a placeholder instead of failing the analysis.
func (e *Engine) Analyze(ctx context.Context, current *models.PhysicalAssessment, student *models.Student, history []models.AssessmentHistoryRecord) *AnalysisResult {
	goalText := student.Goal
	if goalText == "" {
		goalText = DefaultGoal
	}
	goal := ClassifyGoal(goalText)

	summary := AssessmentSummary{
		AssessmentID: current.ID,
		AssessedAt:   current.AssessedAt,
	}
	if prev := latestPrior(history); prev != nil {
		at := prev.AssessedAt
		summary.PreviousAssessedAt = &at
		gapMs := float64(current.AssessedAt.Sub(at).Milliseconds())
		summary.DaysSincePrevious = int(math.Floor(gapMs / msPerDay))
	}

	metrics := make(map[Metric]MetricTrend, len(TrackedMetrics))
	for _, m := range TrackedMetrics {
		metrics[m] = AnalyzeMetric(m, current, student, history, goal)
	}

	return &AnalysisResult{
		Student: StudentInfo{
			ID:   student.ID,
			Name: student.Name,
			Goal: goalText,
		},
		Assessment:  summary,
		Metrics:     metrics,
		Insights:    GenerateInsights(metrics, goal),
		Charts:      e.renderCharts(ctx, metrics),
		GeneratedAt: time.Now(),
	}
}

// latestPrior returns the most recent archived version, or nil when the
// assessment has never been updated. History arrives unordered from the
// store.
func latestPrior(history []models.AssessmentHistoryRecord) *models.AssessmentHistoryRecord {
	if len(history) == 0 {
		return nil
	}
	sorted := make([]models.AssessmentHistoryRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AssessedAt.After(sorted[j].AssessedAt)
	})
	return &sorted[0]
}

// renderCharts produces the four report charts. The renders are independent
// and side-effect-free, so they run concurrently; each one is fault-isolated
// behind a placeholder fallback.
func (e *Engine) renderCharts(ctx context.Context, metrics map[Metric]MetricTrend) []charts.Artifact {
	artifacts := make([]charts.Artifact, 4)

	var wg sync.WaitGroup
	render := func(slot int, name, title string, fn func() ([]byte, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			artifacts[slot] = charts.RenderOrPlaceholder(e.logger, name, title, fn)
		}()
	}

	render(0, "weight_evolution", "Evolução do Peso", func() ([]byte, error) {
		return e.renderer.RenderLineChart(ctx, "Evolução do Peso", toChartSeries(metrics[MetricWeight].Points), "#4e79a7")
	})
	render(1, "bmi_evolution", "Evolução do IMC", func() ([]byte, error) {
		return e.renderer.RenderLineChart(ctx, "Evolução do IMC", toChartSeries(metrics[MetricBMI].Points), "#59a145")
	})
	render(2, "body_composition", "Composição Corporal", func() ([]byte, error) {
		fat := metrics[MetricBodyFat].CurrentValue
		muscle := metrics[MetricMuscleMass].CurrentValue
		rest := 100 - fat - muscle
		return e.renderer.RenderDoughnut(ctx, "Composição Corporal",
			[]string{"Gordura", "Massa muscular", "Outros"},
			[]float64{fat, muscle, rest})
	})
	render(3, "circumferences", "Circunferências: Atual × Anterior", func() ([]byte, error) {
		waist := metrics[MetricWaistCirc]
		hip := metrics[MetricHipCirc]
		return e.renderer.RenderBarComparison(ctx, "Circunferências: Atual × Anterior",
			[]string{"Cintura", "Quadril"},
			[]float64{waist.CurrentValue, hip.CurrentValue},
			[]float64{deref(waist.PreviousValue), deref(hip.PreviousValue)})
	})

	wg.Wait()
	return artifacts
}

func toChartSeries(points []DataPoint) []charts.Point {
	series := make([]charts.Point, 0, len(points))
	for _, p := range points {
		series = append(series, charts.Point{
			Label: p.Timestamp.Format("02/01"),
			Value: p.Value,
		})
	}
	return series
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
