package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fitcoach/trainer-service/internal/charts"
	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_Analyze(t *testing.T) {
	engine := NewEngine(charts.NewEChartsRenderer(), testLogger())

	assessedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	previousAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	student := &models.Student{
		ID:   1,
		Name: "João Silva",
		Goal: "Ganhar massa muscular",
	}
	current := &models.PhysicalAssessment{
		ID:            10,
		StudentID:     1,
		AssessedAt:    assessedAt,
		WeightKg:      80,
		HeightCm:      180,
		BodyFatPct:    20,
		MuscleMassPct: 28,
		WaistCircCm:   88,
		HipCircCm:     100,
		RestingHR:     62,
		Version:       2,
	}
	history := []models.AssessmentHistoryRecord{
		{
			AssessmentID:  10,
			Version:       1,
			AssessedAt:    previousAt,
			WeightKg:      78,
			HeightCm:      180,
			BodyFatPct:    21,
			MuscleMassPct: 30,
			WaistCircCm:   90,
			HipCircCm:     101,
			RestingHR:     65,
		},
	}

	result := engine.Analyze(context.Background(), current, student, history)
	require.NotNil(t, result)

	t.Run("header", func(t *testing.T) {
		assert.Equal(t, uint(1), result.Student.ID)
		assert.Equal(t, "Ganhar massa muscular", result.Student.Goal)
		assert.Equal(t, uint(10), result.Assessment.AssessmentID)
		require.NotNil(t, result.Assessment.PreviousAssessedAt)
		assert.Equal(t, previousAt, *result.Assessment.PreviousAssessedAt)
		assert.Equal(t, 28, result.Assessment.DaysSincePrevious)
	})

	t.Run("covers every tracked metric", func(t *testing.T) {
		assert.Len(t, result.Metrics, len(TrackedMetrics))
		for _, m := range TrackedMetrics {
			assert.Contains(t, result.Metrics, m)
		}
	})

	t.Run("muscle mass drop worsens against gain goal", func(t *testing.T) {
		muscle := result.Metrics[MetricMuscleMass]
		assert.Equal(t, TrendWorsening, muscle.Trend)
		assert.InDelta(t, -2.0, muscle.Delta, 0.001)
	})

	t.Run("weight gain improves against gain goal", func(t *testing.T) {
		weight := result.Metrics[MetricWeight]
		assert.Equal(t, TrendImproving, weight.Trend)
	})

	t.Run("bmi derived from weight under current height", func(t *testing.T) {
		bmi := result.Metrics[MetricBMI]
		require.Len(t, bmi.Points, 2)
		assert.InDelta(t, 78/(1.8*1.8), bmi.Points[0].Value, 0.001)
		assert.InDelta(t, 80/(1.8*1.8), bmi.CurrentValue, 0.001)
	})

	t.Run("muscle recommendations surface", func(t *testing.T) {
		joined := ""
		for _, r := range result.Insights.Recommendations {
			joined += r + "\n"
		}
		assert.Contains(t, joined, "treino de força")
		assert.Contains(t, joined, "proteínas")
	})

	t.Run("renders four charts", func(t *testing.T) {
		require.Len(t, result.Charts, 4)
		names := []string{"weight_evolution", "bmi_evolution", "body_composition", "circumferences"}
		for i, artifact := range result.Charts {
			assert.Equal(t, names[i], artifact.Name)
			assert.False(t, artifact.Placeholder)
			assert.NotEmpty(t, artifact.Data)
		}
	})
}

func TestEngine_Analyze_DefaultGoal(t *testing.T) {
	engine := NewEngine(charts.NewEChartsRenderer(), testLogger())

	student := &models.Student{ID: 2, Name: "Maria"}
	current := &models.PhysicalAssessment{
		ID:         11,
		StudentID:  2,
		AssessedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WeightKg:   65,
		HeightCm:   165,
	}

	result := engine.Analyze(context.Background(), current, student, nil)

	assert.Equal(t, DefaultGoal, result.Student.Goal)
	assert.Nil(t, result.Assessment.PreviousAssessedAt)
	assert.Equal(t, 0, result.Assessment.DaysSincePrevious)

	// First assessment: no previous point, zero delta, flat projection.
	weight := result.Metrics[MetricWeight]
	assert.Nil(t, weight.PreviousValue)
	assert.Equal(t, TrendStable, weight.Trend)
	assert.Equal(t, 65.0, weight.Projection.FourWeeks)
	assert.Equal(t, 65.0, weight.Projection.TwelveWeeks)
}

type failingRenderer struct{}

func (failingRenderer) RenderLineChart(context.Context, string, []charts.Point, string) ([]byte, error) {
	return nil, errors.New("render backend down")
}

func (failingRenderer) RenderDoughnut(context.Context, string, []string, []float64) ([]byte, error) {
	return nil, errors.New("render backend down")
}

func (failingRenderer) RenderBarComparison(context.Context, string, []string, []float64, []float64) ([]byte, error) {
	return nil, errors.New("render backend down")
}

func TestEngine_Analyze_ChartFailureDegradesToPlaceholder(t *testing.T) {
	engine := NewEngine(failingRenderer{}, testLogger())

	student := &models.Student{ID: 3, Name: "Ana", Goal: "emagrecer"}
	current := &models.PhysicalAssessment{
		ID:         12,
		StudentID:  3,
		AssessedAt: time.Now(),
		WeightKg:   70,
		HeightCm:   170,
	}

	result := engine.Analyze(context.Background(), current, student, nil)

	require.Len(t, result.Charts, 4)
	for _, artifact := range result.Charts {
		assert.True(t, artifact.Placeholder)
		assert.NotEmpty(t, artifact.Data, "placeholder must still carry a payload")
	}

	// A failed render never fails the analysis itself.
	assert.Len(t, result.Metrics, len(TrackedMetrics))
	assert.NotEmpty(t, result.Insights.Recommendations)
}
