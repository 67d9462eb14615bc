package analytics

import (
	"testing"
	"time"

	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeries(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("orders history ascending and appends current last", func(t *testing.T) {
		current := &models.PhysicalAssessment{WeightKg: 78, AssessedAt: mar}
		history := []models.AssessmentHistoryRecord{
			{WeightKg: 80, AssessedAt: feb},
			{WeightKg: 82, AssessedAt: jan},
		}

		series := BuildSeries(MetricWeight, current, history)

		require.Len(t, series, 3)
		assert.Equal(t, 82.0, series[0].Value)
		assert.Equal(t, 80.0, series[1].Value)
		assert.Equal(t, 78.0, series[2].Value)
		assert.Equal(t, mar, series[2].Timestamp)
	})

	t.Run("skips unmeasured history values", func(t *testing.T) {
		current := &models.PhysicalAssessment{BodyFatPct: 22, AssessedAt: mar}
		history := []models.AssessmentHistoryRecord{
			{BodyFatPct: 0, AssessedAt: jan},
			{BodyFatPct: 24, AssessedAt: feb},
		}

		series := BuildSeries(MetricBodyFat, current, history)

		require.Len(t, series, 2)
		assert.Equal(t, 24.0, series[0].Value)
		assert.Equal(t, 22.0, series[1].Value)
	})

	t.Run("current value is kept even when zero", func(t *testing.T) {
		current := &models.PhysicalAssessment{WeightKg: 0, AssessedAt: mar}

		series := BuildSeries(MetricWeight, current, nil)

		require.Len(t, series, 1)
		assert.Equal(t, 0.0, series[0].Value)
	})

	t.Run("nil current yields history only", func(t *testing.T) {
		history := []models.AssessmentHistoryRecord{
			{WeightKg: 80, AssessedAt: jan},
		}

		series := BuildSeries(MetricWeight, nil, history)

		require.Len(t, series, 1)
		assert.Equal(t, 80.0, series[0].Value)
	})
}
