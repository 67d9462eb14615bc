package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendFor(m Metric, direction Trend, prev, current float64) MetricTrend {
	policy, _ := PolicyFor(m)
	return MetricTrend{
		Metric:        m,
		Label:         policy.Label,
		Unit:          policy.Unit,
		CurrentValue:  current,
		PreviousValue: &prev,
		Delta:         current - prev,
		Trend:         direction,
	}
}

func TestGenerateInsights_PadsToMinimum(t *testing.T) {
	// All stable: nothing observed, every list is pure filler.
	trends := map[Metric]MetricTrend{
		MetricWeight: trendFor(MetricWeight, TrendStable, 80, 80.1),
	}

	insights := GenerateInsights(trends, GoalNeutral)

	assert.Len(t, insights.Positives, 3)
	assert.Len(t, insights.Negatives, 3)
	assert.Len(t, insights.Recommendations, 3)
}

func TestGenerateInsights_CapsAtMaximum(t *testing.T) {
	// Every metric worsening plus a goal recommendation overflows the cap.
	trends := make(map[Metric]MetricTrend)
	for _, m := range TrackedMetrics {
		trends[m] = trendFor(m, TrendWorsening, 50, 55)
	}

	insights := GenerateInsights(trends, GoalLoseWeight)

	assert.LessOrEqual(t, len(insights.Positives), 5)
	assert.LessOrEqual(t, len(insights.Negatives), 5)
	assert.LessOrEqual(t, len(insights.Recommendations), 5)
	assert.GreaterOrEqual(t, len(insights.Negatives), 3)
}

func TestGenerateInsights_WorseningMetricsDriveRecommendations(t *testing.T) {
	trends := map[Metric]MetricTrend{
		MetricBodyFat:    trendFor(MetricBodyFat, TrendWorsening, 20, 23),
		MetricMuscleMass: trendFor(MetricMuscleMass, TrendWorsening, 30, 28),
	}

	insights := GenerateInsights(trends, GoalNeutral)

	joined := ""
	for _, r := range insights.Recommendations {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "cardiovascular")
	assert.Contains(t, joined, "proteínas")
}

func TestGenerateInsights_GoalDirectedRecommendation(t *testing.T) {
	trends := map[Metric]MetricTrend{
		MetricWeight: trendFor(MetricWeight, TrendImproving, 82, 80),
	}

	insights := GenerateInsights(trends, GoalLoseWeight)

	require.NotEmpty(t, insights.Recommendations)
	assert.Contains(t, insights.Recommendations[0], "déficit calórico")
}

func TestGenerateInsights_Deterministic(t *testing.T) {
	trends := make(map[Metric]MetricTrend)
	for _, m := range TrackedMetrics {
		trends[m] = trendFor(m, TrendImproving, 60, 58)
	}

	first := GenerateInsights(trends, GoalNeutral)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, GenerateInsights(trends, GoalNeutral))
	}
}

func TestGenerateInsights_ImprovingSentenceMentionsValues(t *testing.T) {
	trends := map[Metric]MetricTrend{
		MetricBodyFat: trendFor(MetricBodyFat, TrendImproving, 24, 22),
	}

	insights := GenerateInsights(trends, GoalNeutral)

	require.NotEmpty(t, insights.Positives)
	assert.Contains(t, insights.Positives[0], "Gordura corporal")
	assert.Contains(t, insights.Positives[0], "24.0")
	assert.Contains(t, insights.Positives[0], "22.0")
}
