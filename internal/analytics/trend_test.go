package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTrend_LowerIsBetter(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Trend
	}{
		{"decrease improves", -1.5, TrendImproving},
		{"increase worsens", 1.5, TrendWorsening},
		{"tiny change is stable", 0.005, TrendStable},
		{"tiny negative change is stable", -0.005, TrendStable},
		{"exactly at band worsens", 0.01, TrendWorsening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(MetricBodyFat, tt.delta, GoalNeutral))
		})
	}
}

func TestClassifyTrend_HigherIsBetter(t *testing.T) {
	assert.Equal(t, TrendImproving, ClassifyTrend(MetricMuscleMass, 1.2, GoalNeutral))
	assert.Equal(t, TrendWorsening, ClassifyTrend(MetricMuscleMass, -1.2, GoalNeutral))
	assert.Equal(t, TrendStable, ClassifyTrend(MetricMuscleMass, 0.005, GoalNeutral))
}

func TestClassifyTrend_WeightGoalAware(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		goal  GoalPolarity
		want  Trend
	}{
		{"loss goal losing", -2.0, GoalLoseWeight, TrendImproving},
		{"loss goal gaining", 2.0, GoalLoseWeight, TrendWorsening},
		{"loss goal small change", 0.2, GoalLoseWeight, TrendStable},
		{"gain goal gaining", 2.0, GoalGainMass, TrendImproving},
		{"gain goal losing", -2.0, GoalGainMass, TrendWorsening},
		{"neutral goal moderate change", 2.0, GoalNeutral, TrendStable},
		{"neutral goal large gain", 4.0, GoalNeutral, TrendWorsening},
		{"neutral goal large loss", -4.0, GoalNeutral, TrendWorsening},
		{"neutral goal small change", 0.2, GoalNeutral, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(MetricWeight, tt.delta, tt.goal))
		})
	}
}

func TestClassifyTrend_UnknownMetric(t *testing.T) {
	assert.Equal(t, TrendUnknown, ClassifyTrend(Metric("cholesterol"), 1.0, GoalNeutral))
}

func TestClassifyBMITrend(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		delta   float64
		want    Trend
	}{
		{"above range moving down", 26.0, -1.0, TrendImproving},
		{"above range moving up", 26.0, 1.0, TrendWorsening},
		{"below range moving up", 17.5, 1.0, TrendImproving},
		{"below range moving down", 17.5, -1.0, TrendWorsening},
		{"tiny change is stable", 26.0, 0.05, TrendStable},
		{"in range small swing is stable", 22.0, 0.3, TrendStable},
		{"in range large swing worsens", 22.0, 0.6, TrendWorsening},
		{"in range large negative swing worsens", 22.0, -0.6, TrendWorsening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBMITrend(tt.current, tt.delta))
		})
	}
}
