package analytics

import "math"

// Trend is the qualitative classification of a metric's recent change.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendStable    Trend = "stable"
	TrendUnknown   Trend = "unknown"
)

// Classification thresholds. These are policy constants carried over from
// the product rules, not tunables.
const (
	// Stable band for fixed-polarity metrics (body fat, circumferences,
	// resting HR, muscle mass).
	stableBand = 0.01

	// Weight uses a wider stable band and, with no recognizable goal, only
	// flags swings larger than attentionBand as needing attention.
	weightStableBand = 0.5
	attentionBand    = 3.0

	// Normal BMI range and its bands.
	bmiNormalLow   = 18.5
	bmiNormalHigh  = 24.9
	bmiStableBand  = 0.1
	bmiInRangeBand = 0.5
)

// ClassifyTrend converts a delta (current minus previous) into a qualitative
// direction for one metric. Weight is goal-aware and takes the polarity of
// the student's stated objective; BMI is classified separately against the
// normal range (see ClassifyBMITrend). Metrics without a policy entry
// classify as unknown.
func ClassifyTrend(m Metric, delta float64, goal GoalPolarity) Trend {
	policy, ok := PolicyFor(m)
	if !ok {
		return TrendUnknown
	}

	switch policy.Polarity {
	case PolarityLowerIsBetter:
		if math.Abs(delta) < stableBand {
			return TrendStable
		}
		if delta < 0 {
			return TrendImproving
		}
		return TrendWorsening

	case PolarityHigherIsBetter:
		if math.Abs(delta) < stableBand {
			return TrendStable
		}
		if delta > 0 {
			return TrendImproving
		}
		return TrendWorsening

	case PolarityGoalAware:
		return classifyWeight(delta, goal)

	case PolarityNormalRange:
		// BMI needs the current value, not just the delta.
		return TrendUnknown

	default:
		return TrendUnknown
	}
}

func classifyWeight(delta float64, goal GoalPolarity) Trend {
	if math.Abs(delta) < weightStableBand {
		return TrendStable
	}

	switch goal {
	case GoalLoseWeight:
		if delta < 0 {
			return TrendImproving
		}
		return TrendWorsening
	case GoalGainMass:
		if delta > 0 {
			return TrendImproving
		}
		return TrendWorsening
	default:
		// No recognizable intent: only large swings are flagged.
		if math.Abs(delta) > attentionBand {
			return TrendWorsening
		}
		return TrendStable
	}
}

// ClassifyBMITrend classifies the BMI metric. Outside the normal range
// [18.5, 24.9], moving toward the range is improving and moving away is
// worsening. Inside the range, any swing of 0.5 or more is conservatively
// treated as worsening.
func ClassifyBMITrend(current, delta float64) Trend {
	if math.Abs(delta) <= bmiStableBand {
		return TrendStable
	}

	inRange := current >= bmiNormalLow && current <= bmiNormalHigh
	if !inRange {
		if (current > bmiNormalHigh && delta < 0) || (current < bmiNormalLow && delta > 0) {
			return TrendImproving
		}
		return TrendWorsening
	}

	if math.Abs(delta) < bmiInRangeBand {
		return TrendStable
	}
	return TrendWorsening
}
