package analytics

import "time"

// Projection horizons, in weeks past the last observed point.
const (
	horizonShort  = 4
	horizonMedium = 8
	horizonLong   = 12
)

const msPerWeek = float64(7 * 24 * time.Hour / time.Millisecond)

// Projection holds the naive linear extrapolation of a metric at the three
// fixed horizons. No confidence intervals, no outlier rejection; this is a
// first-order trend line, not a forecasting model.
type Projection struct {
	FourWeeks   float64 `json:"four_weeks"`
	EightWeeks  float64 `json:"eight_weeks"`
	TwelveWeeks float64 `json:"twelve_weeks"`
}

// Project fits an ordinary least-squares line of value over time (unix
// milliseconds as the x-axis) and evaluates it 4, 8 and 12 weeks past the
// last point. Degenerate series (fewer than two points, or all points at
// the same timestamp, which zeroes the OLS denominator) project flat at the
// last known value.
func Project(series []DataPoint) Projection {
	if len(series) == 0 {
		return Projection{}
	}

	last := series[len(series)-1]
	flat := Projection{
		FourWeeks:   last.Value,
		EightWeeks:  last.Value,
		TwelveWeeks: last.Value,
	}
	if len(series) < 2 {
		return flat
	}

	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(series))
	for _, p := range series {
		x := float64(p.Timestamp.UnixMilli())
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return flat
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	lastX := float64(last.Timestamp.UnixMilli())
	at := func(weeks float64) float64 {
		return slope*(lastX+weeks*msPerWeek) + intercept
	}

	return Projection{
		FourWeeks:   at(horizonShort),
		EightWeeks:  at(horizonMedium),
		TwelveWeeks: at(horizonLong),
	}
}
