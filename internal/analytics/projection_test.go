package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProject_EmptySeries(t *testing.T) {
	assert.Equal(t, Projection{}, Project(nil))
}

func TestProject_SinglePointProjectsFlat(t *testing.T) {
	series := []DataPoint{
		{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Value: 70},
	}

	p := Project(series)

	assert.Equal(t, 70.0, p.FourWeeks)
	assert.Equal(t, 70.0, p.EightWeeks)
	assert.Equal(t, 70.0, p.TwelveWeeks)
}

func TestProject_LinearTrend(t *testing.T) {
	// One kilogram per week, exactly.
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []DataPoint{
		{Timestamp: start, Value: 70},
		{Timestamp: start.AddDate(0, 0, 7), Value: 71},
	}

	p := Project(series)

	assert.InDelta(t, 75.0, p.FourWeeks, 0.001)
	assert.InDelta(t, 79.0, p.EightWeeks, 0.001)
	assert.InDelta(t, 83.0, p.TwelveWeeks, 0.001)
}

func TestProject_DownwardTrend(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []DataPoint{
		{Timestamp: start, Value: 90},
		{Timestamp: start.AddDate(0, 0, 14), Value: 89},
		{Timestamp: start.AddDate(0, 0, 28), Value: 88},
	}

	p := Project(series)

	// Half a kilogram per week down from 88.
	assert.InDelta(t, 86.0, p.FourWeeks, 0.001)
	assert.InDelta(t, 84.0, p.EightWeeks, 0.001)
	assert.InDelta(t, 82.0, p.TwelveWeeks, 0.001)
}

func TestProject_SameTimestampProjectsFlat(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []DataPoint{
		{Timestamp: at, Value: 70},
		{Timestamp: at, Value: 72},
	}

	p := Project(series)

	// Zero time spread means no fittable slope; hold the last value.
	assert.Equal(t, 72.0, p.FourWeeks)
	assert.Equal(t, 72.0, p.EightWeeks)
	assert.Equal(t, 72.0, p.TwelveWeeks)
}
