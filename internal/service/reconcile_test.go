package service

import (
	"testing"
	"time"

	"github.com/tj/assert"

	"github.com/ikovac/met-forecast-api/internal/provider"
)

func floatPtr(f float64) *float64 { return &f }

func step(ts time.Time, temperature float64, next1, next6 *provider.NextHours) provider.TimeStep {
	var s provider.TimeStep
	s.Time = ts
	s.Data.Instant.Details.AirTemperature = temperature
	s.Data.Instant.Details.WindSpeed = 3.5
	s.Data.Instant.Details.RelativeHumidity = 80
	s.Data.Next1Hours = next1
	s.Data.Next6Hours = next6
	return s
}

func summary(symbol string, precipitation float64) *provider.NextHours {
	var n provider.NextHours
	n.Summary.SymbolCode = symbol
	n.Details.PrecipitationAmount = floatPtr(precipitation)
	return &n
}

func TestReconcile(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	steps := []provider.TimeStep{
		step(base, 10, summary("rain", 0.6), summary("cloudy", 2.4)),
		step(base.Add(time.Hour), 11, nil, summary("partlycloudy_day", 0.2)),
		step(base.Add(7*time.Hour), 9, nil, nil),
	}

	data := Reconcile(steps)
	assert.Len(t, data, 3)

	// The hourly summary wins when both blocks are present.
	assert.Equal(t, base, data[0].Time)
	assert.Equal(t, 10.0, data[0].Temperature)
	assert.Equal(t, "rain", data[0].SymbolCode)
	assert.Equal(t, 0.6, *data[0].PrecipitationAmount)

	// Only the six-hourly block is present, so it is used.
	assert.Equal(t, "partlycloudy_day", data[1].SymbolCode)
	assert.Equal(t, 0.2, *data[1].PrecipitationAmount)

	// The last step has no following step to cover.
	assert.Equal(t, 9.0, data[2].Temperature)
	assert.Equal(t, "", data[2].SymbolCode)
	assert.Nil(t, data[2].PrecipitationAmount)
}

func TestReconcileEmpty(t *testing.T) {
	assert.Empty(t, Reconcile(nil))
}
