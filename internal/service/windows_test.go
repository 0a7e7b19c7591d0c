package service

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestTodayWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	window := TodayWindow(now)

	assert.Equal(t, time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC), window.End)

	assert.True(t, window.Contains(now))
	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.False(t, window.Contains(window.End.Add(time.Second)))
}

func TestTodayWindowNearMidnight(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)

	window := TodayWindow(now)

	// The hour before midnight is still shown just after the day rolls over.
	assert.Equal(t, time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 6, 30, 0, 0, time.UTC), window.End)
}

func TestTomorrowWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	window := TomorrowWindow(now)

	assert.Equal(t, time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 3, 3, 6, 0, 0, 0, time.UTC), window.End)

	// Tomorrow picks up right after the today carry-over ends.
	today := TodayWindow(now)
	assert.Equal(t, today.End.Add(time.Hour), window.Start)
}

func TestComingDaysWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	window := ComingDaysWindow(now)

	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), window.End)
}
