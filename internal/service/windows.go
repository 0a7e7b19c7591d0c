package service

import (
	"time"

	"github.com/ikovac/met-forecast-api/internal/model"
)

// Window policy: the "today" view runs past midnight into the early morning,
// and "tomorrow" picks up where it leaves off.
const (
	hoursPastMidnight = 6
	comingDaysStart   = 2
	comingDaysSpan    = 5
)

// TodayWindow spans from an hour ago (so the current hour is kept) through
// the end of the calendar day plus the early-morning carry-over.
func TodayWindow(now time.Time) model.Window {
	start := now.Add(-time.Hour)
	hoursLeftInDay := 24 - start.Hour()
	end := start.Add(time.Duration(hoursLeftInDay+hoursPastMidnight) * time.Hour)
	return model.Window{Start: start, End: end}
}

// TomorrowWindow spans the remainder of the next calendar day, starting
// after the hours the today window carried over.
func TomorrowWindow(now time.Time) model.Window {
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	return model.Window{
		Start: tomorrow.Add(time.Duration(hoursPastMidnight+1) * time.Hour),
		End:   tomorrow.AddDate(0, 0, 1).Add(hoursPastMidnight * time.Hour),
	}
}

// ComingDaysWindow spans a fixed number of calendar days starting two days
// out.
func ComingDaysWindow(now time.Time) model.Window {
	start := startOfDay(now).AddDate(0, 0, comingDaysStart)
	return model.Window{Start: start, End: start.AddDate(0, 0, comingDaysSpan)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
