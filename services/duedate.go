package services

import (
	"time"

	"fitness-mission-system/models"
)

// DueDate returns the UTC instant a mission of the given period type expires,
// relative to now:
//
//	DAILY    → 23:59:59.999 of now's UTC calendar day
//	WEEKLY   → 23:59:59.999 of the upcoming Sunday (today if now is a Sunday)
//	SEASONAL → 23:59:59.999 of the last day of the current calendar quarter
//
// Pure and deterministic; callers inject the clock.
func DueDate(pt models.PeriodType, now time.Time) time.Time {
	now = now.UTC()
	switch pt {
	case models.PeriodWeekly:
		// time.Sunday is 0, so this is the day count to the upcoming Sunday.
		days := (7 - int(now.Weekday())) % 7
		return endOfDay(now.AddDate(0, 0, days))
	case models.PeriodSeasonal:
		// Quarters end in March, June, September, December.
		quarterEnd := time.Month((int(now.Month())-1)/3*3 + 3)
		// Day 0 of the following month normalizes to the quarter's last day.
		return endOfDay(time.Date(now.Year(), quarterEnd+1, 0, 0, 0, 0, 0, time.UTC))
	default:
		return endOfDay(now)
	}
}

// StartOfDayUTC truncates now to 00:00:00 UTC of its calendar day. The
// active-mission query uses it as the not-due-before lower bound.
func StartOfDayUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}
