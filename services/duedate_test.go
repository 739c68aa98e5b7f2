package services

import (
	"testing"
	"time"

	"fitness-mission-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, min, sec, ms int) time.Time {
	return time.Date(year, month, day, hour, min, sec, ms*int(time.Millisecond), time.UTC)
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name string
		pt   models.PeriodType
		now  time.Time
		want time.Time
	}{
		{
			name: "daily mid-day",
			pt:   models.PeriodDaily,
			now:  utc(2024, time.May, 15, 10, 30, 0, 0),
			want: utc(2024, time.May, 15, 23, 59, 59, 999),
		},
		{
			name: "daily at midnight",
			pt:   models.PeriodDaily,
			now:  utc(2024, time.May, 15, 0, 0, 0, 0),
			want: utc(2024, time.May, 15, 23, 59, 59, 999),
		},
		{
			name: "daily at last millisecond",
			pt:   models.PeriodDaily,
			now:  utc(2024, time.May, 15, 23, 59, 59, 999),
			want: utc(2024, time.May, 15, 23, 59, 59, 999),
		},
		{
			name: "weekly from wednesday",
			pt:   models.PeriodWeekly,
			now:  utc(2024, time.May, 15, 10, 0, 0, 0), // Wednesday
			want: utc(2024, time.May, 19, 23, 59, 59, 999),
		},
		{
			name: "weekly on sunday is end of same day",
			pt:   models.PeriodWeekly,
			now:  utc(2024, time.May, 19, 8, 0, 0, 0), // Sunday
			want: utc(2024, time.May, 19, 23, 59, 59, 999),
		},
		{
			name: "weekly from saturday",
			pt:   models.PeriodWeekly,
			now:  utc(2024, time.May, 18, 23, 0, 0, 0), // Saturday
			want: utc(2024, time.May, 19, 23, 59, 59, 999),
		},
		{
			name: "weekly crossing a month boundary",
			pt:   models.PeriodWeekly,
			now:  utc(2024, time.April, 30, 12, 0, 0, 0), // Tuesday
			want: utc(2024, time.May, 5, 23, 59, 59, 999),
		},
		{
			name: "seasonal q1",
			pt:   models.PeriodSeasonal,
			now:  utc(2024, time.February, 10, 9, 0, 0, 0),
			want: utc(2024, time.March, 31, 23, 59, 59, 999),
		},
		{
			name: "seasonal q2",
			pt:   models.PeriodSeasonal,
			now:  utc(2024, time.May, 15, 9, 0, 0, 0),
			want: utc(2024, time.June, 30, 23, 59, 59, 999),
		},
		{
			name: "seasonal q3 first day",
			pt:   models.PeriodSeasonal,
			now:  utc(2024, time.July, 1, 0, 0, 0, 0),
			want: utc(2024, time.September, 30, 23, 59, 59, 999),
		},
		{
			name: "seasonal q4 last instant",
			pt:   models.PeriodSeasonal,
			now:  utc(2024, time.December, 31, 23, 59, 59, 999),
			want: utc(2024, time.December, 31, 23, 59, 59, 999),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueDate(tt.pt, tt.now)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDueDate_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on May 16 in UTC+5 is still May 15 in UTC.
	now := time.Date(2024, time.May, 16, 2, 30, 0, 0, loc)

	got := DueDate(models.PeriodDaily, now)
	require.Equal(t, time.UTC, got.Location())
	assert.Equal(t, utc(2024, time.May, 15, 23, 59, 59, 999), got)
}

func TestDueDate_DailyProperties(t *testing.T) {
	start := utc(2024, time.January, 1, 13, 45, 12, 0)
	for day := 0; day < 400; day++ {
		now := start.AddDate(0, 0, day)
		due := DueDate(models.PeriodDaily, now)

		assert.Equal(t, now.Year(), due.Year())
		assert.Equal(t, now.YearDay(), due.YearDay())
		assert.False(t, due.Before(now))
		// Last millisecond of the day: one more millisecond rolls the date.
		next := due.Add(time.Millisecond)
		assert.NotEqual(t, due.Day(), next.Day())
	}
}

func TestDueDate_WeeklyProperties(t *testing.T) {
	start := utc(2024, time.January, 1, 6, 0, 0, 0)
	for day := 0; day < 400; day++ {
		now := start.AddDate(0, 0, day)
		due := DueDate(models.PeriodWeekly, now)

		assert.Equal(t, time.Sunday, due.Weekday())
		assert.False(t, due.Before(now))
		assert.Less(t, due.Sub(now), 7*24*time.Hour)
	}
}

func TestDueDate_SeasonalProperties(t *testing.T) {
	quarterEnds := map[time.Month]bool{
		time.March: true, time.June: true, time.September: true, time.December: true,
	}
	start := utc(2024, time.January, 1, 6, 0, 0, 0)
	for day := 0; day < 400; day++ {
		now := start.AddDate(0, 0, day)
		due := DueDate(models.PeriodSeasonal, now)

		assert.True(t, quarterEnds[due.Month()], "due %v not in a quarter-end month", due)
		assert.False(t, due.Before(now))
		// Last day of the month: adding a day changes the month.
		assert.NotEqual(t, due.Month(), due.AddDate(0, 0, 1).Month())
	}
}

func TestStartOfDayUTC(t *testing.T) {
	now := utc(2024, time.May, 15, 18, 42, 7, 123)
	assert.Equal(t, utc(2024, time.May, 15, 0, 0, 0, 0), StartOfDayUTC(now))

	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2024, time.May, 15, 20, 0, 0, 0, loc) // May 16 in UTC
	assert.Equal(t, utc(2024, time.May, 16, 0, 0, 0, 0), StartOfDayUTC(late))
}
