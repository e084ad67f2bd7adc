package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestWorkingHours_FullWeekIs40(t *testing.T) {
	// Every Monday in 2025 through the Sunday that follows it
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	for w := 0; w < 52; w++ {
		start := monday.AddDate(0, 0, 7*w)
		end := start.AddDate(0, 0, 6)
		require.Equal(t, time.Monday, start.Weekday())
		require.Equal(t, time.Sunday, end.Weekday())
		assert.Equal(t, 40, WorkingHours(&start, &end, DefaultHoursPerDay), "week of %s", start.Format(DateLayout))
	}
}

func TestWorkingHours_SingleDay(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		want := 8
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			want = 0
		}
		assert.Equal(t, want, WorkingHours(&d, &d, DefaultHoursPerDay), d.Format("Mon 2006-01-02"))
	}
}

func TestWorkingHours_MissingDates(t *testing.T) {
	d := day(t, "2025-03-03")
	assert.Equal(t, 0, WorkingHours(nil, d, DefaultHoursPerDay))
	assert.Equal(t, 0, WorkingHours(d, nil, DefaultHoursPerDay))
	assert.Equal(t, 0, WorkingHours(nil, nil, DefaultHoursPerDay))
}

func TestWorkingHours_Ranges(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		hoursPerDay int
		want        int
	}{
		{name: "inverted range", start: "2025-03-10", end: "2025-03-07", hoursPerDay: 8, want: 0},
		{name: "weekend only", start: "2025-03-08", end: "2025-03-09", hoursPerDay: 8, want: 0},
		{name: "friday to monday", start: "2025-03-07", end: "2025-03-10", hoursPerDay: 8, want: 16},
		{name: "two weeks wed to tue", start: "2025-03-05", end: "2025-03-18", hoursPerDay: 8, want: 80},
		{name: "custom rate", start: "2025-03-03", end: "2025-03-07", hoursPerDay: 6, want: 30},
		{name: "across month end", start: "2025-01-30", end: "2025-02-04", hoursPerDay: 8, want: 32},
		{name: "leap day", start: "2024-02-28", end: "2024-03-01", hoursPerDay: 8, want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingHours(day(t, tt.start), day(t, tt.end), tt.hoursPerDay))
		})
	}
}

func TestWorkingDays_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	start := time.Date(2025, time.March, 3, 23, 30, 0, 0, loc)
	end := time.Date(2025, time.March, 7, 0, 15, 0, 0, loc)
	assert.Equal(t, 5, WorkingDays(start, end))
}

func TestWorkingDays_MatchesDayByDayCount(t *testing.T) {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		start := base.AddDate(0, 0, offset)
		for length := 0; length < 40; length++ {
			end := start.AddDate(0, 0, length)
			want := 0
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
					want++
				}
			}
			assert.Equal(t, want, WorkingDays(start, end), "%s..%s", start.Format(DateLayout), end.Format(DateLayout))
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-04-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/04/2025")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	assert.Equal(t, "2025-04-01", FormatDate(day(t, "2025-04-01")))
}

func TestWorkingDays_MultiCenturySpan(t *testing.T) {
	// 400 Gregorian years is exactly 20871 weeks
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2425, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 20871*5, WorkingDays(start, end))

	serialTypo := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	hours := WorkingHours(&start, &serialTypo, DefaultHoursPerDay)
	assert.Equal(t, WorkingDays(start, serialTypo)*DefaultHoursPerDay, hours)
	assert.Greater(t, hours, 0)
}

func TestWorkingDays_MultiCenturyMatchesDayByDayCount(t *testing.T) {
	start := time.Date(1901, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2300, time.June, 15, 0, 0, 0, 0, time.UTC)

	want := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			want++
		}
	}
	assert.Equal(t, want, WorkingDays(start, end))
}
