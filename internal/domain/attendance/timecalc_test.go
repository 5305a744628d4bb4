package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var jakarta = time.FixedZone("WIB", 7*3600)

// tod builds a time-of-day value; only the clock fields matter.
func tod(hour, min int) time.Time {
	return time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
}

func todPtr(hour, min int) *time.Time {
	t := tod(hour, min)
	return &t
}

func TestAutoCheckoutAt_SameDayShift(t *testing.T) {
	t.Parallel()

	clockIn := time.Date(2026, 3, 10, 9, 10, 0, 0, jakarta)

	end := AutoCheckoutAt(clockIn, todPtr(9, 0), tod(17, 0), jakarta)

	assert.Equal(t, time.Date(2026, 3, 10, 17, 0, 0, 0, jakarta).Unix(), end.Unix())
}

func TestAutoCheckoutAt_OvernightShiftPushesEndToNextDay(t *testing.T) {
	t.Parallel()

	// 22:00-06:00 shift, checked in at 23:00: the end lands on the next
	// calendar day.
	clockIn := time.Date(2026, 3, 10, 23, 0, 0, 0, jakarta)

	end := AutoCheckoutAt(clockIn, todPtr(22, 0), tod(6, 0), jakarta)

	assert.Equal(t, time.Date(2026, 3, 11, 6, 0, 0, 0, jakarta).Unix(), end.Unix())
}

func TestAutoCheckoutAt_NoStartTimeFallback(t *testing.T) {
	t.Parallel()

	// Without a start time the end only moves forward when it would land
	// before the clock-in.
	clockIn := time.Date(2026, 3, 10, 18, 0, 0, 0, jakarta)

	end := AutoCheckoutAt(clockIn, nil, tod(17, 0), jakarta)

	assert.Equal(t, time.Date(2026, 3, 11, 17, 0, 0, 0, jakarta).Unix(), end.Unix())
}

func TestAutoCheckoutAt_NoStartTimeSameDay(t *testing.T) {
	t.Parallel()

	clockIn := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)

	end := AutoCheckoutAt(clockIn, nil, tod(17, 0), jakarta)

	assert.Equal(t, time.Date(2026, 3, 10, 17, 0, 0, 0, jakarta).Unix(), end.Unix())
}

func TestAutoCheckoutAt_NeverAtOrBeforeClockIn(t *testing.T) {
	t.Parallel()

	// Checked in after the shift already ended: clamp to one minute past
	// the clock-in.
	clockIn := time.Date(2026, 3, 10, 17, 30, 0, 0, jakarta)

	end := AutoCheckoutAt(clockIn, todPtr(9, 0), tod(17, 0), jakarta)

	assert.True(t, end.After(clockIn))
	assert.Equal(t, clockIn.Add(time.Minute).Unix(), end.Unix())
}

func TestNetWorkingMinutes(t *testing.T) {
	t.Parallel()

	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 10, 17, 1, 30, 0, time.UTC)

	breakEnd := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	breaks := []Break{
		{
			BreakStart: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			BreakEnd:   &breakEnd,
		},
		{
			// Open break, excluded from the sum
			BreakStart: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		},
	}

	// 8h1m30s minus 1h break, floored to whole minutes
	assert.Equal(t, 421, NetWorkingMinutes(clockIn, clockOut, breaks))
}

func TestNetWorkingMinutes_ClampedAtZero(t *testing.T) {
	t.Parallel()

	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	breakEnd := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	breaks := []Break{{
		BreakStart: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		BreakEnd:   &breakEnd,
	}}

	assert.Equal(t, 0, NetWorkingMinutes(clockIn, clockOut, breaks))
}

func TestClosedBreakTotalWithin(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)

	inside := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	straddling := time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)

	breaks := []Break{
		{
			// Fully inside: counted
			BreakStart: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			BreakEnd:   &inside,
		},
		{
			// Ends past the window: not counted
			BreakStart: time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC),
			BreakEnd:   &straddling,
		},
		{
			// Open: not counted
			BreakStart: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		},
	}

	assert.Equal(t, 30*time.Minute, ClosedBreakTotalWithin(breaks, from, to))
}
