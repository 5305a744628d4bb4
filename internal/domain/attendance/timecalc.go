package attendance

import "time"

// NetWorkingMinutes returns whole worked minutes between clockIn and clockOut
// with closed break time subtracted, floored at zero. Open breaks are ignored.
func NetWorkingMinutes(clockIn, clockOut time.Time, breaks []Break) int {
	worked := clockOut.Sub(clockIn) - ClosedBreakTotal(breaks)
	if worked < 0 {
		return 0
	}
	return int(worked / time.Minute)
}

// ClosedBreakTotal sums the durations of all closed breaks.
func ClosedBreakTotal(breaks []Break) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		if b.BreakEnd == nil {
			continue
		}
		total += b.BreakEnd.Sub(b.BreakStart)
	}
	return total
}

// ClosedBreakTotalWithin sums closed breaks lying strictly between from and to.
func ClosedBreakTotalWithin(breaks []Break, from, to time.Time) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		if b.BreakEnd == nil {
			continue
		}
		if b.BreakStart.After(from) && b.BreakEnd.Before(to) {
			total += b.BreakEnd.Sub(b.BreakStart)
		}
	}
	return total
}

// AutoCheckoutAt computes the checkout instant the reconciliation pass assigns
// to a session left open. The shift's end time-of-day is anchored onto the
// calendar day of clockIn in loc. A shift whose anchored end does not fall
// after its anchored start is an overnight shift and the end moves to the next
// day; without a start time the end moves forward whenever it precedes
// clockIn. The result is never at or before clockIn.
func AutoCheckoutAt(clockIn time.Time, shiftStart *time.Time, shiftEnd time.Time, loc *time.Location) time.Time {
	ci := clockIn.In(loc)
	end := anchorClock(ci, shiftEnd, loc)

	if shiftStart != nil {
		start := anchorClock(ci, *shiftStart, loc)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
	} else if end.Before(clockIn) {
		end = end.AddDate(0, 0, 1)
	}

	if !end.After(clockIn) {
		end = clockIn.Add(time.Minute)
	}
	return end
}

// anchorClock places the clock fields of tod onto day's calendar date in loc.
func anchorClock(day time.Time, tod time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
}
