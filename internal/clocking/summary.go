package clocking

import (
	"time"

	"github.com/google/uuid"
)

// lateThreshold is the grace window on both shift boundaries.
const lateThreshold = 15 * time.Minute

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// BuildDaySummary derives the rollup for one employee+date from that day's
// closed segments. It is a pure function: recomputing over the same
// segments always yields the same summary, which is what makes the upsert
// safe to repeat.
func BuildDaySummary(
	employeeID uuid.UUID,
	date time.Time,
	segments []Segment,
	shiftStart, shiftEnd string,
) DaySummary {
	sum := DaySummary{
		EmployeeID:  employeeID,
		SummaryDate: date,
		DayStatus:   DayStatusAbsent,
	}

	var firstIn, lastOut *time.Time
	var total, normal, rest, overtime float64

	for i := range segments {
		seg := &segments[i]
		if seg.Open() || seg.Status != StatusDone {
			continue
		}
		if firstIn == nil || seg.StartTime.Before(*firstIn) {
			t := seg.StartTime
			firstIn = &t
		}
		if lastOut == nil || seg.EndTime.After(*lastOut) {
			t := *seg.EndTime
			lastOut = &t
		}
		total += seg.TotalHours
		normal += seg.NormalHours
		rest += seg.RestHours
		overtime += seg.OvertimeHours
	}

	if firstIn == nil || lastOut == nil {
		return sum
	}

	sum.FirstIn = firstIn
	sum.LastOut = lastOut
	sum.TotalHours = Truncate2(total)
	sum.NormalHours = Truncate2(normal)
	sum.RestHours = Truncate2(rest)
	sum.OvertimeHours = Truncate2(overtime)
	sum.DayStatus = deriveDayStatus(date, *firstIn, *lastOut, shiftStart, shiftEnd)
	return sum
}

func deriveDayStatus(date time.Time, firstIn, lastOut time.Time, shiftStart, shiftEnd string) string {
	late := false
	early := false

	if start, ok := clockOnDate(date, shiftStart); ok {
		late = firstIn.After(start.Add(lateThreshold))
	}
	if end, ok := clockOnDate(date, shiftEnd); ok {
		early = lastOut.Before(end.Add(-lateThreshold))
	}

	switch {
	case late && early:
		return DayStatusLateAndEarly
	case late:
		return DayStatusLate
	case early:
		return DayStatusEarlyExit
	default:
		return DayStatusPresent
	}
}

// clockOnDate pins an "HH:MM" wall-clock string onto the given date.
func clockOnDate(date time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location(),
	), true
}
