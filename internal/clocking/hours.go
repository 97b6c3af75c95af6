package clocking

import (
	"math"
	"time"
)

// HourSplit carries the worked-hour breakdown of one closed segment.
type HourSplit struct {
	Total    float64
	Normal   float64
	Rest     float64
	Overtime float64
}

// Truncate2 cuts to two decimals without rounding. Truncation is the
// business rule here, not a float artifact: 7.999 hours pays 7.99, never 8.
func Truncate2(x float64) float64 {
	return math.Trunc(x*100) / 100
}

// SplitHours breaks the interval into normal, rest and overtime hours.
// Worked time counts whole minutes only. Rest accrues after the shift
// length and is capped at one hour; everything past shift+rest is overtime.
func SplitHours(start, end time.Time, shiftHours float64) HourSplit {
	if shiftHours <= 0 {
		shiftHours = 8
	}

	minutes := int64(end.Sub(start) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	worked := Truncate2(float64(minutes) / 60.0)

	normal := worked
	if normal > shiftHours {
		normal = shiftHours
	}

	rest := worked - shiftHours
	if rest < 0 {
		rest = 0
	}
	if rest > 1 {
		rest = 1
	}

	overtime := worked - shiftHours - rest
	if overtime < 0 {
		overtime = 0
	}

	return HourSplit{
		Total:    worked,
		Normal:   Truncate2(normal),
		Rest:     Truncate2(rest),
		Overtime: Truncate2(overtime),
	}
}
