package clocking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func closedSegment(empID uuid.UUID, start, end time.Time, shift float64) Segment {
	split := SplitHours(start, end, shift)
	endDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return Segment{
		ID:            uuid.New(),
		EmployeeID:    empID,
		StartTime:     start,
		StartDate:     time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		EndTime:       &end,
		EndDate:       &endDate,
		TotalHours:    split.Total,
		NormalHours:   split.Normal,
		RestHours:     split.Rest,
		OvertimeHours: split.Overtime,
		Status:        StatusDone,
	}
}

func TestBuildDaySummary_Statuses(t *testing.T) {
	empID := uuid.New()
	date := at("2025-03-10", "00:00")

	cases := []struct {
		name    string
		in, out string
		status  string
	}{
		{"on time both ends", "09:00", "18:00", DayStatusPresent},
		{"inside the grace window", "09:15", "17:46", DayStatusPresent},
		{"late arrival", "09:16", "18:00", DayStatusLate},
		{"early exit", "09:00", "17:30", DayStatusEarlyExit},
		{"late and early", "10:00", "16:00", DayStatusLateAndEarly},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seg := closedSegment(empID, at("2025-03-10", tc.in), at("2025-03-10", tc.out), 8)
			sum := BuildDaySummary(empID, date, []Segment{seg}, "09:00", "18:00")
			assert.Equal(t, tc.status, sum.DayStatus)
		})
	}
}

func TestBuildDaySummary_AggregatesAcrossSegments(t *testing.T) {
	empID := uuid.New()
	date := at("2025-03-10", "00:00")

	segs := []Segment{
		closedSegment(empID, at("2025-03-10", "09:00"), at("2025-03-10", "12:00"), 8),
		closedSegment(empID, at("2025-03-10", "13:00"), at("2025-03-10", "18:00"), 8),
	}

	sum := BuildDaySummary(empID, date, segs, "09:00", "18:00")

	assert.Equal(t, at("2025-03-10", "09:00"), *sum.FirstIn)
	assert.Equal(t, at("2025-03-10", "18:00"), *sum.LastOut)
	assert.Equal(t, 8.00, sum.TotalHours)
	assert.Equal(t, 8.00, sum.NormalHours)
	assert.Equal(t, 0.00, sum.RestHours)
	assert.Equal(t, 0.00, sum.OvertimeHours)
	assert.Equal(t, DayStatusPresent, sum.DayStatus)
}

func TestBuildDaySummary_Idempotent(t *testing.T) {
	empID := uuid.New()
	date := at("2025-03-10", "00:00")
	segs := []Segment{
		closedSegment(empID, at("2025-03-10", "09:00"), at("2025-03-10", "18:30"), 8),
	}

	first := BuildDaySummary(empID, date, segs, "09:00", "18:00")
	second := BuildDaySummary(empID, date, segs, "09:00", "18:00")
	assert.Equal(t, first, second)
}

func TestBuildDaySummary_OpenSegmentsExcluded(t *testing.T) {
	empID := uuid.New()
	date := at("2025-03-10", "00:00")

	open := Segment{
		ID:         uuid.New(),
		EmployeeID: empID,
		StartTime:  at("2025-03-10", "09:00"),
		StartDate:  date,
		Status:     StatusDraft,
	}

	sum := BuildDaySummary(empID, date, []Segment{open}, "09:00", "18:00")
	assert.Equal(t, DayStatusAbsent, sum.DayStatus)
	assert.Nil(t, sum.FirstIn)
	assert.Nil(t, sum.LastOut)
	assert.Equal(t, 0.00, sum.TotalHours)
}
