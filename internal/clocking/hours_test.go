package clocking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSplitHours(t *testing.T) {
	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		shift    float64
		total    float64
		normal   float64
		rest     float64
		overtime float64
	}{
		{
			name:  "basic cycle 09:00-18:00",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "18:00"), shift: 8,
			total: 9.00, normal: 8.00, rest: 1.00, overtime: 0.00,
		},
		{
			name:  "short day 09:00-13:00",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "13:00"), shift: 8,
			total: 4.00, normal: 4.00, rest: 0.00, overtime: 0.00,
		},
		{
			name:  "exactly the shift",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "17:00"), shift: 8,
			total: 8.00, normal: 8.00, rest: 0.00, overtime: 0.00,
		},
		{
			name:  "half hour into rest",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "17:30"), shift: 8,
			total: 8.50, normal: 8.00, rest: 0.50, overtime: 0.00,
		},
		{
			name:  "twenty hours",
			start: at("2025-03-10", "03:00"), end: at("2025-03-10", "23:00"), shift: 8,
			total: 20.00, normal: 8.00, rest: 1.00, overtime: 11.00,
		},
		{
			name:  "zero duration",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "09:00"), shift: 8,
			total: 0, normal: 0, rest: 0, overtime: 0,
		},
		{
			name:  "end before start clamps to zero",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "08:00"), shift: 8,
			total: 0, normal: 0, rest: 0, overtime: 0,
		},
		{
			name:  "cross midnight",
			start: at("2025-03-10", "22:00"), end: at("2025-03-11", "03:30"), shift: 8,
			total: 5.50, normal: 5.50, rest: 0.00, overtime: 0.00,
		},
		{
			name:  "seconds are dropped, minutes truncate",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "16:59"), shift: 8,
			total: 7.98, normal: 7.98, rest: 0.00, overtime: 0.00,
		},
		{
			name:  "unset shift defaults to eight",
			start: at("2025-03-10", "09:00"), end: at("2025-03-10", "19:00"), shift: 0,
			total: 10.00, normal: 8.00, rest: 1.00, overtime: 1.00,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitHours(tc.start, tc.end, tc.shift)
			assert.Equal(t, tc.total, got.Total)
			assert.Equal(t, tc.normal, got.Normal)
			assert.Equal(t, tc.rest, got.Rest)
			assert.Equal(t, tc.overtime, got.Overtime)
		})
	}
}

func TestSplitHours_SumLaw(t *testing.T) {
	start := at("2025-03-10", "09:00")
	for _, minutes := range []int{0, 59, 240, 479, 480, 510, 540, 1200} {
		end := start.Add(time.Duration(minutes) * time.Minute)
		got := SplitHours(start, end, 8)
		assert.InDelta(t, got.Total, got.Normal+got.Rest+got.Overtime, 1e-9,
			"minutes=%d", minutes)
	}
}

func TestTruncate2(t *testing.T) {
	assert.Equal(t, 7.99, Truncate2(7.999))
	assert.Equal(t, 7.98, Truncate2(7.983333))
	assert.Equal(t, 8.0, Truncate2(8.0))
	assert.Equal(t, 0.0, Truncate2(0.004))
}
