package clocking

type ClockRequest struct {
	ProjectName *string  `json:"project_name"`
	SiteName    *string  `json:"site_name"`
	Timestamp   *string  `json:"timestamp"` // RFC3339; defaults to server time
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     *string  `json:"address"`
	ImageRef    *string  `json:"image_ref"`
}

type SegmentResponse struct {
	SegmentID   string  `json:"segment_id"`
	ProjectName *string `json:"project_name,omitempty"`
	SiteName    *string `json:"site_name,omitempty"`
	StartTime   string  `json:"start_time"`
	StartDate   string  `json:"start_date"`
	Status      string  `json:"status"`
}

type HourTotals struct {
	TotalHours    float64 `json:"totalHours"`
	NormalHours   float64 `json:"normalHours"`
	RestHours     float64 `json:"restHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

type ClockOutResponse struct {
	SegmentID   string     `json:"segment_id"`
	ProjectName *string    `json:"project_name,omitempty"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Totals      HourTotals `json:"totals"`
}

type StatusResponse struct {
	IsClockedIn bool             `json:"is_clocked_in"`
	OpenSegment *SegmentResponse `json:"open_segment,omitempty"`
}

type SummaryResponse struct {
	SummaryDate string     `json:"summary_date"`
	FirstIn     *string    `json:"first_in,omitempty"`
	LastOut     *string    `json:"last_out,omitempty"`
	DayStatus   string     `json:"day_status"`
	Totals      HourTotals `json:"totals"`
}
