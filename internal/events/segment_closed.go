package events

const (
	TopicAttendance   = "attendance.events"
	TypeSegmentClosed = "attendance.segment.closed"
	AggregateSegment  = "attendance_segment"
)

// SegmentClosed is published after a clock-out commits so downstream
// consumers (payroll, notifications) can react without polling tenant
// databases.
type SegmentClosed struct {
	TenantCode    string  `json:"tenant_code"`
	SegmentID     string  `json:"segment_id"`
	EmployeeID    string  `json:"employee_id"`
	ProjectName   *string `json:"project_name,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TotalHours    float64 `json:"total_hours"`
	NormalHours   float64 `json:"normal_hours"`
	RestHours     float64 `json:"rest_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}
