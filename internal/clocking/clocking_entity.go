package clocking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft = "draft"
	StatusDone  = "done"
)

const (
	DayStatusPresent      = "present"
	DayStatusAbsent       = "absent"
	DayStatusLate         = "late"
	DayStatusEarlyExit    = "early_exit"
	DayStatusLateAndEarly = "late_and_early"
)

// Segment is one continuous presence interval, opened by clock-in and
// finalized exactly once by clock-out. The tenant database additionally
// carries a partial unique index
//
//	uq_segment_open ON (employee_id, COALESCE(project_name, ''), start_date) WHERE end_time IS NULL
//
// so a second concurrent open for the same pair is rejected by storage even
// if two requests pass the application-level check together.
type Segment struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	ProjectName    *string    `gorm:"column:project_name;type:varchar(100)"`
	SiteName       *string    `gorm:"column:site_name;type:varchar(100)"`
	StartTime      time.Time  `gorm:"column:start_time;type:timestamptz;not null"`
	StartDate      time.Time  `gorm:"column:start_date;type:date;not null;index"`
	EndTime        *time.Time `gorm:"column:end_time;type:timestamptz"`
	EndDate        *time.Time `gorm:"column:end_date;type:date"`
	StartLatitude  *float64   `gorm:"column:start_latitude"`
	StartLongitude *float64   `gorm:"column:start_longitude"`
	StartAddress   *string    `gorm:"column:start_address;type:text"`
	StartImageRef  *string    `gorm:"column:start_image_ref;type:varchar(255)"`
	EndLatitude    *float64   `gorm:"column:end_latitude"`
	EndLongitude   *float64   `gorm:"column:end_longitude"`
	EndAddress     *string    `gorm:"column:end_address;type:text"`
	EndImageRef    *string    `gorm:"column:end_image_ref;type:varchar(255)"`
	TotalHours     float64    `gorm:"column:total_hours;type:numeric(5,2);not null;default:0"`
	NormalHours    float64    `gorm:"column:normal_hours;type:numeric(5,2);not null;default:0"`
	RestHours      float64    `gorm:"column:rest_hours;type:numeric(5,2);not null;default:0"`
	OvertimeHours  float64    `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	Status         string     `gorm:"column:status;type:varchar(10);not null;default:draft"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Segment) TableName() string {
	return "attendance_segments"
}

// Open reports whether the segment is still waiting for its clock-out.
func (s *Segment) Open() bool {
	return s.EndTime == nil
}

// DaySummary is the per-employee-per-date rollup, upserted every time a
// segment for that date closes. It doubles as the day header created lazily
// at clock-in.
type DaySummary struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_day_summary"`
	SummaryDate   time.Time  `gorm:"column:summary_date;type:date;not null;uniqueIndex:uq_day_summary"`
	FirstIn       *time.Time `gorm:"column:first_in;type:timestamptz"`
	LastOut       *time.Time `gorm:"column:last_out;type:timestamptz"`
	TotalHours    float64    `gorm:"column:total_hours;type:numeric(5,2);not null;default:0"`
	NormalHours   float64    `gorm:"column:normal_hours;type:numeric(5,2);not null;default:0"`
	RestHours     float64    `gorm:"column:rest_hours;type:numeric(5,2);not null;default:0"`
	OvertimeHours float64    `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	DayStatus     string     `gorm:"column:day_status;type:varchar(20);not null;default:absent"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (DaySummary) TableName() string {
	return "day_summaries"
}
