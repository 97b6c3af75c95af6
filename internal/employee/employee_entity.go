package employee

import (
	"time"

	"github.com/google/uuid"
)

const DefaultShiftHours = 8.0

// Employee is the ERP-owned directory row inside each tenant database.
// This service never writes it.
type Employee struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeNo      string    `gorm:"column:employee_no;type:varchar(50);uniqueIndex:uq_employee_no;not null"`
	FullName        string    `gorm:"column:full_name;type:varchar(255)"`
	Active          bool      `gorm:"column:active;not null;default:true"`
	ShiftHours      float64   `gorm:"column:shift_hours;type:numeric(4,2)"`
	WorkDaysPerWeek float64   `gorm:"column:work_days_per_week;type:numeric(2,1);default:5"`
	ShiftStart      string    `gorm:"column:shift_start;type:varchar(5);default:09:00"`
	ShiftEnd        string    `gorm:"column:shift_end;type:varchar(5);default:18:00"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// EffectiveShiftHours falls back to the default when the row carries no
// usable value.
func (e *Employee) EffectiveShiftHours() float64 {
	if e.ShiftHours <= 0 {
		return DefaultShiftHours
	}
	return e.ShiftHours
}

// Valid rejects malformed rows at the read boundary instead of letting bad
// values flow into the hour arithmetic.
func (e *Employee) Valid() bool {
	if e.ID == uuid.Nil {
		return false
	}
	if e.ShiftHours < 0 || e.ShiftHours > 24 {
		return false
	}
	return true
}
