package clocking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository runs against whichever tenant database the request resolved,
// so every method takes the handle explicitly instead of binding one at
// construction like a single-tenant repo would.
//
//go:generate mockgen -source=clocking_repo.go -destination=mock/clocking_repo_mock.go -package=mock
type Repository interface {
	CreateSegment(ctx context.Context, db *gorm.DB, seg *Segment) error
	UpdateSegment(ctx context.Context, db *gorm.DB, seg *Segment) error
	FindOpenOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, project *string, date time.Time) (*Segment, error)
	FindLatestOpenOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) (*Segment, error)
	FindOpenByProject(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, project *string) (*Segment, error)
	FindLatestOpen(ctx context.Context, db *gorm.DB, employeeID uuid.UUID) (*Segment, error)
	FindOpenBefore(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) ([]Segment, error)
	FindClosedOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) ([]Segment, error)
	EnsureDaySummary(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) error
	UpsertDaySummary(ctx context.Context, db *gorm.DB, sum *DaySummary) error
	FindDaySummary(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) (*DaySummary, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func projectScope(project *string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if project == nil {
			return db.Where("project_name IS NULL")
		}
		return db.Where("project_name = ?", *project)
	}
}

func (r *repository) CreateSegment(ctx context.Context, db *gorm.DB, seg *Segment) error {
	return db.WithContext(ctx).Create(seg).Error
}

func (r *repository) UpdateSegment(ctx context.Context, db *gorm.DB, seg *Segment) error {
	return db.WithContext(ctx).Save(seg).Error
}

func (r *repository) FindOpenOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, project *string, date time.Time) (*Segment, error) {
	var seg Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(projectScope(project)).
		Where("start_date = ?", date.Format(dateLayout)).
		Where("end_time IS NULL").
		Order("start_time DESC").
		First(&seg).Error
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

// FindLatestOpenOnDate is the project-agnostic variant: the newest open
// segment on the date regardless of which project it was opened against.
func (r *repository) FindLatestOpenOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) (*Segment, error) {
	var seg Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date = ?", date.Format(dateLayout)).
		Where("end_time IS NULL").
		Order("start_time DESC").
		First(&seg).Error
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

func (r *repository) FindOpenByProject(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, project *string) (*Segment, error) {
	var seg Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(projectScope(project)).
		Where("end_time IS NULL").
		Order("start_time DESC").
		First(&seg).Error
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

func (r *repository) FindLatestOpen(ctx context.Context, db *gorm.DB, employeeID uuid.UUID) (*Segment, error) {
	var seg Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("end_time IS NULL").
		Order("start_time DESC").
		First(&seg).Error
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

func (r *repository) FindOpenBefore(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) ([]Segment, error) {
	var segs []Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date < ?", date.Format(dateLayout)).
		Where("end_time IS NULL").
		Order("start_time ASC").
		Find(&segs).Error
	return segs, err
}

func (r *repository) FindClosedOnDate(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) ([]Segment, error) {
	var segs []Segment
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date = ?", date.Format(dateLayout)).
		Where("end_time IS NOT NULL").
		Where("status = ?", StatusDone).
		Order("start_time ASC").
		Find(&segs).Error
	return segs, err
}

// EnsureDaySummary creates the day header if missing; repeat calls for the
// same employee+date are no-ops.
func (r *repository) EnsureDaySummary(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) error {
	header := DaySummary{
		EmployeeID:  employeeID,
		SummaryDate: date,
		DayStatus:   DayStatusAbsent,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "summary_date"}},
			DoNothing: true,
		}).
		Create(&header).Error
}

func (r *repository) UpsertDaySummary(ctx context.Context, db *gorm.DB, sum *DaySummary) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "summary_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_in", "last_out",
				"total_hours", "normal_hours", "rest_hours", "overtime_hours",
				"day_status", "updated_at",
			}),
		}).
		Create(sum).Error
}

func (r *repository) FindDaySummary(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, date time.Time) (*DaySummary, error) {
	var sum DaySummary
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("summary_date = ?", date.Format(dateLayout)).
		First(&sum).Error
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
