package clocking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	clockingerrors "go-timeclock/internal/clocking/errors"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantResolver is the slice of the tenant router this service needs.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantCode string) (*gorm.DB, error)
}

//go:generate mockgen -source=clocking_service.go -destination=mock/clocking_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, tenantCode, employeeNo string, req ClockRequest) (SegmentResponse, error)
	ClockOut(ctx context.Context, tenantCode, employeeNo string, req ClockRequest) (ClockOutResponse, error)
	Status(ctx context.Context, tenantCode, employeeNo string, project *string) (StatusResponse, error)
	MissedClockOuts(ctx context.Context, tenantCode, employeeNo string) ([]SegmentResponse, error)
	DaySummary(ctx context.Context, tenantCode, employeeNo, date string) (SummaryResponse, error)
}

type service struct {
	tenants   TenantResolver
	directory employee.Directory
	repo      Repository
	outbox    kafka.OutboxRepository
	locks     *KeyedMutex
	nowFn     func() time.Time
	logger    *zap.Logger
}

func NewService(
	tenants TenantResolver,
	directory employee.Directory,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("clocking.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("clocking.service")
	}
	return &service{
		tenants:   tenants,
		directory: directory,
		repo:      repo,
		outbox:    outbox,
		locks:     NewKeyedMutex(),
		nowFn:     func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func segmentKey(tenantCode string, employeeID uuid.UUID, project *string) string {
	p := ""
	if project != nil {
		p = *project
	}
	return fmt.Sprintf("%s|%s|%s", tenantCode, employeeID, p)
}

// observedTime prefers the client-supplied timestamp, falling back to
// server time.
func (s *service) observedTime(req ClockRequest) time.Time {
	if req.Timestamp != nil {
		if t, err := time.Parse(time.RFC3339, *req.Timestamp); err == nil {
			return t.UTC()
		}
	}
	return s.nowFn()
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *service) ClockIn(ctx context.Context, tenantCode, employeeNo string, req ClockRequest) (SegmentResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return SegmentResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return SegmentResponse{}, err
	}

	now := s.observedTime(req)
	today := dateOf(now)

	// Serialize check-then-insert per (tenant, employee, project). The
	// uq_segment_open index backstops this for multi-process deployments.
	unlock := s.locks.Lock(segmentKey(tenantCode, emp.ID, req.ProjectName))
	defer unlock()

	_, err = s.repo.FindOpenOnDate(ctx, db, emp.ID, req.ProjectName, today)
	if err == nil {
		return SegmentResponse{}, clockingerrors.ErrAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SegmentResponse{}, err
	}

	seg := &Segment{
		ID:             uuid.New(),
		EmployeeID:     emp.ID,
		ProjectName:    req.ProjectName,
		SiteName:       req.SiteName,
		StartTime:      now,
		StartDate:      today,
		StartLatitude:  req.Latitude,
		StartLongitude: req.Longitude,
		StartAddress:   req.Address,
		StartImageRef:  req.ImageRef,
		Status:         StatusDraft,
	}
	if err := s.repo.CreateSegment(ctx, db, seg); err != nil {
		return SegmentResponse{}, mapCreateError(err)
	}

	// Day header is lazy and idempotent; a failure here must not undo the
	// committed clock-in.
	if err := s.repo.EnsureDaySummary(ctx, db, emp.ID, today); err != nil {
		s.logger.Warn("ensure day summary failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", emp.ID.String()),
			zap.Error(err),
		)
	}

	return mapSegmentResponse(seg), nil
}

func (s *service) ClockOut(ctx context.Context, tenantCode, employeeNo string, req ClockRequest) (ClockOutResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return ClockOutResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return ClockOutResponse{}, err
	}

	seg, err := s.resolveOpenSegment(ctx, db, emp.ID, req.ProjectName)
	if err != nil {
		return ClockOutResponse{}, err
	}

	now := s.observedTime(req)
	endDate := dateOf(now)

	seg.EndTime = &now
	seg.EndDate = &endDate
	seg.EndLatitude = req.Latitude
	seg.EndLongitude = req.Longitude
	seg.EndAddress = req.Address
	seg.EndImageRef = req.ImageRef

	split := SplitHours(seg.StartTime, now, emp.EffectiveShiftHours())
	seg.TotalHours = split.Total
	seg.NormalHours = split.Normal
	seg.RestHours = split.Rest
	seg.OvertimeHours = split.Overtime
	seg.Status = StatusDone

	if err := s.repo.UpdateSegment(ctx, db, seg); err != nil {
		return ClockOutResponse{}, err
	}

	// Summary rollup and event publication are best-effort: the clock-out
	// is already committed and must never be rolled back by them.
	s.recomputeDaySummary(ctx, db, emp, seg.StartDate)
	s.enqueueSegmentClosed(ctx, tenantCode, seg)

	return ClockOutResponse{
		SegmentID:   seg.ID.String(),
		ProjectName: seg.ProjectName,
		StartTime:   seg.StartTime.Format(time.RFC3339),
		EndTime:     now.Format(time.RFC3339),
		Totals: HourTotals{
			TotalHours:    seg.TotalHours,
			NormalHours:   seg.NormalHours,
			RestHours:     seg.RestHours,
			OvertimeHours: seg.OvertimeHours,
		},
	}, nil
}

// resolveOpenSegment prefers the open segment for the exact project, then
// falls back to the newest open segment regardless of project. The fallback
// covers clients whose local project state drifted from the server.
func (s *service) resolveOpenSegment(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, project *string) (*Segment, error) {
	seg, err := s.repo.FindOpenByProject(ctx, db, employeeID, project)
	if err == nil {
		return seg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seg, err = s.repo.FindLatestOpen(ctx, db, employeeID)
	if err == nil {
		return seg, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, clockingerrors.ErrNoOpenSegment
	}
	return nil, err
}

func (s *service) recomputeDaySummary(ctx context.Context, db *gorm.DB, emp *employee.Employee, date time.Time) {
	segs, err := s.repo.FindClosedOnDate(ctx, db, emp.ID, date)
	if err != nil {
		s.logger.Error("load closed segments for summary failed",
			zap.String("employee_id", emp.ID.String()),
			zap.Error(err),
		)
		return
	}

	sum := BuildDaySummary(emp.ID, date, segs, emp.ShiftStart, emp.ShiftEnd)
	if err := s.repo.UpsertDaySummary(ctx, db, &sum); err != nil {
		s.logger.Error("upsert day summary failed",
			zap.String("employee_id", emp.ID.String()),
			zap.String("date", date.Format(dateLayout)),
			zap.Error(err),
		)
	}
}

func (s *service) enqueueSegmentClosed(ctx context.Context, tenantCode string, seg *Segment) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.SegmentClosed{
		TenantCode:    tenantCode,
		SegmentID:     seg.ID.String(),
		EmployeeID:    seg.EmployeeID.String(),
		ProjectName:   seg.ProjectName,
		StartTime:     seg.StartTime.Format(time.RFC3339),
		EndTime:       seg.EndTime.Format(time.RFC3339),
		TotalHours:    seg.TotalHours,
		NormalHours:   seg.NormalHours,
		RestHours:     seg.RestHours,
		OvertimeHours: seg.OvertimeHours,
	})
	if err != nil {
		s.logger.Error("marshal segment closed event failed", zap.Error(err))
		return
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		TenantCode:    tenantCode,
		AggregateType: events.AggregateSegment,
		AggregateID:   seg.ID.String(),
		EventType:     events.TypeSegmentClosed,
		Topic:         events.TopicAttendance,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error("enqueue segment closed event failed",
			zap.String("segment_id", seg.ID.String()),
			zap.Error(err),
		)
	}
}

// Status reports only today's open segment. A supplied project narrows the
// check to that project; without one the newest open segment across projects
// answers, mirroring the clock-out fallback. Older open segments surface
// through MissedClockOuts instead, so a stale open segment from a prior day
// never blocks today's clock-in indefinitely.
func (s *service) Status(ctx context.Context, tenantCode, employeeNo string, project *string) (StatusResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return StatusResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return StatusResponse{}, err
	}

	today := dateOf(s.nowFn())
	var seg *Segment
	if project == nil {
		seg, err = s.repo.FindLatestOpenOnDate(ctx, db, emp.ID, today)
	} else {
		seg, err = s.repo.FindOpenOnDate(ctx, db, emp.ID, project, today)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{IsClockedIn: false}, nil
		}
		return StatusResponse{}, err
	}

	resp := mapSegmentResponse(seg)
	return StatusResponse{IsClockedIn: true, OpenSegment: &resp}, nil
}

func (s *service) MissedClockOuts(ctx context.Context, tenantCode, employeeNo string) ([]SegmentResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return nil, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return nil, err
	}

	segs, err := s.repo.FindOpenBefore(ctx, db, emp.ID, dateOf(s.nowFn()))
	if err != nil {
		return nil, err
	}

	resp := make([]SegmentResponse, len(segs))
	for i := range segs {
		resp[i] = mapSegmentResponse(&segs[i])
	}
	return resp, nil
}

func (s *service) DaySummary(ctx context.Context, tenantCode, employeeNo, date string) (SummaryResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return SummaryResponse{}, clockingerrors.ErrInvalidDate
	}

	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return SummaryResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return SummaryResponse{}, err
	}

	sum, err := s.repo.FindDaySummary(ctx, db, emp.ID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, clockingerrors.ErrSummaryNotFound
		}
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		SummaryDate: sum.SummaryDate.Format(dateLayout),
		DayStatus:   sum.DayStatus,
		Totals: HourTotals{
			TotalHours:    sum.TotalHours,
			NormalHours:   sum.NormalHours,
			RestHours:     sum.RestHours,
			OvertimeHours: sum.OvertimeHours,
		},
	}
	if sum.FirstIn != nil {
		v := sum.FirstIn.Format(time.RFC3339)
		resp.FirstIn = &v
	}
	if sum.LastOut != nil {
		v := sum.LastOut.Format(time.RFC3339)
		resp.LastOut = &v
	}
	return resp, nil
}

func mapSegmentResponse(seg *Segment) SegmentResponse {
	return SegmentResponse{
		SegmentID:   seg.ID.String(),
		ProjectName: seg.ProjectName,
		SiteName:    seg.SiteName,
		StartTime:   seg.StartTime.Format(time.RFC3339),
		StartDate:   seg.StartDate.Format(dateLayout),
		Status:      seg.Status,
	}
}
