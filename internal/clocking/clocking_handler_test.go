package clocking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-timeclock/internal/clocking"
	clockingerrors "go-timeclock/internal/clocking/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	clockInFn  func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error)
	clockOutFn func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.ClockOutResponse, error)
	statusFn   func(ctx context.Context, tenantCode, employeeNo string, project *string) (clocking.StatusResponse, error)
	missedFn   func(ctx context.Context, tenantCode, employeeNo string) ([]clocking.SegmentResponse, error)
	summaryFn  func(ctx context.Context, tenantCode, employeeNo, date string) (clocking.SummaryResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error) {
	return f.clockInFn(ctx, tenantCode, employeeNo, req)
}

func (f *fakeService) ClockOut(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.ClockOutResponse, error) {
	return f.clockOutFn(ctx, tenantCode, employeeNo, req)
}

func (f *fakeService) Status(ctx context.Context, tenantCode, employeeNo string, project *string) (clocking.StatusResponse, error) {
	return f.statusFn(ctx, tenantCode, employeeNo, project)
}

func (f *fakeService) MissedClockOuts(ctx context.Context, tenantCode, employeeNo string) ([]clocking.SegmentResponse, error) {
	return f.missedFn(ctx, tenantCode, employeeNo)
}

func (f *fakeService) DaySummary(ctx context.Context, tenantCode, employeeNo, date string) (clocking.SummaryResponse, error) {
	return f.summaryFn(ctx, tenantCode, employeeNo, date)
}

func performRequest(t *testing.T, svc clocking.Service, method, target string, body any, handle func(h *clocking.Handler, c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("tenant_code", "acme")
	c.Set("employee_no", "emp-001")

	handle(clocking.NewHandler(svc, nil), c)
	return w
}

func TestHandler_ClockIn_Created(t *testing.T) {
	svc := &fakeService{
		clockInFn: func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error) {
			assert.Equal(t, "acme", tenantCode)
			assert.Equal(t, "emp-001", employeeNo)
			require.NotNil(t, req.ProjectName)
			assert.Equal(t, "site-a", *req.ProjectName)
			return clocking.SegmentResponse{SegmentID: "seg-1", Status: clocking.StatusDraft}, nil
		},
	}

	w := performRequest(t, svc, http.MethodPost, "/api/v1/clock/in",
		gin.H{"project_name": "site-a"},
		func(h *clocking.Handler, c *gin.Context) { h.ClockIn(c) },
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Ok   bool                     `json:"ok"`
		Data clocking.SegmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, "seg-1", env.Data.SegmentID)
}

func TestHandler_ClockIn_Conflict(t *testing.T) {
	svc := &fakeService{
		clockInFn: func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error) {
			return clocking.SegmentResponse{}, clockingerrors.ErrAlreadyOpen
		},
	}

	w := performRequest(t, svc, http.MethodPost, "/api/v1/clock/in",
		gin.H{},
		func(h *clocking.Handler, c *gin.Context) { h.ClockIn(c) },
	)

	assert.Equal(t, http.StatusConflict, w.Code)

	var env struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, "ALREADY_OPEN", env.Error.Code)
}

func lockedClockInContext(t *testing.T, w *httptest.ResponseRecorder, cacheKey, lockKey string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	raw, err := json.Marshal(gin.H{"project_name": "site-a"})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/clock/in", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("tenant_code", "acme")
	c.Set("employee_no", "emp-001")
	c.Set("idempotency_cache_key", cacheKey)
	c.Set("idempotency_lock_key", lockKey)
	return c
}

func TestHandler_ClockIn_SuccessCachesAndReleasesLock(t *testing.T) {
	cacheKey := "idemp:/api/v1/clock/in:acme:emp-001:key-1"
	lockKey := cacheKey + ":lock"
	resp := clocking.SegmentResponse{SegmentID: "seg-1", Status: clocking.StatusDraft}
	body, err := json.Marshal(resp)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet(cacheKey, body, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error) {
			return resp, nil
		},
	}

	w := httptest.NewRecorder()
	c := lockedClockInContext(t, w, cacheKey, lockKey)
	clocking.NewHandler(svc, rdb).ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ClockIn_ErrorReleasesLock(t *testing.T) {
	cacheKey := "idemp:/api/v1/clock/in:acme:emp-001:key-1"
	lockKey := cacheKey + ":lock"

	// the lock goes, the response is never cached
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(lockKey).SetVal(1)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.SegmentResponse, error) {
			return clocking.SegmentResponse{}, clockingerrors.ErrAlreadyOpen
		},
	}

	w := httptest.NewRecorder()
	c := lockedClockInContext(t, w, cacheKey, lockKey)
	clocking.NewHandler(svc, rdb).ClockIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ClockOut_OK(t *testing.T) {
	svc := &fakeService{
		clockOutFn: func(ctx context.Context, tenantCode, employeeNo string, req clocking.ClockRequest) (clocking.ClockOutResponse, error) {
			return clocking.ClockOutResponse{
				SegmentID: "seg-1",
				Totals:    clocking.HourTotals{TotalHours: 9, NormalHours: 8, RestHours: 1},
			}, nil
		},
	}

	w := performRequest(t, svc, http.MethodPost, "/api/v1/clock/out",
		gin.H{},
		func(h *clocking.Handler, c *gin.Context) { h.ClockOut(c) },
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data clocking.ClockOutResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 8.0, env.Data.Totals.NormalHours)
}

func TestHandler_Status_PassesProjectQuery(t *testing.T) {
	svc := &fakeService{
		statusFn: func(ctx context.Context, tenantCode, employeeNo string, project *string) (clocking.StatusResponse, error) {
			require.NotNil(t, project)
			assert.Equal(t, "site-a", *project)
			return clocking.StatusResponse{IsClockedIn: true}, nil
		},
	}

	w := performRequest(t, svc, http.MethodGet, "/api/v1/clock/status?project_name=site-a", nil,
		func(h *clocking.Handler, c *gin.Context) { h.Status(c) },
	)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_DaySummary_NotFound(t *testing.T) {
	svc := &fakeService{
		summaryFn: func(ctx context.Context, tenantCode, employeeNo, date string) (clocking.SummaryResponse, error) {
			assert.Equal(t, "2025-03-10", date)
			return clocking.SummaryResponse{}, clockingerrors.ErrSummaryNotFound
		},
	}

	w := performRequest(t, svc, http.MethodGet, "/api/v1/clock/summary?date=2025-03-10", nil,
		func(h *clocking.Handler, c *gin.Context) { h.DaySummary(c) },
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
