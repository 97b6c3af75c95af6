package clocking

import (
	"encoding/json"
	"net/http"
	"time"

	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func callerIdentity(c *gin.Context) (tenantCode, employeeNo string) {
	return c.GetString("tenant_code"), c.GetString("employee_no")
}

// releaseIdempotencyLock frees the in-flight lock the idempotency middleware
// took. Called on every outcome; a failed request must not keep answering
// legitimate retries with 409 until the lock expires.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

// cacheIdempotentResponse stores the handler result under the cache key the
// idempotency middleware prepared, and releases its lock.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, payload any) {
	if h.rdb == nil {
		return
	}
	defer h.releaseIdempotencyLock(c)
	if ck := c.GetString("idempotency_cache_key"); ck != "" {
		if body, err := json.Marshal(payload); err == nil {
			_ = h.rdb.Set(c.Request.Context(), ck, body, 24*time.Hour).Err()
		}
	}
}

func (h *Handler) ClockIn(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), tenantCode, employeeNo, req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), tenantCode, employeeNo, req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var project *string
	if p, ok := c.GetQuery("project_name"); ok && p != "" {
		project = &p
	}

	resp, err := h.service.Status(c.Request.Context(), tenantCode, employeeNo, project)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MissedClockOuts(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	resp, err := h.service.MissedClockOuts(c.Request.Context(), tenantCode, employeeNo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DaySummary(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}

	resp, err := h.service.DaySummary(c.Request.Context(), tenantCode, employeeNo, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
