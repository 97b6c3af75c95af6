package face

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func callerIdentity(c *gin.Context) (tenantCode, employeeNo string) {
	return c.GetString("tenant_code"), c.GetString("employee_no")
}

func (h *Handler) Enroll(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Enroll(c.Request.Context(), tenantCode, employeeNo, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Authenticate(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Authenticate(c.Request.Context(), tenantCode, employeeNo, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AuthenticateLive(c *gin.Context) {
	tenantCode, employeeNo := callerIdentity(c)

	var req AuthenticateLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AuthenticateLive(c.Request.Context(), tenantCode, employeeNo, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
