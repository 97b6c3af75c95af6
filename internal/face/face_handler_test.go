package face_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timeclock/internal/face"
	faceerrors "go-timeclock/internal/face/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	enrollFn   func(ctx context.Context, tenantCode, employeeNo string, req face.EnrollRequest) (face.EnrollResponse, error)
	authFn     func(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateRequest) (face.AuthenticateResponse, error)
	authLiveFn func(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateLiveRequest) (face.AuthenticateLiveResponse, error)
}

func (f *fakeService) Enroll(ctx context.Context, tenantCode, employeeNo string, req face.EnrollRequest) (face.EnrollResponse, error) {
	return f.enrollFn(ctx, tenantCode, employeeNo, req)
}

func (f *fakeService) Authenticate(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateRequest) (face.AuthenticateResponse, error) {
	return f.authFn(ctx, tenantCode, employeeNo, req)
}

func (f *fakeService) AuthenticateLive(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateLiveRequest) (face.AuthenticateLiveResponse, error) {
	return f.authLiveFn(ctx, tenantCode, employeeNo, req)
}

func performRequest(t *testing.T, svc face.Service, body any, handle func(h *face.Handler, c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/face", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("tenant_code", "acme")
	c.Set("employee_no", "emp-001")

	handle(face.NewHandler(svc), c)
	return w
}

func TestHandler_Enroll_Created(t *testing.T) {
	svc := &fakeService{
		enrollFn: func(ctx context.Context, tenantCode, employeeNo string, req face.EnrollRequest) (face.EnrollResponse, error) {
			assert.Equal(t, "acme", tenantCode)
			assert.Equal(t, "emp-001", employeeNo)
			return face.EnrollResponse{Enrolled: true, Length: 128, Confidence: 0.97}, nil
		},
	}

	w := performRequest(t, svc, gin.H{"image": "aW1hZ2U="},
		func(h *face.Handler, c *gin.Context) { h.Enroll(c) },
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Ok   bool                `json:"ok"`
		Data face.EnrollResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, 128, env.Data.Length)
}

func TestHandler_Enroll_MissingImage(t *testing.T) {
	svc := &fakeService{}

	w := performRequest(t, svc, gin.H{},
		func(h *face.Handler, c *gin.Context) { h.Enroll(c) },
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Authenticate_Mismatch(t *testing.T) {
	svc := &fakeService{
		authFn: func(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateRequest) (face.AuthenticateResponse, error) {
			return face.AuthenticateResponse{Authenticated: false, Distance: 0.6, Confidence: 0.4}, nil
		},
	}

	w := performRequest(t, svc, gin.H{"image": "aW1hZ2U="},
		func(h *face.Handler, c *gin.Context) { h.Authenticate(c) },
	)

	// a failed comparison is still a successful comparison request
	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data face.AuthenticateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Data.Authenticated)
	assert.Equal(t, 0.6, env.Data.Distance)
}

func TestHandler_AuthenticateLive_StaticImageRejected(t *testing.T) {
	svc := &fakeService{
		authLiveFn: func(ctx context.Context, tenantCode, employeeNo string, req face.AuthenticateLiveRequest) (face.AuthenticateLiveResponse, error) {
			return face.AuthenticateLiveResponse{}, faceerrors.ErrStaticImageSuspected
		},
	}

	w := performRequest(t, svc, gin.H{"frame1": "YQ==", "frame2": "Yg==", "frame3": "Yw=="},
		func(h *face.Handler, c *gin.Context) { h.AuthenticateLive(c) },
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "LIVENESS_STATIC_IMAGE", env.Error.Code)
}

func TestHandler_AuthenticateLive_MissingFrame(t *testing.T) {
	svc := &fakeService{}

	w := performRequest(t, svc, gin.H{"frame1": "YQ==", "frame2": "Yg=="},
		func(h *face.Handler, c *gin.Context) { h.AuthenticateLive(c) },
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
