package face

import (
	"go-timeclock/internal/authz"
	"go-timeclock/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	faces := r.Group("/face")
	faces.Use(middleware.AuthMiddleware())
	// Extraction is CPU-heavy; throttle per employee.
	faces.Use(middleware.RateLimitByEmployee(2, 5))
	{
		faces.POST("/enroll", authz.Authorize(enforcer, "face", "enroll"), h.Enroll)
		faces.POST("/authenticate", authz.Authorize(enforcer, "face", "verify"), h.Authenticate)
		faces.POST("/authenticate-live", authz.Authorize(enforcer, "face", "verify"), h.AuthenticateLive)
	}
}
