package clocking

import (
	"go-timeclock/internal/authz"
	"go-timeclock/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	clock := r.Group("/clock")
	clock.Use(middleware.AuthMiddleware())
	{
		clock.POST("/in", authz.Authorize(enforcer, "clock", "write"), middleware.Idempotency(rdb), h.ClockIn)
		clock.POST("/out", authz.Authorize(enforcer, "clock", "write"), middleware.Idempotency(rdb), h.ClockOut)
		clock.GET("/status", authz.Authorize(enforcer, "clock", "read"), h.Status)
		clock.GET("/missed", authz.Authorize(enforcer, "clock", "read"), h.MissedClockOuts)
		clock.GET("/summary", authz.Authorize(enforcer, "clock", "read"), h.DaySummary)
	}
}
