package authz

import (
	"net/http"

	"go-timeclock/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role from the auth middleware.
func Authorize(e *casbin.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			role = "device"
		}

		ok, err := e.Enforce(role, resource, action)
		if err != nil || !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
