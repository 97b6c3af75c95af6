package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token issued by the surrounding ERP
// and extracts the tenant code and employee number claims every core
// endpoint keys on.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			message := "Token is invalid"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
				message = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		tenantCode, ok := claims["tenant_code"].(string)
		if !ok || tenantCode == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Tenant code not found in token", nil)
			c.Abort()
			return
		}

		employeeNo, ok := claims["employee_no"].(string)
		if !ok || employeeNo == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee number not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("tenant_code", tenantCode)
		c.Set("employee_no", employeeNo)
		c.Set("role", role)

		ctx := contextutil.WithTenantCode(c.Request.Context(), tenantCode)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
