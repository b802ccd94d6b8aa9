package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

const claimsKey = "auth_claims"

// RequireRole accepts "Authorization: Bearer <token>" and, when roles are
// given, requires the token's role to be one of them.
func RequireRole(jwt *helpers.JWTManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AppError(c, apperror.Unauthorized("No authorization header"))
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AppError(c, apperror.Unauthorized("Malformed auth header"))
			return
		}
		claims, err := jwt.Parse(parts[1])
		if err != nil {
			response.AppError(c, apperror.Unauthorized("Invalid or expired token"))
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			response.AppError(c, apperror.Forbidden("Forbidden: insufficient privileges"))
			return
		}
		c.Set(claimsKey, claims)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireRole.
func ClaimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok
}
