package middleware

import (
	"strconv"

	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimit counts the request against action for the caller. Authenticated
// callers are keyed by subject, anonymous ones by client IP. The risk
// service fails open when its store is down.
func RateLimit(risk ports.RiskService, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if id, ok := IdentityFrom(c); ok {
			subject = id.SubjectID.String()
		}

		result, err := risk.CheckRate(c.Request.Context(), action, subject)
		if result != nil {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		}
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}
