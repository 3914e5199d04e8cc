package middleware

import (
	"encoding/json"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type auditDetails struct {
	Method string                     `json:"method"`
	Path   string                     `json:"path"`
	Status int                        `json:"status"`
	Risk   *domain.SecurityRiskSignal `json:"risk,omitempty"`
}

// Audit records the route's action after the handler ran, whatever the
// outcome; failed OTP submissions matter as much as successful ones.
// Requests stopped by the risk gate are recorded as policy denials.
func Audit(auditSvc ports.AuditService, action domain.AuditAction, resourceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		recorded := action
		if c.GetBool(ctxRiskDenied) {
			recorded = domain.AuditActionRiskPolicyDenied
		}
		resourceID := c.GetString(CtxResourceID)
		if resourceID == "" {
			resourceID = c.Param("id")
		}

		details := auditDetails{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Status: c.Writer.Status(),
		}
		if signal, ok := RiskSignalFrom(c); ok {
			details.Risk = signal
		}
		raw, _ := json.Marshal(details)

		entry := &domain.AuditLog{
			Action:       recorded,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Details:      string(raw),
			IPAddress:    c.ClientIP(),
		}
		if id, ok := IdentityFrom(c); ok {
			subject := id.SubjectID
			entry.ActorID = &subject
			entry.ActorRole = string(id.Role)
		}

		auditSvc.Log(c.Request.Context(), entry)
	}
}
