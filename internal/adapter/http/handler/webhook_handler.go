package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives processor events. Signature checks run over the
// raw body before anything is decoded.
type WebhookHandler struct {
	webhooks        ports.WebhookService
	audit           ports.AuditService
	signatureHeader string
	log             zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler. audit may be nil.
func NewWebhookHandler(webhooks ports.WebhookService, audit ports.AuditService, signatureHeader string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, audit: audit, signatureHeader: signatureHeader, log: log}
}

// Receive handles POST /api/v1/webhooks/processor. Once the signature is
// valid the sender always gets 200, whatever the event turns out to be.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("unreadable body"))
		return
	}

	if err := h.webhooks.Verify(body, c.GetHeader(h.signatureHeader)); err != nil {
		h.rejected(c)
		response.Error(c, err)
		return
	}

	// Processing must not be cut short by the sender hanging up.
	h.webhooks.Ingest(context.WithoutCancel(c.Request.Context()), body)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) rejected(c *gin.Context) {
	h.log.Warn().Str("ip", c.ClientIP()).Msg("webhook signature rejected")
	if h.audit == nil {
		return
	}
	details, _ := json.Marshal(map[string]string{
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
	})
	h.audit.Log(c.Request.Context(), &domain.AuditLog{
		Action:       domain.AuditActionWebhookRejected,
		ResourceType: "webhook",
		Details:      string(details),
		IPAddress:    c.ClientIP(),
	})
}
