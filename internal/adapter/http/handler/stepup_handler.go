package handler

import (
	"time"

	"marketplace-wallet/internal/adapter/http/dto"
	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// StepUpHandler issues codes that clear a step_up risk gate.
type StepUpHandler struct {
	stepUp ports.StepUpService
}

// NewStepUpHandler creates a new StepUpHandler.
func NewStepUpHandler(stepUp ports.StepUpService) *StepUpHandler {
	return &StepUpHandler{stepUp: stepUp}
}

// Begin handles POST /api/v1/step-up.
func (h *StepUpHandler) Begin(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	challenge, err := h.stepUp.Begin(c.Request.Context(), id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, challenge.ID.String())
	response.Created(c, dto.StepUpResponse{
		ChallengeID: challenge.ID.String(),
		ExpiresAt:   challenge.ExpiresAt.Format(time.RFC3339),
	})
}
