package middleware

import (
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderStepUpChallenge = "X-Step-Up-Challenge"
	HeaderStepUpCode      = "X-Step-Up-Code"

	ctxRiskDenied = "risk_denied"
)

// RiskGate scores the caller's IP/device signals and applies policy once
// the level reaches threshold. The signal is kept on the context for Audit.
// A step_up denial is cleared by a valid step-up code in the request
// headers; with no stepUp service it acts as reject.
func RiskGate(risk ports.RiskService, stepUp ports.StepUpService, action string, policy domain.RiskPolicy, threshold domain.RiskLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.Next()
			return
		}

		obs := domain.RiskObservation{
			SubjectID: id.SubjectID,
			IP:        c.ClientIP(),
			DeviceID:  c.GetHeader(HeaderDeviceID),
			Country:   c.GetHeader(HeaderCountry),
		}
		signal, err := risk.Assess(c.Request.Context(), action, obs, policy, threshold)
		if signal != nil {
			c.Set(CtxRiskSignal, signal)
		}
		if err != nil && policy == domain.RiskPolicyStepUp && stepUp != nil && apperror.Code(err) == "SEC_003" {
			err = confirmStepUp(c, stepUp, id, err)
		}
		if err != nil {
			c.Set(ctxRiskDenied, true)
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// confirmStepUp returns nil when the request carries a valid step-up code,
// otherwise the error to respond with.
func confirmStepUp(c *gin.Context, stepUp ports.StepUpService, id domain.Identity, denied error) error {
	rawID := c.GetHeader(HeaderStepUpChallenge)
	code := c.GetHeader(HeaderStepUpCode)
	if rawID == "" || code == "" {
		return denied
	}
	challengeID, err := uuid.Parse(rawID)
	if err != nil {
		return apperror.Validation("invalid step-up challenge")
	}
	return stepUp.Confirm(c.Request.Context(), id.SubjectID, challengeID, code)
}

// RiskSignalFrom returns the signal computed by RiskGate, if any.
func RiskSignalFrom(c *gin.Context) (*domain.SecurityRiskSignal, bool) {
	v, ok := c.Get(CtxRiskSignal)
	if !ok {
		return nil, false
	}
	s, ok := v.(*domain.SecurityRiskSignal)
	return s, ok
}
