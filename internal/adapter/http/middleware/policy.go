package middleware

import (
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// RoutePolicy is one row of the route table: who may call the route and
// which gates run before the handler.
type RoutePolicy struct {
	// Roles that may call the route. Empty means public; such routes
	// authenticate some other way (webhook signature) or not at all.
	Roles []domain.Role
	// RateAction names the rate-limit rule; empty disables limiting.
	RateAction string
	// Risk applies when the caller's risk level reaches the threshold.
	Risk domain.RiskPolicy
	// Audit is recorded after the handler runs; empty disables auditing.
	Audit        domain.AuditAction
	ResourceType string
}

// Public reports whether the route needs no bearer token.
func (p RoutePolicy) Public() bool {
	return len(p.Roles) == 0
}

// Allows reports whether role is one of the route's audiences.
func (p RoutePolicy) Allows(role domain.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Chain builds the gate sequence for one route. Audit wraps the risk gate
// so a denied request is still recorded.
func Chain(deps GateDeps, policy RoutePolicy) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{Authorize(deps.Tokens, policy)}
	if policy.RateAction != "" && deps.Risk != nil {
		chain = append(chain, RateLimit(deps.Risk, policy.RateAction))
	}
	if policy.Audit != "" && deps.Audit != nil {
		chain = append(chain, Audit(deps.Audit, policy.Audit, policy.ResourceType))
	}
	if policy.Risk != "" && deps.Risk != nil {
		chain = append(chain, RiskGate(deps.Risk, deps.StepUp, policy.RateAction, policy.Risk, deps.RiskThreshold))
	}
	return chain
}

// GateDeps are the services the gates consult. Risk, StepUp and Audit may be nil.
type GateDeps struct {
	Tokens        ports.TokenService
	Risk          ports.RiskService
	StepUp        ports.StepUpService
	Audit         ports.AuditService
	RiskThreshold domain.RiskLevel
}
