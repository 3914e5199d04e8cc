package handler

import (
	"net/http"

	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Tokens      ports.TokenService
	Ledger      ports.LedgerService
	Wallet      ports.WalletService
	Withdrawals ports.WithdrawalService
	Webhooks    ports.WebhookService
	StepUp      ports.StepUpService // nil = step_up routes behave as reject
	Risk        ports.RiskService  // nil = rate limiting and risk gates disabled
	Audit       ports.AuditService // nil = audit logging disabled

	RiskThreshold   domain.RiskLevel
	SignatureHeader string

	HealthCheckers []ports.HealthChecker
	Observer       middleware.HTTPObserver // nil = no request metrics
	MetricsHandler http.Handler            // nil = no scrape endpoint
	MetricsPath    string

	Logger zerolog.Logger
}

type route struct {
	method  string
	path    string
	policy  middleware.RoutePolicy
	handler gin.HandlerFunc
}

var (
	buyers        = []domain.Role{domain.RoleBuyer}
	sellers       = []domain.Role{domain.RoleSeller}
	admins        = []domain.Role{domain.RoleAdmin}
	walletOwners  = []domain.Role{domain.RoleBuyer, domain.RoleSeller}
	payoutViewers = []domain.Role{domain.RoleSeller, domain.RoleAdmin}
)

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger, deps.Observer))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	gates := middleware.GateDeps{
		Tokens:        deps.Tokens,
		Risk:          deps.Risk,
		StepUp:        deps.StepUp,
		Audit:         deps.Audit,
		RiskThreshold: deps.RiskThreshold,
	}
	v1 := r.Group("/api/v1")
	for _, rt := range routes(deps) {
		chain := append(middleware.Chain(gates, rt.policy), rt.handler)
		v1.Handle(rt.method, rt.path, chain...)
	}

	return r
}

func routes(deps RouterDeps) []route {
	wallet := NewWalletHandler(deps.Ledger, deps.Wallet)
	withdrawals := NewWithdrawalHandler(deps.Withdrawals)
	admin := NewAdminHandler(deps.Withdrawals, deps.Logger)
	webhook := NewWebhookHandler(deps.Webhooks, deps.Audit, deps.SignatureHeader, deps.Logger)

	rs := []route{
		// Signed by the processor, no bearer token.
		{http.MethodPost, "/webhooks/processor", middleware.RoutePolicy{}, webhook.Receive},

		// Wallet
		{http.MethodGet, "/wallet/balance", middleware.RoutePolicy{
			Roles: walletOwners, RateAction: "read",
		}, wallet.GetBalance},
		{http.MethodGet, "/wallet/entries", middleware.RoutePolicy{
			Roles: walletOwners, RateAction: "read",
		}, wallet.History},
		{http.MethodPost, "/wallet/topups", middleware.RoutePolicy{
			Roles: buyers, RateAction: "topup_initiate", Risk: domain.RiskPolicyAllow,
			Audit: domain.AuditActionTopupInitiate, ResourceType: "topup",
		}, wallet.InitiateTopup},
		{http.MethodPost, "/wallet/topups/:reference/verify", middleware.RoutePolicy{
			Roles: buyers, RateAction: "topup_verify",
			Audit: domain.AuditActionTopupVerify, ResourceType: "topup",
		}, wallet.VerifyTopup},

		// Seller payouts
		{http.MethodPost, "/withdrawals", middleware.RoutePolicy{
			Roles: sellers, RateAction: "payout_create", Risk: domain.RiskPolicyStepUp,
			Audit: domain.AuditActionPayoutCreate, ResourceType: "withdrawal",
		}, withdrawals.Create},
		{http.MethodGet, "/withdrawals", middleware.RoutePolicy{
			Roles: payoutViewers, RateAction: "read",
		}, withdrawals.List},
		{http.MethodGet, "/withdrawals/:id", middleware.RoutePolicy{
			Roles: payoutViewers, RateAction: "read",
		}, withdrawals.Get},
		{http.MethodDelete, "/withdrawals/:id", middleware.RoutePolicy{
			Roles: sellers, RateAction: "payout_create",
			Audit: domain.AuditActionPayoutCancel, ResourceType: "withdrawal",
		}, withdrawals.Cancel},
		{http.MethodPost, "/withdrawals/:id/otp", middleware.RoutePolicy{
			Roles: sellers, RateAction: "otp_issue",
			Audit: domain.AuditActionOtpResend, ResourceType: "withdrawal",
		}, withdrawals.RequestOtp},
		{http.MethodPost, "/withdrawals/:id/otp/confirm", middleware.RoutePolicy{
			Roles: sellers, RateAction: "otp_submit", Risk: domain.RiskPolicyReject,
			Audit: domain.AuditActionOtpSubmit, ResourceType: "withdrawal",
		}, withdrawals.ConfirmOtp},
		{http.MethodPost, "/withdrawals/:id/reversal", middleware.RoutePolicy{
			Roles: payoutViewers, RateAction: "reversal",
			Audit: domain.AuditActionReversalRequest, ResourceType: "withdrawal",
		}, withdrawals.RequestReversal},

		// Admin review
		{http.MethodPost, "/admin/withdrawals/:id/approve", middleware.RoutePolicy{
			Roles: admins, RateAction: "admin", Risk: domain.RiskPolicyReject,
			Audit: domain.AuditActionPayoutApprove, ResourceType: "withdrawal",
		}, admin.Approve},
		{http.MethodPost, "/admin/withdrawals/:id/initiate", middleware.RoutePolicy{
			Roles: admins, RateAction: "admin",
			Audit: domain.AuditActionPayoutApprove, ResourceType: "withdrawal",
		}, admin.Initiate},
		{http.MethodPost, "/admin/withdrawals/:id/reject", middleware.RoutePolicy{
			Roles: admins, RateAction: "admin",
			Audit: domain.AuditActionPayoutReject, ResourceType: "withdrawal",
		}, admin.Reject},
		{http.MethodPost, "/admin/withdrawals/:id/verify", middleware.RoutePolicy{
			Roles: admins, RateAction: "admin",
			Audit: domain.AuditActionTransferVerify, ResourceType: "withdrawal",
		}, admin.VerifyTransfer},
		{http.MethodPost, "/admin/withdrawals/:id/reversal/resolve", middleware.RoutePolicy{
			Roles: admins, RateAction: "admin",
			Audit: domain.AuditActionReversalResolve, ResourceType: "withdrawal",
		}, admin.ResolveReversal},
	}

	if deps.StepUp != nil {
		stepUp := NewStepUpHandler(deps.StepUp)
		rs = append(rs, route{http.MethodPost, "/step-up", middleware.RoutePolicy{
			Roles: walletOwners, RateAction: "otp_issue",
			Audit: domain.AuditActionStepUpIssue, ResourceType: "otp_challenge",
		}, stepUp.Begin})
	}
	return rs
}
