package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionTopupInitiate    AuditAction = "TOPUP_INITIATE"
	AuditActionTopupVerify      AuditAction = "TOPUP_VERIFY"
	AuditActionPayoutCreate     AuditAction = "PAYOUT_CREATE"
	AuditActionPayoutApprove    AuditAction = "PAYOUT_APPROVE"
	AuditActionPayoutReject     AuditAction = "PAYOUT_REJECT"
	AuditActionPayoutCancel     AuditAction = "PAYOUT_CANCEL"
	AuditActionOtpResend        AuditAction = "OTP_RESEND"
	AuditActionOtpSubmit        AuditAction = "OTP_SUBMIT"
	AuditActionReversalRequest  AuditAction = "REVERSAL_REQUEST"
	AuditActionReversalResolve  AuditAction = "REVERSAL_RESOLVE"
	AuditActionTransferVerify   AuditAction = "TRANSFER_VERIFY"
	AuditActionWebhookRejected  AuditAction = "WEBHOOK_REJECTED"
	AuditActionRiskPolicyDenied AuditAction = "RISK_POLICY_DENIED"
	AuditActionStepUpIssue      AuditAction = "STEP_UP_ISSUE"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty"`
	ActorRole    string      `json:"actor_role,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string, carries the risk signal
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
