package domain

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus is a state in the payout lifecycle.
type WithdrawalStatus string

const (
	WithdrawalPending           WithdrawalStatus = "pending"
	WithdrawalApproved          WithdrawalStatus = "approved"
	WithdrawalProcessing        WithdrawalStatus = "processing"
	WithdrawalOtpPending        WithdrawalStatus = "otp_pending"
	WithdrawalCompleted         WithdrawalStatus = "completed"
	WithdrawalRejected          WithdrawalStatus = "rejected"
	WithdrawalFailed            WithdrawalStatus = "failed"
	WithdrawalReversed          WithdrawalStatus = "reversed"
	WithdrawalCancelled         WithdrawalStatus = "cancelled"
	WithdrawalReversalRequested WithdrawalStatus = "reversal_requested"
)

// withdrawalTransitions lists every allowed edge; anything else is invalid.
var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:           {WithdrawalApproved, WithdrawalRejected, WithdrawalCancelled},
	WithdrawalApproved:          {WithdrawalProcessing, WithdrawalFailed, WithdrawalCancelled},
	WithdrawalProcessing:        {WithdrawalOtpPending, WithdrawalFailed},
	WithdrawalOtpPending:        {WithdrawalOtpPending, WithdrawalCompleted, WithdrawalFailed},
	WithdrawalFailed:            {WithdrawalReversed},
	WithdrawalCompleted:         {WithdrawalReversalRequested},
	WithdrawalReversalRequested: {WithdrawalReversed, WithdrawalCompleted},
}

// CanTransitionTo reports whether s -> next is an allowed edge.
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
func (s WithdrawalStatus) IsTerminal() bool {
	return len(withdrawalTransitions[s]) == 0
}

// IsValid reports whether s is a known status.
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalPending, WithdrawalApproved, WithdrawalProcessing, WithdrawalOtpPending,
		WithdrawalCompleted, WithdrawalRejected, WithdrawalFailed, WithdrawalReversed,
		WithdrawalCancelled, WithdrawalReversalRequested:
		return true
	}
	return false
}

// DestinationType is the payout rail family.
type DestinationType string

const (
	DestinationBank        DestinationType = "bank"
	DestinationMobileMoney DestinationType = "mobile_money"
)

// Destination describes where a payout is sent. The full account number is
// stored only encrypted.
type Destination struct {
	Type             DestinationType `json:"type"`
	BankCode         string          `json:"bank_code"`
	AccountName      string          `json:"account_name"`
	AccountLast4     string          `json:"account_last4"`
	AccountNumberEnc string          `json:"-"`
}

// WithdrawalRequest is a seller's payout moving through the lifecycle.
type WithdrawalRequest struct {
	ID                uuid.UUID        `json:"id"`
	SellerID          uuid.UUID        `json:"seller_id"`
	AccountID         uuid.UUID        `json:"account_id"`
	Amount            int64            `json:"amount"`
	Currency          string           `json:"currency"`
	Destination       Destination      `json:"destination"`
	Status            WithdrawalStatus `json:"status"`
	ApprovedBy        *uuid.UUID       `json:"approved_by,omitempty"`
	HoldEntryID       *uuid.UUID       `json:"-"`
	TransferReference *string          `json:"transfer_reference,omitempty"`
	OtpChallengeID    *uuid.UUID       `json:"-"`
	OtpConfirmedAt    *time.Time       `json:"otp_confirmed_at,omitempty"`
	FailureReason     *string          `json:"failure_reason,omitempty"`
	ReversalEntryID   *uuid.UUID       `json:"-"`
	StatusChecks      int              `json:"-"`
	Version           int              `json:"-"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TransferIdempotencyKey is the provider-side key derived from the request id,
// identical across retries and restarts.
func (w *WithdrawalRequest) TransferIdempotencyKey() string {
	return "wdr-" + w.ID.String()
}

// HasHold reports whether a debit hold has been placed for this request.
func (w *WithdrawalRequest) HasHold() bool {
	return w.HoldEntryID != nil
}

// NeedsReversal reports whether the debit hold is still outstanding.
func (w *WithdrawalRequest) NeedsReversal() bool {
	return w.HoldEntryID != nil && w.ReversalEntryID == nil
}

// WithdrawalListParams holds filter + pagination for listing requests.
type WithdrawalListParams struct {
	SellerID *uuid.UUID
	Status   *WithdrawalStatus
	Page     int
	PageSize int
}

// TransferState is the provider-reported state of a payout.
type TransferState string

const (
	TransferPending TransferState = "pending"
	TransferSuccess TransferState = "success"
	TransferFailed  TransferState = "failed"
)

// TransferStatus is the result of polling the payout rail.
type TransferStatus struct {
	Reference  string        `json:"reference"`
	State      TransferState `json:"state"`
	ReasonCode string        `json:"reason_code,omitempty"`
}
