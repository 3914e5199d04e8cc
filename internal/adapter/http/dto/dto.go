package dto

import (
	"time"

	"marketplace-wallet/internal/core/domain"
)

// TopupRequest is the body for POST /wallet/topups.
type TopupRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Email  string `json:"email" binding:"required,email,max=254"`
}

// TopupResponse carries what the buyer needs to complete payment.
type TopupResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
}

// HistoryQuery filters GET /wallet/entries.
type HistoryQuery struct {
	Direction string `form:"direction" binding:"omitempty,oneof=credit debit"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EntryResponse is one ledger entry as shown to its owner.
type EntryResponse struct {
	ID                string            `json:"id"`
	Direction         string            `json:"direction"`
	Amount            int64             `json:"amount"`
	BalanceAfter      int64             `json:"balance_after"`
	ExternalReference string            `json:"external_reference,omitempty"`
	ReversalOf        string            `json:"reversal_of,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         string            `json:"created_at"`
}

// ListResponse wraps a paginated list.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewListResponse computes the page count for items.
func NewListResponse[T any](items []T, total int64, page, pageSize int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return ListResponse[T]{Items: items, Total: total, Page: page, PageSize: pageSize, TotalPages: pages}
}

// CreateWithdrawalRequest is the body for POST /withdrawals.
type CreateWithdrawalRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Type          string `json:"type" binding:"required,oneof=bank mobile_money"`
	BankCode      string `json:"bank_code" binding:"required_if=Type bank,omitempty,max=16,safe_id"`
	AccountNumber string `json:"account_number" binding:"required,account_number"`
	AccountName   string `json:"account_name" binding:"required,max=100"`
}

// WithdrawalQuery filters GET /withdrawals.
type WithdrawalQuery struct {
	Status   string `form:"status" binding:"omitempty,withdrawal_status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ConfirmOtpRequest is the body for POST /withdrawals/:id/otp/confirm.
type ConfirmOtpRequest struct {
	Code string `json:"code" binding:"required,numeric,min=4,max=10"`
}

// ReasonRequest carries a free-text reason (reject, reversal).
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=500" sanitize:"escape"`
}

// ResolveReversalRequest is the admin decision on a disputed payout.
type ResolveReversalRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// WithdrawalResponse is a withdrawal request with the destination masked.
type WithdrawalResponse struct {
	ID                string  `json:"id"`
	SellerID          string  `json:"seller_id"`
	Amount            int64   `json:"amount"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	DestinationType   string  `json:"destination_type"`
	BankCode          string  `json:"bank_code,omitempty"`
	AccountName       string  `json:"account_name"`
	AccountLast4      string  `json:"account_last4"`
	TransferReference *string `json:"transfer_reference,omitempty"`
	FailureReason     *string `json:"failure_reason,omitempty"`
	OtpConfirmed      bool    `json:"otp_confirmed"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	// InitiationError is set when approval succeeded but the transfer could
	// not be started; the admin can retry initiation.
	InitiationError string `json:"initiation_error,omitempty"`
}

// FromWithdrawal maps a domain request to its response shape.
func FromWithdrawal(w *domain.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:                w.ID.String(),
		SellerID:          w.SellerID.String(),
		Amount:            w.Amount,
		Currency:          w.Currency,
		Status:            string(w.Status),
		DestinationType:   string(w.Destination.Type),
		BankCode:          w.Destination.BankCode,
		AccountName:       w.Destination.AccountName,
		AccountLast4:      w.Destination.AccountLast4,
		TransferReference: w.TransferReference,
		FailureReason:     w.FailureReason,
		OtpConfirmed:      w.OtpConfirmedAt != nil,
		CreatedAt:         w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         w.UpdatedAt.Format(time.RFC3339),
	}
}

// FromEntry maps a ledger entry to its response shape.
func FromEntry(e *domain.LedgerEntry) EntryResponse {
	out := EntryResponse{
		ID:           e.ID.String(),
		Direction:    string(e.Direction),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Metadata:     e.Metadata,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.ExternalReference != nil {
		out.ExternalReference = *e.ExternalReference
	}
	if e.ReversalOf != nil {
		out.ReversalOf = e.ReversalOf.String()
	}
	return out
}

// StepUpResponse points the caller at the code sent out of band. The code
// is echoed back in the X-Step-Up-Challenge and X-Step-Up-Code headers.
type StepUpResponse struct {
	ChallengeID string `json:"challenge_id"`
	ExpiresAt   string `json:"expires_at"`
}
