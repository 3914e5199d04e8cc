package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletAccount is an owner's balance in integer minor units.
// Balance is materialized from the ledger and is never negative.
type WalletAccount struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryDirection is the side of a ledger entry.
type EntryDirection string

const (
	DirectionCredit EntryDirection = "credit"
	DirectionDebit  EntryDirection = "debit"
)

// Inverse returns the opposite direction.
func (d EntryDirection) Inverse() EntryDirection {
	if d == DirectionCredit {
		return DirectionDebit
	}
	return DirectionCredit
}

// LedgerEntry is an immutable balance-changing record.
type LedgerEntry struct {
	ID                uuid.UUID         `json:"id"`
	AccountID         uuid.UUID         `json:"account_id"`
	Direction         EntryDirection    `json:"direction"`
	Amount            int64             `json:"amount"`
	ExternalReference *string           `json:"external_reference,omitempty"`
	IdempotencyKey    string            `json:"-"`
	RelatedRequestID  *uuid.UUID        `json:"related_request_id,omitempty"`
	ReversalOf        *uuid.UUID        `json:"reversal_of,omitempty"`
	BalanceAfter      int64             `json:"balance_after"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Delta is the signed effect of the entry on the account balance.
func (e *LedgerEntry) Delta() int64 {
	if e.Direction == DirectionDebit {
		return -e.Amount
	}
	return e.Amount
}

// IsReversal reports whether the entry compensates another entry.
func (e *LedgerEntry) IsReversal() bool {
	return e.ReversalOf != nil
}

// Idempotency key namespaces. Each ledger operation derives its key from a
// stable identifier so retries of the same operation collapse to one entry.
const (
	CreditKeyPrefix   = "credit:"
	HoldKeyPrefix     = "hold:"
	ReversalKeyPrefix = "reversal:"
)
