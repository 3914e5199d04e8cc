package domain

import (
	"github.com/google/uuid"
)

// Metadata keys the processor echoes back on charge events.
const (
	ChargeMetaPurpose   = "purpose"
	ChargeMetaAccountID = "account_id"

	ChargePurposeWalletTopup = "wallet_topup"
)

// ChargeRequest asks the processor to collect funds for a top-up.
type ChargeRequest struct {
	AccountID uuid.UUID
	Email     string
	Amount    int64
	Currency  string
	Reference string
}

// ChargeSession is what the buyer needs to complete payment.
type ChargeSession struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}

// ChargeState is the processor's view of a charge.
type ChargeState string

const (
	ChargePending ChargeState = "pending"
	ChargeSuccess ChargeState = "success"
	ChargeFailed  ChargeState = "failed"
)

// ChargeResult is a verified charge as reported by the processor.
type ChargeResult struct {
	Reference string
	State     ChargeState
	Amount    int64
	Currency  string
	Metadata  map[string]string
}

// TopupAccountID extracts the credited account when the charge is a wallet top-up.
func (r *ChargeResult) TopupAccountID() (uuid.UUID, bool) {
	if r.Metadata[ChargeMetaPurpose] != ChargePurposeWalletTopup {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(r.Metadata[ChargeMetaAccountID])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
