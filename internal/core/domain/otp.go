package domain

import (
	"time"

	"github.com/google/uuid"
)

// OtpPurposePayoutConfirm binds a challenge to confirming a withdrawal transfer.
const OtpPurposePayoutConfirm = "payout-confirm"

// OtpPurposeStepUp binds a challenge to clearing a step_up risk gate.
const OtpPurposeStepUp = "step-up"

// OtpState is the derived state of a challenge at a point in time.
type OtpState string

const (
	OtpActive   OtpState = "active"
	OtpLocked   OtpState = "locked"
	OtpConsumed OtpState = "consumed"
	OtpExpired  OtpState = "expired"
)

// OtpChallenge is a single-use code bound to (subject, purpose). Only the hash
// of the code is kept.
type OtpChallenge struct {
	ID            uuid.UUID  `json:"id"`
	SubjectID     uuid.UUID  `json:"subject_id"`
	Purpose       string     `json:"purpose"`
	CodeHash      string     `json:"-"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Attempts      int        `json:"attempts"`
	LockedUntil   *time.Time `json:"locked_until,omitempty"`
	ConsumedAt    *time.Time `json:"consumed_at,omitempty"`
	InvalidatedAt *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

// StateAt reports the challenge state at now. A superseded challenge reads as expired.
func (c *OtpChallenge) StateAt(now time.Time) OtpState {
	switch {
	case c.ConsumedAt != nil:
		return OtpConsumed
	case c.InvalidatedAt != nil || !now.Before(c.ExpiresAt):
		return OtpExpired
	case c.LockedUntil != nil && now.Before(*c.LockedUntil):
		return OtpLocked
	default:
		return OtpActive
	}
}

// LockRemaining returns how long the lockout still lasts, or zero.
func (c *OtpChallenge) LockRemaining(now time.Time) time.Duration {
	if c.LockedUntil == nil || !now.Before(*c.LockedUntil) {
		return 0
	}
	return c.LockedUntil.Sub(now)
}

// OtpFailure is the outcome of atomically recording a wrong code.
type OtpFailure struct {
	Attempts    int
	LockedUntil *time.Time
}
