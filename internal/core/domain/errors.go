package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by repositories. Services translate them to
// apperror values.
var (
	ErrDuplicateEntry         = errors.New("duplicate ledger entry")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrAccountNotFound        = errors.New("wallet account not found")
	ErrVersionConflict        = errors.New("concurrent modification")
	ErrChallengeNotConsumable = errors.New("otp challenge not consumable")
)

// OtpLockedError is returned when a new challenge is refused because an
// earlier one for the same (subject, purpose) is still locked out.
type OtpLockedError struct {
	Until time.Time
}

func (e *OtpLockedError) Error() string {
	return fmt.Sprintf("otp locked until %s", e.Until.Format(time.RFC3339))
}
