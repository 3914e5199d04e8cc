package domain

import (
	"errors"
	"fmt"
)

// ProviderErrorKind classifies a failure from an external money rail.
type ProviderErrorKind int

const (
	// ProviderRetriable covers network errors, timeouts, 5xx and throttling.
	ProviderRetriable ProviderErrorKind = iota
	// ProviderTerminal is an explicit rejection; retrying cannot succeed.
	ProviderTerminal
	// ProviderNotFound means the rail has no record of the reference.
	ProviderNotFound
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderTerminal:
		return "terminal"
	case ProviderNotFound:
		return "not_found"
	default:
		return "retriable"
	}
}

// ProviderError is returned by transfer and charge adapters.
type ProviderError struct {
	Kind ProviderErrorKind
	Op   string
	Code string // provider reason code, e.g. invalid_account
	Err  error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s %s", e.Op, e.Kind)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderErrorKindOf reports the kind of a provider error. Errors that are
// not ProviderErrors are treated as retriable since their outcome is unknown.
func ProviderErrorKindOf(err error) ProviderErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ProviderRetriable
}

// ProviderReason returns the provider reason code, if any.
func ProviderReason(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// TransferOrder is a payout instruction with the destination in clear text.
// It exists only for the duration of a provider call.
type TransferOrder struct {
	Reference     string
	Amount        int64
	Currency      string
	Type          DestinationType
	BankCode      string
	AccountNumber string
	AccountName   string
	Narration     string
}
