package apperror

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches by code so errors.Is(err, apperror.ErrOtpLocked(0)) works on any instance.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns the error with an extra client-visible detail attached.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// As unwraps err to an *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code extracts the error code, or "" when err is not an AppError.
func Code(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// ---- Validation (VAL) ----

func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return Validation("Amount must be a positive integer in minor units")
}

// ---- Authentication & Authorization (AUTH) ----

func ErrUnauthenticated() *AppError {
	return New("AUTH_001", "Authentication required", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Not permitted for this identity", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Ledger (LED) ----

func ErrNotFound(entity string) *AppError {
	return New("LED_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrDuplicateReference() *AppError {
	return New("LED_002", "External reference already recorded", http.StatusConflict)
}

func ErrInsufficientBalance() *AppError {
	return New("LED_003", "Insufficient wallet balance", http.StatusUnprocessableEntity)
}

func ErrAlreadyReversed() *AppError {
	return New("LED_004", "Entry has already been reversed", http.StatusConflict)
}

// ---- Withdrawal workflow (WDR) ----

func ErrInvalidStateTransition(from, action string) *AppError {
	return New("WDR_001", fmt.Sprintf("Cannot %s a request in status %s", action, from), http.StatusConflict).
		WithDetail("status", from)
}

// ---- OTP gate (OTP) ----

func ErrOtpMismatch(attemptsRemaining int) *AppError {
	return New("OTP_001", "Incorrect verification code", http.StatusUnauthorized).
		WithDetail("attempts_remaining", attemptsRemaining)
}

// ErrOtpLocked reports the remaining lockout rounded up to whole minutes.
func ErrOtpLocked(remaining time.Duration) *AppError {
	if remaining < 0 {
		remaining = 0
	}
	return New("OTP_002", "Too many incorrect attempts, try again later", http.StatusTooManyRequests).
		WithDetail("minutes_remaining", int(math.Ceil(remaining.Minutes()))).
		WithDetail("retry_after_seconds", int(math.Ceil(remaining.Seconds())))
}

func ErrOtpExpired() *AppError {
	return New("OTP_003", "Verification code has expired", http.StatusGone)
}

func ErrOtpInvalidFormat(length int) *AppError {
	return New("OTP_004", fmt.Sprintf("Verification code must be %d digits", length), http.StatusBadRequest)
}

func ErrOtpAlreadyUsed() *AppError {
	return New("OTP_005", "Verification code has already been used", http.StatusConflict)
}

// ---- Security (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid signature", http.StatusForbidden)
}

func ErrRiskRejected(level string) *AppError {
	return New("SEC_002", "Action blocked by security policy", http.StatusForbidden).
		WithDetail("risk_level", level)
}

func ErrStepUpRequired(level string) *AppError {
	return New("SEC_003", "Additional confirmation required", http.StatusForbidden).
		WithDetail("risk_level", level)
}

// ---- Payout provider (PRV) ----

func ErrProviderRetriable(err error) *AppError {
	return Wrap("PRV_001", "Payout provider temporarily unavailable", http.StatusServiceUnavailable, err)
}

func ErrProviderTerminal(reason string, err error) *AppError {
	return Wrap("PRV_002", "Payout provider rejected the transfer", http.StatusBadGateway, err).
		WithDetail("reason", reason)
}

// ErrChargeNotSettled reports a top-up whose payment has not succeeded.
func ErrChargeNotSettled(state string) *AppError {
	return New("PRV_003", "Top-up payment has not succeeded", http.StatusConflict).
		WithDetail("state", state)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded(retryAfter time.Duration) *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests).
		WithDetail("retry_after", int(math.Ceil(retryAfter.Seconds())))
}

// ---- System & Infrastructure (SYS) ----

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_002", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
