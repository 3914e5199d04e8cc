package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("LED_003", "Insufficient wallet balance", http.StatusUnprocessableEntity),
			expected: "[LED_003] Insufficient wallet balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("VAL_001", "test", http.StatusBadRequest).Unwrap())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("confirm: %w", ErrOtpLocked(3*time.Minute))

	assert.True(t, errors.Is(err, ErrOtpLocked(0)))
	assert.False(t, errors.Is(err, ErrOtpExpired()))
	assert.Equal(t, "OTP_002", Code(err))
	assert.Equal(t, "", Code(errors.New("plain")))
}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("bad"), "VAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_001", 400},
		{"Unauthenticated", ErrUnauthenticated(), "AUTH_001", 401},
		{"Forbidden", ErrForbidden(), "AUTH_002", 403},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"NotFound", ErrNotFound("Wallet"), "LED_001", 404},
		{"DuplicateReference", ErrDuplicateReference(), "LED_002", 409},
		{"InsufficientBalance", ErrInsufficientBalance(), "LED_003", 422},
		{"AlreadyReversed", ErrAlreadyReversed(), "LED_004", 409},
		{"InvalidStateTransition", ErrInvalidStateTransition("completed", "cancel"), "WDR_001", 409},
		{"OtpMismatch", ErrOtpMismatch(2), "OTP_001", 401},
		{"OtpLocked", ErrOtpLocked(time.Minute), "OTP_002", 429},
		{"OtpExpired", ErrOtpExpired(), "OTP_003", 410},
		{"OtpInvalidFormat", ErrOtpInvalidFormat(6), "OTP_004", 400},
		{"OtpAlreadyUsed", ErrOtpAlreadyUsed(), "OTP_005", 409},
		{"InvalidSignature", ErrInvalidSignature(), "SEC_001", 403},
		{"RiskRejected", ErrRiskRejected("critical"), "SEC_002", 403},
		{"StepUpRequired", ErrStepUpRequired("high"), "SEC_003", 403},
		{"ProviderRetriable", ErrProviderRetriable(nil), "PRV_001", 503},
		{"ProviderTerminal", ErrProviderTerminal("invalid_account", nil), "PRV_002", 502},
		{"RateLimited", ErrRateLimitExceeded(time.Second), "RATE_001", 429},
		{"Internal", InternalError(errors.New("x")), "SYS_001", 500},
		{"Encryption", ErrEncryptionFailure(errors.New("x")), "SYS_002", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestOtpLocked_Details(t *testing.T) {
	err := ErrOtpLocked(14*time.Minute + 30*time.Second)

	require.NotNil(t, err.Details)
	assert.Equal(t, 15, err.Details["minutes_remaining"])
	assert.Equal(t, 870, err.Details["retry_after_seconds"])

	clamped := ErrOtpLocked(-time.Second)
	assert.Equal(t, 0, clamped.Details["minutes_remaining"])
}

func TestOtpMismatch_Details(t *testing.T) {
	assert.Equal(t, 3, ErrOtpMismatch(3).Details["attempts_remaining"])
}

func TestRateLimit_RetryAfterRoundsUp(t *testing.T) {
	err := ErrRateLimitExceeded(1500 * time.Millisecond)
	assert.Equal(t, 2, err.Details["retry_after"])
}

func TestInvalidStateTransition_Message(t *testing.T) {
	err := ErrInvalidStateTransition("processing", "cancel")
	assert.Contains(t, err.Message, "processing")
	assert.Equal(t, "processing", err.Details["status"])
}
