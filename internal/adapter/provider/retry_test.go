package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fastPolicy = RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

func retriable() error {
	return &domain.ProviderError{Kind: domain.ProviderRetriable, Op: "test", Err: errors.New("timeout")}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}

	assert.Equal(t, 100*time.Millisecond, p.backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.backoff(2))
	assert.Equal(t, 400*time.Millisecond, p.backoff(3))
	assert.Equal(t, 800*time.Millisecond, p.backoff(4))
	assert.Equal(t, time.Second, p.backoff(5))
	assert.Equal(t, time.Second, p.backoff(12))
}

func TestRetrying_Initiate_RecoversAfterRetriable(t *testing.T) {
	ctrl := gomock.NewController(t)
	transfers := mocks.NewMockTransferProvider(ctrl)
	order := domain.TransferOrder{Reference: "wdr-1", Amount: 100}

	gomock.InOrder(
		transfers.EXPECT().Initiate(gomock.Any(), order).Return("", retriable()),
		transfers.EXPECT().Initiate(gomock.Any(), order).Return("wdr-1", nil),
	)

	r := NewRetrying(transfers, nil, fastPolicy, zerolog.Nop())
	ref, err := r.Initiate(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "wdr-1", ref)
}

func TestRetrying_GivesUpAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	transfers := mocks.NewMockTransferProvider(ctrl)
	transfers.EXPECT().CheckStatus(gomock.Any(), "wdr-1").Return(nil, retriable()).Times(3)

	r := NewRetrying(transfers, nil, fastPolicy, zerolog.Nop())
	_, err := r.CheckStatus(context.Background(), "wdr-1")

	assert.Equal(t, domain.ProviderRetriable, domain.ProviderErrorKindOf(err))
}

func TestRetrying_TerminalIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	transfers := mocks.NewMockTransferProvider(ctrl)
	terminal := &domain.ProviderError{Kind: domain.ProviderTerminal, Op: "initiate_transfer", Code: "invalid_account"}
	transfers.EXPECT().Initiate(gomock.Any(), gomock.Any()).Return("", terminal).Times(1)

	r := NewRetrying(transfers, nil, fastPolicy, zerolog.Nop())
	_, err := r.Initiate(context.Background(), domain.TransferOrder{Reference: "wdr-2"})

	assert.Equal(t, "invalid_account", domain.ProviderReason(err))
}

func TestRetrying_NotFoundIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	charges := mocks.NewMockChargeGateway(ctrl)
	charges.EXPECT().VerifyCharge(gomock.Any(), "TOP-1").
		Return(nil, &domain.ProviderError{Kind: domain.ProviderNotFound, Op: "verify_charge"}).Times(1)

	r := NewRetrying(nil, charges, fastPolicy, zerolog.Nop())
	_, err := r.VerifyCharge(context.Background(), "TOP-1")

	assert.Equal(t, domain.ProviderNotFound, domain.ProviderErrorKindOf(err))
}

func TestRetrying_StopsWhenContextDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	charges := mocks.NewMockChargeGateway(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	charges.EXPECT().InitializeCharge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.ChargeRequest) (*domain.ChargeSession, error) {
			cancel()
			return nil, retriable()
		}).Times(1)

	r := NewRetrying(nil, charges, RetryPolicy{MaxAttempts: 5, InitialBackoff: time.Minute}, zerolog.Nop())
	_, err := r.InitializeCharge(ctx, domain.ChargeRequest{Reference: "TOP-1"})

	assert.Equal(t, domain.ProviderRetriable, domain.ProviderErrorKindOf(err))
}

func TestNewRetrying_AtLeastOneAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	transfers := mocks.NewMockTransferProvider(ctrl)
	transfers.EXPECT().CheckStatus(gomock.Any(), "wdr-1").Return(&domain.TransferStatus{State: domain.TransferSuccess}, nil)

	r := NewRetrying(transfers, nil, RetryPolicy{}, zerolog.Nop())
	status, err := r.CheckStatus(context.Background(), "wdr-1")

	require.NoError(t, err)
	assert.Equal(t, domain.TransferSuccess, status.State)
}
