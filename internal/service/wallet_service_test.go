package service

import (
	"context"
	"strings"
	"testing"

	"marketplace-wallet/internal/adapter/storage/memory"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports/mocks"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	svc     *WalletServiceImpl
	ledger  *LedgerServiceImpl
	gateway *mocks.MockChargeGateway
	buyer   uuid.UUID
	account *domain.WalletAccount
}

func setupWalletService(t *testing.T) *walletTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()
	d := &walletTestDeps{
		ledger:  NewLedgerService(store.Ledger, "NGN", nil, zerolog.Nop()),
		gateway: mocks.NewMockChargeGateway(ctrl),
		buyer:   uuid.New(),
	}
	d.svc = NewWalletService(d.ledger, d.gateway, TopupPolicy{Currency: "NGN", Min: 100, Max: 1_000_000}, nil, zerolog.Nop())

	acct, err := d.ledger.Account(context.Background(), d.buyer)
	require.NoError(t, err)
	d.account = acct
	return d
}

func (d *walletTestDeps) settledCharge(ref string, amount int64, accountID uuid.UUID) *domain.ChargeResult {
	return &domain.ChargeResult{
		Reference: ref,
		State:     domain.ChargeSuccess,
		Amount:    amount,
		Currency:  "NGN",
		Metadata: map[string]string{
			domain.ChargeMetaPurpose:   domain.ChargePurposeWalletTopup,
			domain.ChargeMetaAccountID: accountID.String(),
		},
	}
}

func TestWalletService_InitiateTopup(t *testing.T) {
	d := setupWalletService(t)

	d.gateway.EXPECT().InitializeCharge(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeSession, error) {
			assert.Equal(t, d.account.ID, req.AccountID)
			assert.Equal(t, int64(5000), req.Amount)
			assert.Equal(t, "NGN", req.Currency)
			assert.True(t, strings.HasPrefix(req.Reference, "TOP-"))
			return &domain.ChargeSession{Reference: req.Reference, AuthorizationURL: "https://checkout.test/abc"}, nil
		},
	)

	session, err := d.svc.InitiateTopup(context.Background(), d.buyer, "buyer@example.com", 5000)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/abc", session.AuthorizationURL)
}

func TestWalletService_InitiateTopup_Validation(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		email  string
		amount int64
	}{
		{"zero amount", "buyer@example.com", 0},
		{"below minimum", "buyer@example.com", 99},
		{"above maximum", "buyer@example.com", 1_000_001},
		{"missing email", "  ", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.InitiateTopup(ctx, d.buyer, tt.email, tt.amount)
			assert.Equal(t, "VAL_001", apperror.Code(err))
		})
	}
}

func TestWalletService_InitiateTopup_GatewayErrors(t *testing.T) {
	tests := []struct {
		name string
		kind domain.ProviderErrorKind
		want string
	}{
		{"retriable", domain.ProviderRetriable, "PRV_001"},
		{"terminal", domain.ProviderTerminal, "PRV_002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupWalletService(t)
			d.gateway.EXPECT().InitializeCharge(gomock.Any(), gomock.Any()).
				Return(nil, &domain.ProviderError{Kind: tt.kind, Op: "initialize_charge"})

			_, err := d.svc.InitiateTopup(context.Background(), d.buyer, "buyer@example.com", 5000)
			assert.Equal(t, tt.want, apperror.Code(err))
		})
	}
}

func TestWalletService_VerifyTopup_CreditsOnce(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()

	d.gateway.EXPECT().VerifyCharge(gomock.Any(), "TOP-1").
		Return(d.settledCharge("TOP-1", 5000, d.account.ID), nil).Times(2)

	first, err := d.svc.VerifyTopup(ctx, d.buyer, "TOP-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), first.BalanceAfter)

	second, err := d.svc.VerifyTopup(ctx, d.buyer, "TOP-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	bal, err := d.ledger.Balance(ctx, d.account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), bal)
}

func TestWalletService_VerifyTopup_AfterWebhookCredit(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()

	webhookEntry, err := d.ledger.Credit(ctx, d.account.ID, 5000, "TOP-2", map[string]string{"source": "webhook"})
	require.NoError(t, err)

	d.gateway.EXPECT().VerifyCharge(gomock.Any(), "TOP-2").
		Return(d.settledCharge("TOP-2", 5000, d.account.ID), nil)

	entry, err := d.svc.VerifyTopup(ctx, d.buyer, "TOP-2")
	require.NoError(t, err)
	assert.Equal(t, webhookEntry.ID, entry.ID)
}

func TestWalletService_VerifyTopup_NotSettled(t *testing.T) {
	d := setupWalletService(t)

	res := d.settledCharge("TOP-3", 5000, d.account.ID)
	res.State = domain.ChargePending
	d.gateway.EXPECT().VerifyCharge(gomock.Any(), "TOP-3").Return(res, nil)

	_, err := d.svc.VerifyTopup(context.Background(), d.buyer, "TOP-3")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "PRV_003", appErr.Code)
	assert.Equal(t, "pending", appErr.Details["state"])
}

func TestWalletService_VerifyTopup_OtherWalletsChargeIsUnknown(t *testing.T) {
	d := setupWalletService(t)

	d.gateway.EXPECT().VerifyCharge(gomock.Any(), "TOP-4").
		Return(d.settledCharge("TOP-4", 5000, uuid.New()), nil)

	_, err := d.svc.VerifyTopup(context.Background(), d.buyer, "TOP-4")
	assert.Equal(t, "LED_001", apperror.Code(err))

	bal, balErr := d.ledger.Balance(context.Background(), d.account.ID)
	require.NoError(t, balErr)
	assert.Zero(t, bal)
}

func TestWalletService_VerifyTopup_UnknownReference(t *testing.T) {
	d := setupWalletService(t)

	d.gateway.EXPECT().VerifyCharge(gomock.Any(), "TOP-5").
		Return(nil, &domain.ProviderError{Kind: domain.ProviderNotFound, Op: "verify_charge"})

	_, err := d.svc.VerifyTopup(context.Background(), d.buyer, "TOP-5")
	assert.Equal(t, "LED_001", apperror.Code(err))
}
