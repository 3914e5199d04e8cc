package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/internal/core/ports/mocks"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type riskTestDeps struct {
	svc     *RiskServiceImpl
	limiter *mocks.MockRateLimitStore
	signals *mocks.MockRiskSignalStore
	metrics *mocks.MockMetricsRecorder
	now     time.Time
}

func setupRiskService(t *testing.T) *riskTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &riskTestDeps{
		limiter: mocks.NewMockRateLimitStore(ctrl),
		signals: mocks.NewMockRiskSignalStore(ctrl),
		metrics: mocks.NewMockMetricsRecorder(ctrl),
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	rules := map[string]RateRule{
		"otp_submit": {Limit: 5, Window: time.Minute},
	}
	d.svc = NewRiskService(d.limiter, rules, d.signals, d.metrics, zerolog.Nop())
	d.svc.now = func() time.Time { return d.now }
	return d
}

func TestRiskService_CheckRate_Allowed(t *testing.T) {
	d := setupRiskService(t)
	ctx := context.Background()

	d.limiter.EXPECT().
		Allow(ctx, "otp_submit:seller-1", int64(5), time.Minute).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 5, Remaining: 4, ResetAt: d.now.Add(time.Minute)}, nil)

	res, err := d.svc.CheckRate(ctx, "otp_submit", "seller-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(4), res.Remaining)
}

func TestRiskService_CheckRate_Denied(t *testing.T) {
	d := setupRiskService(t)
	ctx := context.Background()

	d.limiter.EXPECT().
		Allow(ctx, "otp_submit:seller-1", int64(5), time.Minute).
		Return(&ports.RateLimitResult{Allowed: false, Limit: 5, ResetAt: d.now.Add(42 * time.Second)}, nil)
	d.metrics.EXPECT().RateLimited("otp_submit")

	res, err := d.svc.CheckRate(ctx, "otp_submit", "seller-1")
	require.Error(t, err)
	require.NotNil(t, res)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "RATE_001", appErr.Code)
	assert.Equal(t, 42, appErr.Details["retry_after"])
}

func TestRiskService_CheckRate_StoreDownFailsOpen(t *testing.T) {
	d := setupRiskService(t)

	d.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	res, err := d.svc.CheckRate(context.Background(), "otp_submit", "seller-1")
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestRiskService_CheckRate_UnknownActionIsUnlimited(t *testing.T) {
	d := setupRiskService(t)

	res, err := d.svc.CheckRate(context.Background(), "history", "seller-1")
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestRiskService_CheckRate_NilLimiter(t *testing.T) {
	svc := NewRiskService(nil, map[string]RateRule{"otp_submit": {Limit: 1, Window: time.Minute}}, nil, nil, zerolog.Nop())

	res, err := svc.CheckRate(context.Background(), "otp_submit", "x")
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestRiskService_Assess(t *testing.T) {
	high := &domain.SecurityRiskSignal{IPChanged: true, MultipleIPs: true}

	tests := []struct {
		name      string
		signal    *domain.SecurityRiskSignal
		policy    domain.RiskPolicy
		threshold domain.RiskLevel
		wantCode  string
		decided   bool
	}{
		{name: "below threshold", signal: &domain.SecurityRiskSignal{IPChanged: true}, policy: domain.RiskPolicyReject, threshold: domain.RiskHigh},
		{name: "reject at threshold", signal: high, policy: domain.RiskPolicyReject, threshold: domain.RiskHigh, wantCode: "SEC_002", decided: true},
		{name: "step up at threshold", signal: high, policy: domain.RiskPolicyStepUp, threshold: domain.RiskHigh, wantCode: "SEC_003", decided: true},
		{name: "allow is recorded only", signal: high, policy: domain.RiskPolicyAllow, threshold: domain.RiskHigh, decided: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRiskService(t)
			subject := uuid.New()
			obs := domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1", DeviceID: "dev-1"}

			sig := *tt.signal
			sig.SubjectID = subject
			d.signals.EXPECT().Observe(gomock.Any(), obs).Return(&sig, nil)
			if tt.decided {
				d.metrics.EXPECT().RiskDecision("payout_create", domain.RiskHigh, tt.policy)
			}

			got, err := d.svc.Assess(context.Background(), "payout_create", obs, tt.policy, tt.threshold)
			require.NotNil(t, got)
			assert.Equal(t, sig.Score(), got.RiskLevel)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, apperror.Code(err))
		})
	}
}

func TestRiskService_Assess_SignalStoreDownScoresLow(t *testing.T) {
	d := setupRiskService(t)
	obs := domain.RiskObservation{SubjectID: uuid.New(), IP: "10.0.0.1"}

	d.signals.EXPECT().Observe(gomock.Any(), obs).Return(nil, errors.New("redis down"))

	got, err := d.svc.Assess(context.Background(), "payout_create", obs, domain.RiskPolicyReject, domain.RiskMedium)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, got.RiskLevel)
	assert.Equal(t, obs.SubjectID, got.SubjectID)
}
