package provider

import (
	"context"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/rs/zerolog"
)

// RetryPolicy bounds exponential backoff for retriable processor failures.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	return d
}

// Retrying decorates a transfer rail and a charge gateway with retries.
// Only retriable errors are retried; terminal and not-found results return
// at once. Initiate is safe to repeat because the reference is the
// processor-side idempotency key.
type Retrying struct {
	transfers ports.TransferProvider
	charges   ports.ChargeGateway
	policy    RetryPolicy
	log       zerolog.Logger
}

// NewRetrying wraps transfers and charges. Either may be nil if unused.
func NewRetrying(transfers ports.TransferProvider, charges ports.ChargeGateway, policy RetryPolicy, log zerolog.Logger) *Retrying {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Retrying{transfers: transfers, charges: charges, policy: policy, log: log}
}

func (r *Retrying) Initiate(ctx context.Context, order domain.TransferOrder) (string, error) {
	var ref string
	err := r.do(ctx, "initiate_transfer", func(ctx context.Context) error {
		var err error
		ref, err = r.transfers.Initiate(ctx, order)
		return err
	})
	return ref, err
}

func (r *Retrying) CheckStatus(ctx context.Context, reference string) (*domain.TransferStatus, error) {
	var status *domain.TransferStatus
	err := r.do(ctx, "verify_transfer", func(ctx context.Context) error {
		var err error
		status, err = r.transfers.CheckStatus(ctx, reference)
		return err
	})
	return status, err
}

func (r *Retrying) InitializeCharge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeSession, error) {
	var session *domain.ChargeSession
	err := r.do(ctx, "initialize_charge", func(ctx context.Context) error {
		var err error
		session, err = r.charges.InitializeCharge(ctx, req)
		return err
	})
	return session, err
}

func (r *Retrying) VerifyCharge(ctx context.Context, reference string) (*domain.ChargeResult, error) {
	var result *domain.ChargeResult
	err := r.do(ctx, "verify_charge", func(ctx context.Context) error {
		var err error
		result, err = r.charges.VerifyCharge(ctx, reference)
		return err
	})
	return result, err
}

func (r *Retrying) do(ctx context.Context, op string, call func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err = call(ctx)
		if err == nil || domain.ProviderErrorKindOf(err) != domain.ProviderRetriable {
			return err
		}
		if attempt == r.policy.MaxAttempts {
			break
		}

		wait := r.policy.backoff(attempt)
		r.log.Warn().Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("retriable provider failure, backing off")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}
