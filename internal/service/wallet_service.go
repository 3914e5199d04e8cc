package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const topupReferencePrefix = "TOP-"

// TopupPolicy bounds a single buyer top-up in minor units.
type TopupPolicy struct {
	Currency string
	Min      int64
	Max      int64
}

// WalletServiceImpl implements ports.WalletService. The charge webhook and
// VerifyTopup credit through the same external reference, so whichever
// arrives second is a no-op.
type WalletServiceImpl struct {
	ledger  ports.LedgerService
	gateway ports.ChargeGateway
	policy  TopupPolicy
	metrics ports.MetricsRecorder
	log     zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(ledger ports.LedgerService, gateway ports.ChargeGateway, policy TopupPolicy, metrics ports.MetricsRecorder, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		ledger:  ledger,
		gateway: gateway,
		policy:  policy,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

// InitiateTopup opens a charge session whose metadata routes the eventual
// credit to the caller's wallet.
func (s *WalletServiceImpl) InitiateTopup(ctx context.Context, ownerID uuid.UUID, email string, amount int64) (*domain.ChargeSession, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if amount < s.policy.Min || (s.policy.Max > 0 && amount > s.policy.Max) {
		return nil, apperror.Validation(fmt.Sprintf("Top-up amount must be between %d and %d", s.policy.Min, s.policy.Max))
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.Validation("email is required")
	}

	acct, err := s.ledger.Account(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	req := domain.ChargeRequest{
		AccountID: acct.ID,
		Email:     email,
		Amount:    amount,
		Currency:  s.policy.Currency,
		Reference: topupReferencePrefix + ulid.Make().String(),
	}

	session, err := s.gateway.InitializeCharge(ctx, req)
	if err != nil {
		return nil, s.gatewayError(err, "initialize charge")
	}
	if session.Reference == "" {
		session.Reference = req.Reference
	}

	s.log.Info().
		Str("account_id", acct.ID.String()).
		Str("reference", session.Reference).
		Int64("amount", amount).
		Msg("top-up initiated")
	return session, nil
}

// VerifyTopup asks the processor for the charge outcome and credits the
// caller's wallet once. Verifying an already-credited reference returns the
// original entry.
func (s *WalletServiceImpl) VerifyTopup(ctx context.Context, ownerID uuid.UUID, reference string) (*domain.LedgerEntry, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apperror.Validation("reference is required")
	}

	acct, err := s.ledger.Account(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.VerifyCharge(ctx, reference)
	if err != nil {
		if domain.ProviderErrorKindOf(err) == domain.ProviderNotFound {
			return nil, apperror.ErrNotFound("Charge")
		}
		return nil, s.gatewayError(err, "verify charge")
	}
	if result.State != domain.ChargeSuccess {
		return nil, apperror.ErrChargeNotSettled(string(result.State))
	}

	// A reference that belongs to another wallet is reported as unknown.
	target, ok := result.TopupAccountID()
	if !ok || target != acct.ID {
		s.log.Warn().
			Str("reference", reference).
			Str("account_id", acct.ID.String()).
			Msg("top-up reference does not belong to caller")
		return nil, apperror.ErrNotFound("Charge")
	}

	entry, err := s.ledger.Credit(ctx, acct.ID, result.Amount, reference, map[string]string{
		"source":   "verify",
		"currency": result.Currency,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrDuplicateReference()) && entry != nil {
			return entry, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *WalletServiceImpl) gatewayError(err error, op string) error {
	s.log.Warn().Err(err).Str("op", op).Msg("charge gateway call failed")
	if domain.ProviderErrorKindOf(err) == domain.ProviderRetriable {
		return apperror.ErrProviderRetriable(err)
	}
	return apperror.ErrProviderTerminal(domain.ProviderReason(err), err)
}
