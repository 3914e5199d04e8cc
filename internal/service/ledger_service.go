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
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// LedgerServiceImpl implements ports.LedgerService. Atomicity lives in the
// repository's Append; this layer derives idempotency keys and maps errors.
type LedgerServiceImpl struct {
	repo     ports.LedgerRepository
	currency string
	metrics  ports.MetricsRecorder
	log      zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(repo ports.LedgerRepository, currency string, metrics ports.MetricsRecorder, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		repo:     repo,
		currency: currency,
		metrics:  metricsOrNop(metrics),
		log:      log,
	}
}

// Credit applies an externally sourced credit exactly once per reference.
// A replay returns the original entry alongside ErrDuplicateReference.
func (s *LedgerServiceImpl) Credit(ctx context.Context, accountID uuid.UUID, amount int64, externalReference string, metadata map[string]string) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	ref := strings.TrimSpace(externalReference)
	if ref == "" {
		return nil, apperror.Validation("external reference is required")
	}

	entry := &domain.LedgerEntry{
		ID:                uuid.New(),
		AccountID:         accountID,
		Direction:         domain.DirectionCredit,
		Amount:            amount,
		ExternalReference: &ref,
		IdempotencyKey:    domain.CreditKeyPrefix + ref,
		Metadata:          metadata,
	}

	err := s.repo.Append(ctx, entry)
	switch {
	case err == nil:
		s.applied(entry)
		return entry, nil
	case errors.Is(err, domain.ErrDuplicateEntry):
		prior, ferr := s.repo.FindByExternalReference(ctx, ref)
		if ferr != nil {
			return nil, apperror.InternalError(fmt.Errorf("load prior credit: %w", ferr))
		}
		if prior == nil {
			return nil, apperror.InternalError(fmt.Errorf("duplicate reported for %q but no entry found", ref))
		}
		if prior.AccountID != accountID {
			s.log.Warn().
				Str("external_reference", ref).
				Str("account_id", accountID.String()).
				Str("recorded_account_id", prior.AccountID.String()).
				Msg("credit reference replayed against a different account")
		}
		return prior, apperror.ErrDuplicateReference()
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil, apperror.ErrNotFound("Wallet account")
	default:
		return nil, apperror.InternalError(fmt.Errorf("append credit: %w", err))
	}
}

// Debit places a hold for a withdrawal request. Repeating it for the same
// request returns the existing hold.
func (s *LedgerServiceImpl) Debit(ctx context.Context, accountID uuid.UUID, amount int64, relatedRequestID uuid.UUID) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	reqID := relatedRequestID
	entry := &domain.LedgerEntry{
		ID:               uuid.New(),
		AccountID:        accountID,
		Direction:        domain.DirectionDebit,
		Amount:           amount,
		IdempotencyKey:   domain.HoldKeyPrefix + relatedRequestID.String(),
		RelatedRequestID: &reqID,
	}

	err := s.repo.Append(ctx, entry)
	switch {
	case err == nil:
		s.applied(entry)
		return entry, nil
	case errors.Is(err, domain.ErrInsufficientBalance):
		return nil, apperror.ErrInsufficientBalance()
	case errors.Is(err, domain.ErrDuplicateEntry):
		prior, ferr := s.repo.FindByIdempotencyKey(ctx, entry.IdempotencyKey)
		if ferr != nil || prior == nil {
			return nil, apperror.InternalError(fmt.Errorf("load prior hold for %s: %v", relatedRequestID, ferr))
		}
		return prior, nil
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil, apperror.ErrNotFound("Wallet account")
	default:
		return nil, apperror.InternalError(fmt.Errorf("append debit: %w", err))
	}
}

// Reverse appends the inverse of entryID. At most one reversal exists per entry.
func (s *LedgerServiceImpl) Reverse(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error) {
	orig, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get entry: %w", err))
	}
	if orig == nil {
		return nil, apperror.ErrNotFound("Ledger entry")
	}
	if orig.IsReversal() {
		return nil, apperror.Validation("a reversal entry cannot itself be reversed")
	}

	origID := orig.ID
	entry := &domain.LedgerEntry{
		ID:               uuid.New(),
		AccountID:        orig.AccountID,
		Direction:        orig.Direction.Inverse(),
		Amount:           orig.Amount,
		IdempotencyKey:   domain.ReversalKeyPrefix + orig.ID.String(),
		RelatedRequestID: orig.RelatedRequestID,
		ReversalOf:       &origID,
	}

	err = s.repo.Append(ctx, entry)
	switch {
	case err == nil:
		s.applied(entry)
		s.log.Info().
			Str("entry_id", orig.ID.String()).
			Str("reversal_id", entry.ID.String()).
			Str("account_id", orig.AccountID.String()).
			Int64("amount", orig.Amount).
			Msg("ledger entry reversed")
		return entry, nil
	case errors.Is(err, domain.ErrDuplicateEntry):
		return nil, apperror.ErrAlreadyReversed()
	case errors.Is(err, domain.ErrInsufficientBalance):
		return nil, apperror.ErrInsufficientBalance()
	default:
		return nil, apperror.InternalError(fmt.Errorf("append reversal: %w", err))
	}
}

// EnsureReversed reverses entryID or returns its existing reversal.
func (s *LedgerServiceImpl) EnsureReversed(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error) {
	rev, err := s.Reverse(ctx, entryID)
	if err == nil {
		return rev, nil
	}
	if !errors.Is(err, apperror.ErrAlreadyReversed()) {
		return nil, err
	}

	existing, ferr := s.repo.FindReversal(ctx, entryID)
	if ferr != nil {
		return nil, apperror.InternalError(fmt.Errorf("find reversal: %w", ferr))
	}
	if existing == nil {
		return nil, apperror.InternalError(fmt.Errorf("reversal of %s reported but not found", entryID))
	}
	return existing, nil
}

// Balance returns the committed balance of an account.
func (s *LedgerServiceImpl) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return 0, apperror.ErrNotFound("Wallet account")
	}
	return acct.Balance, nil
}

// Account returns the owner's wallet in the configured currency, opening it on first use.
func (s *LedgerServiceImpl) Account(ctx context.Context, ownerID uuid.UUID) (*domain.WalletAccount, error) {
	acct, err := s.repo.EnsureAccount(ctx, ownerID, s.currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ensure account: %w", err))
	}
	return acct, nil
}

// History lists an account's entries, newest first.
func (s *LedgerServiceImpl) History(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)

	entries, total, err := s.repo.ListEntries(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}
	return entries, total, nil
}

func (s *LedgerServiceImpl) applied(e *domain.LedgerEntry) {
	s.metrics.LedgerEntry(e.Direction)
	s.log.Info().
		Str("entry_id", e.ID.String()).
		Str("account_id", e.AccountID.String()).
		Str("direction", string(e.Direction)).
		Int64("amount", e.Amount).
		Int64("balance_after", e.BalanceAfter).
		Msg("ledger entry appended")
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
