package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	payoutNarration = "Marketplace payout"

	templatePayoutOtp       = "payout_otp"
	templatePayoutFailed    = "payout_failed"
	templatePayoutRejected  = "payout_rejected"
	templatePayoutCompleted = "payout_completed"

	reasonStatusUnresolved = "status_unresolved"
	reasonProviderReversed = "provider_reversed"
)

// WithdrawalPolicy holds payout limits and recovery tuning.
type WithdrawalPolicy struct {
	MinAmount       int64
	OtpTTL          time.Duration
	MaxStatusChecks int
	StaleAfter      time.Duration
	SweepBatch      int
}

// WithdrawalServiceImpl implements ports.WithdrawalService.
//
// Every status change is a compare-and-swap on the request version, so two
// actors racing on one request cannot both win. Whenever a request leaves the
// happy path after its hold was placed, the hold is reversed; a crash between
// the status change and the reversal is repaired by Sweep.
type WithdrawalServiceImpl struct {
	repo     ports.WithdrawalRepository
	ledger   ports.LedgerService
	otp      ports.OtpService
	provider ports.TransferProvider
	crypto   ports.EncryptionService
	notifier ports.NotificationService
	policy   WithdrawalPolicy
	now      func() time.Time
	metrics  ports.MetricsRecorder
	log      zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	repo ports.WithdrawalRepository,
	ledger ports.LedgerService,
	otp ports.OtpService,
	provider ports.TransferProvider,
	crypto ports.EncryptionService,
	notifier ports.NotificationService,
	policy WithdrawalPolicy,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		repo:     repo,
		ledger:   ledger,
		otp:      otp,
		provider: provider,
		crypto:   crypto,
		notifier: notifier,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
		metrics:  metricsOrNop(metrics),
		log:      log,
	}
}

// Create opens a pending request after checking the seller can cover it.
func (s *WithdrawalServiceImpl) Create(ctx context.Context, req ports.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Amount < s.policy.MinAmount {
		return nil, apperror.Validation(fmt.Sprintf("minimum payout is %d", s.policy.MinAmount))
	}
	if req.Type != domain.DestinationBank && req.Type != domain.DestinationMobileMoney {
		return nil, apperror.Validation("destination type must be bank or mobile_money")
	}
	number := strings.TrimSpace(req.AccountNumber)
	if len(number) < 4 {
		return nil, apperror.Validation("destination account number is too short")
	}

	acct, err := s.ledger.Account(ctx, req.SellerID)
	if err != nil {
		return nil, err
	}
	if req.Amount > acct.Balance {
		return nil, apperror.ErrInsufficientBalance()
	}

	enc, err := s.crypto.Encrypt(number)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := s.now()
	w := &domain.WithdrawalRequest{
		ID:        uuid.New(),
		SellerID:  req.SellerID,
		AccountID: acct.ID,
		Amount:    req.Amount,
		Currency:  acct.Currency,
		Destination: domain.Destination{
			Type:             req.Type,
			BankCode:         strings.TrimSpace(req.BankCode),
			AccountName:      strings.TrimSpace(req.AccountName),
			AccountLast4:     number[len(number)-4:],
			AccountNumberEnc: enc,
		},
		Status:    domain.WithdrawalPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create withdrawal: %w", err))
	}

	s.log.Info().
		Str("request_id", w.ID.String()).
		Str("seller_id", w.SellerID.String()).
		Int64("amount", w.Amount).
		Msg("withdrawal requested")
	return w, nil
}

// Get returns a request visible to the caller. Sellers only see their own.
func (s *WithdrawalServiceImpl) Get(ctx context.Context, id domain.Identity, requestID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !id.Is(domain.RoleAdmin) && !id.Owns(w.SellerID) {
		return nil, apperror.ErrNotFound("Withdrawal request")
	}
	return w, nil
}

// List scopes sellers to their own requests; admins may filter freely.
func (s *WithdrawalServiceImpl) List(ctx context.Context, id domain.Identity, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	if !id.Is(domain.RoleAdmin) {
		subject := id.SubjectID
		params.SellerID = &subject
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, 0, apperror.Validation("unknown status filter")
	}
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return items, total, nil
}

// Approve re-checks the balance and places the debit hold.
func (s *WithdrawalServiceImpl) Approve(ctx context.Context, requestID, adminID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !w.Status.CanTransitionTo(domain.WithdrawalApproved) {
		return nil, invalidTransition(w, "approve")
	}

	balance, err := s.ledger.Balance(ctx, w.AccountID)
	if err != nil {
		return nil, err
	}
	if balance < w.Amount {
		return nil, apperror.ErrInsufficientBalance()
	}

	hold, err := s.ledger.Debit(ctx, w.AccountID, w.Amount, w.ID)
	if err != nil {
		return nil, err
	}

	admin := adminID
	holdID := hold.ID
	err = s.transition(ctx, w, domain.WithdrawalApproved, "approve", func(next *domain.WithdrawalRequest) {
		next.ApprovedBy = &admin
		next.HoldEntryID = &holdID
	})
	if err != nil {
		s.releaseOrphanHold(ctx, requestID, holdID)
		return nil, err
	}

	s.log.Info().
		Str("request_id", w.ID.String()).
		Str("admin_id", adminID.String()).
		Str("hold_entry_id", holdID.String()).
		Msg("withdrawal approved")
	return w, nil
}

// releaseOrphanHold reverses a hold whose approval lost the race, unless the
// winner recorded that same hold.
func (s *WithdrawalServiceImpl) releaseOrphanHold(ctx context.Context, requestID, holdID uuid.UUID) {
	cur, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", requestID.String()).Msg("cannot reload request after failed approval")
		return
	}
	if cur != nil && cur.HoldEntryID != nil && *cur.HoldEntryID == holdID {
		return
	}
	if _, err := s.ledger.EnsureReversed(ctx, holdID); err != nil {
		s.log.Error().Err(err).
			Str("request_id", requestID.String()).
			Str("hold_entry_id", holdID.String()).
			Msg("failed to release orphan hold")
	}
}

// Reject declines a pending request. No funds are held yet.
func (s *WithdrawalServiceImpl) Reject(ctx context.Context, requestID, adminID uuid.UUID, reason string) (*domain.WithdrawalRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("rejection reason is required")
	}

	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	admin := adminID
	err = s.transition(ctx, w, domain.WithdrawalRejected, "reject", func(next *domain.WithdrawalRequest) {
		next.ApprovedBy = &admin
		next.FailureReason = &reason
	})
	if err != nil {
		return nil, err
	}

	s.alert(ctx, w, templatePayoutRejected, map[string]string{"reason": reason})
	return w, nil
}

// InitiateTransfer submits the payout. Business outcomes (terminal rejection,
// unresolved call) are reflected in the returned request, not as errors.
func (s *WithdrawalServiceImpl) InitiateTransfer(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !w.Status.CanTransitionTo(domain.WithdrawalProcessing) {
		return nil, invalidTransition(w, "initiate transfer for")
	}

	number, err := s.crypto.Decrypt(w.Destination.AccountNumberEnc)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	order := domain.TransferOrder{
		Reference:     w.TransferIdempotencyKey(),
		Amount:        w.Amount,
		Currency:      w.Currency,
		Type:          w.Destination.Type,
		BankCode:      w.Destination.BankCode,
		AccountNumber: number,
		AccountName:   w.Destination.AccountName,
		Narration:     payoutNarration,
	}

	ref, callErr := s.provider.Initiate(ctx, order)
	if callErr != nil {
		switch domain.ProviderErrorKindOf(callErr) {
		case domain.ProviderTerminal, domain.ProviderNotFound:
			s.log.Warn().Err(callErr).Str("request_id", w.ID.String()).Msg("transfer rejected by provider")
			return s.failAndReverse(ctx, w, providerReason(callErr))
		default:
			// Outcome unknown: track the derived reference and let polling decide.
			s.log.Warn().Err(callErr).Str("request_id", w.ID.String()).Msg("transfer initiation unresolved")
			ref = order.Reference
		}
	}

	err = s.transition(ctx, w, domain.WithdrawalProcessing, "initiate transfer for", func(next *domain.WithdrawalRequest) {
		next.TransferReference = &ref
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", w.ID.String()).
		Str("transfer_reference", ref).
		Msg("transfer initiated")
	return w, nil
}

// RequestOtp issues (or re-issues) the confirmation code and queues its delivery.
func (s *WithdrawalServiceImpl) RequestOtp(ctx context.Context, requestID, sellerID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.loadOwned(ctx, requestID, sellerID)
	if err != nil {
		return nil, err
	}
	if !w.Status.CanTransitionTo(domain.WithdrawalOtpPending) || w.OtpConfirmedAt != nil {
		return nil, invalidTransition(w, "request a code for")
	}

	challenge, code, err := s.otp.Issue(ctx, sellerID, domain.OtpPurposePayoutConfirm, s.policy.OtpTTL)
	if err != nil {
		return nil, err
	}

	challengeID := challenge.ID
	err = s.transition(ctx, w, domain.WithdrawalOtpPending, "request a code for", func(next *domain.WithdrawalRequest) {
		next.OtpChallengeID = &challengeID
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.TaskDeliverOtp, domain.Notification{
		RecipientID: sellerID,
		Channel:     "sms",
		Template:    templatePayoutOtp,
		Params: map[string]string{
			"code":       code,
			"amount":     strconv.FormatInt(w.Amount, 10),
			"expires_at": challenge.ExpiresAt.Format(time.RFC3339),
		},
	})
	return w, nil
}

// ConfirmOtp verifies the seller's code, then settles against the provider.
// Once the code is accepted, repeated calls only re-check the transfer.
func (s *WithdrawalServiceImpl) ConfirmOtp(ctx context.Context, requestID, sellerID uuid.UUID, code string) (*domain.WithdrawalRequest, error) {
	w, err := s.loadOwned(ctx, requestID, sellerID)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalOtpPending || w.OtpChallengeID == nil {
		return nil, invalidTransition(w, "confirm")
	}

	if w.OtpConfirmedAt == nil {
		if err := s.otp.Verify(ctx, *w.OtpChallengeID, code); err != nil {
			return nil, err
		}
		confirmed := s.now()
		err = s.save(ctx, w, func(next *domain.WithdrawalRequest) {
			next.OtpConfirmedAt = &confirmed
		})
		if err != nil {
			return nil, err
		}
	}

	return s.settle(ctx, w)
}

// VerifyTransferStatus polls the provider for an in-flight request and
// finishes any reversal left incomplete.
func (s *WithdrawalServiceImpl) VerifyTransferStatus(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	switch w.Status {
	case domain.WithdrawalProcessing, domain.WithdrawalOtpPending:
		return s.settle(ctx, w)
	case domain.WithdrawalFailed:
		return s.failAndReverse(ctx, w, "")
	default:
		return nil, invalidTransition(w, "verify the transfer of")
	}
}

// Cancel withdraws a request before the transfer starts, releasing any hold.
// The status is claimed first so a concurrent initiation cannot proceed on
// funds being returned.
func (s *WithdrawalServiceImpl) Cancel(ctx context.Context, requestID, sellerID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.loadOwned(ctx, requestID, sellerID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, w, domain.WithdrawalCancelled, "cancel", nil); err != nil {
		return nil, err
	}
	if err := s.releaseHold(ctx, w); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", w.ID.String()).Msg("withdrawal cancelled")
	return w, nil
}

// RequestReversal flags a completed payout as disputed.
func (s *WithdrawalServiceImpl) RequestReversal(ctx context.Context, id domain.Identity, requestID uuid.UUID, reason string) (*domain.WithdrawalRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("reversal reason is required")
	}

	w, err := s.Get(ctx, id, requestID)
	if err != nil {
		return nil, err
	}

	err = s.transition(ctx, w, domain.WithdrawalReversalRequested, "request reversal of", func(next *domain.WithdrawalRequest) {
		next.FailureReason = &reason
	})
	if err != nil {
		return nil, err
	}

	s.log.Warn().
		Str("request_id", w.ID.String()).
		Str("actor_id", id.SubjectID.String()).
		Str("reason", reason).
		Msg("payout reversal requested")
	return w, nil
}

// ResolveReversal records the out-of-band decision on a disputed payout.
func (s *WithdrawalServiceImpl) ResolveReversal(ctx context.Context, requestID, adminID uuid.UUID, approve bool) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !approve {
		if err := s.transition(ctx, w, domain.WithdrawalCompleted, "decline reversal of", nil); err != nil {
			return nil, err
		}
		s.log.Info().Str("request_id", w.ID.String()).Str("admin_id", adminID.String()).Msg("payout reversal declined")
		return w, nil
	}

	if err := s.transition(ctx, w, domain.WithdrawalReversed, "reverse", nil); err != nil {
		return nil, err
	}
	if err := s.releaseHold(ctx, w); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", w.ID.String()).Str("admin_id", adminID.String()).Msg("payout reversed")
	return w, nil
}

// ApplyTransferOutcome applies a provider-pushed transfer result. Unknown
// references are ignored.
func (s *WithdrawalServiceImpl) ApplyTransferOutcome(ctx context.Context, reference string, status domain.TransferStatus) error {
	w, err := s.repo.GetByTransferReference(ctx, reference)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("find by transfer reference: %w", err))
	}
	if w == nil {
		s.log.Warn().Str("transfer_reference", reference).Msg("transfer outcome for unknown reference")
		return nil
	}

	if w.Status == domain.WithdrawalCompleted && status.State == domain.TransferFailed {
		reason := status.ReasonCode
		if reason == "" {
			reason = reasonProviderReversed
		}
		return s.transition(ctx, w, domain.WithdrawalReversalRequested, "request reversal of", func(next *domain.WithdrawalRequest) {
			next.FailureReason = &reason
		})
	}

	if w.Status != domain.WithdrawalProcessing && w.Status != domain.WithdrawalOtpPending {
		s.log.Debug().
			Str("request_id", w.ID.String()).
			Str("status", string(w.Status)).
			Str("state", string(status.State)).
			Msg("transfer outcome ignored")
		return nil
	}

	_, err = s.applyStatus(ctx, w, status)
	return err
}

// Sweep repairs requests a crash or lost callback left behind: approved but
// never initiated, in flight for too long, or failed/cancelled/reversed with
// the hold still outstanding. It returns how many requests it touched.
func (s *WithdrawalServiceImpl) Sweep(ctx context.Context) (int, error) {
	olderThan := s.now().Add(-s.policy.StaleAfter)
	inflight, err := s.repo.ListStale(ctx, []domain.WithdrawalStatus{
		domain.WithdrawalApproved,
		domain.WithdrawalProcessing,
		domain.WithdrawalOtpPending,
	}, olderThan, s.policy.SweepBatch)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list stale withdrawals: %w", err))
	}
	unreleased, err := s.repo.ListOutstandingHolds(ctx, []domain.WithdrawalStatus{
		domain.WithdrawalFailed,
		domain.WithdrawalCancelled,
		domain.WithdrawalReversed,
	}, olderThan, s.policy.SweepBatch)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list outstanding holds: %w", err))
	}
	stale := append(inflight, unreleased...)

	touched := 0
	for i := range stale {
		if ctx.Err() != nil {
			return touched, ctx.Err()
		}
		w := &stale[i]

		var serr error
		switch w.Status {
		case domain.WithdrawalApproved:
			_, serr = s.InitiateTransfer(ctx, w.ID)
		case domain.WithdrawalProcessing, domain.WithdrawalOtpPending:
			_, serr = s.settle(ctx, w)
		case domain.WithdrawalFailed:
			_, serr = s.failAndReverse(ctx, w, "")
		default:
			serr = s.releaseHold(ctx, w)
		}

		touched++
		if serr != nil {
			s.log.Error().Err(serr).
				Str("request_id", w.ID.String()).
				Str("status", string(w.Status)).
				Msg("sweep could not repair withdrawal")
		}
	}

	if touched > 0 {
		s.log.Info().Int("count", touched).Msg("withdrawal sweep completed")
	}
	return touched, nil
}

// settle polls the provider and applies what it reports.
func (s *WithdrawalServiceImpl) settle(ctx context.Context, w *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	if w.TransferReference == nil {
		return nil, apperror.InternalError(fmt.Errorf("withdrawal %s in %s has no transfer reference", w.ID, w.Status))
	}

	status, err := s.provider.CheckStatus(ctx, *w.TransferReference)
	if err != nil {
		switch domain.ProviderErrorKindOf(err) {
		case domain.ProviderTerminal, domain.ProviderNotFound:
			s.log.Warn().Err(err).Str("request_id", w.ID.String()).Msg("transfer status is terminal failure")
			return s.failAndReverse(ctx, w, providerReason(err))
		default:
			return s.recordUnresolved(ctx, w, err)
		}
	}
	return s.applyStatus(ctx, w, *status)
}

func (s *WithdrawalServiceImpl) applyStatus(ctx context.Context, w *domain.WithdrawalRequest, status domain.TransferStatus) (*domain.WithdrawalRequest, error) {
	switch status.State {
	case domain.TransferSuccess:
		if w.Status != domain.WithdrawalOtpPending || w.OtpConfirmedAt == nil {
			s.log.Info().
				Str("request_id", w.ID.String()).
				Str("status", string(w.Status)).
				Msg("transfer succeeded, awaiting seller confirmation")
			return w, nil
		}
		if err := s.transition(ctx, w, domain.WithdrawalCompleted, "complete", nil); err != nil {
			return nil, err
		}
		s.alert(ctx, w, templatePayoutCompleted, nil)
		s.log.Info().Str("request_id", w.ID.String()).Msg("withdrawal completed")
		return w, nil
	case domain.TransferFailed:
		reason := status.ReasonCode
		if reason == "" {
			reason = "transfer_failed"
		}
		return s.failAndReverse(ctx, w, reason)
	default:
		return w, nil
	}
}

// recordUnresolved counts a status check that could not reach a verdict and
// forces failure once the budget is spent.
func (s *WithdrawalServiceImpl) recordUnresolved(ctx context.Context, w *domain.WithdrawalRequest, cause error) (*domain.WithdrawalRequest, error) {
	checks := w.StatusChecks + 1
	if s.policy.MaxStatusChecks > 0 && checks >= s.policy.MaxStatusChecks {
		s.log.Warn().Err(cause).
			Str("request_id", w.ID.String()).
			Int("status_checks", checks).
			Msg("transfer status unresolved after retry budget, failing")
		return s.failAndReverse(ctx, w, reasonStatusUnresolved)
	}

	if err := s.save(ctx, w, func(next *domain.WithdrawalRequest) { next.StatusChecks = checks }); err != nil {
		return nil, err
	}
	return w, apperror.ErrProviderRetriable(cause)
}

// failAndReverse moves w to failed (if not already) and then to reversed,
// crediting the hold back. It is safe to call again on a failed request.
func (s *WithdrawalServiceImpl) failAndReverse(ctx context.Context, w *domain.WithdrawalRequest, reason string) (*domain.WithdrawalRequest, error) {
	if w.Status != domain.WithdrawalFailed {
		if reason == "" {
			reason = "transfer_failed"
		}
		err := s.transition(ctx, w, domain.WithdrawalFailed, "fail", func(next *domain.WithdrawalRequest) {
			next.FailureReason = &reason
		})
		if err != nil {
			return nil, err
		}
		s.alert(ctx, w, templatePayoutFailed, map[string]string{"reason": reason})
	}

	if err := s.releaseHold(ctx, w); err != nil {
		return nil, err
	}
	if err := s.transition(ctx, w, domain.WithdrawalReversed, "reverse", nil); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", w.ID.String()).
		Int64("amount", w.Amount).
		Msg("withdrawal failed and hold reversed")
	return w, nil
}

// releaseHold reverses the outstanding hold, if any, and links the reversal.
func (s *WithdrawalServiceImpl) releaseHold(ctx context.Context, w *domain.WithdrawalRequest) error {
	if !w.NeedsReversal() {
		return nil
	}
	rev, err := s.ledger.EnsureReversed(ctx, *w.HoldEntryID)
	if err != nil {
		return err
	}
	revID := rev.ID
	return s.save(ctx, w, func(next *domain.WithdrawalRequest) {
		next.ReversalEntryID = &revID
	})
}

// transition validates from→to and persists it with mutate applied.
func (s *WithdrawalServiceImpl) transition(ctx context.Context, w *domain.WithdrawalRequest, to domain.WithdrawalStatus, action string, mutate func(*domain.WithdrawalRequest)) error {
	from := w.Status
	if !from.CanTransitionTo(to) {
		return invalidTransition(w, action)
	}

	err := s.save(ctx, w, func(next *domain.WithdrawalRequest) {
		next.Status = to
		if mutate != nil {
			mutate(next)
		}
	})
	if err != nil {
		return err
	}

	s.metrics.WithdrawalTransition(from, to)
	s.log.Debug().
		Str("request_id", w.ID.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("withdrawal transition")
	return nil
}

// save applies mutate to a copy and compare-and-swaps it. On success w is
// replaced by the stored value; on conflict w is untouched.
func (s *WithdrawalServiceImpl) save(ctx context.Context, w *domain.WithdrawalRequest, mutate func(*domain.WithdrawalRequest)) error {
	next := *w
	mutate(&next)

	if err := s.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return s.conflict(ctx, w.ID)
		}
		return apperror.InternalError(fmt.Errorf("update withdrawal: %w", err))
	}
	*w = next
	return nil
}

func (s *WithdrawalServiceImpl) conflict(ctx context.Context, id uuid.UUID) error {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil || cur == nil {
		return apperror.InternalError(fmt.Errorf("withdrawal %s changed concurrently", id))
	}
	return apperror.ErrInvalidStateTransition(string(cur.Status), "update")
}

func (s *WithdrawalServiceImpl) load(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Withdrawal request")
	}
	return w, nil
}

// loadOwned hides other sellers' requests behind NotFound.
func (s *WithdrawalServiceImpl) loadOwned(ctx context.Context, id, sellerID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.SellerID != sellerID {
		return nil, apperror.ErrNotFound("Withdrawal request")
	}
	return w, nil
}

func (s *WithdrawalServiceImpl) alert(ctx context.Context, w *domain.WithdrawalRequest, template string, params map[string]string) {
	if params == nil {
		params = make(map[string]string, 2)
	}
	params["request_id"] = w.ID.String()
	params["amount"] = strconv.FormatInt(w.Amount, 10)

	s.notifier.Notify(ctx, domain.TaskDeliverAlert, domain.Notification{
		RecipientID: w.SellerID,
		Channel:     "email",
		Template:    template,
		Params:      params,
	})
}

func invalidTransition(w *domain.WithdrawalRequest, action string) error {
	return apperror.ErrInvalidStateTransition(string(w.Status), action)
}

func providerReason(err error) string {
	if code := domain.ProviderReason(err); code != "" {
		return code
	}
	return "provider_rejected"
}
