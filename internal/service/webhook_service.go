package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/rs/zerolog"
)

// Processor event types.
const (
	EventChargeSuccess    = "charge.success"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"
)

// webhookEvent is the processor's envelope. Data is decoded per event type.
type webhookEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type chargeEventData struct {
	Reference string         `json:"reference"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata"`
}

type transferEventData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// WebhookServiceImpl implements ports.WebhookService.
//
// Once a delivery is authentic it is always acknowledged; business outcomes
// are logged and counted. The dedup store is a fast path only, the ledger's
// unique reference is what guarantees a single credit.
type WebhookServiceImpl struct {
	secret      string
	sig         ports.SignatureService
	dedup       ports.DedupStore
	dedupTTL    time.Duration
	ledger      ports.LedgerService
	withdrawals ports.WithdrawalService
	metrics     ports.MetricsRecorder
	log         zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl. dedup may be nil.
func NewWebhookService(
	secret string,
	sig ports.SignatureService,
	dedup ports.DedupStore,
	dedupTTL time.Duration,
	ledger ports.LedgerService,
	withdrawals ports.WithdrawalService,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		secret:      secret,
		sig:         sig,
		dedup:       dedup,
		dedupTTL:    dedupTTL,
		ledger:      ledger,
		withdrawals: withdrawals,
		metrics:     metricsOrNop(metrics),
		log:         log,
	}
}

// Verify checks the signature over the exact raw bytes. Without a configured
// secret every delivery is rejected.
func (s *WebhookServiceImpl) Verify(rawBody []byte, signature string) error {
	if s.secret == "" {
		s.log.Error().Msg("webhook secret not configured, rejecting delivery")
		s.metrics.WebhookEvent("unknown", "rejected")
		return apperror.ErrInvalidSignature()
	}
	if !s.sig.Verify(s.secret, rawBody, signature) {
		s.log.Warn().Int("body_bytes", len(rawBody)).Msg("webhook signature mismatch")
		s.metrics.WebhookEvent("unknown", "rejected")
		return apperror.ErrInvalidSignature()
	}
	return nil
}

// Ingest applies a verified delivery.
func (s *WebhookServiceImpl) Ingest(ctx context.Context, rawBody []byte) {
	var ev webhookEvent
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		s.log.Warn().Err(err).Msg("webhook body is not valid JSON")
		s.metrics.WebhookEvent("unknown", "malformed")
		return
	}

	var outcome string
	switch ev.Event {
	case EventChargeSuccess:
		outcome = s.ingestCharge(ctx, ev)
	case EventTransferSuccess, EventTransferFailed, EventTransferReversed:
		outcome = s.ingestTransfer(ctx, ev)
	default:
		outcome = "ignored"
		s.log.Debug().Str("event", ev.Event).Msg("webhook event ignored")
	}
	s.metrics.WebhookEvent(ev.Event, outcome)
}

func (s *WebhookServiceImpl) ingestCharge(ctx context.Context, ev webhookEvent) string {
	var data chargeEventData
	if err := json.Unmarshal(ev.Data, &data); err != nil || data.Reference == "" {
		s.log.Warn().Err(err).Str("event", ev.Event).Msg("charge event missing data")
		return "malformed"
	}

	charge := &domain.ChargeResult{
		Reference: data.Reference,
		State:     domain.ChargeState(data.Status),
		Amount:    data.Amount,
		Currency:  data.Currency,
		Metadata:  stringifyMetadata(data.Metadata),
	}
	accountID, ok := charge.TopupAccountID()
	if !ok {
		s.log.Info().Str("reference", data.Reference).Msg("charge is not a wallet top-up")
		return "ignored"
	}
	if charge.Amount <= 0 {
		s.log.Warn().Str("reference", data.Reference).Int64("amount", data.Amount).Msg("charge event with non-positive amount")
		return "malformed"
	}

	key := "charge:" + data.Reference
	claimed, release := s.claim(ctx, key)
	if !claimed {
		return "duplicate"
	}

	_, err := s.ledger.Credit(ctx, accountID, charge.Amount, charge.Reference, map[string]string{
		"source": "webhook",
		"event":  ev.Event,
	})
	switch {
	case err == nil:
		s.log.Info().
			Str("reference", data.Reference).
			Str("account_id", accountID.String()).
			Int64("amount", data.Amount).
			Msg("top-up credited from webhook")
		return "applied"
	case errors.Is(err, apperror.ErrDuplicateReference()):
		return "duplicate"
	case apperror.Code(err) == "SYS_001":
		release()
		s.log.Error().Err(err).Str("reference", data.Reference).Msg("top-up credit failed, awaiting redelivery")
		return "failed"
	default:
		s.log.Warn().Err(err).Str("reference", data.Reference).Msg("top-up credit rejected")
		return "rejected"
	}
}

func (s *WebhookServiceImpl) ingestTransfer(ctx context.Context, ev webhookEvent) string {
	var data transferEventData
	if err := json.Unmarshal(ev.Data, &data); err != nil || data.Reference == "" {
		s.log.Warn().Err(err).Str("event", ev.Event).Msg("transfer event missing data")
		return "malformed"
	}

	status := domain.TransferStatus{Reference: data.Reference, State: domain.TransferSuccess}
	switch ev.Event {
	case EventTransferFailed:
		status.State = domain.TransferFailed
		status.ReasonCode = data.Reason
		if status.ReasonCode == "" {
			status.ReasonCode = "transfer_failed"
		}
	case EventTransferReversed:
		status.State = domain.TransferFailed
		status.ReasonCode = reasonProviderReversed
	}

	key := "transfer:" + ev.Event + ":" + data.Reference
	claimed, release := s.claim(ctx, key)
	if !claimed {
		return "duplicate"
	}

	if err := s.withdrawals.ApplyTransferOutcome(ctx, data.Reference, status); err != nil {
		if apperror.Code(err) == "SYS_001" {
			release()
			s.log.Error().Err(err).Str("reference", data.Reference).Msg("transfer outcome failed, awaiting redelivery")
			return "failed"
		}
		s.log.Warn().Err(err).Str("reference", data.Reference).Msg("transfer outcome not applied")
		return "rejected"
	}
	return "applied"
}

// claim takes the dedup key. When the store is missing or unavailable the
// delivery proceeds and the ledger decides.
func (s *WebhookServiceImpl) claim(ctx context.Context, key string) (bool, func()) {
	noop := func() {}
	if s.dedup == nil {
		return true, noop
	}

	ok, err := s.dedup.Claim(ctx, key, s.dedupTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("webhook dedup unavailable")
		return true, noop
	}
	if !ok {
		return false, noop
	}
	return true, func() {
		if err := s.dedup.Release(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to release webhook dedup key")
		}
	}
}

func stringifyMetadata(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = strings.TrimSpace(val)
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
