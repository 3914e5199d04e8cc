package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// Account numbers with this suffix are rejected by the sandbox rail.
const sandboxRejectSuffix = "0000"

type sandboxTransfer struct {
	order     domain.TransferOrder
	state     domain.TransferState
	reason    string
	createdAt time.Time
}

type sandboxCharge struct {
	req       domain.ChargeRequest
	createdAt time.Time
}

// Sandbox is an in-process rail for local runs. Transfers and charges
// settle once settleAfter has elapsed since they were submitted.
type Sandbox struct {
	mu          sync.Mutex
	transfers   map[string]*sandboxTransfer
	charges     map[string]*sandboxCharge
	settleAfter time.Duration
	checkoutURL string
	now         func() time.Time
}

// NewSandbox creates a sandbox rail.
func NewSandbox(checkoutURL string, settleAfter time.Duration) *Sandbox {
	return &Sandbox{
		transfers:   make(map[string]*sandboxTransfer),
		charges:     make(map[string]*sandboxCharge),
		settleAfter: settleAfter,
		checkoutURL: strings.TrimRight(checkoutURL, "/"),
		now:         time.Now,
	}
}

func (s *Sandbox) Initiate(ctx context.Context, order domain.TransferOrder) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transfers[order.Reference]; ok {
		if t.order.Amount != order.Amount || t.order.AccountNumber != order.AccountNumber {
			return "", &domain.ProviderError{Kind: domain.ProviderTerminal, Op: "initiate_transfer", Code: "duplicate_reference"}
		}
		return order.Reference, nil
	}
	if strings.HasSuffix(order.AccountNumber, sandboxRejectSuffix) {
		return "", &domain.ProviderError{Kind: domain.ProviderTerminal, Op: "initiate_transfer", Code: "invalid_account"}
	}

	s.transfers[order.Reference] = &sandboxTransfer{
		order:     order,
		state:     domain.TransferPending,
		createdAt: s.now(),
	}
	return order.Reference, nil
}

func (s *Sandbox) CheckStatus(ctx context.Context, reference string) (*domain.TransferStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transfers[reference]
	if !ok {
		return nil, &domain.ProviderError{Kind: domain.ProviderNotFound, Op: "verify_transfer", Err: fmt.Errorf("transfer %s not found", reference)}
	}
	if t.state == domain.TransferPending && !s.now().Before(t.createdAt.Add(s.settleAfter)) {
		t.state = domain.TransferSuccess
	}
	return &domain.TransferStatus{Reference: reference, State: t.state, ReasonCode: t.reason}, nil
}

// Fail forces a submitted transfer into the failed state.
func (s *Sandbox) Fail(reference, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transfers[reference]
	if !ok {
		return false
	}
	t.state = domain.TransferFailed
	t.reason = reason
	return true
}

func (s *Sandbox) InitializeCharge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charges[req.Reference]; !ok {
		s.charges[req.Reference] = &sandboxCharge{req: req, createdAt: s.now()}
	}
	return &domain.ChargeSession{
		Reference:        req.Reference,
		AuthorizationURL: s.checkoutURL + "/checkout/" + req.Reference,
		AccessCode:       uuid.NewString(),
	}, nil
}

func (s *Sandbox) VerifyCharge(ctx context.Context, reference string) (*domain.ChargeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.charges[reference]
	if !ok {
		return nil, &domain.ProviderError{Kind: domain.ProviderNotFound, Op: "verify_charge", Err: fmt.Errorf("charge %s not found", reference)}
	}

	state := domain.ChargePending
	if !s.now().Before(c.createdAt.Add(s.settleAfter)) {
		state = domain.ChargeSuccess
	}
	return &domain.ChargeResult{
		Reference: reference,
		State:     state,
		Amount:    c.req.Amount,
		Currency:  c.req.Currency,
		Metadata: map[string]string{
			domain.ChargeMetaPurpose:   domain.ChargePurposeWalletTopup,
			domain.ChargeMetaAccountID: c.req.AccountID.String(),
		},
	}, nil
}
