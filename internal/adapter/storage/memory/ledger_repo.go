// Package memory is a process-local storage driver with the same atomicity
// guarantees as the postgres driver, used for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/google/uuid"
)

// LedgerRepo implements ports.LedgerRepository. One mutex serializes all
// appends, which subsumes per-account row locking.
type LedgerRepo struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]*domain.WalletAccount
	byOwner    map[string]uuid.UUID
	entries    map[uuid.UUID]*domain.LedgerEntry
	byKey      map[string]uuid.UUID
	byRef      map[string]uuid.UUID
	byReversal map[uuid.UUID]uuid.UUID
	order      []uuid.UUID
}

// NewLedgerRepo creates an empty LedgerRepo.
func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{
		accounts:   make(map[uuid.UUID]*domain.WalletAccount),
		byOwner:    make(map[string]uuid.UUID),
		entries:    make(map[uuid.UUID]*domain.LedgerEntry),
		byKey:      make(map[string]uuid.UUID),
		byRef:      make(map[string]uuid.UUID),
		byReversal: make(map[uuid.UUID]uuid.UUID),
	}
}

func ownerKey(ownerID uuid.UUID, currency string) string {
	return ownerID.String() + "/" + currency
}

func (r *LedgerRepo) EnsureAccount(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byOwner[ownerKey(ownerID, currency)]; ok {
		acct := *r.accounts[id]
		return &acct, nil
	}

	now := time.Now().UTC()
	acct := &domain.WalletAccount{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.accounts[acct.ID] = acct
	r.byOwner[ownerKey(ownerID, currency)] = acct.ID

	out := *acct
	return &out, nil
}

func (r *LedgerRepo) GetAccount(ctx context.Context, id uuid.UUID) (*domain.WalletAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	out := *acct
	return &out, nil
}

func (r *LedgerRepo) GetAccountByOwner(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerKey(ownerID, currency)]
	if !ok {
		return nil, nil
	}
	out := *r.accounts[id]
	return &out, nil
}

// Append applies the entry and its balance change under one lock.
func (r *LedgerRepo) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[entry.AccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if _, dup := r.byKey[entry.IdempotencyKey]; dup {
		return domain.ErrDuplicateEntry
	}
	if entry.ExternalReference != nil {
		if _, dup := r.byRef[*entry.ExternalReference]; dup {
			return domain.ErrDuplicateEntry
		}
	}
	if entry.ReversalOf != nil {
		if _, dup := r.byReversal[*entry.ReversalOf]; dup {
			return domain.ErrDuplicateEntry
		}
	}

	next := acct.Balance + entry.Delta()
	if next < 0 {
		return domain.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	acct.Balance = next
	acct.UpdatedAt = now
	entry.BalanceAfter = next
	entry.CreatedAt = now

	stored := *entry
	r.entries[entry.ID] = &stored
	r.byKey[entry.IdempotencyKey] = entry.ID
	if entry.ExternalReference != nil {
		r.byRef[*entry.ExternalReference] = entry.ID
	}
	if entry.ReversalOf != nil {
		r.byReversal[*entry.ReversalOf] = entry.ID
	}
	r.order = append(r.order, entry.ID)
	return nil
}

func (r *LedgerRepo) GetEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entryCopy(id), nil
}

func (r *LedgerRepo) FindByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	return r.entryCopy(id), nil
}

func (r *LedgerRepo) FindByExternalReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byRef[reference]
	if !ok {
		return nil, nil
	}
	return r.entryCopy(id), nil
}

func (r *LedgerRepo) FindReversal(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byReversal[entryID]
	if !ok {
		return nil, nil
	}
	return r.entryCopy(id), nil
}

// ListEntries returns entries newest first.
func (r *LedgerRepo) ListEntries(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.LedgerEntry
	for i := len(r.order) - 1; i >= 0; i-- {
		e := r.entries[r.order[i]]
		if e.AccountID != params.AccountID {
			continue
		}
		if params.Direction != nil && e.Direction != *params.Direction {
			continue
		}
		matched = append(matched, *e)
	}
	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func (r *LedgerRepo) entryCopy(id uuid.UUID) *domain.LedgerEntry {
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	out := *e
	return &out
}

func paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortByCreatedDesc(ws []domain.WithdrawalRequest) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].CreatedAt.After(ws[j].CreatedAt)
	})
}
