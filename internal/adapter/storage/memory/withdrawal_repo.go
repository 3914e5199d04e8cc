package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// WithdrawalRepo implements ports.WithdrawalRepository with version checks.
type WithdrawalRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*domain.WithdrawalRequest
}

// NewWithdrawalRepo creates an empty WithdrawalRepo.
func NewWithdrawalRepo() *WithdrawalRepo {
	return &WithdrawalRepo{items: make(map[uuid.UUID]*domain.WithdrawalRequest)}
}

func (r *WithdrawalRepo) Create(ctx context.Context, w *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[w.ID]; exists {
		return fmt.Errorf("withdrawal %s already exists", w.ID)
	}
	stored := *w
	r.items[w.ID] = &stored
	return nil
}

func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	out := *w
	return &out, nil
}

func (r *WithdrawalRepo) GetByTransferReference(ctx context.Context, reference string) (*domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.items {
		if w.TransferReference != nil && *w.TransferReference == reference {
			out := *w
			return &out, nil
		}
	}
	return nil, nil
}

// Update is a compare-and-swap on Version.
func (r *WithdrawalRepo) Update(ctx context.Context, w *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[w.ID]
	if !ok || cur.Version != w.Version {
		return domain.ErrVersionConflict
	}

	w.Version++
	w.UpdatedAt = time.Now().UTC()
	stored := *w
	r.items[w.ID] = &stored
	return nil
}

func (r *WithdrawalRepo) List(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.WithdrawalRequest
	for _, w := range r.items {
		if params.SellerID != nil && w.SellerID != *params.SellerID {
			continue
		}
		if params.Status != nil && w.Status != *params.Status {
			continue
		}
		matched = append(matched, *w)
	}
	sortByCreatedDesc(matched)
	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func (r *WithdrawalRepo) ListStale(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[domain.WithdrawalStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}

	var out []domain.WithdrawalRequest
	for _, w := range r.items {
		if want[w.Status] && w.UpdatedAt.Before(olderThan) {
			out = append(out, *w)
		}
	}
	sortByCreatedDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WithdrawalRepo) ListOutstandingHolds(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error) {
	stale, err := r.ListStale(ctx, statuses, olderThan, 0)
	if err != nil {
		return nil, err
	}

	var out []domain.WithdrawalRequest
	for _, w := range stale {
		if w.NeedsReversal() {
			out = append(out, w)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
