package memory

import (
	"context"
	"sync"

	"marketplace-wallet/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository as an append-only slice.
type AuditRepo struct {
	mu   sync.RWMutex
	logs []domain.AuditLog
}

// NewAuditRepo creates an empty AuditRepo.
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

// Logs returns a snapshot of everything recorded so far.
func (r *AuditRepo) Logs() []domain.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out
}
