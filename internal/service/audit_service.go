package service

import (
	"context"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditServiceImpl implements ports.AuditService.
type AuditServiceImpl struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit events are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditServiceImpl {
	return &AuditServiceImpl{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
// A persistence failure never reaches the caller.
func (s *AuditServiceImpl) Log(ctx context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	record := *entry

	go func() {
		ev := s.log.Info().
			Str("action", string(record.Action)).
			Str("resource_type", record.ResourceType).
			Str("resource_id", record.ResourceID).
			Str("ip", record.IPAddress)
		if record.ActorID != nil {
			ev = ev.Str("actor_id", record.ActorID.String()).Str("actor_role", record.ActorRole)
		}
		ev.Msg("audit")

		if s.repo == nil {
			return
		}
		if err := s.repo.Create(context.WithoutCancel(ctx), &record); err != nil {
			s.log.Warn().Err(err).Str("action", string(record.Action)).Msg("failed to persist audit log")
		}
	}()
}
