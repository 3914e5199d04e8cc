package memory

import (
	"context"
	"sync"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// OtpRepo implements ports.OtpRepository.
type OtpRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.OtpChallenge
}

// NewOtpRepo creates an empty OtpRepo.
func NewOtpRepo() *OtpRepo {
	return &OtpRepo{items: make(map[uuid.UUID]*domain.OtpChallenge)}
}

func (r *OtpRepo) Replace(ctx context.Context, c *domain.OtpChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := c.CreatedAt
	var open []*domain.OtpChallenge
	for _, existing := range r.items {
		if existing.SubjectID != c.SubjectID || existing.Purpose != c.Purpose {
			continue
		}
		if existing.ConsumedAt != nil || existing.InvalidatedAt != nil {
			continue
		}
		if existing.LockedUntil != nil && now.Before(*existing.LockedUntil) {
			return &domain.OtpLockedError{Until: *existing.LockedUntil}
		}
		open = append(open, existing)
	}

	for _, existing := range open {
		at := now
		existing.InvalidatedAt = &at
	}
	stored := *c
	r.items[c.ID] = &stored
	return nil
}

func (r *OtpRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OtpChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *OtpRepo) RecordFailure(ctx context.Context, id uuid.UUID, now time.Time, maxAttempts int, lockedUntil time.Time) (*domain.OtpFailure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok || c.StateAt(now) != domain.OtpActive {
		return nil, domain.ErrChallengeNotConsumable
	}

	// an elapsed lock starts a fresh window
	if c.LockedUntil != nil {
		c.Attempts = 0
		c.LockedUntil = nil
	}
	c.Attempts++
	if c.Attempts >= maxAttempts {
		until := lockedUntil
		c.LockedUntil = &until
	}

	out := &domain.OtpFailure{Attempts: c.Attempts}
	if c.LockedUntil != nil {
		until := *c.LockedUntil
		out.LockedUntil = &until
	}
	return out, nil
}

func (r *OtpRepo) Consume(ctx context.Context, id uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok || c.StateAt(now) != domain.OtpActive {
		return domain.ErrChallengeNotConsumable
	}
	at := now
	c.ConsumedAt = &at
	return nil
}
