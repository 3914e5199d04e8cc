package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OtpPolicy holds the gate thresholds.
type OtpPolicy struct {
	Length      int
	MaxAttempts int
	Lockout     time.Duration
}

// OtpServiceImpl implements ports.OtpService.
type OtpServiceImpl struct {
	repo    ports.OtpRepository
	hasher  ports.CodeHasher
	policy  OtpPolicy
	now     func() time.Time
	metrics ports.MetricsRecorder
	log     zerolog.Logger
}

// NewOtpService creates a new OtpServiceImpl.
func NewOtpService(repo ports.OtpRepository, hasher ports.CodeHasher, policy OtpPolicy, metrics ports.MetricsRecorder, log zerolog.Logger) *OtpServiceImpl {
	return &OtpServiceImpl{
		repo:    repo,
		hasher:  hasher,
		policy:  policy,
		now:     func() time.Time { return time.Now().UTC() },
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

// Issue supersedes any active challenge for (subjectID, purpose) and returns
// a fresh one with its raw code. Only the hash is stored. A lockout on the
// pair outlives reissue.
func (s *OtpServiceImpl) Issue(ctx context.Context, subjectID uuid.UUID, purpose string, ttl time.Duration) (*domain.OtpChallenge, string, error) {
	if purpose == "" {
		return nil, "", apperror.Validation("otp purpose is required")
	}
	if ttl <= 0 {
		return nil, "", apperror.Validation("otp ttl must be positive")
	}

	code, err := generateNumericCode(s.policy.Length)
	if err != nil {
		return nil, "", apperror.InternalError(fmt.Errorf("generate code: %w", err))
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, "", apperror.InternalError(fmt.Errorf("hash code: %w", err))
	}

	now := s.now()
	c := &domain.OtpChallenge{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.repo.Replace(ctx, c); err != nil {
		var locked *domain.OtpLockedError
		if errors.As(err, &locked) {
			s.metrics.OtpVerification("locked")
			s.log.Warn().
				Str("subject_id", subjectID.String()).
				Str("purpose", purpose).
				Time("locked_until", locked.Until).
				Msg("otp reissue refused during lockout")
			return nil, "", apperror.ErrOtpLocked(locked.Until.Sub(now))
		}
		return nil, "", apperror.InternalError(fmt.Errorf("store challenge: %w", err))
	}

	s.log.Info().
		Str("challenge_id", c.ID.String()).
		Str("subject_id", subjectID.String()).
		Str("purpose", purpose).
		Time("expires_at", c.ExpiresAt).
		Msg("otp challenge issued")

	return c, code, nil
}

// Verify checks code against the challenge. Malformed input is rejected
// before it can count as an attempt; a wrong code increments the counter
// atomically and locks the challenge at the threshold.
func (s *OtpServiceImpl) Verify(ctx context.Context, challengeID uuid.UUID, code string) error {
	code = strings.TrimSpace(code)
	if !isDigits(code, s.policy.Length) {
		s.metrics.OtpVerification("invalid_format")
		return apperror.ErrOtpInvalidFormat(s.policy.Length)
	}

	c, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get challenge: %w", err))
	}
	if c == nil {
		s.metrics.OtpVerification("not_found")
		return apperror.ErrNotFound("Verification challenge")
	}

	now := s.now()
	if err := s.stateError(c, now); err != nil {
		return err
	}

	match, err := s.hasher.Verify(code, c.CodeHash)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify code: %w", err))
	}

	// re-read after hashing so expiry is judged when the write lands
	now = s.now()
	if !match {
		return s.recordFailure(ctx, c, now)
	}

	if err := s.repo.Consume(ctx, c.ID, now); err != nil {
		if errors.Is(err, domain.ErrChallengeNotConsumable) {
			return s.reloadStateError(ctx, c.ID, now)
		}
		return apperror.InternalError(fmt.Errorf("consume challenge: %w", err))
	}

	s.metrics.OtpVerification("success")
	s.log.Info().
		Str("challenge_id", c.ID.String()).
		Str("subject_id", c.SubjectID.String()).
		Msg("otp challenge consumed")
	return nil
}

func (s *OtpServiceImpl) recordFailure(ctx context.Context, c *domain.OtpChallenge, now time.Time) error {
	f, err := s.repo.RecordFailure(ctx, c.ID, now, s.policy.MaxAttempts, now.Add(s.policy.Lockout))
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotConsumable) {
			return s.reloadStateError(ctx, c.ID, now)
		}
		return apperror.InternalError(fmt.Errorf("record failure: %w", err))
	}

	if f.LockedUntil != nil && now.Before(*f.LockedUntil) {
		s.metrics.OtpVerification("locked")
		s.log.Warn().
			Str("challenge_id", c.ID.String()).
			Str("subject_id", c.SubjectID.String()).
			Int("attempts", f.Attempts).
			Time("locked_until", *f.LockedUntil).
			Msg("otp challenge locked")
		return apperror.ErrOtpLocked(f.LockedUntil.Sub(now))
	}

	s.metrics.OtpVerification("mismatch")
	remaining := s.policy.MaxAttempts - f.Attempts
	if remaining < 0 {
		remaining = 0
	}
	return apperror.ErrOtpMismatch(remaining)
}

func (s *OtpServiceImpl) reloadStateError(ctx context.Context, id uuid.UUID, now time.Time) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("reload challenge: %w", err))
	}
	if c == nil {
		return apperror.ErrNotFound("Verification challenge")
	}
	if err := s.stateError(c, now); err != nil {
		return err
	}
	return apperror.InternalError(fmt.Errorf("challenge %s changed concurrently", id))
}

// stateError maps a non-active challenge to its client error, or nil if active.
func (s *OtpServiceImpl) stateError(c *domain.OtpChallenge, now time.Time) error {
	switch c.StateAt(now) {
	case domain.OtpConsumed:
		s.metrics.OtpVerification("consumed")
		return apperror.ErrOtpAlreadyUsed()
	case domain.OtpExpired:
		s.metrics.OtpVerification("expired")
		return apperror.ErrOtpExpired()
	case domain.OtpLocked:
		s.metrics.OtpVerification("locked")
		return apperror.ErrOtpLocked(c.LockRemaining(now))
	default:
		return nil
	}
}

func generateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
