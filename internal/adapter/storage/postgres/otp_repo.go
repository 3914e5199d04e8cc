package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// verifiable is the predicate for a challenge that may still be checked at $2.
// Expiry is also held against the database clock.
const verifiable = `consumed_at IS NULL AND invalidated_at IS NULL
	AND expires_at > GREATEST($2::timestamptz, NOW())
	AND (locked_until IS NULL OR locked_until <= $2)`

// OtpRepo implements ports.OtpRepository.
type OtpRepo struct {
	pool Pool
}

// NewOtpRepo creates a new OtpRepo.
func NewOtpRepo(pool Pool) *OtpRepo {
	return &OtpRepo{pool: pool}
}

// Replace supersedes the subject's open challenges for the purpose and stores c.
// The invalidating UPDATE takes the row locks first, so a failure recorded
// concurrently is seen before the lockout check.
func (r *OtpRepo) Replace(ctx context.Context, c *domain.OtpChallenge) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `UPDATE otp_challenges SET invalidated_at = $3
			WHERE subject_id = $1 AND purpose = $2 AND consumed_at IS NULL AND invalidated_at IS NULL
			RETURNING locked_until`,
			c.SubjectID, c.Purpose, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("invalidate otp challenges: %w", err)
		}
		var lockedUntil *time.Time
		for rows.Next() {
			var until *time.Time
			if err := rows.Scan(&until); err != nil {
				rows.Close()
				return fmt.Errorf("scan otp lock: %w", err)
			}
			if until != nil && c.CreatedAt.Before(*until) && (lockedUntil == nil || until.After(*lockedUntil)) {
				lockedUntil = until
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("invalidate otp challenges: %w", err)
		}
		if lockedUntil != nil {
			// rolls back the invalidation
			return &domain.OtpLockedError{Until: *lockedUntil}
		}

		_, err = tx.Exec(ctx, `INSERT INTO otp_challenges (id, subject_id, purpose, code_hash, expires_at, attempts, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.SubjectID, c.Purpose, c.CodeHash, c.ExpiresAt, c.Attempts, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert otp challenge: %w", err)
		}
		return nil
	})
}

// GetByID fetches a challenge by UUID.
func (r *OtpRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OtpChallenge, error) {
	query := `SELECT id, subject_id, purpose, code_hash, expires_at, attempts, locked_until, consumed_at, invalidated_at, created_at
		FROM otp_challenges WHERE id = $1`

	c := &domain.OtpChallenge{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SubjectID, &c.Purpose, &c.CodeHash, &c.ExpiresAt, &c.Attempts,
		&c.LockedUntil, &c.ConsumedAt, &c.InvalidatedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp challenge: %w", err)
	}
	return c, nil
}

// RecordFailure counts a wrong code in a single statement. A challenge whose
// lock has elapsed starts a fresh round at 1.
func (r *OtpRepo) RecordFailure(ctx context.Context, id uuid.UUID, now time.Time, maxAttempts int, lockedUntil time.Time) (*domain.OtpFailure, error) {
	query := `UPDATE otp_challenges SET
		attempts = CASE WHEN locked_until IS NOT NULL THEN 1 ELSE attempts + 1 END,
		locked_until = CASE
			WHEN (CASE WHEN locked_until IS NOT NULL THEN 1 ELSE attempts + 1 END) >= $3 THEN $4
			ELSE NULL
		END
		WHERE id = $1 AND ` + verifiable + `
		RETURNING attempts, locked_until`

	f := &domain.OtpFailure{}
	err := r.pool.QueryRow(ctx, query, id, now, maxAttempts, lockedUntil).Scan(&f.Attempts, &f.LockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChallengeNotConsumable
		}
		return nil, fmt.Errorf("record otp failure: %w", err)
	}
	return f, nil
}

// Consume marks the challenge used. Exactly one concurrent caller wins.
func (r *OtpRepo) Consume(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE otp_challenges SET consumed_at = $2 WHERE id = $1 AND `+verifiable, id, now)
	if err != nil {
		return fmt.Errorf("consume otp challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChallengeNotConsumable
	}
	return nil
}
