package postgres

import (
	"context"
	"testing"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChallenge(now time.Time) *domain.OtpChallenge {
	return &domain.OtpChallenge{
		ID:        uuid.New(),
		SubjectID: uuid.New(),
		Purpose:   domain.OtpPurposePayoutConfirm,
		CodeHash:  "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}
}

func TestOtpRepo_Replace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOtpRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := newTestChallenge(now)
	elapsed := now.Add(-time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE otp_challenges SET invalidated_at = \\$3 WHERE subject_id = \\$1 AND purpose = \\$2 .+ RETURNING locked_until").
		WithArgs(c.SubjectID, c.Purpose, c.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"locked_until"}).
			AddRow((*time.Time)(nil)).
			AddRow(&elapsed))
	mock.ExpectExec("INSERT INTO otp_challenges").
		WithArgs(c.ID, c.SubjectID, c.Purpose, c.CodeHash, c.ExpiresAt, 0, c.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Replace(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpRepo_Replace_RefusedWhileLocked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOtpRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := newTestChallenge(now)
	lockedUntil := now.Add(12 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE otp_challenges SET invalidated_at .+ RETURNING locked_until").
		WithArgs(c.SubjectID, c.Purpose, c.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"locked_until"}).AddRow(&lockedUntil))
	mock.ExpectRollback()

	err = repo.Replace(context.Background(), c)
	var locked *domain.OtpLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, lockedUntil, locked.Until)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOtpRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()
	locked := now.Add(5 * time.Minute)

	mock.ExpectQuery("SELECT .+ FROM otp_challenges WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "subject_id", "purpose", "code_hash", "expires_at", "attempts",
			"locked_until", "consumed_at", "invalidated_at", "created_at"}).
			AddRow(id, uuid.New(), domain.OtpPurposePayoutConfirm, "hash", now.Add(time.Minute), 5,
				&locked, (*time.Time)(nil), (*time.Time)(nil), now))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Attempts)
	assert.Equal(t, domain.OtpLocked, got.StateAt(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpRepo_RecordFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOtpRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()
	lockUntil := now.Add(15 * time.Minute)

	mock.ExpectQuery("UPDATE otp_challenges SET attempts = CASE .+ RETURNING attempts, locked_until").
		WithArgs(id, now, 5, lockUntil).
		WillReturnRows(pgxmock.NewRows([]string{"attempts", "locked_until"}).AddRow(5, &lockUntil))

	f, err := repo.RecordFailure(context.Background(), id, now, 5, lockUntil)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Attempts)
	require.NotNil(t, f.LockedUntil)
	assert.Equal(t, lockUntil, *f.LockedUntil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpRepo_RecordFailure_NotVerifiable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOtpRepo(mock)

	mock.ExpectQuery("UPDATE otp_challenges SET attempts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 5, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"attempts", "locked_until"}))

	_, err = repo.RecordFailure(context.Background(), uuid.New(), time.Now(), 5, time.Now().Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrChallengeNotConsumable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpRepo_Consume(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "first consumer wins", affected: 1},
		{name: "already consumed", affected: 0, wantErr: domain.ErrChallengeNotConsumable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewOtpRepo(mock)
			id := uuid.New()
			now := time.Now().UTC()

			mock.ExpectExec("UPDATE otp_challenges SET consumed_at = \\$2 WHERE id = \\$1 AND consumed_at IS NULL .+ GREATEST\\(\\$2::timestamptz, NOW\\(\\)\\)").
				WithArgs(id, now).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			err = repo.Consume(context.Background(), id, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
