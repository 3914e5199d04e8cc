package ports

import (
	"context"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// LedgerRepository persists wallet accounts and their append-only entries.
// Read methods return (nil, nil) when nothing matches.
type LedgerRepository interface {
	// EnsureAccount returns the owner's account, creating it at zero balance if absent.
	EnsureAccount(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.WalletAccount, error)
	GetAccountByOwner(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error)

	// Append locks the account, applies entry.Delta() and inserts the entry in one
	// transaction. It fills BalanceAfter and CreatedAt on success.
	// Returns domain.ErrInsufficientBalance when a debit would go negative,
	// domain.ErrDuplicateEntry when the idempotency key, external reference or
	// reversal target is already recorded, and domain.ErrAccountNotFound.
	Append(ctx context.Context, entry *domain.LedgerEntry) error

	GetEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error)
	FindByExternalReference(ctx context.Context, reference string) (*domain.LedgerEntry, error)
	FindReversal(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, params LedgerListParams) ([]domain.LedgerEntry, int64, error)
}

// LedgerListParams holds filter + pagination for an account's history.
type LedgerListParams struct {
	AccountID uuid.UUID
	Direction *domain.EntryDirection
	Page      int
	PageSize  int
}

// WithdrawalRepository persists withdrawal requests with optimistic versioning.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	GetByTransferReference(ctx context.Context, reference string) (*domain.WithdrawalRequest, error)
	// Update writes w only if the stored version still equals w.Version, then
	// increments w.Version. Returns domain.ErrVersionConflict otherwise.
	Update(ctx context.Context, w *domain.WithdrawalRequest) error
	List(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error)
	// ListStale returns requests in one of statuses not updated since olderThan.
	ListStale(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error)
	// ListOutstandingHolds returns requests in one of statuses whose hold has no
	// reversal yet and that were not updated since olderThan.
	ListOutstandingHolds(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error)
}

// OtpRepository persists OTP challenges. Attempt counting and consumption are
// single atomic statements.
type OtpRepository interface {
	// Replace invalidates any active challenge for (SubjectID, Purpose) and stores c.
	// While a challenge for the pair is locked past c.CreatedAt it stores
	// nothing and returns *domain.OtpLockedError.
	Replace(ctx context.Context, c *domain.OtpChallenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OtpChallenge, error)
	// RecordFailure increments attempts on a verifiable challenge and locks it
	// until lockedUntil once attempts reach maxAttempts. A challenge whose
	// lock has elapsed restarts at 1. Returns domain.ErrChallengeNotConsumable
	// if the challenge is no longer verifiable at now.
	RecordFailure(ctx context.Context, id uuid.UUID, now time.Time, maxAttempts int, lockedUntil time.Time) (*domain.OtpFailure, error)
	// Consume marks the challenge used if it is still verifiable at now.
	// Returns domain.ErrChallengeNotConsumable otherwise.
	Consume(ctx context.Context, id uuid.UUID, now time.Time) error
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
