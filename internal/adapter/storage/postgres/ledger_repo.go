package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	accountColumns = `id, owner_id, currency, balance, created_at, updated_at`
	entryColumns   = `id, account_id, direction, amount, external_reference, idempotency_key,
		related_request_id, reversal_of, balance_after, metadata, created_at`
)

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// EnsureAccount creates the owner's account on first use. The no-op update
// makes RETURNING yield the existing row on conflict.
func (r *LedgerRepo) EnsureAccount(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error) {
	query := `INSERT INTO wallet_accounts (id, owner_id, currency, balance)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (owner_id, currency) DO UPDATE SET owner_id = EXCLUDED.owner_id
		RETURNING ` + accountColumns

	acct, err := scanAccount(r.pool.QueryRow(ctx, query, uuid.New(), ownerID, currency))
	if err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}
	return acct, nil
}

// GetAccount fetches an account by ID (without locking).
func (r *LedgerRepo) GetAccount(ctx context.Context, id uuid.UUID) (*domain.WalletAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM wallet_accounts WHERE id = $1`

	acct, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return acct, nil
}

// GetAccountByOwner fetches an account by owner and currency.
func (r *LedgerRepo) GetAccountByOwner(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.WalletAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM wallet_accounts WHERE owner_id = $1 AND currency = $2`

	acct, err := scanAccount(r.pool.QueryRow(ctx, query, ownerID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by owner: %w", err)
	}
	return acct, nil
}

// Append locks the account row, inserts the entry and moves the balance in
// one transaction. The insert runs before the balance check so a replayed
// key is reported as a duplicate even when funds have since been spent.
func (r *LedgerRepo) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	metadata, err := marshalMetadata(entry.Metadata)
	if err != nil {
		return err
	}

	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var balance int64
		err := tx.QueryRow(ctx, `SELECT balance FROM wallet_accounts WHERE id = $1 FOR UPDATE`, entry.AccountID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrAccountNotFound
			}
			return fmt.Errorf("lock account: %w", err)
		}

		next := balance + entry.Delta()
		insert := `INSERT INTO ledger_entries (id, account_id, direction, amount, external_reference, idempotency_key,
			related_request_id, reversal_of, balance_after, metadata)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at`

		err = tx.QueryRow(ctx, insert,
			entry.ID, entry.AccountID, entry.Direction, entry.Amount, entry.ExternalReference,
			entry.IdempotencyKey, entry.RelatedRequestID, entry.ReversalOf, max(next, 0), metadata,
		).Scan(&entry.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateEntry
			}
			return fmt.Errorf("insert ledger entry: %w", err)
		}

		if next < 0 {
			return domain.ErrInsufficientBalance
		}

		tag, err := tx.Exec(ctx, `UPDATE wallet_accounts SET balance = $1, updated_at = NOW() WHERE id = $2`, next, entry.AccountID)
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAccountNotFound
		}

		entry.BalanceAfter = next
		return nil
	})
}

// GetEntry fetches a ledger entry by ID.
func (r *LedgerRepo) GetEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, "id = $1", id)
}

func (r *LedgerRepo) FindByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, "idempotency_key = $1", key)
}

func (r *LedgerRepo) FindByExternalReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, "external_reference = $1", reference)
}

func (r *LedgerRepo) FindReversal(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, "reversal_of = $1", entryID)
}

// ListEntries returns an account's entries newest first.
func (r *LedgerRepo) ListEntries(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	where := "WHERE account_id = $1"
	args := []any{params.AccountID}
	if params.Direction != nil {
		where += " AND direction = $2"
		args = append(args, *params.Direction)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ledger_entries "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM ledger_entries %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, total, nil
}

func (r *LedgerRepo) findEntry(ctx context.Context, cond string, arg any) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE ` + cond

	e, err := scanEntry(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

func scanAccount(row pgx.Row) (*domain.WalletAccount, error) {
	a := &domain.WalletAccount{}
	err := row.Scan(&a.ID, &a.OwnerID, &a.Currency, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var metadata []byte
	err := row.Scan(
		&e.ID, &e.AccountID, &e.Direction, &e.Amount, &e.ExternalReference, &e.IdempotencyKey,
		&e.RelatedRequestID, &e.ReversalOf, &e.BalanceAfter, &metadata, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode entry metadata: %w", err)
		}
	}
	return e, nil
}

func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode entry metadata: %w", err)
	}
	return data, nil
}
