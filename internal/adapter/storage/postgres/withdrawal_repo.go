package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const withdrawalColumns = `id, seller_id, account_id, amount, currency, destination_type, bank_code, account_name,
	account_last4, account_number_enc, status, approved_by, hold_entry_id, transfer_reference, otp_challenge_id,
	otp_confirmed_at, failure_reason, reversal_entry_id, status_checks, version, created_at, updated_at`

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a new withdrawal request.
func (r *WithdrawalRepo) Create(ctx context.Context, w *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (id, seller_id, account_id, amount, currency, destination_type,
		bank_code, account_name, account_last4, account_number_enc, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.SellerID, w.AccountID, w.Amount, w.Currency, w.Destination.Type,
		w.Destination.BankCode, w.Destination.AccountName, w.Destination.AccountLast4, w.Destination.AccountNumberEnc,
		w.Status, w.Version, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID fetches a withdrawal request by UUID.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByTransferReference fetches the request a provider reference belongs to.
func (r *WithdrawalRepo) GetByTransferReference(ctx context.Context, reference string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE transfer_reference = $1`
	return r.getOne(ctx, query, reference)
}

// Update writes every mutable field if the stored version still matches.
func (r *WithdrawalRepo) Update(ctx context.Context, w *domain.WithdrawalRequest) error {
	query := `UPDATE withdrawal_requests SET
		status = $1, approved_by = $2, hold_entry_id = $3, transfer_reference = $4, otp_challenge_id = $5,
		otp_confirmed_at = $6, failure_reason = $7, reversal_entry_id = $8, status_checks = $9,
		version = version + 1, updated_at = NOW()
		WHERE id = $10 AND version = $11
		RETURNING version, updated_at`

	err := r.pool.QueryRow(ctx, query,
		w.Status, w.ApprovedBy, w.HoldEntryID, w.TransferReference, w.OtpChallengeID,
		w.OtpConfirmedAt, w.FailureReason, w.ReversalEntryID, w.StatusChecks,
		w.ID, w.Version,
	).Scan(&w.Version, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("update withdrawal: %w", err)
	}
	return nil
}

// List fetches withdrawal requests with filtering and pagination.
func (r *WithdrawalRepo) List(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf("seller_id = $%d", argIdx))
		args = append(args, *params.SellerID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM withdrawal_requests "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM withdrawal_requests %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		withdrawalColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	out, err := r.query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListStale returns the oldest untouched requests in statuses.
func (r *WithdrawalRepo) ListStale(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests
		WHERE status = ANY($1) AND updated_at < $2
		ORDER BY updated_at LIMIT $3`
	return r.query(ctx, query, statusStrings(statuses), olderThan, limit)
}

// ListOutstandingHolds is ListStale restricted to requests whose hold is not yet released.
func (r *WithdrawalRepo) ListOutstandingHolds(ctx context.Context, statuses []domain.WithdrawalStatus, olderThan time.Time, limit int) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests
		WHERE status = ANY($1) AND updated_at < $2
		AND hold_entry_id IS NOT NULL AND reversal_entry_id IS NULL
		ORDER BY updated_at LIMIT $3`
	return r.query(ctx, query, statusStrings(statuses), olderThan, limit)
}

func (r *WithdrawalRepo) getOne(ctx context.Context, query string, arg any) (*domain.WithdrawalRequest, error) {
	w, err := scanWithdrawal(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return w, nil
}

func (r *WithdrawalRepo) query(ctx context.Context, query string, args ...any) ([]domain.WithdrawalRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return out, nil
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	err := row.Scan(
		&w.ID, &w.SellerID, &w.AccountID, &w.Amount, &w.Currency, &w.Destination.Type,
		&w.Destination.BankCode, &w.Destination.AccountName, &w.Destination.AccountLast4, &w.Destination.AccountNumberEnc,
		&w.Status, &w.ApprovedBy, &w.HoldEntryID, &w.TransferReference, &w.OtpChallengeID,
		&w.OtpConfirmedAt, &w.FailureReason, &w.ReversalEntryID, &w.StatusChecks, &w.Version,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func statusStrings(statuses []domain.WithdrawalStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
