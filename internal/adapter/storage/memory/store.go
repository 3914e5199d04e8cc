package memory

import "context"

// Store bundles the repositories of the memory driver.
type Store struct {
	Ledger      *LedgerRepo
	Withdrawals *WithdrawalRepo
	Otps        *OtpRepo
	Audit       *AuditRepo
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Ledger:      NewLedgerRepo(),
		Withdrawals: NewWithdrawalRepo(),
		Otps:        NewOtpRepo(),
		Audit:       NewAuditRepo(),
	}
}

// Ping always succeeds; it lets the store stand in as a health checker.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "memory"
}
