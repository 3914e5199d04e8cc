package postgres

// Store bundles the repositories of one database.
type Store struct {
	Ledger      *LedgerRepo
	Withdrawals *WithdrawalRepo
	Otps        *OtpRepo
	Audit       *AuditRepo
	Health      *HealthCheck
}

// NewStore wires every repository onto pool.
func NewStore(pool Pool) *Store {
	return &Store{
		Ledger:      NewLedgerRepo(pool),
		Withdrawals: NewWithdrawalRepo(pool),
		Otps:        NewOtpRepo(pool),
		Audit:       NewAuditRepo(pool),
		Health:      NewHealthCheck(pool),
	}
}
