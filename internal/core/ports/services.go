package ports

import (
	"context"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// --- Infrastructure Ports ---

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA512 signing and verification over raw bytes.
type SignatureService interface {
	Sign(secret string, payload []byte) string
	Verify(secret string, payload []byte, signature string) bool
}

// CodeHasher hashes short one-time codes (Argon2id).
type CodeHasher interface {
	Hash(code string) (string, error)
	Verify(code string, hash string) (bool, error)
}

// TokenService issues and validates per-audience JWTs.
type TokenService interface {
	Generate(subjectID uuid.UUID, role domain.Role) (string, time.Time, error)
	Validate(tokenString string) (domain.Identity, error)
}

// RateLimitResult contains the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter is how long until the window resets.
func (r *RateLimitResult) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RateLimitStore counts hits per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// DedupStore claims one-shot keys (webhook fast path).
type DedupStore interface {
	// Claim returns true if the key was not yet claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops a claim so a failed delivery can be retried by the sender.
	Release(ctx context.Context, key string) error
}

// RiskSignalStore records what each subject was last seen with and derives
// change signals from it.
type RiskSignalStore interface {
	Observe(ctx context.Context, obs domain.RiskObservation) (*domain.SecurityRiskSignal, error)
}

// TransferProvider is the external payout rail.
type TransferProvider interface {
	// Initiate submits a payout. order.Reference is the idempotency key.
	Initiate(ctx context.Context, order domain.TransferOrder) (string, error)
	CheckStatus(ctx context.Context, reference string) (*domain.TransferStatus, error)
}

// ChargeGateway collects buyer funds for top-ups.
type ChargeGateway interface {
	InitializeCharge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeSession, error)
	VerifyCharge(ctx context.Context, reference string) (*domain.ChargeResult, error)
}

// TaskHandler processes one task. A returned error requests redelivery.
type TaskHandler func(ctx context.Context, task *domain.Task) error

// TaskQueue provides at-least-once background execution.
type TaskQueue interface {
	Enqueue(ctx context.Context, task *domain.Task) error
	// Consume runs handler for each task until ctx is done.
	Consume(ctx context.Context, handler TaskHandler) error
	Close() error
}

// NotificationSender delivers to the external email/SMS collaborator.
type NotificationSender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// MetricsRecorder receives business counters.
type MetricsRecorder interface {
	LedgerEntry(direction domain.EntryDirection)
	WithdrawalTransition(from, to domain.WithdrawalStatus)
	OtpVerification(result string)
	WebhookEvent(eventType, outcome string)
	RateLimited(action string)
	RiskDecision(action string, level domain.RiskLevel, policy domain.RiskPolicy)
	ProviderCall(op, outcome string)
	TaskEnqueued(taskType domain.TaskType, outcome string)
}

// --- Service Ports (Business Logic) ---

// LedgerService is the wallet ledger.
type LedgerService interface {
	// Credit returns the prior entry together with a DuplicateReference error
	// when externalReference was already applied.
	Credit(ctx context.Context, accountID uuid.UUID, amount int64, externalReference string, metadata map[string]string) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, accountID uuid.UUID, amount int64, relatedRequestID uuid.UUID) (*domain.LedgerEntry, error)
	Reverse(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error)
	// EnsureReversed is Reverse that returns the existing reversal instead of failing.
	EnsureReversed(ctx context.Context, entryID uuid.UUID) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
	Account(ctx context.Context, ownerID uuid.UUID) (*domain.WalletAccount, error)
	History(ctx context.Context, params LedgerListParams) ([]domain.LedgerEntry, int64, error)
}

// OtpService is the OTP authorization gate.
type OtpService interface {
	// Issue returns the stored challenge and the raw code for out-of-band delivery.
	Issue(ctx context.Context, subjectID uuid.UUID, purpose string, ttl time.Duration) (*domain.OtpChallenge, string, error)
	Verify(ctx context.Context, challengeID uuid.UUID, code string) error
}

// WithdrawalService drives the payout state machine.
type WithdrawalService interface {
	Create(ctx context.Context, req CreateWithdrawalRequest) (*domain.WithdrawalRequest, error)
	Get(ctx context.Context, id domain.Identity, requestID uuid.UUID) (*domain.WithdrawalRequest, error)
	List(ctx context.Context, id domain.Identity, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error)
	Approve(ctx context.Context, requestID, adminID uuid.UUID) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, requestID, adminID uuid.UUID, reason string) (*domain.WithdrawalRequest, error)
	InitiateTransfer(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error)
	RequestOtp(ctx context.Context, requestID, sellerID uuid.UUID) (*domain.WithdrawalRequest, error)
	ConfirmOtp(ctx context.Context, requestID, sellerID uuid.UUID, code string) (*domain.WithdrawalRequest, error)
	VerifyTransferStatus(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error)
	Cancel(ctx context.Context, requestID, sellerID uuid.UUID) (*domain.WithdrawalRequest, error)
	RequestReversal(ctx context.Context, id domain.Identity, requestID uuid.UUID, reason string) (*domain.WithdrawalRequest, error)
	ResolveReversal(ctx context.Context, requestID, adminID uuid.UUID, approve bool) (*domain.WithdrawalRequest, error)
	ApplyTransferOutcome(ctx context.Context, reference string, status domain.TransferStatus) error
	Sweep(ctx context.Context) (int, error)
}

// CreateWithdrawalRequest holds validated input for a payout request.
type CreateWithdrawalRequest struct {
	SellerID      uuid.UUID
	Amount        int64
	Type          domain.DestinationType
	BankCode      string
	AccountNumber string
	AccountName   string
}

// WalletService handles buyer top-ups.
type WalletService interface {
	InitiateTopup(ctx context.Context, ownerID uuid.UUID, email string, amount int64) (*domain.ChargeSession, error)
	VerifyTopup(ctx context.Context, ownerID uuid.UUID, reference string) (*domain.LedgerEntry, error)
}

// WebhookService ingests processor events.
type WebhookService interface {
	// Verify fails closed when no secret is configured.
	Verify(rawBody []byte, signature string) error
	// Ingest applies a verified event. Business failures are logged, not returned.
	Ingest(ctx context.Context, rawBody []byte)
}

// RiskService evaluates sensitive actions against rate limits and risk policy.
type RiskService interface {
	// CheckRate counts one hit for (action, subject). The result is nil when
	// the action has no rule or the limiter is unavailable.
	CheckRate(ctx context.Context, action string, subject string) (*RateLimitResult, error)
	Assess(ctx context.Context, action string, obs domain.RiskObservation, policy domain.RiskPolicy, threshold domain.RiskLevel) (*domain.SecurityRiskSignal, error)
}

// StepUpService issues and checks the extra confirmation a step_up risk
// policy demands.
type StepUpService interface {
	// Begin sends a code to the subject out of band.
	Begin(ctx context.Context, subjectID uuid.UUID) (*domain.OtpChallenge, error)
	// Confirm verifies code against a step-up challenge owned by subjectID.
	Confirm(ctx context.Context, subjectID, challengeID uuid.UUID, code string) error
}

// AuditService records audit events asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// NotificationService queues deliveries without blocking the money path.
type NotificationService interface {
	Notify(ctx context.Context, taskType domain.TaskType, n domain.Notification)
	Deliver(ctx context.Context, task *domain.Task) error
}
