package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/internal/core/ports/mocks"
	"marketplace-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Details   map[string]any  `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// engineAs mounts h behind a stub that plays the part of Authorize.
func engineAs(id *domain.Identity, method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if id != nil {
		ident := *id
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CtxIdentity, ident)
			c.Next()
		})
	}
	r.Handle(method, path, h)
	return r
}

func do(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seller() *domain.Identity {
	return &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleSeller}
}

func sampleWithdrawal(sellerID uuid.UUID, status domain.WithdrawalStatus) *domain.WithdrawalRequest {
	now := time.Now().UTC()
	return &domain.WithdrawalRequest{
		ID:       uuid.New(),
		SellerID: sellerID,
		Amount:   5000,
		Currency: "NGN",
		Destination: domain.Destination{
			Type:             domain.DestinationBank,
			BankCode:         "058",
			AccountName:      "Ada Obi",
			AccountLast4:     "6789",
			AccountNumberEnc: "ciphertext",
		},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- Wallet ---

func TestWalletHandler_GetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockLedgerService(ctrl)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}
	acct := &domain.WalletAccount{ID: uuid.New(), OwnerID: id.SubjectID, Balance: 12500, Currency: "NGN"}

	ledger.EXPECT().Account(gomock.Any(), id.SubjectID).Return(acct, nil)

	h := NewWalletHandler(ledger, nil)
	w := do(engineAs(id, http.MethodGet, "/balance", h.GetBalance), http.MethodGet, "/balance", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, float64(12500), got["balance"])
	assert.Equal(t, acct.ID.String(), got["account_id"])
}

func TestWalletHandler_GetBalance_Unauthenticated(t *testing.T) {
	h := NewWalletHandler(nil, nil)
	w := do(engineAs(nil, http.MethodGet, "/balance", h.GetBalance), http.MethodGet, "/balance", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decode(t, w).ErrorCode)
}

func TestWalletHandler_History_FiltersAndPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockLedgerService(ctrl)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}
	acct := &domain.WalletAccount{ID: uuid.New(), OwnerID: id.SubjectID, Currency: "NGN"}
	ref := "chg_1"

	ledger.EXPECT().Account(gomock.Any(), id.SubjectID).Return(acct, nil)
	ledger.EXPECT().History(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
			assert.Equal(t, acct.ID, p.AccountID)
			require.NotNil(t, p.Direction)
			assert.Equal(t, domain.DirectionCredit, *p.Direction)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, defaultPageSize, p.PageSize)
			return []domain.LedgerEntry{{
				ID: uuid.New(), AccountID: acct.ID, Direction: domain.DirectionCredit,
				Amount: 700, BalanceAfter: 700, ExternalReference: &ref,
			}}, 1, nil
		})

	h := NewWalletHandler(ledger, nil)
	r := engineAs(id, http.MethodGet, "/entries", h.History)
	w := do(r, http.MethodGet, "/entries?direction=credit", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
		Page  int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, int64(1), got.Total)
	assert.Equal(t, 1, got.Page)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "chg_1", got.Items[0]["external_reference"])
}

func TestWalletHandler_History_RejectsBadDirection(t *testing.T) {
	h := NewWalletHandler(nil, nil)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}
	w := do(engineAs(id, http.MethodGet, "/entries", h.History), http.MethodGet, "/entries?direction=sideways", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decode(t, w).ErrorCode)
}

func TestWalletHandler_InitiateTopup(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallets := mocks.NewMockWalletService(ctrl)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}

	wallets.EXPECT().InitiateTopup(gomock.Any(), id.SubjectID, "buyer@example.com", int64(20000)).
		Return(&domain.ChargeSession{Reference: "tpu_1", AuthorizationURL: "https://pay.example/tpu_1"}, nil)

	h := NewWalletHandler(nil, wallets)
	r := engineAs(id, http.MethodPost, "/topups", h.InitiateTopup)
	w := do(r, http.MethodPost, "/topups", map[string]any{"amount": 20000, "email": "buyer@example.com"})

	require.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, "tpu_1", got["reference"])
}

func TestWalletHandler_InitiateTopup_Validation(t *testing.T) {
	h := NewWalletHandler(nil, nil)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}
	r := engineAs(id, http.MethodPost, "/topups", h.InitiateTopup)

	for name, body := range map[string]any{
		"zero amount": map[string]any{"amount": 0, "email": "a@b.co"},
		"bad email":   map[string]any{"amount": 100, "email": "nope"},
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/topups", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VAL_001", decode(t, w).ErrorCode)
		})
	}
}

func TestWalletHandler_VerifyTopup_PropagatesNotSettled(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallets := mocks.NewMockWalletService(ctrl)
	id := &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleBuyer}

	wallets.EXPECT().VerifyTopup(gomock.Any(), id.SubjectID, "tpu_9").
		Return(nil, apperror.ErrChargeNotSettled("pending"))

	h := NewWalletHandler(nil, wallets)
	r := engineAs(id, http.MethodPost, "/topups/:reference/verify", h.VerifyTopup)
	w := do(r, http.MethodPost, "/topups/tpu_9/verify", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PRV_003", decode(t, w).ErrorCode)
}

// --- Withdrawals ---

func TestWithdrawalHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()
	created := sampleWithdrawal(id.SubjectID, domain.WithdrawalPending)

	svc.EXPECT().Create(gomock.Any(), ports.CreateWithdrawalRequest{
		SellerID:      id.SubjectID,
		Amount:        5000,
		Type:          domain.DestinationBank,
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ada Obi",
	}).Return(created, nil)

	h := NewWithdrawalHandler(svc)
	r := engineAs(id, http.MethodPost, "/withdrawals", h.Create)
	w := do(r, http.MethodPost, "/withdrawals", map[string]any{
		"amount": 5000, "type": "bank", "bank_code": "058",
		"account_number": "0123456789", "account_name": "  Ada Obi ",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, "pending", got["status"])
	assert.Equal(t, "6789", got["account_last4"])
	assert.NotContains(t, w.Body.String(), "0123456789")
	assert.NotContains(t, w.Body.String(), "ciphertext")
}

func TestWithdrawalHandler_Create_Validation(t *testing.T) {
	h := NewWithdrawalHandler(nil)
	r := engineAs(seller(), http.MethodPost, "/withdrawals", h.Create)

	cases := map[string]map[string]any{
		"bank without code": {"amount": 100, "type": "bank", "account_number": "0123456789", "account_name": "A"},
		"unknown rail":      {"amount": 100, "type": "cheque", "account_number": "0123456789", "account_name": "A"},
		"letters in number": {"amount": 100, "type": "mobile_money", "account_number": "12ab5678", "account_name": "A"},
		"negative amount":   {"amount": -1, "type": "mobile_money", "account_number": "+233201234567", "account_name": "A"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/withdrawals", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestWithdrawalHandler_Get_InvalidID(t *testing.T) {
	h := NewWithdrawalHandler(nil)
	w := do(engineAs(seller(), http.MethodGet, "/withdrawals/:id", h.Get), http.MethodGet, "/withdrawals/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decode(t, w).ErrorCode)
}

func TestWithdrawalHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()
	reqID := uuid.New()

	svc.EXPECT().Get(gomock.Any(), *id, reqID).Return(nil, apperror.ErrNotFound("Withdrawal request"))

	h := NewWithdrawalHandler(svc)
	w := do(engineAs(id, http.MethodGet, "/withdrawals/:id", h.Get), http.MethodGet, "/withdrawals/"+reqID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LED_001", decode(t, w).ErrorCode)
}

func TestWithdrawalHandler_List_PassesStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()

	svc.EXPECT().List(gomock.Any(), *id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Identity, p domain.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
			require.NotNil(t, p.Status)
			assert.Equal(t, domain.WithdrawalOtpPending, *p.Status)
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.PageSize)
			return []domain.WithdrawalRequest{*sampleWithdrawal(id.SubjectID, domain.WithdrawalOtpPending)}, 6, nil
		})

	h := NewWithdrawalHandler(svc)
	r := engineAs(id, http.MethodGet, "/withdrawals", h.List)
	w := do(r, http.MethodGet, "/withdrawals?status=otp_pending&page=2&page_size=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		TotalPages int `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, 2, got.TotalPages)
}

func TestWithdrawalHandler_List_RejectsUnknownStatus(t *testing.T) {
	h := NewWithdrawalHandler(nil)
	w := do(engineAs(seller(), http.MethodGet, "/withdrawals", h.List), http.MethodGet, "/withdrawals?status=paid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdrawalHandler_ConfirmOtp_Mismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()
	reqID := uuid.New()

	svc.EXPECT().ConfirmOtp(gomock.Any(), reqID, id.SubjectID, "123456").Return(nil, apperror.ErrOtpMismatch(3))

	h := NewWithdrawalHandler(svc)
	r := engineAs(id, http.MethodPost, "/withdrawals/:id/otp/confirm", h.ConfirmOtp)
	w := do(r, http.MethodPost, "/withdrawals/"+reqID.String()+"/otp/confirm", map[string]any{"code": "123456"})

	env := decode(t, w)
	assert.Equal(t, "OTP_001", env.ErrorCode)
	assert.Equal(t, float64(3), env.Details["attempts_remaining"])
}

func TestWithdrawalHandler_ConfirmOtp_RejectsNonNumeric(t *testing.T) {
	h := NewWithdrawalHandler(nil)
	r := engineAs(seller(), http.MethodPost, "/withdrawals/:id/otp/confirm", h.ConfirmOtp)
	w := do(r, http.MethodPost, "/withdrawals/"+uuid.NewString()+"/otp/confirm", map[string]any{"code": "12ab56"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdrawalHandler_CancelAndOtp(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()
	pending := sampleWithdrawal(id.SubjectID, domain.WithdrawalCancelled)
	otp := sampleWithdrawal(id.SubjectID, domain.WithdrawalOtpPending)

	svc.EXPECT().Cancel(gomock.Any(), pending.ID, id.SubjectID).Return(pending, nil)
	svc.EXPECT().RequestOtp(gomock.Any(), otp.ID, id.SubjectID).Return(otp, nil)

	h := NewWithdrawalHandler(svc)
	r := engineAs(id, http.MethodDelete, "/withdrawals/:id", h.Cancel)
	r.POST("/withdrawals/:id/otp", h.RequestOtp)

	w := do(r, http.MethodDelete, "/withdrawals/"+pending.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	w = do(r, http.MethodPost, "/withdrawals/"+otp.ID.String()+"/otp", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"otp_pending"`)
}

func TestWithdrawalHandler_RequestReversal_EscapesReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := seller()
	w0 := sampleWithdrawal(id.SubjectID, domain.WithdrawalReversalRequested)

	svc.EXPECT().RequestReversal(gomock.Any(), *id, w0.ID, "never &lt;arrived&gt;").Return(w0, nil)

	h := NewWithdrawalHandler(svc)
	r := engineAs(id, http.MethodPost, "/withdrawals/:id/reversal", h.RequestReversal)
	w := do(r, http.MethodPost, "/withdrawals/"+w0.ID.String()+"/reversal", map[string]any{"reason": "never <arrived>"})

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Admin ---

func adminIdentity() *domain.Identity {
	return &domain.Identity{SubjectID: uuid.New(), Role: domain.RoleAdmin}
}

func TestAdminHandler_Approve_StartsTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := adminIdentity()
	approved := sampleWithdrawal(uuid.New(), domain.WithdrawalApproved)
	started := *approved
	started.Status = domain.WithdrawalOtpPending

	gomock.InOrder(
		svc.EXPECT().Approve(gomock.Any(), approved.ID, id.SubjectID).Return(approved, nil),
		svc.EXPECT().InitiateTransfer(gomock.Any(), approved.ID).Return(&started, nil),
	)

	h := NewAdminHandler(svc, zerolog.Nop())
	r := engineAs(id, http.MethodPost, "/admin/withdrawals/:id/approve", h.Approve)
	w := do(r, http.MethodPost, "/admin/withdrawals/"+approved.ID.String()+"/approve", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"otp_pending"`)
	assert.NotContains(t, w.Body.String(), "initiation_error")
}

func TestAdminHandler_Approve_InitiationFailureKeepsApproval(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := adminIdentity()
	approved := sampleWithdrawal(uuid.New(), domain.WithdrawalApproved)

	svc.EXPECT().Approve(gomock.Any(), approved.ID, id.SubjectID).Return(approved, nil)
	svc.EXPECT().InitiateTransfer(gomock.Any(), approved.ID).
		Return(nil, apperror.ErrProviderRetriable(errors.New("timeout")))

	h := NewAdminHandler(svc, zerolog.Nop())
	r := engineAs(id, http.MethodPost, "/admin/withdrawals/:id/approve", h.Approve)
	w := do(r, http.MethodPost, "/admin/withdrawals/"+approved.ID.String()+"/approve", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, "approved", got["status"])
	assert.Equal(t, "PRV_001", got["initiation_error"])
}

func TestAdminHandler_Approve_InvalidTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := adminIdentity()
	reqID := uuid.New()

	svc.EXPECT().Approve(gomock.Any(), reqID, id.SubjectID).
		Return(nil, apperror.ErrInvalidStateTransition("completed", "approve"))

	h := NewAdminHandler(svc, zerolog.Nop())
	r := engineAs(id, http.MethodPost, "/admin/withdrawals/:id/approve", h.Approve)
	w := do(r, http.MethodPost, "/admin/withdrawals/"+reqID.String()+"/approve", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WDR_001", decode(t, w).ErrorCode)
}

func TestAdminHandler_RejectVerifyInitiate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := adminIdentity()
	wr := sampleWithdrawal(uuid.New(), domain.WithdrawalRejected)

	svc.EXPECT().Reject(gomock.Any(), wr.ID, id.SubjectID, "duplicate payout").Return(wr, nil)
	svc.EXPECT().VerifyTransferStatus(gomock.Any(), wr.ID).Return(wr, nil)
	svc.EXPECT().InitiateTransfer(gomock.Any(), wr.ID).Return(wr, nil)

	h := NewAdminHandler(svc, zerolog.Nop())
	r := engineAs(id, http.MethodPost, "/admin/withdrawals/:id/reject", h.Reject)
	r.POST("/admin/withdrawals/:id/verify", h.VerifyTransfer)
	r.POST("/admin/withdrawals/:id/initiate", h.Initiate)

	base := "/admin/withdrawals/" + wr.ID.String()
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, base+"/reject", map[string]any{"reason": "duplicate payout"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, base+"/verify", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, base+"/initiate", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, base+"/reject", map[string]any{}).Code)
}

func TestAdminHandler_ResolveReversal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWithdrawalService(ctrl)
	id := adminIdentity()
	wr := sampleWithdrawal(uuid.New(), domain.WithdrawalCompleted)

	svc.EXPECT().ResolveReversal(gomock.Any(), wr.ID, id.SubjectID, false).Return(wr, nil)

	h := NewAdminHandler(svc, zerolog.Nop())
	r := engineAs(id, http.MethodPost, "/admin/withdrawals/:id/reversal/resolve", h.ResolveReversal)
	target := "/admin/withdrawals/" + wr.ID.String() + "/reversal/resolve"

	// approve=false must be distinguishable from a missing field.
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, target, map[string]any{"approve": false}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, target, map[string]any{}).Code)
}

// --- Webhook ---

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, e *domain.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
}

func webhookRequest(body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	if signature != "" {
		req.Header.Set("X-Processor-Signature", signature)
	}
	return req
}

func TestWebhookHandler_ValidSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	body := `{"event":"charge.success","data":{"reference":"tpu_1"}}`

	svc.EXPECT().Verify([]byte(body), "sig").Return(nil)
	svc.EXPECT().Ingest(gomock.Any(), []byte(body))

	h := NewWebhookHandler(svc, nil, "X-Processor-Signature", zerolog.Nop())
	r := gin.New()
	r.POST("/webhook", h.Receive)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest(body, "sig"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhookHandler_BadSignatureIsRejectedAndAudited(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	audit := &recordingAudit{}

	svc.EXPECT().Verify(gomock.Any(), "forged").Return(apperror.ErrInvalidSignature())

	h := NewWebhookHandler(svc, audit, "X-Processor-Signature", zerolog.Nop())
	r := gin.New()
	r.POST("/webhook", h.Receive)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest(`{"event":"charge.success"}`, "forged"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "SEC_001", decode(t, w).ErrorCode)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditActionWebhookRejected, audit.entries[0].Action)
}

// --- Health ---

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Ping(context.Context) error { return f.err }
func (f fakeChecker) Name() string               { return f.name }

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/ok", HealthCheck(fakeChecker{name: "postgres"}))
	r.GET("/degraded", HealthCheck(fakeChecker{name: "postgres"}, fakeChecker{name: "redis", err: errors.New("down")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/degraded", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
	assert.Contains(t, w.Body.String(), "down")
}

func TestStepUpHandler_Begin(t *testing.T) {
	ctrl := gomock.NewController(t)
	stepUp := mocks.NewMockStepUpService(ctrl)
	id := seller()
	expires := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	challenge := &domain.OtpChallenge{ID: uuid.New(), SubjectID: id.SubjectID, Purpose: domain.OtpPurposeStepUp, ExpiresAt: expires}

	stepUp.EXPECT().Begin(gomock.Any(), id.SubjectID).Return(challenge, nil)

	r := engineAs(id, http.MethodPost, "/step-up", NewStepUpHandler(stepUp).Begin)
	w := do(r, http.MethodPost, "/step-up", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, challenge.ID.String(), got["challenge_id"])
	assert.Equal(t, "2026-03-01T12:05:00Z", got["expires_at"])
	assert.NotContains(t, got, "code")
}

func TestStepUpHandler_Begin_Locked(t *testing.T) {
	ctrl := gomock.NewController(t)
	stepUp := mocks.NewMockStepUpService(ctrl)
	id := seller()

	stepUp.EXPECT().Begin(gomock.Any(), id.SubjectID).Return(nil, apperror.ErrOtpLocked(7*time.Minute))

	r := engineAs(id, http.MethodPost, "/step-up", NewStepUpHandler(stepUp).Begin)
	w := do(r, http.MethodPost, "/step-up", nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	env := decode(t, w)
	assert.Equal(t, "OTP_002", env.ErrorCode)
	assert.EqualValues(t, 7, env.Details["minutes_remaining"])
}
