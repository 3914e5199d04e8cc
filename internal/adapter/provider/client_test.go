package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct{ op, outcome string }

type fakeRecorder struct{ calls []recordedCall }

func (f *fakeRecorder) ProviderCall(op, outcome string) {
	f.calls = append(f.calls, recordedCall{op, outcome})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &fakeRecorder{}
	c := NewClient(srv.URL+"/", "sk_test", "https://shop.example/topup/callback", &http.Client{Timeout: 2 * time.Second}, rec, zerolog.Nop())
	return c, rec
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, ok bool, code string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Status: ok, Message: "msg", Code: code, Data: raw})
}

func testOrder() domain.TransferOrder {
	return domain.TransferOrder{
		Reference:     "wdr-123",
		Amount:        25000,
		Currency:      "NGN",
		Type:          domain.DestinationBank,
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ada Obi",
		Narration:     "marketplace payout",
	}
}

func TestClient_Initiate_Success(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transfer", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req transferRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "wdr-123", req.Reference)
		assert.Equal(t, int64(25000), req.Amount)
		assert.Equal(t, "nuban", req.Recipient.Type)
		assert.Equal(t, "0123456789", req.Recipient.AccountNumber)

		writeEnvelope(t, w, http.StatusOK, true, "", transferData{Reference: "wdr-123", Status: "pending"})
	})

	ref, err := c.Initiate(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, "wdr-123", ref)
	assert.Equal(t, []recordedCall{{"initiate_transfer", "ok"}}, rec.calls)
}

func TestClient_Initiate_FallsBackToOrderReference(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, "", transferData{Status: "pending"})
	})

	ref, err := c.Initiate(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, "wdr-123", ref)
}

func TestClient_Classification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		ok       bool
		code     string
		wantKind domain.ProviderErrorKind
		wantCode string
	}{
		{"server error", http.StatusBadGateway, false, "", domain.ProviderRetriable, ""},
		{"throttled", http.StatusTooManyRequests, false, "", domain.ProviderRetriable, ""},
		{"not found", http.StatusNotFound, false, "", domain.ProviderNotFound, ""},
		{"bad request with code", http.StatusBadRequest, false, "invalid_account", domain.ProviderTerminal, "invalid_account"},
		{"bad request without code", http.StatusUnprocessableEntity, false, "", domain.ProviderTerminal, "rejected"},
		{"2xx with status false", http.StatusOK, false, "insufficient_float", domain.ProviderTerminal, "insufficient_float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, tt.ok, tt.code, nil)
			})

			_, err := c.Initiate(context.Background(), testOrder())

			var pe *domain.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantKind, pe.Kind)
			assert.Equal(t, tt.wantCode, pe.Code)
			assert.Equal(t, "initiate_transfer", pe.Op)
			assert.Equal(t, []recordedCall{{"initiate_transfer", tt.wantKind.String()}}, rec.calls)
		})
	}
}

func TestClient_Initiate_FailedStatusIsTerminal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, "", transferData{Reference: "wdr-123", Status: "failed", Reason: "account_closed"})
	})

	_, err := c.Initiate(context.Background(), testOrder())

	assert.Equal(t, domain.ProviderTerminal, domain.ProviderErrorKindOf(err))
	assert.Equal(t, "account_closed", domain.ProviderReason(err))
}

func TestClient_NetworkErrorIsRetriable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "sk_test", "", &http.Client{Timeout: time.Second}, nil, zerolog.Nop())
	_, err := c.CheckStatus(context.Background(), "wdr-1")

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.ProviderRetriable, pe.Kind)
}

func TestClient_GarbledSuccessIsRetriable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>gateway</html>"))
	})

	_, err := c.CheckStatus(context.Background(), "wdr-1")

	assert.Equal(t, domain.ProviderRetriable, domain.ProviderErrorKindOf(err))
}

func TestClient_CheckStatus_States(t *testing.T) {
	tests := []struct {
		remote     string
		reason     string
		wantState  domain.TransferState
		wantReason string
	}{
		{"success", "", domain.TransferSuccess, ""},
		{"pending", "", domain.TransferPending, ""},
		{"otp", "", domain.TransferPending, ""},
		{"failed", "bank_unavailable", domain.TransferFailed, "bank_unavailable"},
		{"reversed", "", domain.TransferFailed, "reversed"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/transfer/verify/wdr-9", r.URL.Path)
				writeEnvelope(t, w, http.StatusOK, true, "", transferData{Reference: "wdr-9", Status: tt.remote, Reason: tt.reason})
			})

			status, err := c.CheckStatus(context.Background(), "wdr-9")

			require.NoError(t, err)
			assert.Equal(t, "wdr-9", status.Reference)
			assert.Equal(t, tt.wantState, status.State)
			assert.Equal(t, tt.wantReason, status.ReasonCode)
		})
	}
}

func TestClient_InitializeCharge(t *testing.T) {
	accountID := uuid.New()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)

		var req chargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "buyer@example.com", req.Email)
		assert.Equal(t, "https://shop.example/topup/callback", req.CallbackURL)
		assert.Equal(t, domain.ChargePurposeWalletTopup, req.Metadata[domain.ChargeMetaPurpose])
		assert.Equal(t, accountID.String(), req.Metadata[domain.ChargeMetaAccountID])

		writeEnvelope(t, w, http.StatusOK, true, "", chargeSessionData{
			AuthorizationURL: "https://checkout.example/abc",
			AccessCode:       "abc",
			Reference:        req.Reference,
		})
	})

	session, err := c.InitializeCharge(context.Background(), domain.ChargeRequest{
		AccountID: accountID,
		Email:     "buyer@example.com",
		Amount:    5000,
		Currency:  "NGN",
		Reference: "TOP-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "TOP-1", session.Reference)
	assert.Equal(t, "https://checkout.example/abc", session.AuthorizationURL)
	assert.Equal(t, "abc", session.AccessCode)
}

func TestClient_VerifyCharge(t *testing.T) {
	accountID := uuid.New()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/TOP-1", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, true, "", chargeData{
			Reference: "TOP-1",
			Status:    "success",
			Amount:    5000,
			Currency:  "NGN",
			Metadata: map[string]any{
				"purpose":    "wallet_topup",
				"account_id": accountID.String(),
				"attempt":    2,
			},
		})
	})

	res, err := c.VerifyCharge(context.Background(), "TOP-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ChargeSuccess, res.State)
	assert.Equal(t, int64(5000), res.Amount)
	assert.Equal(t, "2", res.Metadata["attempt"])
	got, ok := res.TopupAccountID()
	require.True(t, ok)
	assert.Equal(t, accountID, got)
}

func TestClient_VerifyCharge_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, false, "", nil)
	})

	_, err := c.VerifyCharge(context.Background(), "TOP-x")

	assert.Equal(t, domain.ProviderNotFound, domain.ProviderErrorKindOf(err))
}

func TestClient_CancelledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, "", transferData{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CheckStatus(ctx, "wdr-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, domain.ProviderRetriable, domain.ProviderErrorKindOf(err))
}
