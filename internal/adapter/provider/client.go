// Package provider adapts the external payment processor: payouts through
// the transfer API and buyer top-ups through the charge API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"marketplace-wallet/internal/core/domain"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// envelope is the processor's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type transferRecipient struct {
	Type          string `json:"type"`
	BankCode      string `json:"bank_code,omitempty"`
	AccountNumber string `json:"account_number"`
	Name          string `json:"name,omitempty"`
}

type transferRequest struct {
	Source    string            `json:"source"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Reference string            `json:"reference"`
	Reason    string            `json:"reason,omitempty"`
	Recipient transferRecipient `json:"recipient"`
}

type transferData struct {
	Reference    string `json:"reference"`
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
}

type chargeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata"`
}

type chargeSessionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type chargeData struct {
	Reference string         `json:"reference"`
	Status    string         `json:"status"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	Metadata  map[string]any `json:"metadata"`
}

// CallRecorder receives one outcome per processor call.
type CallRecorder interface {
	ProviderCall(op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ProviderCall(_, _ string) {}

// Client talks to the processor's REST API with a secret key.
// It implements ports.TransferProvider and ports.ChargeGateway.
type Client struct {
	baseURL     string
	secretKey   string
	callbackURL string
	http        HTTPClient
	metrics     CallRecorder
	log         zerolog.Logger
}

// NewClient creates a processor client. httpClient should carry the call timeout.
func NewClient(baseURL, secretKey, callbackURL string, httpClient HTTPClient, metrics CallRecorder, log zerolog.Logger) *Client {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		secretKey:   secretKey,
		callbackURL: callbackURL,
		http:        httpClient,
		metrics:     metrics,
		log:         log,
	}
}

// Initiate submits a payout. order.Reference doubles as the processor's
// idempotency key, so a repeated call for the same request cannot pay twice.
func (c *Client) Initiate(ctx context.Context, order domain.TransferOrder) (string, error) {
	body := transferRequest{
		Source:    "balance",
		Amount:    order.Amount,
		Currency:  order.Currency,
		Reference: order.Reference,
		Reason:    order.Narration,
		Recipient: transferRecipient{
			Type:          recipientType(order.Type),
			BankCode:      order.BankCode,
			AccountNumber: order.AccountNumber,
			Name:          order.AccountName,
		},
	}

	var data transferData
	if err := c.call(ctx, "initiate_transfer", http.MethodPost, "/transfer", body, &data); err != nil {
		return "", err
	}
	if transferState(data.Status) == domain.TransferFailed {
		return "", c.classified("initiate_transfer", domain.ProviderTerminal, reasonOr(data.Reason, data.Status), nil)
	}
	if data.Reference == "" {
		return order.Reference, nil
	}
	return data.Reference, nil
}

// CheckStatus asks the processor for the current state of a transfer.
func (c *Client) CheckStatus(ctx context.Context, reference string) (*domain.TransferStatus, error) {
	var data transferData
	if err := c.call(ctx, "verify_transfer", http.MethodGet, "/transfer/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, err
	}

	status := &domain.TransferStatus{Reference: reference, State: transferState(data.Status)}
	if status.State == domain.TransferFailed {
		status.ReasonCode = reasonOr(data.Reason, data.Status)
	}
	return status, nil
}

// InitializeCharge opens a hosted checkout for a wallet top-up.
func (c *Client) InitializeCharge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeSession, error) {
	body := chargeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: c.callbackURL,
		Metadata: map[string]string{
			domain.ChargeMetaPurpose:   domain.ChargePurposeWalletTopup,
			domain.ChargeMetaAccountID: req.AccountID.String(),
		},
	}

	var data chargeSessionData
	if err := c.call(ctx, "initialize_charge", http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}
	if data.Reference == "" {
		data.Reference = req.Reference
	}
	return &domain.ChargeSession{
		Reference:        data.Reference,
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
	}, nil
}

// VerifyCharge fetches the processor's view of a charge.
func (c *Client) VerifyCharge(ctx context.Context, reference string) (*domain.ChargeResult, error) {
	var data chargeData
	if err := c.call(ctx, "verify_charge", http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, err
	}

	return &domain.ChargeResult{
		Reference: reference,
		State:     chargeState(data.Status),
		Amount:    data.Amount,
		Currency:  data.Currency,
		Metadata:  stringifyMetadata(data.Metadata),
	}, nil
}

// call performs one request and classifies the outcome. Network errors and
// 5xx/429 are retriable, 404 means the processor has no such reference,
// every other 4xx is a terminal rejection.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classified(op, domain.ProviderRetriable, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.classified(op, domain.ProviderRetriable, "", fmt.Errorf("read body: %w", err))
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return c.classified(op, domain.ProviderRetriable, env.Code, fmt.Errorf("http %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return c.classified(op, domain.ProviderNotFound, env.Code, fmt.Errorf("http %d: %s", resp.StatusCode, env.Message))
	case resp.StatusCode >= 400:
		return c.classified(op, domain.ProviderTerminal, reasonOr(env.Code, "rejected"), fmt.Errorf("http %d: %s", resp.StatusCode, env.Message))
	}

	if decodeErr != nil {
		// A 2xx we cannot read leaves the outcome unknown.
		return c.classified(op, domain.ProviderRetriable, "", fmt.Errorf("decode envelope: %w", decodeErr))
	}
	if !env.Status {
		return c.classified(op, domain.ProviderTerminal, reasonOr(env.Code, "rejected"), errors.New(env.Message))
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return c.classified(op, domain.ProviderRetriable, "", fmt.Errorf("decode %s data: %w", op, err))
		}
	}

	c.metrics.ProviderCall(op, "ok")
	return nil
}

func (c *Client) classified(op string, kind domain.ProviderErrorKind, code string, err error) error {
	c.metrics.ProviderCall(op, kind.String())
	c.log.Warn().Err(err).
		Str("op", op).
		Str("kind", kind.String()).
		Str("code", code).
		Msg("provider call failed")
	return &domain.ProviderError{Kind: kind, Op: op, Code: code, Err: err}
}

func recipientType(t domain.DestinationType) string {
	if t == domain.DestinationMobileMoney {
		return "mobile_money"
	}
	return "nuban"
}

func transferState(s string) domain.TransferState {
	switch strings.ToLower(s) {
	case "success", "successful", "completed":
		return domain.TransferSuccess
	case "failed", "reversed", "rejected", "abandoned":
		return domain.TransferFailed
	default:
		return domain.TransferPending
	}
}

func chargeState(s string) domain.ChargeState {
	switch strings.ToLower(s) {
	case "success", "successful":
		return domain.ChargeSuccess
	case "failed", "abandoned", "reversed":
		return domain.ChargeFailed
	default:
		return domain.ChargePending
	}
}

func reasonOr(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}

// stringifyMetadata flattens processor metadata to strings; nested values
// are kept as their JSON encoding.
func stringifyMetadata(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}
