// Package notify delivers seller notifications (OTP codes, payout alerts)
// to the external email/SMS gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"marketplace-wallet/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSender posts notifications to the gateway. One call is one attempt;
// redelivery is left to the task queue.
type HTTPSender struct {
	url    string
	client HTTPClient
	log    zerolog.Logger
}

// NewHTTPSender creates a sender for the gateway at url.
func NewHTTPSender(url string, client HTTPClient, log zerolog.Logger) *HTTPSender {
	return &HTTPSender{url: url, client: client, log: log}
}

func (s *HTTPSender) Send(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification gateway: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway: http %d", resp.StatusCode)
	}

	s.log.Debug().
		Str("recipient_id", n.RecipientID.String()).
		Str("template", n.Template).
		Int("status", resp.StatusCode).
		Msg("notification delivered")
	return nil
}

// LogSender writes notifications to the log instead of delivering them.
// Params, which may carry OTP codes, are only logged at debug level.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, n domain.Notification) error {
	s.log.Info().
		Str("recipient_id", n.RecipientID.String()).
		Str("channel", n.Channel).
		Str("template", n.Template).
		Msg("notification (no gateway configured)")
	s.log.Debug().Interface("params", n.Params).Str("template", n.Template).Msg("notification params")
	return nil
}
