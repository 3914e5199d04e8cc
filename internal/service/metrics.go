package service

import (
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
)

// nopMetrics is used when no recorder is wired.
type nopMetrics struct{}

func (nopMetrics) LedgerEntry(domain.EntryDirection) {}
func (nopMetrics) WithdrawalTransition(_, _ domain.WithdrawalStatus) {}
func (nopMetrics) OtpVerification(string) {}
func (nopMetrics) WebhookEvent(_, _ string) {}
func (nopMetrics) RateLimited(string) {}
func (nopMetrics) RiskDecision(string, domain.RiskLevel, domain.RiskPolicy) {}
func (nopMetrics) ProviderCall(_, _ string) {}
func (nopMetrics) TaskEnqueued(domain.TaskType, string) {}

func metricsOrNop(m ports.MetricsRecorder) ports.MetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
