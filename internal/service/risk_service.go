package service

import (
	"context"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/rs/zerolog"
)

// RateRule is a fixed-window limit for one action.
type RateRule struct {
	Limit  int64
	Window time.Duration
}

// RiskServiceImpl implements ports.RiskService. Both the limiter and the
// signal store degrade open: an outage is logged, not turned into refusals.
type RiskServiceImpl struct {
	limiter ports.RateLimitStore
	rules   map[string]RateRule
	signals ports.RiskSignalStore
	now     func() time.Time
	metrics ports.MetricsRecorder
	log     zerolog.Logger
}

// NewRiskService creates a new RiskServiceImpl. limiter and signals may be nil.
func NewRiskService(limiter ports.RateLimitStore, rules map[string]RateRule, signals ports.RiskSignalStore, metrics ports.MetricsRecorder, log zerolog.Logger) *RiskServiceImpl {
	return &RiskServiceImpl{
		limiter: limiter,
		rules:   rules,
		signals: signals,
		now:     time.Now,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

// CheckRate counts a hit against the (action, subject) window.
func (s *RiskServiceImpl) CheckRate(ctx context.Context, action string, subject string) (*ports.RateLimitResult, error) {
	rule, ok := s.rules[action]
	if !ok || s.limiter == nil {
		return nil, nil
	}

	res, err := s.limiter.Allow(ctx, action+":"+subject, rule.Limit, rule.Window)
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("rate limit check failed, allowing request (degraded mode)")
		return nil, nil
	}
	if !res.Allowed {
		s.metrics.RateLimited(action)
		s.log.Warn().
			Str("action", action).
			Str("subject", subject).
			Int64("limit", res.Limit).
			Msg("rate limit exceeded")
		return res, apperror.ErrRateLimitExceeded(res.RetryAfter(s.now()))
	}
	return res, nil
}

// Assess records the observation and applies policy once the level reaches
// threshold. The signal is returned even when the action is refused so it
// can be attached to the audit record.
func (s *RiskServiceImpl) Assess(ctx context.Context, action string, obs domain.RiskObservation, policy domain.RiskPolicy, threshold domain.RiskLevel) (*domain.SecurityRiskSignal, error) {
	signal := &domain.SecurityRiskSignal{SubjectID: obs.SubjectID, RiskLevel: domain.RiskLow}
	if s.signals != nil {
		observed, err := s.signals.Observe(ctx, obs)
		if err != nil {
			s.log.Warn().Err(err).Str("action", action).Msg("risk signals unavailable, scoring as low")
		} else {
			signal = observed
		}
	}
	if signal.RiskLevel == "" {
		signal.RiskLevel = signal.Score()
	}

	if threshold == "" {
		threshold = domain.RiskCritical
	}
	if !signal.RiskLevel.AtLeast(threshold) {
		return signal, nil
	}

	s.metrics.RiskDecision(action, signal.RiskLevel, policy)
	s.log.Warn().
		Str("action", action).
		Str("subject_id", obs.SubjectID.String()).
		Str("risk_level", string(signal.RiskLevel)).
		Str("policy", string(policy)).
		Msg("elevated risk on sensitive action")

	switch policy {
	case domain.RiskPolicyReject:
		return signal, apperror.ErrRiskRejected(string(signal.RiskLevel))
	case domain.RiskPolicyStepUp:
		return signal, apperror.ErrStepUpRequired(string(signal.RiskLevel))
	default:
		return signal, nil
	}
}
