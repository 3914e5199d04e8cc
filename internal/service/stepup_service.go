package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const templateStepUpOtp = "step_up_otp"

// StepUpServiceImpl implements ports.StepUpService on the OTP gate, so a
// step-up code shares its lockout and expiry rules.
type StepUpServiceImpl struct {
	otp        ports.OtpService
	challenges ports.OtpRepository
	notifier   ports.NotificationService
	ttl        time.Duration
	log        zerolog.Logger
}

// NewStepUpService creates a new StepUpServiceImpl.
func NewStepUpService(otp ports.OtpService, challenges ports.OtpRepository, notifier ports.NotificationService, ttl time.Duration, log zerolog.Logger) *StepUpServiceImpl {
	return &StepUpServiceImpl{
		otp:        otp,
		challenges: challenges,
		notifier:   notifier,
		ttl:        ttl,
		log:        log,
	}
}

func (s *StepUpServiceImpl) Begin(ctx context.Context, subjectID uuid.UUID) (*domain.OtpChallenge, error) {
	challenge, code, err := s.otp.Issue(ctx, subjectID, domain.OtpPurposeStepUp, s.ttl)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.TaskDeliverOtp, domain.Notification{
		RecipientID: subjectID,
		Channel:     "sms",
		Template:    templateStepUpOtp,
		Params: map[string]string{
			"code":       code,
			"expires_at": challenge.ExpiresAt.Format(time.RFC3339),
		},
	})

	s.log.Info().
		Str("subject_id", subjectID.String()).
		Str("challenge_id", challenge.ID.String()).
		Msg("step-up challenge issued")
	return challenge, nil
}

func (s *StepUpServiceImpl) Confirm(ctx context.Context, subjectID, challengeID uuid.UUID, code string) error {
	c, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get challenge: %w", err))
	}
	// another subject's challenge reads as absent
	if c == nil || c.SubjectID != subjectID || c.Purpose != domain.OtpPurposeStepUp {
		return apperror.ErrNotFound("Verification challenge")
	}
	return s.otp.Verify(ctx, challengeID, code)
}
