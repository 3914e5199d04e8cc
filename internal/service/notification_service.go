package service

import (
	"context"
	"fmt"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/rs/zerolog"
)

// NotificationServiceImpl implements ports.NotificationService on top of the
// task queue. Enqueue failures are logged: a lost alert must never fail a
// money movement that already committed.
type NotificationServiceImpl struct {
	queue   ports.TaskQueue
	sender  ports.NotificationSender
	enc     ports.EncryptionService
	metrics ports.MetricsRecorder
	log     zerolog.Logger
}

// sealedParams are encrypted before a task leaves the process, so a queue
// that persists tasks never stores them in the clear.
var sealedParams = []string{"code"}

// NewNotificationService creates a new NotificationServiceImpl.
func NewNotificationService(queue ports.TaskQueue, sender ports.NotificationSender, enc ports.EncryptionService, metrics ports.MetricsRecorder, log zerolog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		queue:   queue,
		sender:  sender,
		enc:     enc,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

// Notify queues n for background delivery.
func (s *NotificationServiceImpl) Notify(ctx context.Context, taskType domain.TaskType, n domain.Notification) {
	n, err := s.seal(n)
	if err != nil {
		s.metrics.TaskEnqueued(taskType, "error")
		s.log.Error().Err(err).Str("type", string(taskType)).Msg("failed to seal notification params")
		return
	}

	task, err := domain.NewTask(taskType, n)
	if err != nil {
		s.metrics.TaskEnqueued(taskType, "error")
		s.log.Error().Err(err).Str("type", string(taskType)).Msg("failed to build notification task")
		return
	}

	if err := s.queue.Enqueue(context.WithoutCancel(ctx), task); err != nil {
		s.metrics.TaskEnqueued(taskType, "error")
		s.log.Error().Err(err).
			Str("task_id", task.ID).
			Str("type", string(taskType)).
			Str("recipient_id", n.RecipientID.String()).
			Msg("failed to enqueue notification")
		return
	}

	s.metrics.TaskEnqueued(taskType, "ok")
	s.log.Debug().Str("task_id", task.ID).Str("type", string(taskType)).Msg("notification queued")
}

// Deliver is the queue consumer. Tasks that can never succeed are acked;
// a sender failure is returned so the queue redelivers.
func (s *NotificationServiceImpl) Deliver(ctx context.Context, task *domain.Task) error {
	switch task.Type {
	case domain.TaskDeliverOtp, domain.TaskDeliverAlert:
	default:
		s.log.Warn().Str("task_id", task.ID).Str("type", string(task.Type)).Msg("dropping task of unknown type")
		return nil
	}

	var n domain.Notification
	if err := task.Decode(&n); err != nil {
		s.log.Error().Err(err).Str("task_id", task.ID).Msg("dropping undecodable notification task")
		return nil
	}
	n, err := s.unseal(n)
	if err != nil {
		s.log.Error().Err(err).Str("task_id", task.ID).Msg("dropping notification task with unreadable params")
		return nil
	}

	if err := s.sender.Send(ctx, n); err != nil {
		s.log.Warn().Err(err).
			Str("task_id", task.ID).
			Int("attempt", task.Attempt).
			Str("template", n.Template).
			Msg("notification delivery failed")
		return err
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("template", n.Template).
		Str("channel", n.Channel).
		Str("recipient_id", n.RecipientID.String()).
		Msg("notification delivered")
	return nil
}

func (s *NotificationServiceImpl) seal(n domain.Notification) (domain.Notification, error) {
	var params map[string]string
	var sealed []string
	for _, key := range sealedParams {
		v, ok := n.Params[key]
		if !ok {
			continue
		}
		if params == nil {
			params = make(map[string]string, len(n.Params))
			for k, pv := range n.Params {
				params[k] = pv
			}
		}
		ct, err := s.enc.Encrypt(v)
		if err != nil {
			return n, fmt.Errorf("encrypt %s: %w", key, err)
		}
		params[key] = ct
		sealed = append(sealed, key)
	}
	if sealed != nil {
		n.Params = params
		n.Sealed = sealed
	}
	return n, nil
}

func (s *NotificationServiceImpl) unseal(n domain.Notification) (domain.Notification, error) {
	for _, key := range n.Sealed {
		pt, err := s.enc.Decrypt(n.Params[key])
		if err != nil {
			return n, fmt.Errorf("decrypt %s: %w", key, err)
		}
		n.Params[key] = pt
	}
	n.Sealed = nil
	return n, nil
}
