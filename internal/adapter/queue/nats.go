// Package queue runs background tasks with at-least-once delivery, either
// on NATS JetStream or in process.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace-wallet/config"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
)

const subjectPrefix = "tasks."

// NATSQueue is a JetStream-backed ports.TaskQueue. Each task type is
// published on tasks.<type>; one durable consumer with explicit acks
// reads them all.
type NATSQueue struct {
	conn     *nats.Conn
	js       jetstream.JetStream
	cfg      config.NATSConfig
	consumer jetstream.Consumer
	backoff  func(attempt int) time.Duration
	log      zerolog.Logger
}

// NewNATSQueue connects and ensures the stream and durable consumer exist.
func NewNATSQueue(ctx context.Context, cfg config.NATSConfig, log zerolog.Logger) (*NATSQueue, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("marketplace-wallet"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{subjectPrefix + ">"},
		Retention: jetstream.WorkQueuePolicy,
		Storage:   jetstream.FileStorage,
		MaxAge:    cfg.MaxAge, // undelivered OTP tasks are useless past their TTL
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", cfg.Stream, err)
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, cfg.Stream, jetstream.ConsumerConfig{
		Name:          cfg.Consumer,
		Durable:       cfg.Consumer,
		FilterSubject: subjectPrefix + ">",
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		MaxDeliver:    cfg.MaxDeliver,
		AckWait:       cfg.AckWait,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure consumer %s: %w", cfg.Consumer, err)
	}

	log.Info().
		Str("url", conn.ConnectedUrl()).
		Str("stream", cfg.Stream).
		Str("consumer", cfg.Consumer).
		Msg("task queue connected to nats")

	return &NATSQueue{conn: conn, js: js, cfg: cfg, consumer: consumer, backoff: redeliveryDelay, log: log}, nil
}

// Enqueue publishes the task; the task ID is the JetStream message ID so
// a retried publish within the duplicate window is dropped server-side.
func (q *NATSQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if _, err := q.js.Publish(ctx, subjectPrefix+string(task.Type), data, jetstream.WithMsgID(task.ID)); err != nil {
		return fmt.Errorf("publish task %s: %w", task.ID, err)
	}
	return nil
}

// Consume handles messages until ctx is done. A handler error naks the
// message for redelivery after a delay; undecodable messages are terminated.
func (q *NATSQueue) Consume(ctx context.Context, handler ports.TaskHandler) error {
	iter, err := q.consumer.Messages()
	if err != nil {
		return fmt.Errorf("message iterator: %w", err)
	}

	go func() {
		<-ctx.Done()
		iter.Stop()
	}()

	for {
		msg, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, jetstream.ErrMsgIteratorClosed) {
				return ctx.Err()
			}
			q.log.Error().Err(err).Msg("next task message")
			continue
		}

		var task domain.Task
		if err := json.Unmarshal(msg.Data(), &task); err != nil {
			q.log.Error().Err(err).Str("subject", msg.Subject()).Msg("undecodable task, terminating")
			_ = msg.Term()
			continue
		}
		if meta, err := msg.Metadata(); err == nil {
			task.Attempt = int(meta.NumDelivered)
		}

		if err := handler(ctx, &task); err != nil {
			q.log.Warn().Err(err).
				Str("task_id", task.ID).
				Str("type", string(task.Type)).
				Int("attempt", task.Attempt).
				Msg("task failed, requesting redelivery")
			_ = msg.NakWithDelay(q.backoff(task.Attempt))
			continue
		}
		if err := msg.Ack(); err != nil {
			q.log.Error().Err(err).Str("task_id", task.ID).Msg("ack task")
		}
	}
}

func (q *NATSQueue) Close() error {
	return q.conn.Drain()
}

// Ping implements ports.HealthChecker.
func (q *NATSQueue) Ping(ctx context.Context) error {
	if !q.conn.IsConnected() {
		return errors.New("nats not connected")
	}
	return nil
}

func (q *NATSQueue) Name() string {
	return "nats"
}

// redeliveryDelay grows linearly with the attempt, capped at one minute.
func redeliveryDelay(attempt int) time.Duration {
	d := time.Duration(attempt) * 5 * time.Second
	if d > time.Minute {
		return time.Minute
	}
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}
