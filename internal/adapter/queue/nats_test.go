package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketplace-wallet/config"
	"marketplace-wallet/internal/core/domain"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runJetStream(t *testing.T) string {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := natsserver.RunServer(&opts)
	t.Cleanup(srv.Shutdown)
	return srv.ClientURL()
}

func newTestNATSQueue(t *testing.T, maxDeliver int) *NATSQueue {
	t.Helper()
	q, err := NewNATSQueue(context.Background(), config.NATSConfig{
		URL:           runJetStream(t),
		Stream:        "TEST_TASKS",
		Consumer:      "test-worker",
		MaxDeliver:    maxDeliver,
		AckWait:       5 * time.Second,
		MaxAge:        time.Hour,
		ReconnectWait: time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	q.backoff = func(int) time.Duration { return 10 * time.Millisecond }
	t.Cleanup(func() { _ = q.Close() })
	return q
}

// consume runs q.Consume until the test ends.
func consume(t *testing.T, q *NATSQueue, handler func(context.Context, *domain.Task) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = q.Consume(ctx, handler)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("consumer did not stop")
		}
	})
}

func streamMsgs(t *testing.T, q *NATSQueue) uint64 {
	t.Helper()
	stream, err := q.js.Stream(context.Background(), q.cfg.Stream)
	require.NoError(t, err)
	info, err := stream.Info(context.Background())
	require.NoError(t, err)
	return info.State.Msgs
}

func TestNATSQueue_DeliversAndAcks(t *testing.T) {
	q := newTestNATSQueue(t, 3)
	task := newTask(t)
	require.NoError(t, q.Enqueue(context.Background(), task))

	got := make(chan *domain.Task, 1)
	consume(t, q, func(_ context.Context, tk *domain.Task) error {
		got <- tk
		return nil
	})

	select {
	case tk := <-got:
		assert.Equal(t, task.ID, tk.ID)
		assert.Equal(t, 1, tk.Attempt)
		assert.JSONEq(t, string(task.Payload), string(tk.Payload))
	case <-time.After(5 * time.Second):
		t.Fatal("task not delivered")
	}

	// work-queue retention drops acked messages
	require.Eventually(t, func() bool { return streamMsgs(t, q) == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestNATSQueue_DuplicatePublishIsDropped(t *testing.T) {
	q := newTestNATSQueue(t, 3)
	task := newTask(t)

	require.NoError(t, q.Enqueue(context.Background(), task))
	require.NoError(t, q.Enqueue(context.Background(), task))

	assert.Equal(t, uint64(1), streamMsgs(t, q))
}

func TestNATSQueue_HandlerErrorRedelivers(t *testing.T) {
	q := newTestNATSQueue(t, 3)
	require.NoError(t, q.Enqueue(context.Background(), newTask(t)))

	var mu sync.Mutex
	var attempts []int
	consume(t, q, func(_ context.Context, tk *domain.Task) error {
		mu.Lock()
		defer mu.Unlock()
		attempts = append(attempts, tk.Attempt)
		if len(attempts) == 1 {
			return errors.New("gateway 503")
		}
		return nil
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(attempts) == 2
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1, 2}, attempts)
	mu.Unlock()
	require.Eventually(t, func() bool { return streamMsgs(t, q) == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestNATSQueue_StopsAfterMaxDeliver(t *testing.T) {
	q := newTestNATSQueue(t, 2)
	require.NoError(t, q.Enqueue(context.Background(), newTask(t)))

	var calls atomic.Int32
	consume(t, q, func(context.Context, *domain.Task) error {
		calls.Add(1)
		return errors.New("always down")
	})

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNATSQueue_UndecodableMessageIsTerminated(t *testing.T) {
	q := newTestNATSQueue(t, 5)
	_, err := q.js.Publish(context.Background(), subjectPrefix+string(domain.TaskDeliverOtp), []byte(`{"task_id":`))
	require.NoError(t, err)
	good := newTask(t)
	require.NoError(t, q.Enqueue(context.Background(), good))

	var mu sync.Mutex
	var seen []string
	consume(t, q, func(_ context.Context, tk *domain.Task) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, tk.ID)
		return nil
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		info, err := q.consumer.Info(context.Background())
		return err == nil && info.NumAckPending == 0 && info.NumPending == 0
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{good.ID}, seen)
	mu.Unlock()
}

func TestNATSQueue_Health(t *testing.T) {
	q := newTestNATSQueue(t, 3)
	assert.NoError(t, q.Ping(context.Background()))
	assert.Equal(t, "nats", q.Name())
}
