package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"printshop/internal/notifier/config"
	"printshop/internal/notifier/framework"
	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type queueSource struct {
	mu     sync.Mutex
	queues map[string][]*framework.Message
	acked  []string
}

func (q *queueSource) Consume(queue string, timeout, _ time.Duration) (*framework.Message, error) {
	q.mu.Lock()
	if msgs := q.queues[queue]; len(msgs) > 0 {
		q.queues[queue] = msgs[1:]
		q.mu.Unlock()
		return msgs[0], nil
	}
	q.mu.Unlock()
	time.Sleep(timeout)
	return nil, nil
}

func (q *queueSource) Ack(_ string, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, jobID)
	return nil
}

func (q *queueSource) ackCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.acked)
}

func workerConfig(name, queue string) config.WorkerConfig {
	return config.WorkerConfig{
		Name:      name,
		QueueName: queue,
		Subscriber: config.SubscriberConfig{
			Threads: 1,
			Timeout: 5 * time.Millisecond,
			TTR:     time.Second,
		},
		Processor: config.ProcessorConfig{Threads: 2, BufferSize: 2, Timeout: time.Second},
	}
}

func TestManagerRunsEveryWorkerAndShutsDownCleanly(t *testing.T) {
	source := &queueSource{queues: map[string][]*framework.Message{
		"a": {{ID: "a1", Queue: "a"}, {ID: "a2", Queue: "a"}},
		"b": {{ID: "b1", Queue: "b"}},
	}}
	proc := func(context.Context, *client.Job) *lmstfyx.JobResp {
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusSuccess}
	}

	mgr := NewManagerInstance(
		[]config.WorkerConfig{workerConfig("wa", "a"), workerConfig("wb", "b")},
		source, proc, logger.NewNop(),
	)

	done := make(chan error, 1)
	go func() { done <- mgr.Start() }()

	require.Eventually(t, func() bool { return source.ackCount() == 3 }, 2*time.Second, 5*time.Millisecond)

	mgr.Shutdown()
	mgr.Shutdown()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop")
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	mgr := NewManagerInstance([]config.WorkerConfig{workerConfig("w", "q")}, &queueSource{}, nil, logger.NewNop())
	mgr.Shutdown()
	assert.NoError(t, mgr.Start())
}
