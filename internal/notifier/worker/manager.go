package worker

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"printshop/internal/notifier/config"
	"printshop/internal/notifier/framework"
	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance 管理全部 Worker 的生命周期
type ManagerInstance struct {
	ctx        context.Context
	workerCfgs []config.WorkerConfig
	source     framework.MessageSource
	proc       lmstfyx.Proc
	workers    []Worker
	closing    *atomic.Bool
	shutdownCh chan struct{}
	mu         sync.Mutex
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
func NewManagerInstance(workerCfgs []config.WorkerConfig, source framework.MessageSource, proc lmstfyx.Proc, log logger.Logger) *ManagerInstance {
	return &ManagerInstance{
		ctx:        context.Background(),
		workerCfgs: workerCfgs,
		source:     source,
		proc:       proc,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}
}

// Start 启动所有 Worker，阻塞直到 Shutdown 完成
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return nil
	}
	for _, wc := range m.workerCfgs {
		w := m.newWorker(wc)
		w.Start()
		m.workers = append(m.workers, w)
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}
	m.mu.Unlock()

	m.logger.Infof(m.ctx, "[Manager] Start success, workers: %d", len(m.workerCfgs))

	<-m.shutdownCh
	return nil
}

// Shutdown 优雅退出，可重复调用
func (m *ManagerInstance) Shutdown() {
	if !m.closing.CAS(false, true) {
		return
	}
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	for _, w := range workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", w.GetName())
		w.Shutdown()
	}

	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

func (m *ManagerInstance) newWorker(wc config.WorkerConfig) Worker {
	subCfg := &framework.SubscriberConfig{
		QueueName:    wc.QueueName,
		Concurrency:  wc.Subscriber.Threads,
		Rate:         wc.Subscriber.Rate,
		Timeout:      wc.Subscriber.Timeout,
		TTR:          wc.Subscriber.TTR,
		ErrorBackoff: wc.Subscriber.ErrorBackoff,
	}
	procCfg := &framework.ProcessorConfig{
		Concurrency: wc.Processor.Threads,
		BufferSize:  wc.Processor.BufferSize,
		Timeout:     wc.Processor.Timeout,
	}
	return NewWorkerInstance(m.ctx, wc.Name, subCfg, procCfg, m.source, m.proc, m.logger)
}
