package worker

import (
	"context"

	"printshop/internal/notifier/framework"
	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

// Worker 接口
type Worker interface {
	Start()
	Shutdown()
	GetName() string
}

// WorkerInstance 一个队列对应一组 Subscriber + Processor
type WorkerInstance struct {
	ctx        context.Context
	name       string
	subscriber *framework.Subscriber
	processor  *framework.Processor
	inputChan  chan *framework.Message
	logger     logger.Logger
}

// NewWorkerInstance 创建 Worker 实例
func NewWorkerInstance(
	ctx context.Context,
	name string,
	subscriberCfg *framework.SubscriberConfig,
	processorCfg *framework.ProcessorConfig,
	source framework.MessageSource,
	proc lmstfyx.Proc,
	log logger.Logger,
) *WorkerInstance {
	return &WorkerInstance{
		ctx:        ctx,
		name:       name,
		subscriber: framework.NewSubscriber(subscriberCfg, source, log),
		processor:  framework.NewProcessor(processorCfg, proc, source, log),
		inputChan:  make(chan *framework.Message, processorCfg.BufferSize),
		logger:     log,
	}
}

// Start 启动处理协程与拉取协程后立即返回
func (w *WorkerInstance) Start() {
	w.processor.Start(w.ctx, w.inputChan)
	w.subscriber.Start(w.ctx, w.inputChan)
	w.logger.Infof(w.ctx, "[Worker] %s started", w.name)
}

// Shutdown 优雅退出：先停拉取，再排空缓冲区
func (w *WorkerInstance) Shutdown() {
	w.logger.Infof(w.ctx, "[Worker] %s began to close", w.name)

	w.subscriber.Stop()
	w.subscriber.Wait()

	w.processor.SignalShutdown()
	w.processor.Wait()

	w.logger.Infof(w.ctx, "[Worker] %s shutdown complete", w.name)
}

// GetName 获取 Worker 名称
func (w *WorkerInstance) GetName() string {
	return w.name
}
