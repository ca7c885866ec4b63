package framework

import (
	"context"
	"sync"
	"time"

	"github.com/bitleak/lmstfy/client"

	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

// Processor 处理器：接收消息，调用业务处理函数，按结果决定是否 ACK
type Processor struct {
	cfg        *ProcessorConfig
	proc       lmstfyx.Proc
	source     MessageSource
	logger     Logger
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewProcessor 创建处理器
func NewProcessor(cfg *ProcessorConfig, proc lmstfyx.Proc, source MessageSource, logger Logger) *Processor {
	return &Processor{
		cfg:        cfg.withDefaults(),
		proc:       proc,
		source:     source,
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}
}

// Start 启动处理协程
func (p *Processor) Start(ctx context.Context, inputChan <-chan *Message) {
	p.logger.Infof(ctx, "[Processor] Starting with %d workers", p.cfg.Concurrency)

	for i := 0; i < p.cfg.Concurrency; i++ {
		p.wg.Add(1)
		go p.loop(logger.WithWorkerID(ctx, i), i, inputChan)
	}
}

// SignalShutdown 通知 Processor 进入 Drain 模式
func (p *Processor) SignalShutdown() {
	p.logger.Infof(context.Background(), "[Processor] Shutdown signal received")
	close(p.shutdownCh)
}

// Wait 等待所有处理协程退出
func (p *Processor) Wait() {
	p.wg.Wait()
	p.logger.Infof(context.Background(), "[Processor] All workers exited")
}

func (p *Processor) loop(ctx context.Context, workerID int, inputChan <-chan *Message) {
	defer p.wg.Done()
	p.logger.Infof(ctx, "[Processor-%d] Started", workerID)

	for {
		select {
		case msg := <-inputChan:
			p.process(ctx, msg, workerID)

		case <-p.shutdownCh:
			// Drain：处理完缓冲区中剩余的消息再退出
			count := 0
			for {
				select {
				case msg := <-inputChan:
					p.process(ctx, msg, workerID)
					count++
				default:
					p.logger.Infof(ctx, "[Processor-%d] Drained %d messages, exiting", workerID, count)
					return
				}
			}
		}
	}
}

func (p *Processor) process(ctx context.Context, msg *Message, workerID int) {
	if msg == nil {
		return
	}
	startTime := time.Now()

	procCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		procCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	resp := p.proc(procCtx, &client.Job{ID: msg.ID, Queue: msg.Queue, Data: msg.Data})
	if resp == nil {
		resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
	}

	switch resp.Action {
	case lmstfyx.JobRespStatusRelease:
		// 不 ACK，等 TTR 到期重新投递
		p.logger.Warnf(procCtx, "[Processor-%d] Message %s released for retry", workerID, msg.ID)
	default:
		if err := p.source.Ack(msg.Queue, msg.ID); err != nil {
			p.logger.Errorf(procCtx, "[Processor-%d] Ack %s failed: %v", workerID, msg.ID, err)
		}
	}

	p.logger.Infof(procCtx, "[Processor-%d] Message processed: %s, action: %s, duration: %v",
		workerID, msg.ID, resp.Action, time.Since(startTime))
}
