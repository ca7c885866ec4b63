package framework

import (
	"context"
	"sync"
	"time"

	"printshop/pkg/logger"
)

// Subscriber 订阅者：从消息队列拉取消息，转发给 Processor
type Subscriber struct {
	cfg        *SubscriberConfig
	source     MessageSource
	logger     Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSubscriber 创建订阅者
func NewSubscriber(cfg *SubscriberConfig, source MessageSource, logger Logger) *Subscriber {
	return &Subscriber{
		cfg:    cfg.withDefaults(),
		source: source,
		logger: logger,
	}
}

// Start 启动订阅循环
func (s *Subscriber) Start(parentCtx context.Context, inputChan chan<- *Message) {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancelFunc = cancel

	s.logger.Infof(ctx, "[Subscriber] Starting with %d workers for queue: %s",
		s.cfg.Concurrency, s.cfg.QueueName)

	for i := 0; i < s.cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.loop(logger.WithWorkerID(ctx, i), i, inputChan)
	}
}

// Stop 停止订阅（不再拉取新消息）
func (s *Subscriber) Stop() {
	s.logger.Infof(context.Background(), "[Subscriber] Stopping...")
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
}

// Wait 等待所有订阅协程退出
func (s *Subscriber) Wait() {
	s.wg.Wait()
	s.logger.Infof(context.Background(), "[Subscriber] All workers exited")
}

// loop 订阅循环（单个 Worker）
func (s *Subscriber) loop(ctx context.Context, workerID int, inputChan chan<- *Message) {
	defer s.wg.Done()
	s.logger.Infof(ctx, "[Subscriber-%d] Started", workerID)

	for {
		if ctx.Err() != nil {
			s.logger.Infof(ctx, "[Subscriber-%d] Context cancelled, exiting", workerID)
			return
		}

		msg, err := s.source.Consume(s.cfg.QueueName, s.cfg.Timeout, s.cfg.TTR)
		if err != nil {
			// 网络抖动不退出，退避后重试
			s.logger.Warnf(ctx, "[Subscriber-%d] Consume error: %v, retrying...", workerID, err)
			if !sleep(ctx, s.cfg.ErrorBackoff) {
				return
			}
			continue
		}

		// 超时未拉到
		if msg == nil {
			continue
		}

		select {
		case inputChan <- msg:
			s.logger.Debugf(ctx, "[Subscriber-%d] Message sent: %s", workerID, msg.ID)
		case <-ctx.Done():
			// 未 ACK，TTR 到期后 lmstfy 会重新投递
			s.logger.Warnf(ctx, "[Subscriber-%d] Releasing message due to shutdown: %s", workerID, msg.ID)
			return
		}

		if !sleep(ctx, s.cfg.Rate) {
			return
		}
	}
}

// sleep 可被取消的等待，返回 false 表示 ctx 已结束
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
