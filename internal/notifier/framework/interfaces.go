package framework

import (
	"context"
	"time"
)

// MessageSource 队列抽象，Subscriber 只依赖它拉取、Processor 只依赖它确认
type MessageSource interface {
	// Consume 阻塞等待 timeout，没有 Job 时返回 nil, nil
	Consume(queue string, timeout, ttr time.Duration) (*Message, error)
	Ack(queue, jobID string) error
}

// Logger framework 需要的日志能力，pkg/logger.Logger 满足它
type Logger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
}

// ProcessorFunc PreProcessor 中的一个步骤
type ProcessorFunc func(ctx context.Context) error

// BusinessHandler 一个 Job 对应一个 handler 实例，返回值作为 Job 结果
type BusinessHandler interface {
	Handle(ctx context.Context) ([]byte, error)
}
