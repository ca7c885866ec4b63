package logger

import "context"

type ctxKey int

const (
	traceIDKey ctxKey = iota
	workerIDKey
	actionTypeKey
	orderNoKey
)

// WithTraceID 注入链路 ID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID 读取链路 ID，不存在时返回空串
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// WithWorkerID 注入处理协程编号
func WithWorkerID(ctx context.Context, workerID int) context.Context {
	return context.WithValue(ctx, workerIDKey, workerID)
}

// WithActionType 注入 Job 动作类型
func WithActionType(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, actionTypeKey, actionType)
}

// WithOrderNo 注入订单号
func WithOrderNo(ctx context.Context, orderNo string) context.Context {
	return context.WithValue(ctx, orderNoKey, orderNo)
}
