package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 日志接口
type Logger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
	Sync() error
}

// ZapLogger Zap 日志实现
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger 创建 Zap 日志实例
func NewZapLogger(level string) (Logger, error) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: l}, nil
}

// NewNop 丢弃所有输出，测试使用
func NewNop() Logger {
	return &ZapLogger{logger: zap.NewNop()}
}

// NewFromZap 包装已有的 zap.Logger
func NewFromZap(l *zap.Logger) Logger {
	return &ZapLogger{logger: l}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// extractFields 从 Context 提取日志字段
func (l *ZapLogger) extractFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 4)

	if traceID := TraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if workerID, ok := ctx.Value(workerIDKey).(int); ok {
		fields = append(fields, zap.Int("worker_id", workerID))
	}
	if actionType, ok := ctx.Value(actionTypeKey).(string); ok && actionType != "" {
		fields = append(fields, zap.String("action_type", actionType))
	}
	if orderNo, ok := ctx.Value(orderNoKey).(string); ok && orderNo != "" {
		fields = append(fields, zap.String("order_no", orderNo))
	}

	return fields
}

// Debugf 输出 Debug 日志
func (l *ZapLogger) Debugf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Infof 输出 Info 日志
func (l *ZapLogger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Warnf 输出 Warn 日志
func (l *ZapLogger) Warnf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Errorf 输出 Error 日志
func (l *ZapLogger) Errorf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Sync 同步日志缓冲区
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
