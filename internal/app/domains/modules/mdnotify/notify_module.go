package mdnotify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"printshop/common/model"
	"printshop/pkg/logger"
)

// Publisher 消息发布能力（lmstfy 客户端）
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, message interface{}) (string, error)
}

// NotifyModule 订单通知模块
// 负责构造标准化 Job 消息并投递到通知队列
type NotifyModule struct {
	publisher Publisher
	queueName string
	logger    logger.Logger
}

// NewNotifyModule 创建通知模块
func NewNotifyModule(publisher Publisher, queueName string, log logger.Logger) *NotifyModule {
	return &NotifyModule{
		publisher: publisher,
		queueName: queueName,
		logger:    log,
	}
}

// NotifyAccepted 投递订单受理通知
func (m *NotifyModule) NotifyAccepted(ctx context.Context, n *model.OrderNotification) error {
	requestID := logger.TraceID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	job := model.NotificationJob{
		Payload: model.NotificationPayload{
			Data: model.NotificationData{
				RequestID:  requestID,
				ActionType: model.ActionOrderNotify,
				ID:         n.OrderNo,
				Data:       *n,
			},
		},
	}

	jobID, err := m.publisher.PublishJSON(ctx, m.queueName, job)
	if err != nil {
		return fmt.Errorf("publish notification for %s: %w", n.OrderNo, err)
	}

	m.logger.Infof(ctx, "[NotifyModule] notification queued: order_no=%s, job_id=%s, queue=%s",
		n.OrderNo, jobID, m.queueName)
	return nil
}

// LogNotifier 未配置队列时使用，只记录日志
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier 创建日志通知器
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// NotifyAccepted 记录一条通知日志
func (n *LogNotifier) NotifyAccepted(ctx context.Context, o *model.OrderNotification) error {
	n.logger.Infof(ctx, "[LogNotifier] order %s accepted for %s, total %s (queue disabled)",
		o.OrderNo, o.Email, o.Total)
	return nil
}
