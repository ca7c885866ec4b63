package model

// 通知投递状态
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// NotificationEvent notifier 投递完成后发布到 Redis 的事件
type NotificationEvent struct {
	OrderNo   string `json:"order_no"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
