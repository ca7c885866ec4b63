package model

// ActionOrderNotify 订单受理通知的动作类型
const ActionOrderNotify = "order_notify"

// NotificationJob 订单通知任务消息
// 用于 apiserver → notifier 的消息传递
type NotificationJob struct {
	Payload NotificationPayload `json:"payload"`
}

// NotificationPayload Job 负载
type NotificationPayload struct {
	Data NotificationData `json:"data"`
}

// NotificationData Job 数据层
type NotificationData struct {
	RequestID  string `json:"request_id"`  // 请求 ID（全链路追踪）
	ActionType string `json:"action_type"` // 固定值 "order_notify"
	ID         string `json:"id"`          // 订单号

	Data OrderNotification `json:"data"`
}

// OrderNotification 通知所需的全部订单信息，worker 无需回查
type OrderNotification struct {
	OrderNo      string  `json:"order_no"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Size         string  `json:"size"`
	Paper        string  `json:"paper"`
	Color        string  `json:"color"`
	Finish       string  `json:"finish"`
	Quantity     int     `json:"quantity"`
	DPI          float64 `json:"dpi"`
	Quality      string  `json:"quality"`
	Total        string  `json:"total"`
	PricePerUnit string  `json:"price_per_unit"`
	RushType     string  `json:"rush_type,omitempty"`
	Artwork      string  `json:"artwork"`
}
