package framework

// Message 框架内部流转的消息
type Message struct {
	ID    string // 消息 ID
	Queue string // 队列名称
	Data  []byte // 原始 Job 数据
}
