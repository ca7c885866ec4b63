package framework

import "time"

// 未配置时的默认值
const (
	defaultConcurrency  = 1
	defaultPullTimeout  = 3 * time.Second
	defaultTTR          = 30 * time.Second
	defaultErrorBackoff = time.Second
	defaultProcTimeout  = 30 * time.Second
)

// SubscriberConfig 拉取端配置
type SubscriberConfig struct {
	QueueName    string
	Concurrency  int           // 拉取协程数
	Timeout      time.Duration // 单次阻塞拉取的等待时间
	TTR          time.Duration // 未 ACK 的 Job 到期后由 lmstfy 重新投递
	Rate         time.Duration // 两次拉取的最小间隔，0 为不限
	ErrorBackoff time.Duration
}

// withDefaults 返回补全默认值后的副本
func (c SubscriberConfig) withDefaults() *SubscriberConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultPullTimeout
	}
	if c.TTR <= 0 {
		c.TTR = defaultTTR
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = defaultErrorBackoff
	}
	return &c
}

// ProcessorConfig 处理端配置
type ProcessorConfig struct {
	Concurrency int
	BufferSize  int           // 消息通道容量，0 为无缓冲
	Timeout     time.Duration // 单条消息的处理时限
}

func (c ProcessorConfig) withDefaults() *ProcessorConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.BufferSize < 0 {
		c.BufferSize = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultProcTimeout
	}
	return &c
}
