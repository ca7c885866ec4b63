package framework

import (
	"time"

	"github.com/bitleak/lmstfy/client"
)

// LmstfyClient 框架用到的 lmstfy 能力
type LmstfyClient interface {
	Consume(queue string, timeout, ttr time.Duration) (*client.Job, error)
	Ack(queue, jobID string) error
}

// LmstfySource 把 lmstfy 客户端适配为 MessageSource
type LmstfySource struct {
	cli LmstfyClient
}

// NewLmstfySource 创建 lmstfy 消息源
func NewLmstfySource(cli LmstfyClient) *LmstfySource {
	return &LmstfySource{cli: cli}
}

// Consume 拉取一条消息
func (s *LmstfySource) Consume(queue string, timeout, ttr time.Duration) (*Message, error) {
	job, err := s.cli.Consume(queue, timeout, ttr)
	if err != nil || job == nil {
		return nil, err
	}
	return &Message{ID: job.ID, Queue: job.Queue, Data: job.Data}, nil
}

// Ack 确认消息
func (s *LmstfySource) Ack(queue, jobID string) error {
	return s.cli.Ack(queue, jobID)
}
