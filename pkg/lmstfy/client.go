package lmstfy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
)

// Client Lmstfy 客户端封装
type Client struct {
	cli       *client.LmstfyClient
	namespace string
	ttl       uint32
	tries     uint16
}

// Options 发布参数
type Options struct {
	TTL   time.Duration // 消息存活时间，0 表示永久
	Tries uint16        // 最大投递次数
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string, opts Options) *Client {
	if opts.Tries == 0 {
		opts.Tries = 3
	}
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
		ttl:       uint32(opts.TTL.Seconds()),
		tries:     opts.Tries,
	}
}

// Namespace 所属命名空间
func (c *Client) Namespace() string {
	return c.namespace
}

// Publish 发布原始消息，返回 job id
func (c *Client) Publish(queue string, data []byte, delay time.Duration) (string, error) {
	jobID, err := c.cli.Publish(queue, data, c.ttl, c.tries, uint32(delay.Seconds()))
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

// PublishJSON 序列化后发布
func (c *Client) PublishJSON(ctx context.Context, queue string, message interface{}) (string, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("marshal message failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.Publish(queue, data, 0)
}

// Consume 拉取一条消息，超时未拉到时返回 nil, nil
func (c *Client) Consume(queue string, timeout, ttr time.Duration) (*client.Job, error) {
	job, err := c.cli.Consume(queue, uint32(ttr.Seconds()), uint32(timeout.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	return job, nil
}

// Ack 确认消息（删除消息）
func (c *Client) Ack(queue, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
