package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"printshop/common/model"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例并检查连通性
func NewPubSub(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{client: client}, nil
}

// NotificationChannel 订单通知事件频道：order:notification:{order_no}
func NotificationChannel(orderNo string) string {
	return "order:notification:" + orderNo
}

// PublishNotificationEvent 发布通知投递结果
func (p *PubSub) PublishNotificationEvent(ctx context.Context, event *model.NotificationEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := p.client.Publish(ctx, NotificationChannel(event.OrderNo), msg).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	return nil
}

// WatchNotification 订阅订单的通知事件频道
// 返回前订阅已经生效，events 最多收到一条事件；调用 stop 释放订阅
func (p *PubSub) WatchNotification(ctx context.Context, orderNo string) (<-chan *model.NotificationEvent, func(), error) {
	sub := p.client.Subscribe(ctx, NotificationChannel(orderNo))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe notification channel: %w", err)
	}

	events := make(chan *model.NotificationEvent, 1)
	done := make(chan struct{})
	go func() {
		defer close(events)
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event model.NotificationEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				events <- &event
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return events, stop, nil
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
