package business

import (
	"context"
	"fmt"
	"strings"
	"time"

	"printshop/common/model"
	"printshop/pkg/errorutil"
	"printshop/pkg/logger"
)

// EventPublisher 投递结果事件发布（Redis Pub/Sub）
type EventPublisher interface {
	PublishNotificationEvent(ctx context.Context, event *model.NotificationEvent) error
}

// NotificationService 订单通知服务
// 职责：组装邮件 → 发送 → 发布投递结果事件
type NotificationService struct {
	mailer   Mailer
	events   EventPublisher
	shopName string
	logger   logger.Logger
	now      func() time.Time
}

// NewNotificationService 创建通知服务，events 可为 nil
func NewNotificationService(mailer Mailer, events EventPublisher, shopName string, log logger.Logger) *NotificationService {
	return &NotificationService{
		mailer:   mailer,
		events:   events,
		shopName: shopName,
		logger:   log,
		now:      time.Now,
	}
}

// Deliver 发送订单受理邮件
// 发送失败时返回带重试标记的错误；可重试的失败会被重新投递，只有永久失败才发布 FAILED 事件
// 事件发布失败只记日志
func (s *NotificationService) Deliver(ctx context.Context, n *model.OrderNotification) error {
	if n.OrderNo == "" {
		return errorutil.NonRetriable("order_no is required")
	}
	if n.Email == "" {
		return errorutil.NonRetriable("email is required")
	}

	event := &model.NotificationEvent{
		OrderNo:   n.OrderNo,
		Email:     n.Email,
		Status:    model.NotificationStatusSent,
		Timestamp: s.now().Unix(),
	}

	if sendErr := s.mailer.Send(ctx, s.compose(n)); sendErr != nil {
		err := errorutil.Wrap(sendErr)
		if err.Retryable {
			s.logger.Warnf(ctx, "[NotificationService] order %s send failed, will retry: %v", n.OrderNo, sendErr)
			return err
		}
		event.Status = model.NotificationStatusFailed
		event.Error = sendErr.Error()
		s.publish(ctx, event)
		return err
	}

	s.publish(ctx, event)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, event *model.NotificationEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Warnf(ctx, "[NotificationService] publish %s event failed: %v", event.Status, err)
	}
}

func (s *NotificationService) compose(n *model.OrderNotification) *Mail {
	name := n.Name
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your order %s has been accepted.\n\n", n.OrderNo)
	fmt.Fprintf(&b, "  Size:      %s\n", n.Size)
	fmt.Fprintf(&b, "  Paper:     %s (%s, %s)\n", n.Paper, n.Color, n.Finish)
	fmt.Fprintf(&b, "  Quantity:  %d\n", n.Quantity)
	fmt.Fprintf(&b, "  Artwork:   %s (%.0f DPI, %s quality)\n", n.Artwork, n.DPI, n.Quality)
	if n.RushType != "" {
		fmt.Fprintf(&b, "  Rush:      %s\n", n.RushType)
	}
	fmt.Fprintf(&b, "  Per unit:  $%s\n", n.PricePerUnit)
	fmt.Fprintf(&b, "  Total:     %s\n\n", n.Total)
	fmt.Fprintf(&b, "Thanks,\n%s\n", s.shopName)

	return &Mail{
		To:      n.Email,
		Subject: fmt.Sprintf("%s: order %s accepted", s.shopName, n.OrderNo),
		Body:    b.String(),
	}
}
