package svorder

import (
	"context"
	"fmt"
	"time"

	"printshop/common/model"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/pkg/errorx"
	"printshop/pkg/logger"
)

// Validator 护栏流水线
type Validator interface {
	Run(ctx context.Context, order *etorder.OrderRequest) *guardrail.Verdict
}

// Notifier 订单受理通知
type Notifier interface {
	NotifyAccepted(ctx context.Context, n *model.OrderNotification) error
}

// OrderNumbers 订单号生成器
type OrderNumbers interface {
	NextOrderNo() string
}

// DeliveryWatcher 订阅 notifier 回报的投递结果
type DeliveryWatcher interface {
	WatchNotification(ctx context.Context, orderNo string) (<-chan *model.NotificationEvent, func(), error)
}

// Submission 提交结果
type Submission struct {
	Verdict  *guardrail.Verdict
	OrderNo  string
	Notified bool
	// Delivery 等待期内收到的投递状态（SENT/FAILED），未等待或超时为空
	Delivery string
}

// OrderService 订单服务，负责校验与提交的业务编排
type OrderService struct {
	validator Validator
	notifier  Notifier
	numbers   OrderNumbers
	watcher   DeliveryWatcher
	logger    logger.Logger
}

// NewOrderService 创建订单服务实例
func NewOrderService(validator Validator, notifier Notifier, numbers OrderNumbers, log logger.Logger) *OrderService {
	return &OrderService{
		validator: validator,
		notifier:  notifier,
		numbers:   numbers,
		logger:    log,
	}
}

// WithDeliveryWatcher 开启 Smart Wait
func (s *OrderService) WithDeliveryWatcher(w DeliveryWatcher) *OrderService {
	s.watcher = w
	return s
}

// ValidateOrder 只跑护栏，不产生任何副作用
func (s *OrderService) ValidateOrder(ctx context.Context, order *etorder.OrderRequest) *guardrail.Verdict {
	return s.validator.Run(ctx, order)
}

// SubmitOrder 提交订单
// 1. 跑护栏流水线
// 2. 生成客户可见的状态文本并做价格检查
// 3. 分配订单号并投递通知（失败只记日志，不影响受理结果）
// 4. Smart Wait：wait > 0 时等待投递结果，超时不算失败
func (s *OrderService) SubmitOrder(ctx context.Context, order *etorder.OrderRequest, wait time.Duration) (*Submission, error) {
	if order.Email() == "" {
		return nil, errorx.BadRequest(errorx.ErrEmailRequired)
	}

	verdict := s.validator.Run(ctx, order)
	if !verdict.Valid() {
		return &Submission{Verdict: verdict}, nil
	}

	screened := guardrail.ScreenResponse(verdict, StatusText(verdict))
	if !screened.Valid() {
		s.logger.Errorf(ctx, "[OrderService] status text failed output guardrail: %v", screened.Errors())
		return &Submission{Verdict: screened}, nil
	}

	orderNo := s.numbers.NextOrderNo()
	ctx = logger.WithOrderNo(ctx, orderNo)
	sub := &Submission{Verdict: verdict, OrderNo: orderNo}

	// 先订阅再投递，避免错过事件
	var (
		events <-chan *model.NotificationEvent
		stop   func()
	)
	if wait > 0 && s.watcher != nil {
		var err error
		if events, stop, err = s.watcher.WatchNotification(ctx, orderNo); err != nil {
			s.logger.Warnf(ctx, "[OrderService] watch notification failed: %v", err)
		} else {
			defer stop()
		}
	}

	if err := s.notifier.NotifyAccepted(ctx, notificationFor(orderNo, order, verdict)); err != nil {
		s.logger.Warnf(ctx, "[OrderService] notification failed, order still accepted: %v", err)
		return sub, nil
	}
	sub.Notified = true
	s.logger.Infof(ctx, "[OrderService] order accepted and notification queued")

	if events != nil {
		sub.Delivery = s.waitDelivery(ctx, events, wait)
	}
	return sub, nil
}

// waitDelivery 等待第一条投递事件
func (s *OrderService) waitDelivery(ctx context.Context, events <-chan *model.NotificationEvent, wait time.Duration) string {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case event, ok := <-events:
		if !ok || event == nil {
			return ""
		}
		if event.Status == model.NotificationStatusFailed {
			s.logger.Warnf(ctx, "[OrderService] notification delivery failed: %s", event.Error)
		}
		return event.Status
	case <-timer.C:
		s.logger.Infof(ctx, "[OrderService] no delivery result within %s", wait)
		return ""
	case <-ctx.Done():
		return ""
	}
}

// StatusText 返回给客户的状态文本
func StatusText(v *guardrail.Verdict) string {
	if !v.Valid() {
		return fmt.Sprintf("Rejected at %s", v.Layer())
	}
	return "Accepted - Order Total: " + v.Summary().Price.FormattedTotal()
}

func notificationFor(orderNo string, order *etorder.OrderRequest, v *guardrail.Verdict) *model.OrderNotification {
	sum := v.Summary()
	return &model.OrderNotification{
		OrderNo:      orderNo,
		Email:        order.Email(),
		Name:         order.Name(),
		Size:         sum.Size,
		Paper:        sum.Paper,
		Color:        sum.Color,
		Finish:       sum.Finish,
		Quantity:     sum.Quantity,
		DPI:          sum.File.DPI,
		Quality:      string(sum.File.Quality),
		Total:        sum.Price.FormattedTotal(),
		PricePerUnit: sum.Price.PricePerUnit.StringFixed(2),
		RushType:     sum.RushType,
		Artwork:      order.Filename(),
	}
}
