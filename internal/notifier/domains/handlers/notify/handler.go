package notify

import (
	"context"
	"strings"

	"printshop/common/model"
	"printshop/internal/notifier/business"
	"printshop/internal/notifier/framework"
	"printshop/pkg/errorutil"
)

// Deliverer 通知投递能力
type Deliverer interface {
	Deliver(ctx context.Context, n *model.OrderNotification) error
}

// Output 处理结果
type Output struct {
	OrderNo string `json:"order_no"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

// NotifyHandler 订单受理通知 Handler
type NotifyHandler struct {
	base         *framework.BaseHandler
	deliverer    Deliverer
	notification model.OrderNotification
	output       *Output
}

// NewNotifyHandler 解析 Job 中的通知数据
func NewNotifyHandler(_ context.Context, base *framework.BaseHandler, svc *business.NotificationService) (framework.BusinessHandler, error) {
	h, err := newNotifyHandler(base, svc)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func newNotifyHandler(base *framework.BaseHandler, deliverer Deliverer) (*NotifyHandler, error) {
	h := &NotifyHandler{base: base, deliverer: deliverer}
	if err := base.DecodePayload(&h.notification); err != nil {
		return nil, err
	}
	return h, nil
}

// Handle 执行 PreProcess → Process → PostProcess
func (h *NotifyHandler) Handle(ctx context.Context) ([]byte, error) {
	err := framework.NewPreProcessor(
		framework.Step{Name: "pre_process", Fn: h.PreProcess},
		framework.Step{Name: "process", Fn: h.Process},
		framework.Step{Name: "post_process", Fn: h.PostProcess},
	).Run(ctx)

	data, wrapErr := h.base.WrapResponse(h.output, err)
	if wrapErr != nil {
		return nil, wrapErr
	}
	return data, err
}

// PreProcess 校验消息
func (h *NotifyHandler) PreProcess(_ context.Context) error {
	n := &h.notification
	n.Email = strings.TrimSpace(n.Email)
	if n.OrderNo == "" {
		n.OrderNo = h.base.GetMeta().ID
	}
	if n.OrderNo == "" {
		return errorutil.NonRetriable("order_no is required")
	}
	if n.Email == "" || !strings.Contains(n.Email, "@") {
		return errorutil.NonRetriableWithDetails("invalid recipient", n.Email)
	}
	return nil
}

// Process 发送邮件
func (h *NotifyHandler) Process(ctx context.Context) error {
	return h.deliverer.Deliver(ctx, &h.notification)
}

// PostProcess 组装输出
func (h *NotifyHandler) PostProcess(_ context.Context) error {
	h.output = &Output{
		OrderNo: h.notification.OrderNo,
		Email:   h.notification.Email,
		Status:  model.NotificationStatusSent,
	}
	return nil
}
