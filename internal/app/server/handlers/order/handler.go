package order

import (
	"printshop/internal/app/domains/apimodel/request"
	"printshop/internal/app/domains/services/svorder"
	"printshop/pkg/logger"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	orderService *svorder.OrderService
	files        request.FileResolver
	logger       logger.Logger
}

// NewOrderHandler 创建订单处理器实例
func NewOrderHandler(orderService *svorder.OrderService, files request.FileResolver, log logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		files:        files,
		logger:       log,
	}
}
