package order

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printshop/internal/app/domains/apimodel/request"
	"printshop/internal/app/domains/apimodel/response"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/services/svorder"
	"printshop/internal/app/pkg/errorx"
	"printshop/internal/app/pkg/ginx"
)

// Submit godoc
// @Summary      提交订单
// @Description  护栏全部通过后受理订单并投递通知
// @Description  422 表示被某一层拒绝，500 表示输出护栏发现完整性问题
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body request.OrderRequest true "订单参数（email 必填）"
// @Success      200 {object} ginx.Response{data=response.SubmitResponse} "已受理"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      422 {object} ginx.Response{data=response.SubmitResponse} "被护栏拒绝"
// @Failure      500 {object} ginx.Response{data=response.SubmitResponse} "输出护栏拦截"
// @Router       /orders [post]
func (h *OrderHandler) Submit(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	if req.Email == "" {
		ginx.BusinessError(c, errorx.BadRequest(errorx.ErrEmailRequired).WithDetail("email", "email is required"))
		return
	}

	order, err := req.ToOrderEntity(h.files)
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	wait := time.Duration(req.WaitSeconds) * time.Second
	sub, err := h.orderService.SubmitOrder(c.Request.Context(), order, wait)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	resp := &response.SubmitResponse{
		OrderNo:  sub.OrderNo,
		Notified: sub.Notified,
		Delivery: sub.Delivery,
		Status:   svorder.StatusText(sub.Verdict),
		Verdict:  response.FromVerdict(sub.Verdict),
	}

	switch {
	case sub.Verdict.Valid():
		ginx.Success(c, resp)
	case sub.Verdict.Layer() == guardrail.LayerOutputGuardrail:
		h.logger.Errorf(c.Request.Context(), "[OrderHandler] integrity violation %q on submit", sub.Verdict.Violation())
		ginx.JSON(c, http.StatusInternalServerError, "Order failed integrity check", resp)
	default:
		ginx.JSON(c, http.StatusUnprocessableEntity, "Order rejected at "+string(sub.Verdict.Layer()), resp)
	}
}
