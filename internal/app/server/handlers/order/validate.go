package order

import (
	"github.com/gin-gonic/gin"

	"printshop/internal/app/domains/apimodel/request"
	"printshop/internal/app/domains/apimodel/response"
	"printshop/internal/app/pkg/ginx"
)

// Validate godoc
// @Summary      校验订单
// @Description  运行全部护栏层并返回裁决，不产生任何副作用
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body request.OrderRequest true "订单参数"
// @Success      200 {object} ginx.Response{data=response.VerdictResponse} "裁决结果（valid 可能为 false）"
// @Failure      400 {object} ginx.Response "参数错误"
// @Router       /orders/validate [post]
func (h *OrderHandler) Validate(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := req.ToOrderEntity(h.files)
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	verdict := h.orderService.ValidateOrder(c.Request.Context(), order)
	ginx.Success(c, response.FromVerdict(verdict))
}
