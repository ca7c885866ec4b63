package catalog

import (
	"github.com/gin-gonic/gin"

	"printshop/internal/app/domains/apimodel/response"
	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/pkg/ginx"
)

// CatalogHandler 能力清单 HTTP 处理器
type CatalogHandler struct {
	manifest *response.CapabilitiesResponse
}

// NewCatalogHandler 目录只读，清单在构造时生成一次
func NewCatalogHandler(catalog *etcatalog.Catalog, table *etcatalog.PricingTable) *CatalogHandler {
	return &CatalogHandler{manifest: response.FromCatalog(catalog, table)}
}

// Capabilities godoc
// @Summary      店铺能力清单
// @Tags         catalog
// @Produce      json
// @Success      200 {object} ginx.Response{data=response.CapabilitiesResponse}
// @Router       /capabilities [get]
func (h *CatalogHandler) Capabilities(c *gin.Context) {
	ginx.Success(c, h.manifest)
}
