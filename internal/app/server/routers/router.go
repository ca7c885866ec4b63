package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop/internal/app/pkg/ginx"
	"printshop/internal/app/server/handlers/catalog"
	"printshop/internal/app/server/handlers/order"
	"printshop/internal/app/server/handlers/upload"
	"printshop/internal/app/server/middlewares"
	"printshop/pkg/logger"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	orderHandler *order.OrderHandler,
	uploadHandler *upload.UploadHandler,
	catalogHandler *catalog.CatalogHandler,
	log logger.Logger,
	maxUploadBytes int64,
) *gin.Engine {
	r := gin.New()
	if maxUploadBytes > 0 {
		r.MaxMultipartMemory = maxUploadBytes
	}

	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "printshop-apiserver",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/capabilities", catalogHandler.Capabilities)
		v1.POST("/uploads", uploadHandler.Create)

		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Submit)
			orders.POST("/validate", orderHandler.Validate)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		ginx.NotFound(c, "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	return r
}
