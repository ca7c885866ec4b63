package middlewares

import (
	"github.com/gin-gonic/gin"

	"printshop/internal/app/pkg/ginx"
	"printshop/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 捕获 panic 以及处理器通过 c.Error 挂载但未写响应的错误
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: %v", r)
				if !c.Writer.Written() {
					ginx.InternalError(c, "internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.BusinessError(c, c.Errors.Last().Err)
		}
	}
}
