package upload

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"printshop/internal/app/domains/apimodel/response"
	"printshop/internal/app/infra/storage"
	"printshop/internal/app/pkg/ginx"
	"printshop/pkg/logger"
)

// Saver 上传文件落盘
type Saver interface {
	Save(ctx context.Context, filename string, r io.Reader) (*storage.Upload, error)
}

// UploadHandler 上传 HTTP 处理器
type UploadHandler struct {
	saver  Saver
	logger logger.Logger
}

// NewUploadHandler 创建上传处理器实例
func NewUploadHandler(saver Saver, log logger.Logger) *UploadHandler {
	return &UploadHandler{saver: saver, logger: log}
}

// Create godoc
// @Summary      上传稿件
// @Description  PDF 会转换为第一页的 JPEG；HEIC 需先转换格式
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "稿件文件"
// @Success      200 {object} ginx.Response{data=response.UploadResponse} "上传成功"
// @Failure      400 {object} ginx.Response "缺少文件"
// @Failure      413 {object} ginx.Response "文件过大"
// @Failure      415 {object} ginx.Response "不支持的格式"
// @Router       /uploads [post]
func (h *UploadHandler) Create(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		ginx.BadRequest(c, "file is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}
	defer f.Close()

	up, err := h.saver.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "[UploadHandler] save %q failed: %v", fh.Filename, err)
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, &response.UploadResponse{
		Filename:  up.Filename,
		Width:     up.Width,
		Height:    up.Height,
		Converted: up.Converted,
	})
}
