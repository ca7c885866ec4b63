package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"printshop/internal/app/pkg/errorx"
)

// Response 统一响应结构
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	Code    int           `json:"code" example:"200"`
	Message string        `json:"message" example:"OK"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string `json:"path" example:"size"`
	Info string `json:"info" example:"size is required"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, "OK", data)
}

// JSON 指定状态码和消息，同时携带数据
func JSON(c *gin.Context, httpCode int, message string, data interface{}) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
		},
		Data: data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
		},
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
			Details: details,
		},
	})
}

// BusinessError 按业务错误的状态码输出
func BusinessError(c *gin.Context, err error) {
	var be *errorx.BusinessError
	if !errors.As(err, &be) {
		InternalError(c, err.Error())
		return
	}
	details := make([]ErrorDetail, 0, len(be.Details))
	for _, d := range be.Details {
		details = append(details, ErrorDetail{Path: d.Path, Info: d.Info})
	}
	ErrorWithDetails(c, errorx.HTTPStatus(be), be.Message, details)
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400 错误（带验证详情）
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, ErrorDetail{
				Path: fieldErr.Field(),
				Info: getValidationErrorMessage(fieldErr),
			})
		}
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	BadRequest(c, err.Error())
}

// NotFound 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// getValidationErrorMessage 根据验证错误类型返回友好的错误消息
func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email address"
	case "gt":
		return fieldErr.Field() + " must be greater than " + fieldErr.Param()
	case "gte", "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max", "lte":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}
