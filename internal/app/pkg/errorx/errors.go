package errorx

import (
	"errors"
	"net/http"
)

// 定义业务错误
var (
	ErrEmailRequired     = errors.New("email is required to submit an order")
	ErrUploadTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedUpload = errors.New("unsupported upload format")
	ErrConversionFailed  = errors.New("file conversion failed")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 返回原始错误
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// BadRequest 包装为 400 业务错误，保留原始错误用于 errors.Is
func BadRequest(err error) *BusinessError {
	return &BusinessError{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

// Wrap 关联原始错误
func (e *BusinessError) Wrap(cause error) *BusinessError {
	e.cause = cause
	return e
}

// WithDetail 追加一条错误详情
func (e *BusinessError) WithDetail(path, info string) *BusinessError {
	e.Details = append(e.Details, ErrorDetail{Path: path, Info: info})
	return e
}

// HTTPStatus 从错误链中取状态码，非业务错误视为 500
func HTTPStatus(err error) int {
	var be *BusinessError
	if errors.As(err, &be) && be.Code != 0 {
		return be.Code
	}
	return http.StatusInternalServerError
}
