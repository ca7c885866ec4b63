package resolution

import "fmt"

// ToolName 工具调用记录中的名称
const ToolName = "check_resolution"

// Quality 分辨率档位
type Quality string

const (
	QualityHigh       Quality = "high"
	QualityAcceptable Quality = "acceptable"
	QualityLow        Quality = "low"
)

// ErrorCode 无法完成检查时的错误类别
type ErrorCode string

const (
	ErrCodeFileNotFound      ErrorCode = "file_not_found"
	ErrCodeUnsupportedFormat ErrorCode = "unsupported_format"
	ErrCodeDecode            ErrorCode = "decode_error"
	ErrCodeTooLarge          ErrorCode = "too_large"
	ErrCodeInvalidTarget     ErrorCode = "invalid_target"
)

// Result 分辨率检查结果
// 文件类问题通过 ErrorCode/Error 表达，不以 error 返回
type Result struct {
	Valid            bool      `json:"valid"`
	Format           string    `json:"format,omitempty"`
	PixelWidth       int       `json:"pixel_width,omitempty"`
	PixelHeight      int       `json:"pixel_height,omitempty"`
	TargetWidth      float64   `json:"target_width_inches"`
	TargetHeight     float64   `json:"target_height_inches"`
	DPIWidth         float64   `json:"dpi_width,omitempty"`
	DPIHeight        float64   `json:"dpi_height,omitempty"`
	EffectiveDPI     float64   `json:"effective_dpi"`
	MetadataDPI      float64   `json:"metadata_dpi,omitempty"`
	MinDPI           float64   `json:"min_dpi"`
	RecommendedDPI   float64   `json:"recommended_dpi"`
	MeetsMinimum     bool      `json:"meets_minimum"`
	MeetsRecommended bool      `json:"meets_recommended"`
	Quality          Quality   `json:"quality,omitempty"`
	Message          string    `json:"message,omitempty"`
	ErrorCode        ErrorCode `json:"error_code,omitempty"`
	Error            string    `json:"error,omitempty"`
	SupportedFormats []string  `json:"supported_formats,omitempty"`
}

// Failed 检查本身没有完成
func (r *Result) Failed() bool {
	return r.ErrorCode != ""
}

// PixelDimensions 形如 "2400x3000"
func (r *Result) PixelDimensions() string {
	if r.PixelWidth == 0 && r.PixelHeight == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", r.PixelWidth, r.PixelHeight)
}

func (r *Result) fail(code ErrorCode, format string, args ...interface{}) *Result {
	r.Valid = false
	r.ErrorCode = code
	r.Error = fmt.Sprintf(format, args...)
	return r
}
