package etorder

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size 成品尺寸（英寸，值对象）
type Size struct {
	Width  float64
	Height float64
}

// ParseSize 解析 "8x10"、"8.5 x 11"、`8"x10"` 形式的尺寸
func ParseSize(raw string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(`"`, "", "in", "", "×", "x", " ", "").Replace(s)

	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("%w: %q, expected WIDTHxHEIGHT", ErrInvalidSize, raw)
	}

	w, errW := strconv.ParseFloat(parts[0], 64)
	h, errH := strconv.ParseFloat(parts[1], 64)
	if errW != nil || errH != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, raw)
	}

	size := Size{Width: w, Height: h}
	if err := size.Validate(); err != nil {
		return Size{}, err
	}
	return size, nil
}

// Validate 宽高必须为有限正数
func (s Size) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return fmt.Errorf("%w: dimensions must be positive, got %vx%v", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

// Label 形如 `8"x10"`
func (s Size) Label() string {
	return fmt.Sprintf(`%s"x%s"`, formatInches(s.Width), formatInches(s.Height))
}

// Key 形如 "8x10"
func (s Size) Key() string {
	return formatInches(s.Width) + "x" + formatInches(s.Height)
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
