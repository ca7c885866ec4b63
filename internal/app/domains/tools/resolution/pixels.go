package resolution

import "math"

// dpiPrecision 英寸乘 DPI 时只保留到 1e-6 像素，消除浮点误差（8.8*225 = 1980.0000000000002）
const dpiPrecision = 1e6

// RequiredPixels 以 dpi 覆盖 inches 所需的最少像素
func RequiredPixels(inches, dpi float64) int {
	return int(math.Ceil(math.Round(inches*dpi*dpiPrecision) / dpiPrecision))
}

// MinimumPixels 在给定 DPI 下覆盖成品尺寸及四周出血所需的最少像素
func MinimumPixels(widthIn, heightIn, dpi, bleedIn float64) (int, int) {
	return RequiredPixels(widthIn+2*bleedIn, dpi), RequiredPixels(heightIn+2*bleedIn, dpi)
}

// MeetsDPI 两个方向的像素都不少于 dpi 所需，在像素空间比较
func MeetsDPI(pixelW, pixelH int, widthIn, heightIn, dpi float64) bool {
	return pixelW >= RequiredPixels(widthIn, dpi) && pixelH >= RequiredPixels(heightIn, dpi)
}

// EffectiveDPI 取宽高两个方向中较低的 DPI，结果按 dpiPrecision 取整
func EffectiveDPI(pixelW, pixelH int, widthIn, heightIn float64) (dpiW, dpiH, effective float64) {
	dpiW = roundDPI(float64(pixelW) / widthIn)
	dpiH = roundDPI(float64(pixelH) / heightIn)
	return dpiW, dpiH, math.Min(dpiW, dpiH)
}

func roundDPI(v float64) float64 {
	return math.Round(v*dpiPrecision) / dpiPrecision
}
