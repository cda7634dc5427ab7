package utils

import (
	"image/color"
	"math"
)

// LinearToSRGB 线性分量转 sRGB 分量（输入先截断到 [0, 1]）
func LinearToSRGB(c float64) float64 {
	c = clamp01(c)
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// ToneMap Reinhard 色调映射，把 HDR 线性值压缩到 [0, 1)
func ToneMap(c float64) float64 {
	if !(c > 0) {
		return 0
	}
	if math.IsInf(c, 1) {
		return 1
	}
	return c / (1 + c)
}

// SRGBColor 把 sRGB 分量 [0, 1] 转为 8 位颜色
func SRGBColor(r, g, b, a float64) color.RGBA {
	return color.RGBA{
		R: to8(r * a),
		G: to8(g * a),
		B: to8(b * a),
		A: to8(a),
	}
}

// LinearColor 线性 RGB 转 8 位 sRGB 颜色（预乘 alpha）
func LinearColor(r, g, b, a float64) color.RGBA {
	return SRGBColor(LinearToSRGB(r), LinearToSRGB(g), LinearToSRGB(b), a)
}

// EmissiveColor 自发光颜色：先色调映射再转 sRGB
func EmissiveColor(r, g, b, a float64) color.RGBA {
	return LinearColor(ToneMap(r), ToneMap(g), ToneMap(b), a)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
