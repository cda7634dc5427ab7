package utils

import (
	"image/color"
	"math"
	"testing"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-1, 0},
		{1, 0.5},
		{3, 0.75},
		{math.Inf(1), 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ToneMap(tt.in); got != tt.want {
			t.Errorf("ToneMap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLinearToSRGB(t *testing.T) {
	if got := LinearToSRGB(0); got != 0 {
		t.Errorf("LinearToSRGB(0) = %v", got)
	}
	if got := LinearToSRGB(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("LinearToSRGB(1) = %v", got)
	}
	// 中灰 0.214 约等于 sRGB 0.5
	if got := LinearToSRGB(0.214); math.Abs(got-0.5) > 0.01 {
		t.Errorf("LinearToSRGB(0.214) = %v, want ~0.5", got)
	}
	if got := LinearToSRGB(5); got != LinearToSRGB(1) {
		t.Error("values above 1 should clamp")
	}
}

// TestEmissiveColor 子弹的自发光颜色经色调映射后仍是偏暖的亮色
func TestEmissiveColor(t *testing.T) {
	c := EmissiveColor(13.99, 5.32, 2.0, 1)
	if c.A != 255 {
		t.Errorf("alpha: got %d", c.A)
	}
	if !(c.R > c.G && c.G > c.B) {
		t.Errorf("emissive should stay warm (R > G > B), got %v", c)
	}
	if c.B < 128 {
		t.Errorf("emissive should be bright, got %v", c)
	}
}

func TestSRGBColorPremultiplied(t *testing.T) {
	got := SRGBColor(1, 1, 1, 0.5)
	want := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	if got != want {
		t.Errorf("SRGBColor: got %v, want %v", got, want)
	}
}
