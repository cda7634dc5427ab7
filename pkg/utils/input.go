// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerButtons 当前按住的指针按键（位掩码）
type PointerButtons uint8

const (
	// ButtonPrimary 主键（鼠标左键 / 单指触摸）
	ButtonPrimary PointerButtons = 1 << iota
	// ButtonSecondary 副键（鼠标右键 / 中键 / 双指触摸）
	ButtonSecondary
)

// Has 是否按住指定按键
func (b PointerButtons) Has(button PointerButtons) bool {
	return b&button != 0
}

// PointerInput 一帧的指针输入
// DX/DY 为屏幕像素位移（Y 向下为正），Scroll 为滚轮刻度（向上为正）
type PointerInput struct {
	DX, DY  float64
	Scroll  float64
	Buttons PointerButtons
}

// IsZero 是否没有任何输入
func (in PointerInput) IsZero() bool {
	return in.DX == 0 && in.DY == 0 && in.Scroll == 0 && in.Buttons == 0
}

// Sanitized 把 NaN/Inf 分量替换为 0
func (in PointerInput) Sanitized() PointerInput {
	return PointerInput{
		DX:      finiteOrZero(in.DX),
		DY:      finiteOrZero(in.DY),
		Scroll:  finiteOrZero(in.Scroll),
		Buttons: in.Buttons,
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// pointerSource 指针来源
type pointerSource int

const (
	sourceNone pointerSource = iota
	sourceMouse
	sourceTouch
)

// PointerTracker 把逐帧的指针位置转换为位移
// 同时支持鼠标和触摸输入，优先检测触摸
type PointerTracker struct {
	lastX, lastY int
	lastSource   pointerSource
}

// NewPointerTracker 创建指针追踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Sample 读取当前帧的 Ebitengine 输入状态
// 每帧调用一次
func (pt *PointerTracker) Sample() PointerInput {
	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		buttons := ButtonPrimary
		if len(touchIDs) > 1 {
			buttons = ButtonSecondary
		}
		return pt.step(sourceTouch, x, y, buttons, 0)
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	var buttons PointerButtons
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= ButtonSecondary
	}
	_, wheelY := ebiten.Wheel()
	return pt.step(sourceMouse, x, y, buttons, wheelY)
}

// step 根据当前位置计算本帧输入
// 来源切换（鼠标 <-> 触摸）或触摸重新开始时位移为 0，避免镜头跳变
func (pt *PointerTracker) step(source pointerSource, x, y int, buttons PointerButtons, wheelY float64) PointerInput {
	in := PointerInput{
		Scroll:  wheelY,
		Buttons: buttons,
	}
	if pt.lastSource == source {
		in.DX = float64(x - pt.lastX)
		in.DY = float64(y - pt.lastY)
	}
	pt.lastX, pt.lastY = x, y
	pt.lastSource = source
	return in.Sanitized()
}

// Reset 清除上一帧位置（场景切换时调用）
func (pt *PointerTracker) Reset() {
	pt.lastSource = sourceNone
}
