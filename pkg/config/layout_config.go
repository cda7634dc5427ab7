package config

// 布局配置常量
// 本文件定义了窗口尺寸和调试面板的位置

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Tower Demo"

	// TicksPerSecond 每秒更新次数（Ebitengine TPS）
	TicksPerSecond = 60
)

// Debug Overlay Configuration (调试面板配置)
const (
	// DebugOverlayX / DebugOverlayY 调试面板左上角位置
	DebugOverlayX = 10
	DebugOverlayY = 10

	// DebugOverlayLineHeight 调试面板行高
	DebugOverlayLineHeight = 16

	// DebugOverlayMaxEntities 调试面板最多列出的实体数
	DebugOverlayMaxEntities = 24
)
