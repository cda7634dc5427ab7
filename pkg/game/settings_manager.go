package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器偏好设置
// 只保存操作偏好，不保存模拟状态
type ViewerSettings struct {
	// 音效设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 镜头设置
	CameraSensitivity float64 `yaml:"cameraSensitivity"` // 旋转/平移灵敏度倍数
	InvertOrbitX      bool    `yaml:"invertOrbitX"`
	InvertOrbitY      bool    `yaml:"invertOrbitY"`

	// 显示设置
	Fullscreen  bool `yaml:"fullscreen"`  // 启动时是否全屏
	ShowOverlay bool `yaml:"showOverlay"` // 是否显示调试面板
}

// 灵敏度倍数范围
const (
	minCameraSensitivity = 0.1
	maxCameraSensitivity = 5.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		SoundVolume:       0.5,
		SoundEnabled:      true,
		CameraSensitivity: 1.0,
		ShowOverlay:       true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置；
// 文件中缺失的字段保留默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()

	// 降级模式：无法持久化
	if sm.gdataManager == nil {
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	loaded.CameraSensitivity = clampSensitivity(loaded.CameraSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 设置是否会被持久化
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0）
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetCameraSensitivity 设置镜头灵敏度倍数
func (sm *SettingsManager) SetCameraSensitivity(scale float64) {
	sm.settings.CameraSensitivity = clampSensitivity(scale)
}

// SetInvertOrbit 设置旋转方向反转
func (sm *SettingsManager) SetInvertOrbit(x, y bool) {
	sm.settings.InvertOrbitX = x
	sm.settings.InvertOrbitY = y
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowOverlay 设置调试面板开关
func (sm *SettingsManager) SetShowOverlay(enabled bool) {
	sm.settings.ShowOverlay = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if !(volume >= 0.0) {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

func clampSensitivity(scale float64) float64 {
	if !(scale >= minCameraSensitivity) {
		return minCameraSensitivity
	}
	if scale > maxCameraSensitivity {
		return maxCameraSensitivity
	}
	return scale
}
