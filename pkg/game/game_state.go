package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储目录名
const DefaultAppName = "towerdemo"

// GameState 跨场景共享的查看器状态
// 由 App 创建并显式传给场景，不使用全局单例
type GameState struct {
	gdataManager    *gdata.Manager   // 可为 nil（降级模式）
	settingsManager *SettingsManager // 查看器偏好

	// 模拟统计（场景重置时清零）
	ShotsFired      int
	EntitiesRemoved int
}

// NewGameState 创建游戏状态
//
// gdata 初始化失败不是致命错误：设置只保存在内存中
func NewGameState(appName string) *GameState {
	if appName == "" {
		appName = DefaultAppName
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}

	return newGameStateWith(manager)
}

// newGameStateWith 使用已有 gdata manager 创建游戏状态（manager 可为 nil）
func newGameStateWith(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager:    manager,
		settingsManager: NewSettingsManager(manager),
	}
}

// GetGdataManager 返回 gdata manager，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// RecordShot 记录一次发射
func (gs *GameState) RecordShot() {
	gs.ShotsFired++
}

// RecordRemoved 记录本 tick 移除的实体数
func (gs *GameState) RecordRemoved(n int) {
	if n > 0 {
		gs.EntitiesRemoved += n
	}
}

// ResetStats 清零模拟统计
func (gs *GameState) ResetStats() {
	gs.ShotsFired = 0
	gs.EntitiesRemoved = 0
}
