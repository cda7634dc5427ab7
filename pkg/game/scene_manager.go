package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(sceneID string) (Scene, error)

// SceneManager 管理当前活动场景
// 同一时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene   Scene
	currentSceneID string
	sceneFactory   SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到指定场景
// 旧场景实现 Saveable 时先保存
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		SaveScene(sm.currentScene)
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentSceneID 返回最近一次 LoadScene 的场景ID
func (sm *SceneManager) CurrentSceneID() string {
	return sm.currentSceneID
}

// LoadScene 通过工厂函数创建并切换到指定场景
// 失败时保留当前场景
func (sm *SceneManager) LoadScene(sceneID string) bool {
	log.Printf("[SceneManager] 加载场景: %s", sceneID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene, err := sm.sceneFactory(sceneID)
	if err != nil || newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景 %s: %v", sceneID, err)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentSceneID = sceneID
	log.Printf("[SceneManager] 成功切换到场景: %s", sceneID)
	return true
}

// Reload 重新创建当前场景
func (sm *SceneManager) Reload() bool {
	if sm.currentSceneID == "" {
		return false
	}
	return sm.LoadScene(sm.currentSceneID)
}

// Update 推进当前场景，没有活动场景时什么都不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，没有活动场景时什么都不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveScene 场景实现 Saveable 时调用 SaveOnExit
func SaveScene(scene Scene) bool {
	saveable, ok := scene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		log.Printf("[SceneManager] Warning: 场景退出保存失败")
		return false
	}
	return true
}
