package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SceneKey 场景快捷键动作
type SceneKey int

const (
	KeyTogglePause SceneKey = iota
	KeySpeedUp
	KeySlowDown
	KeyReset
	KeyToggleOverlay
	KeyResetCamera
)

// keyBindings 快捷键 -> 动作
var keyBindings = []struct {
	key    ebiten.Key
	action SceneKey
}{
	{ebiten.KeyP, KeyTogglePause},
	{ebiten.KeyBracketRight, KeySpeedUp},
	{ebiten.KeyBracketLeft, KeySlowDown},
	{ebiten.KeyR, KeyReset},
	{ebiten.KeyF1, KeyToggleOverlay},
	{ebiten.KeyC, KeyResetCamera},
}

// handleKeys 读取本帧按下的快捷键
func (s *TowerScene) handleKeys() {
	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			s.HandleKey(binding.action)
		}
	}
}

// HandleKey 执行快捷键动作
func (s *TowerScene) HandleKey(action SceneKey) {
	switch action {
	case KeyTogglePause:
		if s.clock != nil {
			s.clock.TogglePause()
		}
	case KeySpeedUp:
		if s.clock != nil {
			s.clock.SpeedUp()
		}
	case KeySlowDown:
		if s.clock != nil {
			s.clock.SlowDown()
		}
	case KeyReset:
		if err := s.Reset(); err != nil {
			log.Printf("[TowerScene] 重置失败: %v", err)
		}
	case KeyToggleOverlay:
		s.showOverlay = !s.showOverlay
		if sm := s.settingsManager(); sm != nil {
			sm.SetShowOverlay(s.showOverlay)
		}
	case KeyResetCamera:
		s.cameraSystem.Reset()
	}
}

// ShowOverlay 调试面板是否显示
func (s *TowerScene) ShowOverlay() bool {
	return s.showOverlay
}
