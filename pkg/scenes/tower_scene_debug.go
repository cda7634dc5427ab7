package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/timer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// overlayWidth 调试面板背景宽度
const overlayWidth = 320

var overlayBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}

// drawOverlay 绘制调试面板
func (s *TowerScene) drawOverlay(screen *ebiten.Image) {
	lines := s.OverlayLines()
	height := float32(len(lines)*config.DebugOverlayLineHeight + 8)
	vector.DrawFilledRect(screen, config.DebugOverlayX-4, config.DebugOverlayY-4, overlayWidth, height, overlayBackground, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.DebugOverlayX, config.DebugOverlayY+i*config.DebugOverlayLineHeight)
	}
}

// OverlayLines 生成调试面板文本
func (s *TowerScene) OverlayLines() []string {
	lines := make([]string, 0, 8+config.DebugOverlayMaxEntities)

	lines = append(lines, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	if s.clock != nil {
		state := "running"
		if s.clock.Paused() {
			state = "PAUSED"
		}
		lines = append(lines, fmt.Sprintf("time x%.3g  %s  sim %.2fs", s.clock.TimeScale(), state, s.simTime))
	} else {
		lines = append(lines, fmt.Sprintf("sim %.2fs", s.simTime))
	}

	lines = append(lines, fmt.Sprintf("entities: %d  bullets: %d", s.entityManager.EntityCount(), s.ProjectileCount()))
	if s.gameState != nil {
		lines = append(lines, fmt.Sprintf("fired: %d  removed: %d", s.gameState.ShotsFired, s.gameState.EntitiesRemoved))
	}

	if cam, ok := s.cameraSystem.Camera(); ok {
		lines = append(lines, fmt.Sprintf("camera yaw %.1f pitch %.1f r %.2f",
			mgl64.RadToDeg(cam.Current.Yaw), mgl64.RadToDeg(cam.Current.Pitch), cam.Current.Radius))
	}

	ids := ecs.GetEntitiesWith1[*components.NameComponent](s.entityManager)
	for i, id := range ids {
		if i == config.DebugOverlayMaxEntities {
			lines = append(lines, fmt.Sprintf("  ... %d more", len(ids)-config.DebugOverlayMaxEntities))
			break
		}
		lines = append(lines, s.entityLine(id))
	}

	lines = append(lines, "[P] pause  [ ] speed  [R] reset  [C] camera  [F1] panel")
	return lines
}

// entityLine 单个实体的名称和计时器进度
func (s *TowerScene) entityLine(id ecs.EntityID) string {
	name, _ := ecs.GetComponent[*components.NameComponent](s.entityManager, id)
	line := fmt.Sprintf("  #%d %s", id, name.Name)

	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id); ok {
		line += timerText(emitter.ShootingTimer) + fmt.Sprintf(" shots %d", emitter.ShotsFired)
	}
	if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
		line += timerText(lifetime.Timer)
	}
	return line
}

func timerText(t *timer.Countdown) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf(" [%s %3.0f%%]", t.Mode(), t.Fraction()*100)
}
