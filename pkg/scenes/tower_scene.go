package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/entities"
	"github.com/decker502/towerdemo/pkg/game"
	"github.com/decker502/towerdemo/pkg/systems"
	"github.com/decker502/towerdemo/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// TowerSceneID 场景管理器中的场景ID
const TowerSceneID = "tower"

// cameraFrameTime 镜头平滑使用的帧时间（与时间缩放和暂停无关）
const cameraFrameTime = 1.0 / 60.0

// backgroundColor 背景色
var backgroundColor = color.RGBA{R: 18, G: 20, B: 28, A: 255}

// TickReport 一个 tick 的生命周期统计
type TickReport struct {
	Spawned int // 本 tick 创建的子弹数
	Expired int // 本 tick 寿命到期的实体数
	Removed int // 本 tick 实际删除的实体数（含子实体）
}

// TowerScene 塔防演示场景
//
// 每个 tick 的顺序：
//  1. 镜头处理输入
//  2. 发射系统推进计时器，通过命令缓冲区请求生成子弹
//  3. 寿命系统推进计时器，标记到期实体
//  4. Flush 命令缓冲区（新实体可见）
//  5. 删除标记的实体
type TowerScene struct {
	cfg       *config.SceneConfig
	gameState *game.GameState    // 可为 nil
	audio     *game.AudioManager // 可为 nil
	clock     *game.Clock        // 可为 nil（无时间控制快捷键）

	entityManager *ecs.EntityManager
	commandBuffer *ecs.CommandBuffer
	sceneEntities *entities.SceneEntities

	emitterSystem  *systems.EmitterSystem
	lifetimeSystem *systems.LifetimeSystem
	cameraSystem   *systems.OrbitCameraSystem
	renderSystem   *systems.RenderSystem

	pointer     *utils.PointerTracker
	showOverlay bool

	simTime    float64
	lastReport TickReport
}

// NewTowerScene 创建塔防演示场景
//
// 参数：
//   - cfg: 场景配置，nil 时使用默认配置
//   - gs: 游戏状态（设置与统计），可为 nil
//   - am: 音频管理器，可为 nil
//   - clock: 模拟时钟，可为 nil
func NewTowerScene(cfg *config.SceneConfig, gs *game.GameState, am *game.AudioManager, clock *game.Clock) (*TowerScene, error) {
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}

	s := &TowerScene{
		cfg:         cfg,
		gameState:   gs,
		audio:       am,
		clock:       clock,
		pointer:     utils.NewPointerTracker(),
		showOverlay: true,
	}
	if sm := s.settingsManager(); sm != nil {
		s.showOverlay = sm.GetSettings().ShowOverlay
	}

	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// build 创建实体和系统
func (s *TowerScene) build() error {
	em := ecs.NewEntityManager()
	sceneEntities, err := entities.BuildScene(em, s.cfg)
	if err != nil {
		return fmt.Errorf("failed to build tower scene: %w", err)
	}

	s.entityManager = em
	s.commandBuffer = ecs.NewCommandBuffer(em)
	s.sceneEntities = sceneEntities

	s.emitterSystem = systems.NewEmitterSystem(em, s.commandBuffer)
	s.emitterSystem.SetOnFire(s.onFire)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)
	s.cameraSystem = systems.NewOrbitCameraSystem(em, sceneEntities.Camera)
	s.renderSystem = systems.NewRenderSystem(em, s.cameraSystem)

	s.applyViewerSettings()
	s.pointer.Reset()
	s.simTime = 0
	s.lastReport = TickReport{}

	log.Printf("[TowerScene] 场景已创建: %d 个实体", em.EntityCount())
	return nil
}

// Reset 重建场景（实体、计时器、镜头全部回到初始状态）
func (s *TowerScene) Reset() error {
	if err := s.build(); err != nil {
		return err
	}
	if s.gameState != nil {
		s.gameState.ResetStats()
	}
	if s.clock != nil {
		s.clock.ResetElapsed()
	}
	log.Printf("[TowerScene] 场景已重置")
	return nil
}

// Update 读取输入并推进一个 tick
func (s *TowerScene) Update(deltaTime float64) {
	s.handleKeys()
	s.Step(deltaTime, s.pointer.Sample())
}

// Step 用给定的模拟步长和指针输入推进一个 tick（不读取 ebiten 输入）
func (s *TowerScene) Step(deltaTime float64, input utils.PointerInput) TickReport {
	s.cameraSystem.Update(cameraFrameTime, input)

	report := TickReport{}
	report.Spawned = s.emitterSystem.Update(deltaTime)
	report.Expired = s.lifetimeSystem.Update(deltaTime)

	s.commandBuffer.Flush()
	report.Removed = s.entityManager.RemoveMarkedEntities()

	if s.gameState != nil {
		s.gameState.RecordRemoved(report.Removed)
	}
	if deltaTime > 0 {
		s.simTime += deltaTime
	}
	s.lastReport = report
	return report
}

// Draw 绘制场景和调试面板
func (s *TowerScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)
	if s.showOverlay {
		s.drawOverlay(screen)
	}
}

// SaveOnExit 退出时保存查看器设置
func (s *TowerScene) SaveOnExit() bool {
	sm := s.settingsManager()
	if sm == nil {
		return true
	}
	if err := sm.Save(); err != nil {
		log.Printf("[TowerScene] Warning: 保存设置失败: %v", err)
		return false
	}
	return true
}

// onFire 发射回调：统计和音效
func (s *TowerScene) onFire(ev systems.FireEvent) {
	if s.gameState != nil {
		s.gameState.RecordShot()
	}
	if s.audio != nil {
		s.audio.PlaySound(game.SoundShot)
	}
}

// applyViewerSettings 把灵敏度倍数和反转设置应用到镜头
func (s *TowerScene) applyViewerSettings() {
	cam, ok := s.cameraSystem.Camera()
	if !ok {
		return
	}

	scale := 1.0
	invertX, invertY := false, false
	if sm := s.settingsManager(); sm != nil {
		settings := sm.GetSettings()
		scale = settings.CameraSensitivity
		invertX, invertY = settings.InvertOrbitX, settings.InvertOrbitY
	}

	cam.OrbitSensitivity = mgl64.DegToRad(s.cfg.Camera.OrbitSensitivity) * scale
	cam.PanSensitivity = s.cfg.Camera.PanSensitivity * scale
	cam.InvertOrbitX = invertX
	cam.InvertOrbitY = invertY
}

func (s *TowerScene) settingsManager() *game.SettingsManager {
	if s.gameState == nil {
		return nil
	}
	return s.gameState.GetSettingsManager()
}

// EntityManager 返回场景的实体管理器
func (s *TowerScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// SceneEntities 返回场景初始化时创建的实体
func (s *TowerScene) SceneEntities() *entities.SceneEntities {
	return s.sceneEntities
}

// CameraSystem 返回镜头系统
func (s *TowerScene) CameraSystem() *systems.OrbitCameraSystem {
	return s.cameraSystem
}

// SimTime 场景创建以来累计的模拟时间（秒）
func (s *TowerScene) SimTime() float64 {
	return s.simTime
}

// LastReport 最近一个 tick 的统计
func (s *TowerScene) LastReport() TickReport {
	return s.lastReport
}

// ProjectileCount 当前存活的子弹数
func (s *TowerScene) ProjectileCount() int {
	return len(ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager))
}
