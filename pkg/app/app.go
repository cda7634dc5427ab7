// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/embedded"
	"github.com/decker502/towerdemo/pkg/game"
	"github.com/decker502/towerdemo/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultSceneConfigPath 嵌入数据中的场景配置
const DefaultSceneConfigPath = "data/scene.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的场景配置文件，为空则使用嵌入的 data/scene.yaml
	ConfigPath string
	// Paused 以暂停状态启动
	Paused bool
	// AppName gdata 存储目录名，为空使用 game.DefaultAppName
	AppName string
	// Silent 不创建音频上下文
	Silent bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	clock                    *game.Clock
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()；
// 未初始化时退回到代码中的默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := loadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}

	clock := game.NewClock(sceneConfig.Clock.MaxDelta, sceneConfig.Clock.TimeScale)
	clock.SetPaused(cfg.Paused)

	gameState := game.NewGameState(cfg.AppName)
	settings := gameState.GetSettingsManager().GetSettings()

	// 初始化音频上下文
	var audioContext *audio.Context
	if !cfg.Silent {
		audioContext = audio.NewContext(config.AudioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, gameState.GetSettingsManager())
	log.Printf("[App] AudioManager initialized (silent=%v)", audioManager.IsSilent())

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) (game.Scene, error) {
		switch sceneID {
		case scenes.TowerSceneID:
			return scenes.NewTowerScene(sceneConfig, gameState, audioManager, clock)
		default:
			return nil, fmt.Errorf("unknown scene: %s", sceneID)
		}
	})
	if !sceneManager.LoadScene(scenes.TowerSceneID) {
		return nil, fmt.Errorf("无法创建场景: %s", scenes.TowerSceneID)
	}

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		clock:        clock,
		verbose:      cfg.Verbose,
	}, nil
}

// loadSceneConfig 按优先级加载场景配置：磁盘文件 > 嵌入文件 > 默认值
func loadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载场景配置: %s", path)
		return config.LoadSceneConfig(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}

	data, err := embedded.FS()
	if err != nil {
		log.Printf("[Config] %v，使用默认场景配置", err)
		return config.DefaultSceneConfig(), nil
	}
	log.Printf("[Config] 加载嵌入场景配置: %s", DefaultSceneConfigPath)
	return config.LoadSceneConfig(data, DefaultSceneConfigPath)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭时先保存设置
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(a.clock.Tick())
	return nil
}

func (a *App) toggleFullscreen() {
	sm := a.gameState.GetSettingsManager()
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		sm.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	sm.SetFullscreen(true)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Shutdown 保存当前场景的状态
func (a *App) Shutdown() {
	game.SaveScene(a.sceneManager.GetCurrentScene())
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
