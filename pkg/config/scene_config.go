package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 场景配置校验失败
var ErrInvalidConfig = errors.New("invalid scene config")

// Vec3 YAML 中的三维向量，写作 [x, y, z]
type Vec3 [3]float64

// Color YAML 中的颜色，写作 [r, g, b]（线性空间，自发光可以大于 1）
type Color [3]float64

// SceneConfig 场景配置
// 对应 data/scene.yaml，缺省字段使用 DefaultSceneConfig 中的值
//
// 结构:
//
//	emitter:
//	  period: 1.0
//	projectile:
//	  lifetime: 0.5
//	camera:
//	  radius: 5.93
type SceneConfig struct {
	Emitter    EmitterConfig    `yaml:"emitter"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Ground     GroundConfig     `yaml:"ground"`
	Light      LightConfig      `yaml:"light"`
	Camera     CameraConfig     `yaml:"camera"`
	Clock      ClockConfig      `yaml:"clock"`
}

// EmitterConfig 发射器（塔）配置
type EmitterConfig struct {
	Name     string  `yaml:"name"`
	Position Vec3    `yaml:"position"`
	YawDeg   float64 `yaml:"yaw_deg"`
	Period   float64 `yaml:"period"` // 发射周期（秒）
	Size     float64 `yaml:"size"`   // 立方体边长
	Color    Color   `yaml:"color"`
}

// ProjectileConfig 子弹配置
type ProjectileConfig struct {
	Name        string  `yaml:"name"`
	SpawnOffset Vec3    `yaml:"spawn_offset"` // 相对发射器的局部偏移
	Lifetime    float64 `yaml:"lifetime"`     // 寿命（秒）
	Size        float64 `yaml:"size"`
	Emissive    Color   `yaml:"emissive"`
}

// GroundConfig 地面配置
type GroundConfig struct {
	Name         string  `yaml:"name"`
	Position     Vec3    `yaml:"position"`
	Size         float64 `yaml:"size"`
	Subdivisions int     `yaml:"subdivisions"`
	Color        Color   `yaml:"color"`
}

// LightConfig 点光源配置
type LightConfig struct {
	Name      string  `yaml:"name"`
	Position  Vec3    `yaml:"position"`
	Intensity float64 `yaml:"intensity"`
	Range     float64 `yaml:"range"`
}

// CameraConfig 轨道镜头配置（角度使用度数，便于手写）
type CameraConfig struct {
	Focus            Vec3    `yaml:"focus"`
	YawDeg           float64 `yaml:"yaw_deg"`
	PitchDeg         float64 `yaml:"pitch_deg"`
	Radius           float64 `yaml:"radius"`
	OrbitSensitivity float64 `yaml:"orbit_sensitivity"` // 度/像素
	PanSensitivity   float64 `yaml:"pan_sensitivity"`
	ZoomSensitivity  float64 `yaml:"zoom_sensitivity"`
	MinRadius        float64 `yaml:"min_radius"`
	MaxRadius        float64 `yaml:"max_radius"`
	PitchLimitDeg    float64 `yaml:"pitch_limit_deg"`
	Smoothing        float64 `yaml:"smoothing"`
	FovYDeg          float64 `yaml:"fov_y_deg"`
	Near             float64 `yaml:"near"`
	Far              float64 `yaml:"far"`
}

// ClockConfig 模拟时钟配置
type ClockConfig struct {
	MaxDelta  float64 `yaml:"max_delta"`  // 单帧最大时间步长（秒），0 表示不截断
	TimeScale float64 `yaml:"time_scale"` // 时间缩放
}

// DefaultSceneConfig 返回默认场景配置
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Emitter: EmitterConfig{
			Name:     "Tower",
			Position: Vec3{0, 0.5, 0},
			Period:   DefaultEmitterPeriod,
			Size:     1.0,
			Color:    Color{0.254, 0.92, 0.90},
		},
		Projectile: ProjectileConfig{
			Name:        "Bullet",
			SpawnOffset: Vec3{0, 0.7, 0.6},
			Lifetime:    DefaultProjectileLifetime,
			Size:        0.1,
			Emissive:    Color{13.99, 5.32, 2.0},
		},
		Ground: GroundConfig{
			Name:         "Ground",
			Position:     Vec3{0, -1, 0},
			Size:         5,
			Subdivisions: 5,
			Color:        Color{0.254, 0.92, 0.90},
		},
		Light: LightConfig{
			Name:      "Light",
			Position:  Vec3{4, 8, 4},
			Intensity: 800,
			Range:     20,
		},
		Camera: CameraConfig{
			Focus:            Vec3{0, 0, 0},
			YawDeg:           -21.8,
			PitchDeg:         24.9,
			Radius:           5.93,
			OrbitSensitivity: 0.3,
			PanSensitivity:   0.0015,
			ZoomSensitivity:  0.1,
			MinRadius:        0.05,
			MaxRadius:        100,
			PitchLimitDeg:    89,
			Smoothing:        18,
			FovYDeg:          45,
			Near:             0.1,
			Far:              1000,
		},
		Clock: ClockConfig{
			MaxDelta:  DefaultMaxDelta,
			TimeScale: 1,
		},
	}
}

// ParseSceneConfig 解析 YAML 场景配置
// 文件中缺失的字段保留默认值
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSceneConfig 从文件系统加载场景配置
//
// 参数:
//   - fsys: 文件系统（嵌入数据或 os.DirFS）
//   - path: 配置文件路径
func LoadSceneConfig(fsys fs.FS, path string) (*SceneConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config file %s: %w", path, err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, fmt.Errorf("scene config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置
// 计时器时长必须为正（拒绝而不是"永不完成"），镜头约束必须自洽
func (c *SceneConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(positive(c.Emitter.Period), "emitter.period must be > 0, got %v", c.Emitter.Period)
	check(positive(c.Emitter.Size), "emitter.size must be > 0, got %v", c.Emitter.Size)
	check(positive(c.Projectile.Lifetime), "projectile.lifetime must be > 0, got %v", c.Projectile.Lifetime)
	check(positive(c.Projectile.Size), "projectile.size must be > 0, got %v", c.Projectile.Size)
	check(positive(c.Ground.Size), "ground.size must be > 0, got %v", c.Ground.Size)
	check(c.Ground.Subdivisions >= 0, "ground.subdivisions must be >= 0, got %d", c.Ground.Subdivisions)

	cam := c.Camera
	check(positive(cam.MinRadius), "camera.min_radius must be > 0, got %v", cam.MinRadius)
	check(cam.MaxRadius >= cam.MinRadius, "camera.max_radius (%v) must be >= min_radius (%v)", cam.MaxRadius, cam.MinRadius)
	check(positive(cam.Radius), "camera.radius must be > 0, got %v", cam.Radius)
	check(positive(cam.PitchLimitDeg) && cam.PitchLimitDeg < 90,
		"camera.pitch_limit_deg must be in (0, 90), got %v", cam.PitchLimitDeg)
	check(cam.Smoothing >= 0, "camera.smoothing must be >= 0, got %v", cam.Smoothing)
	check(cam.ZoomSensitivity >= 0, "camera.zoom_sensitivity must be >= 0, got %v", cam.ZoomSensitivity)
	check(positive(cam.FovYDeg) && cam.FovYDeg < 180, "camera.fov_y_deg must be in (0, 180), got %v", cam.FovYDeg)
	check(positive(cam.Near) && cam.Far > cam.Near, "camera near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)

	check(c.Clock.MaxDelta >= 0 && !math.IsInf(c.Clock.MaxDelta, 0),
		"clock.max_delta must be a finite value >= 0 (0 disables the cap), got %v", c.Clock.MaxDelta)
	check(c.Clock.TimeScale >= 0 && !math.IsInf(c.Clock.TimeScale, 0),
		"clock.time_scale must be a finite value >= 0, got %v", c.Clock.TimeScale)

	return errors.Join(errs...)
}

// positive 是否为正的有限数
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
