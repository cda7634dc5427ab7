package config

// 单位配置常量
// 本文件定义了塔、子弹等单位的默认行为参数；data/scene.yaml 可以覆盖这些值

// Emitter Configuration (发射器配置)
const (
	// DefaultEmitterPeriod 塔的发射周期（秒）
	// 循环计时器，每个周期生成一颗子弹
	DefaultEmitterPeriod = 1.0
)

// Projectile Configuration (子弹配置)
const (
	// DefaultProjectileLifetime 子弹寿命（秒）
	// 一次性计时器，完成后子弹被递归删除
	DefaultProjectileLifetime = 0.5
)

// Clock Configuration (时钟配置)
const (
	// DefaultMaxDelta 单帧最大时间步长（秒）
	// 窗口拖动、断点调试等造成的长帧会被截断到这个值
	DefaultMaxDelta = 0.25

	// MinTimeScale / MaxTimeScale 调试面板可调的时间缩放范围
	MinTimeScale = 0.125
	MaxTimeScale = 8.0
)

// Audio Configuration (音频配置)
const (
	// AudioSampleRate 音频采样率
	AudioSampleRate = 48000

	// ShootBlipFrequency 发射音效频率（Hz）
	ShootBlipFrequency = 880.0

	// ShootBlipDuration 发射音效时长（秒）
	ShootBlipDuration = 0.06
)
