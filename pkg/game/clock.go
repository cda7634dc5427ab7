package game

import (
	"log"
	"math"
	"time"

	"github.com/decker502/towerdemo/pkg/config"
)

// Clock 模拟时钟
// 把墙钟时间换算成每个 tick 的模拟时间步长：乘以时间缩放，暂停时为 0，
// 单步上限为 MaxDelta（窗口拖动、断点等造成的长帧不会一次推进太多），
// MaxDelta 为 0 时不截断，长帧由计时器的合并策略处理。
//
// Clock 本身不是全局状态，由 App 持有并把步长作为参数传给场景。
type Clock struct {
	now       func() time.Time
	last      time.Time
	started   bool
	maxDelta  float64
	timeScale float64
	paused    bool

	elapsed float64 // 累计模拟时间（秒）
	ticks   uint64
}

// NewClock 创建模拟时钟
//
// 参数：
//   - maxDelta: 单步上限（秒），0 表示不截断；负数、NaN 和无穷大使用 config.DefaultMaxDelta
//   - timeScale: 初始时间缩放
func NewClock(maxDelta, timeScale float64) *Clock {
	if !(maxDelta >= 0) || math.IsInf(maxDelta, 0) {
		maxDelta = config.DefaultMaxDelta
	}
	c := &Clock{
		now:      time.Now,
		maxDelta: maxDelta,
	}
	c.SetTimeScale(timeScale)
	return c
}

// SetNowFunc 替换时间源（测试用）
func (c *Clock) SetNowFunc(now func() time.Time) {
	c.now = now
	c.started = false
}

// Tick 读取墙钟并返回本 tick 的模拟步长
// 第一次调用返回 0
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return c.Step(0)
	}
	raw := t.Sub(c.last).Seconds()
	c.last = t
	return c.Step(raw)
}

// Step 把一段原始墙钟时间换算为模拟步长并计入累计时间
// 负数和 NaN 视为 0
func (c *Clock) Step(raw float64) float64 {
	c.ticks++
	if c.paused || math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	dt := raw * c.timeScale
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.elapsed += dt
	return dt
}

// SetTimeScale 设置时间缩放
// 0 表示冻结；非 0 值限制在 [MinTimeScale, MaxTimeScale]
func (c *Clock) SetTimeScale(scale float64) {
	switch {
	case math.IsNaN(scale) || scale < 0:
		scale = 1
	case scale == 0:
	case scale < config.MinTimeScale:
		scale = config.MinTimeScale
	case scale > config.MaxTimeScale:
		scale = config.MaxTimeScale
	}
	if scale != c.timeScale {
		log.Printf("[Clock] 时间缩放: %.3g -> %.3g", c.timeScale, scale)
	}
	c.timeScale = scale
}

// SpeedUp 时间缩放加倍
func (c *Clock) SpeedUp() {
	if c.timeScale == 0 {
		c.SetTimeScale(config.MinTimeScale)
		return
	}
	c.SetTimeScale(c.timeScale * 2)
}

// SlowDown 时间缩放减半
func (c *Clock) SlowDown() {
	c.SetTimeScale(c.timeScale / 2)
}

// TimeScale 当前时间缩放
func (c *Clock) TimeScale() float64 { return c.timeScale }

// MaxDelta 单步上限（秒），0 表示不截断
func (c *Clock) MaxDelta() float64 { return c.maxDelta }

// Elapsed 累计模拟时间（秒）
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Ticks 已调用 Step 的次数
func (c *Clock) Ticks() uint64 { return c.ticks }

// Paused 是否暂停
func (c *Clock) Paused() bool { return c.paused }

// SetPaused 暂停/恢复
func (c *Clock) SetPaused(paused bool) {
	if c.paused != paused {
		log.Printf("[Clock] paused=%v", paused)
	}
	c.paused = paused
}

// TogglePause 切换暂停状态
func (c *Clock) TogglePause() {
	c.SetPaused(!c.paused)
}

// ResetElapsed 清零累计模拟时间（场景重置时调用）
func (c *Clock) ResetElapsed() {
	c.elapsed = 0
	c.ticks = 0
}
