// Package timer 提供倒计时原语
//
// Countdown 记录已流逝时间与目标时长，支持一次性（OneShot）和循环（Repeating）两种模式。
// 每次 Advance 返回一个显式的 Result，用于边沿触发的"本帧刚完成"判断。
package timer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDuration 计时器时长非法（<= 0、NaN 或无穷大）
var ErrInvalidDuration = errors.New("timer: duration must be a positive finite number")

// Mode 计时器模式
type Mode int

const (
	// OneShot 完成一次后永久结束
	OneShot Mode = iota
	// Repeating 每个周期完成一次，完成后回绕
	Repeating
)

// String 返回模式名称（用于日志和调试面板）
func (m Mode) String() string {
	switch m {
	case OneShot:
		return "once"
	case Repeating:
		return "repeating"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Result 是 Advance 的返回值
type Result int

const (
	// Running 本次推进未跨越完成点
	Running Result = iota
	// Completed 循环计时器本次推进跨越了至少一个周期
	Completed
	// Finished 一次性计时器本次推进首次完成
	Finished
	// Idle 一次性计时器已结束，推进无效果
	Idle
)

// JustCompleted 本次推进是否刚刚完成
func (r Result) JustCompleted() bool {
	return r == Completed || r == Finished
}

// String 返回结果名称
func (r Result) String() string {
	switch r {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Finished:
		return "finished"
	case Idle:
		return "idle"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Countdown 倒计时器
// 接口使用秒（float64），内部按纳秒整数累计，十次 0.1s 恰好等于 1s
type Countdown struct {
	elapsed  time.Duration
	duration time.Duration
	mode     Mode

	finished       bool
	paused         bool
	last           Result
	periodsCrossed int
}

// New 创建计时器
//
// 参数：
//   - duration: 目标时长，必须为正的有限数
//   - mode: OneShot 或 Repeating
//
// 返回：
//   - error: 时长非法时返回 ErrInvalidDuration
func New(duration float64, mode Mode) (*Countdown, error) {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}
	d := toDuration(duration)
	if d <= 0 {
		return nil, fmt.Errorf("%w: %v is shorter than 1ns", ErrInvalidDuration, duration)
	}
	if mode != OneShot && mode != Repeating {
		return nil, fmt.Errorf("timer: unknown mode %d", int(mode))
	}
	return &Countdown{
		duration: d,
		mode:     mode,
	}, nil
}

// toDuration 秒转换为 time.Duration，四舍五入到纳秒，超出范围时取最大值
func toDuration(seconds float64) time.Duration {
	ns := math.Round(seconds * float64(time.Second))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// MustNew 与 New 相同，但参数非法时 panic
// 仅用于常量参数
func MustNew(duration float64, mode Mode) *Countdown {
	c, err := New(duration, mode)
	if err != nil {
		panic(err)
	}
	return c
}

// Advance 推进计时器
//
// 循环模式下一次推进跨越多个周期也只返回一次 Completed（避免掉帧时批量生成实体），
// 实际跨越的周期数可通过 PeriodsCrossed 获取。
// 负数和 NaN 视为 0；+Inf 视为跨越完成点。
func (c *Countdown) Advance(delta float64) Result {
	c.periodsCrossed = 0

	if c.finished {
		c.last = Idle
		return c.last
	}
	if c.paused || math.IsNaN(delta) || delta <= 0 {
		c.last = Running
		return c.last
	}

	switch step := toDuration(delta); {
	case math.IsInf(delta, 1):
		c.elapsed = c.duration
	case step > math.MaxInt64-c.elapsed:
		c.elapsed = math.MaxInt64
	default:
		c.elapsed += step
	}

	if c.elapsed < c.duration {
		c.last = Running
		return c.last
	}

	if c.mode == OneShot {
		c.elapsed = c.duration
		c.finished = true
		c.periodsCrossed = 1
		c.last = Finished
		return c.last
	}

	// 循环模式：回绕，剩余时间始终在 [0, duration) 内
	periods := c.elapsed / c.duration
	c.elapsed %= c.duration
	c.periodsCrossed = int(min(periods, math.MaxInt32))
	c.last = Completed
	return c.last
}

// JustCompleted 最近一次 Advance 是否刚完成
// 下一次 Advance 会重置该信号
func (c *Countdown) JustCompleted() bool {
	return c.last.JustCompleted()
}

// LastResult 最近一次 Advance 的结果
func (c *Countdown) LastResult() Result {
	return c.last
}

// PeriodsCrossed 最近一次 Advance 实际跨越的周期数（0 表示未完成）
func (c *Countdown) PeriodsCrossed() int {
	return c.periodsCrossed
}

// Finished 一次性计时器是否已结束（循环计时器永远返回 false）
func (c *Countdown) Finished() bool {
	return c.finished
}

// Elapsed 当前周期已流逝的时间（秒）
func (c *Countdown) Elapsed() float64 { return c.elapsed.Seconds() }

// Duration 目标时长（秒）
func (c *Countdown) Duration() float64 { return c.duration.Seconds() }

// Mode 计时器模式
func (c *Countdown) Mode() Mode { return c.mode }

// Remaining 距离下一次完成的剩余时间（秒）
func (c *Countdown) Remaining() float64 {
	return (c.duration - c.elapsed).Seconds()
}

// Fraction 当前进度 [0, 1]
func (c *Countdown) Fraction() float64 {
	return float64(c.elapsed) / float64(c.duration)
}

// Pause 暂停计时器，暂停期间 Advance 返回 Running 且不累计时间
func (c *Countdown) Pause() {
	c.paused = true
}

// Resume 恢复计时器
func (c *Countdown) Resume() {
	c.paused = false
}

// Paused 是否处于暂停状态
func (c *Countdown) Paused() bool {
	return c.paused
}

// Reset 清零已流逝时间并清除结束标记
func (c *Countdown) Reset() {
	c.elapsed = 0
	c.finished = false
	c.last = Running
	c.periodsCrossed = 0
}
