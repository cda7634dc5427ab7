package components

import "github.com/decker502/towerdemo/pkg/timer"

// LifetimeComponent 管理实体的生命周期
// 持有一个一次性计时器；计时器完成时 LifetimeSystem 递归删除该实体(如子弹)
type LifetimeComponent struct {
	Timer *timer.Countdown
}
