package components

import (
	"github.com/decker502/towerdemo/pkg/timer"
	"github.com/go-gl/mathgl/mgl64"
)

// EmitterComponent 发射器（塔）组件
// 持有一个循环计时器，每次完成时 EmitterSystem 生成一颗子弹。
//
// 这是纯数据组件，发射逻辑由 EmitterSystem 处理。
type EmitterComponent struct {
	// 发射计时器（循环模式）
	ShootingTimer *timer.Countdown

	// 子弹生成参数
	ProjectileName     string      // 子弹实体名称，为空使用默认名称
	SpawnOffset        mgl64.Vec3  // 相对发射器的局部偏移（随发射器 Yaw 旋转）
	ProjectileLifetime float64     // 子弹寿命（秒）
	ProjectileSize     float64     // 子弹立方体边长
	ProjectileEmissive LinearColor // 子弹自发光颜色

	// 统计
	ShotsFired int // 已发射子弹数
}
