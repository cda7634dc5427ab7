package components

import "github.com/decker502/towerdemo/pkg/ecs"

// ProjectileComponent 标识子弹实体
// 子弹在本项目中没有运动和碰撞，仅记录来源
type ProjectileComponent struct {
	Emitter ecs.EntityID // 发射该子弹的发射器
	Serial  int          // 发射器的第几发子弹（从 1 开始）
}
