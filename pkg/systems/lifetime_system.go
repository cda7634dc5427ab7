package systems

import (
	"log"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 寿命计时器完成时递归标记实体（及其子实体）待删除，帧末由 RemoveMarkedEntities 统一清理
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体，返回本帧到期的实体数
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	// 查询所有拥有 LifetimeComponent 的实体
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		// 已标记删除的实体不再推进（例如父实体本帧到期）
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.Timer == nil {
			continue
		}

		if !lifetime.Timer.Advance(deltaTime).JustCompleted() {
			continue
		}

		// 到期，递归标记待删除
		s.entityManager.DestroyEntityRecursive(id)
		expired++
		log.Printf("[LifetimeSystem] 实体 %d 寿命结束 (%.2fs)", id, lifetime.Timer.Duration())
	}

	return expired
}
