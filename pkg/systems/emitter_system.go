package systems

import (
	"log"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/entities"
)

//go:generate go tool mockgen -destination=./mocks/spawner_mock.go -package=mocks . Spawner

// Spawner 延迟创建实体的能力
// ecs.CommandBuffer 实现了该接口；实体在帧末 Flush 之后才可见
type Spawner interface {
	Spawn(comps ...interface{}) ecs.EntityID
}

// FireEvent 一次发射的信息
type FireEvent struct {
	Emitter    ecs.EntityID
	Projectile ecs.EntityID
	Serial     int
}

// EmitterSystem 推进发射器计时器，每次完成时请求生成一颗子弹
//
// 一帧内跨越多个周期也只生成一颗子弹（由 timer.Countdown 保证）。
type EmitterSystem struct {
	entityManager *ecs.EntityManager
	spawner       Spawner
	onFire        func(FireEvent)
}

// NewEmitterSystem 创建发射系统
func NewEmitterSystem(em *ecs.EntityManager, spawner Spawner) *EmitterSystem {
	return &EmitterSystem{
		entityManager: em,
		spawner:       spawner,
	}
}

// SetOnFire 设置发射回调（音效、调试统计）
func (s *EmitterSystem) SetOnFire(fn func(FireEvent)) {
	s.onFire = fn
}

// Update 推进所有发射器，返回本帧请求生成的子弹数
func (s *EmitterSystem) Update(deltaTime float64) int {
	spawned := 0
	emitters := ecs.GetEntitiesWith1[*components.EmitterComponent](s.entityManager)

	for _, id := range emitters {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id)
		if !ok || emitter.ShootingTimer == nil {
			continue
		}

		if !emitter.ShootingTimer.Advance(deltaTime).JustCompleted() {
			continue
		}
		if crossed := emitter.ShootingTimer.PeriodsCrossed(); crossed > 1 {
			log.Printf("[EmitterSystem] 发射器 %d 单帧跨越 %d 个周期，只发射一次", id, crossed)
		}

		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		serial := emitter.ShotsFired + 1
		comps, err := entities.NewProjectileComponents(id, transform, emitter, serial)
		if err != nil {
			log.Printf("[EmitterSystem] 发射器 %d 无法生成子弹: %v", id, err)
			continue
		}

		projectile := s.spawner.Spawn(comps...)
		emitter.ShotsFired = serial
		spawned++

		log.Printf("[EmitterSystem] 发射器 %d 发射第 %d 颗子弹 (实体 %d)", id, serial, projectile)

		if s.onFire != nil {
			s.onFire(FireEvent{Emitter: id, Projectile: projectile, Serial: serial})
		}
	}

	return spawned
}
