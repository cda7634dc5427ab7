package entities

import (
	"fmt"
	"math"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/timer"
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectileName 默认子弹实体名称
const ProjectileName = "Bullet"

// NewProjectileComponents 生成一颗子弹所需的全部组件
// 返回的组件交给 Spawner（命令缓冲），在帧末统一创建实体
//
// 参数:
//   - emitterID: 发射器实体ID
//   - origin: 发射器的变换（子弹偏移随发射器 Yaw 旋转）
//   - emitter: 发射器组件，提供偏移、寿命、尺寸和自发光颜色
//   - serial: 发射器的第几发子弹
//
// 返回:
//   - []interface{}: 子弹组件列表
//   - error: 寿命非法时返回错误
func NewProjectileComponents(emitterID ecs.EntityID, origin *components.TransformComponent, emitter *components.EmitterComponent, serial int) ([]interface{}, error) {
	if emitter == nil {
		return nil, fmt.Errorf("emitter component cannot be nil")
	}

	lifetime, err := timer.New(emitter.ProjectileLifetime, timer.OneShot)
	if err != nil {
		return nil, fmt.Errorf("failed to create projectile lifetime: %w", err)
	}

	name := emitter.ProjectileName
	if name == "" {
		name = ProjectileName
	}

	var base mgl64.Vec3
	var yaw float64
	if origin != nil {
		base = origin.Translation
		yaw = origin.Yaw
	}

	return []interface{}{
		&components.NameComponent{Name: name},
		&components.TransformComponent{
			Translation: base.Add(RotateYaw(emitter.SpawnOffset, yaw)),
			Yaw:         yaw,
			Scale:       1,
		},
		&components.MeshComponent{
			Shape: components.MeshCube,
			Size:  emitter.ProjectileSize,
		},
		&components.MaterialComponent{
			Emissive: emitter.ProjectileEmissive,
		},
		&components.ProjectileComponent{
			Emitter: emitterID,
			Serial:  serial,
		},
		&components.LifetimeComponent{Timer: lifetime},
	}, nil
}

// RotateYaw 把局部偏移绕 Y 轴旋转 yaw 弧度
func RotateYaw(v mgl64.Vec3, yaw float64) mgl64.Vec3 {
	if yaw == 0 {
		return v
	}
	sin, cos := math.Sincos(yaw)
	return mgl64.Vec3{
		v[0]*cos + v[2]*sin,
		v[1],
		-v[0]*sin + v[2]*cos,
	}
}
