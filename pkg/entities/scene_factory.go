package entities

import (
	"fmt"
	"log"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/timer"
	"github.com/go-gl/mathgl/mgl64"
)

// SceneEntities 场景初始化时创建的静态实体
type SceneEntities struct {
	Tower  ecs.EntityID
	Ground ecs.EntityID
	Light  ecs.EntityID
	Camera ecs.EntityID
}

// BuildScene 根据配置创建整个场景：塔、地面、点光源和轨道镜头
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置（调用方负责校验）
//
// 返回:
//   - *SceneEntities: 创建的实体ID
//   - error: 任一实体创建失败时返回错误（此时 em 中可能残留部分实体）
func BuildScene(em *ecs.EntityManager, cfg *config.SceneConfig) (*SceneEntities, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("scene config cannot be nil")
	}

	tower, err := NewTowerEntity(em, cfg.Emitter, cfg.Projectile)
	if err != nil {
		return nil, fmt.Errorf("failed to create tower: %w", err)
	}

	scene := &SceneEntities{
		Tower:  tower,
		Ground: NewGroundEntity(em, cfg.Ground),
		Light:  NewLightEntity(em, cfg.Light),
		Camera: NewOrbitCameraEntity(em, cfg.Camera),
	}

	log.Printf("[SceneFactory] 场景创建完成: tower=%d ground=%d light=%d camera=%d",
		scene.Tower, scene.Ground, scene.Light, scene.Camera)
	return scene, nil
}

// NewTowerEntity 创建发射器（塔）实体
// 塔持有一个循环计时器，每个周期发射一颗子弹
func NewTowerEntity(em *ecs.EntityManager, emitter config.EmitterConfig, projectile config.ProjectileConfig) (ecs.EntityID, error) {
	shooting, err := timer.New(emitter.Period, timer.Repeating)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("invalid emitter period: %w", err)
	}
	// 提前校验子弹寿命，避免每次发射时才失败
	if _, err := timer.New(projectile.Lifetime, timer.OneShot); err != nil {
		return ecs.InvalidEntity, fmt.Errorf("invalid projectile lifetime: %w", err)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.NameComponent{Name: emitter.Name})
	em.AddComponent(id, &components.TransformComponent{
		Translation: vec3(emitter.Position),
		Yaw:         mgl64.DegToRad(emitter.YawDeg),
		Scale:       1,
	})
	em.AddComponent(id, &components.MeshComponent{
		Shape: components.MeshCube,
		Size:  emitter.Size,
	})
	em.AddComponent(id, &components.MaterialComponent{
		BaseColor: color(emitter.Color),
	})
	em.AddComponent(id, &components.EmitterComponent{
		ShootingTimer:      shooting,
		ProjectileName:     projectile.Name,
		SpawnOffset:        vec3(projectile.SpawnOffset),
		ProjectileLifetime: projectile.Lifetime,
		ProjectileSize:     projectile.Size,
		ProjectileEmissive: color(projectile.Emissive),
	})
	return id, nil
}

// NewGroundEntity 创建地面实体（静态装饰）
func NewGroundEntity(em *ecs.EntityManager, ground config.GroundConfig) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.NameComponent{Name: ground.Name})
	em.AddComponent(id, &components.TransformComponent{
		Translation: vec3(ground.Position),
		Scale:       1,
	})
	em.AddComponent(id, &components.MeshComponent{
		Shape:        components.MeshPlane,
		Size:         ground.Size,
		Subdivisions: ground.Subdivisions,
	})
	em.AddComponent(id, &components.MaterialComponent{
		BaseColor: color(ground.Color),
	})
	return id
}

// NewLightEntity 创建点光源实体（静态装饰）
func NewLightEntity(em *ecs.EntityManager, light config.LightConfig) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.NameComponent{Name: light.Name})
	em.AddComponent(id, &components.TransformComponent{
		Translation: vec3(light.Position),
		Scale:       1,
	})
	em.AddComponent(id, &components.MeshComponent{Shape: components.MeshPointLight})
	em.AddComponent(id, &components.PointLightComponent{
		Intensity: light.Intensity,
		Range:     light.Range,
	})
	return id
}

// NewOrbitCameraEntity 创建轨道镜头实体
// 配置中的角度为度数，组件内部统一使用弧度
func NewOrbitCameraEntity(em *ecs.EntityManager, cam config.CameraConfig) ecs.EntityID {
	initial := components.OrbitState{
		Focus:  vec3(cam.Focus),
		Yaw:    mgl64.DegToRad(cam.YawDeg),
		Pitch:  mgl64.DegToRad(cam.PitchDeg),
		Radius: cam.Radius,
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.NameComponent{Name: "Camera"})
	em.AddComponent(id, &components.OrbitCameraComponent{
		Current:          initial,
		Target:           initial,
		Initial:          initial,
		OrbitSensitivity: mgl64.DegToRad(cam.OrbitSensitivity),
		PanSensitivity:   cam.PanSensitivity,
		ZoomSensitivity:  cam.ZoomSensitivity,
		MinRadius:        cam.MinRadius,
		MaxRadius:        cam.MaxRadius,
		PitchLimit:       mgl64.DegToRad(cam.PitchLimitDeg),
		Smoothing:        cam.Smoothing,
		FovY:             mgl64.DegToRad(cam.FovYDeg),
		Near:             cam.Near,
		Far:              cam.Far,
	})
	return id
}

func vec3(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func color(c config.Color) components.LinearColor {
	return components.LinearColor{R: c[0], G: c[1], B: c[2]}
}
