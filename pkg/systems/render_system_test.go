package systems

import (
	"testing"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/entities"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	testScreenWidth  = 800
	testScreenHeight = 600
)

// newTestRenderScene 创建默认场景和渲染系统
func newTestRenderScene(t *testing.T) (*ecs.EntityManager, *entities.SceneEntities, *RenderSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	scene, err := entities.BuildScene(em, config.DefaultSceneConfig())
	if err != nil {
		t.Fatalf("BuildScene() error: %v", err)
	}
	camera := NewOrbitCameraSystem(em, scene.Camera)
	return em, scene, NewRenderSystem(em, camera)
}

func countByEntity(prims []Primitive) map[ecs.EntityID]int {
	counts := make(map[ecs.EntityID]int)
	for _, p := range prims {
		counts[p.Entity]++
	}
	return counts
}

// TestBuildDrawListDefaultScene 默认场景：塔 12 条棱，地面 (5+2)*2 条网格线，光源 1 个标记
func TestBuildDrawListDefaultScene(t *testing.T) {
	_, scene, rs := newTestRenderScene(t)

	prims := rs.BuildDrawList(testScreenWidth, testScreenHeight)
	counts := countByEntity(prims)

	if counts[scene.Tower] != 12 {
		t.Errorf("Tower lines: got %d, want 12", counts[scene.Tower])
	}
	if counts[scene.Ground] != 14 {
		t.Errorf("Ground lines: got %d, want 14", counts[scene.Ground])
	}
	if counts[scene.Light] != 1 {
		t.Errorf("Light markers: got %d, want 1", counts[scene.Light])
	}
	if counts[scene.Camera] != 0 {
		t.Error("Camera entity has no mesh and should not be drawn")
	}

	for i := 1; i < len(prims); i++ {
		if prims[i-1].Depth < prims[i].Depth {
			t.Fatalf("draw list should be sorted far to near at %d", i)
		}
	}
}

// TestBuildDrawListTowerOnScreen 塔位于画面中央附近
func TestBuildDrawListTowerOnScreen(t *testing.T) {
	_, scene, rs := newTestRenderScene(t)

	for _, p := range rs.BuildDrawList(testScreenWidth, testScreenHeight) {
		if p.Entity != scene.Tower {
			continue
		}
		for _, pt := range [][2]float64{{p.X0, p.Y0}, {p.X1, p.Y1}} {
			if pt[0] < 0 || pt[0] > testScreenWidth || pt[1] < 0 || pt[1] > testScreenHeight {
				t.Fatalf("tower vertex off screen: %v", pt)
			}
		}
	}
}

// TestBuildDrawListProjectileFades 子弹使用自发光颜色并随寿命淡出
func TestBuildDrawListProjectileFades(t *testing.T) {
	em, scene, rs := newTestRenderScene(t)
	cb := ecs.NewCommandBuffer(em)

	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, scene.Tower)
	origin, _ := ecs.GetComponent[*components.TransformComponent](em, scene.Tower)
	comps, err := entities.NewProjectileComponents(scene.Tower, origin, emitter, 1)
	if err != nil {
		t.Fatal(err)
	}
	bullet := cb.Spawn(comps...)
	cb.Flush()

	alphaOf := func() uint8 {
		for _, p := range rs.BuildDrawList(testScreenWidth, testScreenHeight) {
			if p.Entity == bullet {
				if p.Size != emissiveWidth {
					t.Errorf("projectile should use the emissive stroke width, got %v", p.Size)
				}
				return p.Color.A
			}
		}
		t.Fatal("projectile not drawn")
		return 0
	}

	fresh := alphaOf()
	if fresh != 255 {
		t.Errorf("fresh projectile alpha: got %d, want 255", fresh)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, bullet)
	lifetime.Timer.Advance(0.4)
	if aged := alphaOf(); aged >= fresh {
		t.Errorf("aged projectile should fade: fresh=%d aged=%d", fresh, aged)
	}
}

// TestBuildDrawListCullsBehindCamera 镜头背后的实体不绘制
func TestBuildDrawListCullsBehindCamera(t *testing.T) {
	em, _, rs := newTestRenderScene(t)

	// 镜头位于 (-2, 2.5, 5) 附近看向原点，把立方体放在镜头身后
	behind := em.CreateEntity()
	em.AddComponent(behind, &components.TransformComponent{Translation: mgl64.Vec3{-6, 7.5, 15}, Scale: 1})
	em.AddComponent(behind, &components.MeshComponent{Shape: components.MeshCube, Size: 0.5})

	if n := countByEntity(rs.BuildDrawList(testScreenWidth, testScreenHeight))[behind]; n != 0 {
		t.Errorf("entity behind the camera should be culled, got %d lines", n)
	}
}

func TestBuildDrawListEmptyViewport(t *testing.T) {
	_, _, rs := newTestRenderScene(t)

	if n := len(rs.BuildDrawList(0, 600)); n != 0 {
		t.Errorf("zero-width viewport should draw nothing, got %d", n)
	}
	if n := len(NewRenderSystem(ecs.NewEntityManager(), nil).BuildDrawList(800, 600)); n != 0 {
		t.Errorf("render system without camera should draw nothing, got %d", n)
	}
}

// TestClipToNear 跨越近平面的线段被截断到近平面
func TestClipToNear(t *testing.T) {
	behind := mgl64.Vec3{0, 0, 1}
	front := mgl64.Vec3{0, 0, -3}

	got := clipToNear(behind, front, -1, 3, 0.1)
	if got.Sub(mgl64.Vec3{0, 0, -0.1}).Len() > 1e-12 {
		t.Errorf("clipToNear: got %v, want (0, 0, -0.1)", got)
	}
}

func TestPlaneGrid(t *testing.T) {
	transform := &components.TransformComponent{Translation: mgl64.Vec3{0, -1, 0}}
	segs := planeGrid(transform, 5, 5)

	if len(segs) != 14 {
		t.Fatalf("Expected 14 grid lines, got %d", len(segs))
	}
	for _, seg := range segs {
		for _, pt := range seg {
			if pt.Y() != -1 {
				t.Fatalf("grid point should lie on y = -1, got %v", pt)
			}
			if pt.X() < -2.5-1e-9 || pt.X() > 2.5+1e-9 || pt.Z() < -2.5-1e-9 || pt.Z() > 2.5+1e-9 {
				t.Fatalf("grid point outside plane: %v", pt)
			}
		}
	}
}

func TestLightFactor(t *testing.T) {
	lights := []pointLight{{position: mgl64.Vec3{4, 8, 4}, intensity: 800, rng: 20}}

	nearK := lightFactor(mgl64.Vec3{4, 7, 4}, lights)
	farK := lightFactor(mgl64.Vec3{0, -1, 0}, lights)
	if !(nearK > farK) {
		t.Errorf("closer surfaces should be brighter: near=%v far=%v", nearK, farK)
	}
	if k := lightFactor(mgl64.Vec3{100, 0, 0}, lights); k != ambientLight {
		t.Errorf("out of range surfaces get ambient light only, got %v", k)
	}
	if k := lightFactor(mgl64.Vec3{}, nil); k != unlitIntensity {
		t.Errorf("scene without lights is unlit, got %v", k)
	}
}
