package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/entities"
	"github.com/decker502/towerdemo/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PrimitiveKind 绘制图元类型
type PrimitiveKind int

const (
	// PrimitiveLine 线段（立方体棱、地面网格）
	PrimitiveLine PrimitiveKind = iota
	// PrimitiveMarker 屏幕空间方块标记（点光源）
	PrimitiveMarker
)

// Primitive 投影到屏幕空间的图元
// 坐标单位为像素，原点在左上角；Depth 为视图空间距离，用于由远到近排序
type Primitive struct {
	Kind   PrimitiveKind
	Entity ecs.EntityID
	X0, Y0 float64
	X1, Y1 float64
	Size   float64
	Depth  float64
	Color  color.RGBA
}

const (
	lineWidth      = 1.5
	emissiveWidth  = 2.5
	markerSize     = 6.0
	ambientLight   = 0.35
	unlitIntensity = 1.0
)

// cubeEdges 立方体 12 条棱（顶点索引）
var cubeEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// RenderSystem 把场景实体投影为线框并绘制
//
// 渲染器只读取组件：Transform + Mesh + Material（+ 点光源位置做简单的距离衰减）。
// 子弹这类自发光实体经色调映射后绘制，并随寿命淡出。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *OrbitCameraSystem
	drawList      []Primitive
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera *OrbitCameraSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		drawList:      make([]Primitive, 0, 64),
	}
}

// BuildDrawList 生成当前帧的绘制列表（由远到近）
// 返回的切片在下一次调用前有效
func (s *RenderSystem) BuildDrawList(width, height int) []Primitive {
	s.drawList = s.drawList[:0]
	if width <= 0 || height <= 0 || s.camera == nil {
		return s.drawList
	}
	cam, ok := s.camera.Camera()
	if !ok {
		return s.drawList
	}

	p := projector{
		view:   s.camera.View(),
		proj:   s.camera.Projection(float64(width) / float64(height)),
		near:   cam.Near,
		width:  float64(width),
		height: float64(height),
	}
	lights := s.collectLights()

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.MeshComponent](s.entityManager) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		material, _ := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id)

		switch mesh.Shape {
		case components.MeshCube:
			clr, stroke := s.surfaceColor(id, transform, material, lights)
			corners := cubeCorners(transform, mesh.Size)
			for _, e := range cubeEdges {
				s.addLine(p, id, corners[e[0]], corners[e[1]], stroke, clr)
			}
		case components.MeshPlane:
			clr, stroke := s.surfaceColor(id, transform, material, lights)
			for _, seg := range planeGrid(transform, mesh.Size, mesh.Subdivisions) {
				s.addLine(p, id, seg[0], seg[1], stroke, clr)
			}
		case components.MeshPointLight:
			s.addMarker(p, id, transform.Translation, color.RGBA{R: 255, G: 240, B: 160, A: 255})
		}
	}

	sort.SliceStable(s.drawList, func(i, j int) bool {
		return s.drawList[i].Depth > s.drawList[j].Depth
	})
	return s.drawList
}

// Draw 绘制场景线框
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	for _, prim := range s.BuildDrawList(bounds.Dx(), bounds.Dy()) {
		switch prim.Kind {
		case PrimitiveLine:
			vector.StrokeLine(screen,
				float32(prim.X0), float32(prim.Y0), float32(prim.X1), float32(prim.Y1),
				float32(prim.Size), prim.Color, true)
		case PrimitiveMarker:
			half := prim.Size / 2
			vector.DrawFilledRect(screen,
				float32(prim.X0-half), float32(prim.Y0-half), float32(prim.Size), float32(prim.Size),
				prim.Color, true)
		}
	}
}

type pointLight struct {
	position  mgl64.Vec3
	intensity float64
	rng       float64
}

func (s *RenderSystem) collectLights() []pointLight {
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.PointLightComponent](s.entityManager)
	lights := make([]pointLight, 0, len(ids))
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		light, _ := ecs.GetComponent[*components.PointLightComponent](s.entityManager, id)
		lights = append(lights, pointLight{
			position:  transform.Translation,
			intensity: light.Intensity,
			rng:       light.Range,
		})
	}
	return lights
}

// surfaceColor 计算实体的线框颜色和线宽
func (s *RenderSystem) surfaceColor(id ecs.EntityID, transform *components.TransformComponent, material *components.MaterialComponent, lights []pointLight) (color.RGBA, float64) {
	if material == nil {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}, lineWidth
	}

	e := material.Emissive
	if e.R > 0 || e.G > 0 || e.B > 0 {
		// 自发光实体随寿命淡出
		alpha := 1.0
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok && lifetime.Timer != nil {
			alpha = 1 - utils.EaseInCubic(lifetime.Timer.Fraction())
		}
		return utils.EmissiveColor(e.R, e.G, e.B, alpha), emissiveWidth
	}

	k := lightFactor(transform.Translation, lights)
	b := material.BaseColor
	return utils.SRGBColor(b.R*k, b.G*k, b.B*k, 1), lineWidth
}

// lightFactor 环境光 + 点光源距离衰减，返回 [ambientLight, 1]
func lightFactor(pos mgl64.Vec3, lights []pointLight) float64 {
	if len(lights) == 0 {
		return unlitIntensity
	}
	k := ambientLight
	for _, l := range lights {
		if l.rng <= 0 {
			continue
		}
		d := l.position.Sub(pos).Len()
		falloff := 1 - d/l.rng
		if falloff <= 0 {
			continue
		}
		k += (1 - ambientLight) * falloff * falloff * math.Min(l.intensity/1000, 1)
	}
	return math.Min(k, 1)
}

func (s *RenderSystem) addLine(p projector, id ecs.EntityID, a, b mgl64.Vec3, width float64, clr color.RGBA) {
	x0, y0, x1, y1, depth, ok := p.segment(a, b)
	if !ok {
		return
	}
	s.drawList = append(s.drawList, Primitive{
		Kind:   PrimitiveLine,
		Entity: id,
		X0:     x0,
		Y0:     y0,
		X1:     x1,
		Y1:     y1,
		Size:   width,
		Depth:  depth,
		Color:  clr,
	})
}

func (s *RenderSystem) addMarker(p projector, id ecs.EntityID, pos mgl64.Vec3, clr color.RGBA) {
	v := p.view.Mul4x1(pos.Vec4(1)).Vec3()
	if -v.Z() < p.near {
		return
	}
	x, y := p.toScreen(v)
	s.drawList = append(s.drawList, Primitive{
		Kind:   PrimitiveMarker,
		Entity: id,
		X0:     x,
		Y0:     y,
		X1:     x,
		Y1:     y,
		Size:   markerSize,
		Depth:  -v.Z(),
		Color:  clr,
	})
}

// projector 视图空间裁剪 + 透视投影
type projector struct {
	view, proj    mgl64.Mat4
	near          float64
	width, height float64
}

// segment 投影一条世界空间线段，先在视图空间裁掉近平面之后的部分
func (p projector) segment(a, b mgl64.Vec3) (x0, y0, x1, y1, depth float64, ok bool) {
	va := p.view.Mul4x1(a.Vec4(1)).Vec3()
	vb := p.view.Mul4x1(b.Vec4(1)).Vec3()
	za, zb := -va.Z(), -vb.Z()

	if za < p.near && zb < p.near {
		return 0, 0, 0, 0, 0, false
	}
	if za < p.near {
		va = clipToNear(va, vb, za, zb, p.near)
	} else if zb < p.near {
		vb = clipToNear(vb, va, zb, za, p.near)
	}

	x0, y0 = p.toScreen(va)
	x1, y1 = p.toScreen(vb)
	return x0, y0, x1, y1, (-va.Z() - vb.Z()) / 2, true
}

// clipToNear 把近平面后的端点 behind 沿线段移动到近平面上
func clipToNear(behind, front mgl64.Vec3, zBehind, zFront, near float64) mgl64.Vec3 {
	t := (near - zBehind) / (zFront - zBehind)
	return behind.Add(front.Sub(behind).Mul(t))
}

// toScreen 视图空间点 -> 屏幕像素（Y 向下）
func (p projector) toScreen(v mgl64.Vec3) (float64, float64) {
	clip := p.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = math.SmallestNonzeroFloat64
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return (ndcX + 1) / 2 * p.width, (1 - ndcY) / 2 * p.height
}

// cubeCorners 立方体 8 个角（世界坐标）
func cubeCorners(t *components.TransformComponent, size float64) [8]mgl64.Vec3 {
	half := size * scaleOf(t) / 2
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{
			sign(i&1 != 0) * half,
			sign(i&2 != 0) * half,
			sign(i&4 != 0) * half,
		}
		corners[i] = t.Translation.Add(entities.RotateYaw(local, t.Yaw))
	}
	return corners
}

// planeGrid 水平平面网格线段，subdivisions 为内部分割线数量
func planeGrid(t *components.TransformComponent, size float64, subdivisions int) [][2]mgl64.Vec3 {
	if subdivisions < 0 {
		subdivisions = 0
	}
	half := size * scaleOf(t) / 2
	cells := subdivisions + 1
	step := 2 * half / float64(cells)

	segs := make([][2]mgl64.Vec3, 0, 2*(cells+1))
	for i := 0; i <= cells; i++ {
		o := -half + float64(i)*step
		segs = append(segs,
			[2]mgl64.Vec3{{o, 0, -half}, {o, 0, half}},
			[2]mgl64.Vec3{{-half, 0, o}, {half, 0, o}},
		)
	}
	for i := range segs {
		segs[i][0] = t.Translation.Add(entities.RotateYaw(segs[i][0], t.Yaw))
		segs[i][1] = t.Translation.Add(entities.RotateYaw(segs[i][1], t.Yaw))
	}
	return segs
}

func scaleOf(t *components.TransformComponent) float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}
