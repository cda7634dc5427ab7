package systems

import (
	"math"

	"github.com/decker502/towerdemo/pkg/components"
	"github.com/decker502/towerdemo/pkg/ecs"
	"github.com/decker502/towerdemo/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// minRadiusFloor 半径的绝对下限，配置的 MinRadius 非法时兜底
	minRadiusFloor = 1e-3
	// minZoomFactor 单帧缩放系数下限，避免一次滚动把半径乘成 0 或负数
	minZoomFactor = 0.01
	// snapEpsilon 平滑动画的吸附阈值
	snapEpsilon = 1e-6
	// degenerateUpDot 视线与世界 Up 夹角余弦超过该值时视为退化
	degenerateUpDot = 1 - 1e-9
)

// worldUp 世界坐标系的上方向
var worldUp = mgl64.Vec3{0, 1, 0}

// OrbitCameraSystem 轨道镜头控制。
// 主键拖动旋转，副键拖动平移，滚轮缩放；Target 由输入驱动，Current 平滑逼近 Target。
type OrbitCameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewOrbitCameraSystem 创建镜头控制系统
// cameraEntity 必须拥有 OrbitCameraComponent
func NewOrbitCameraSystem(em *ecs.EntityManager, cameraEntity ecs.EntityID) *OrbitCameraSystem {
	return &OrbitCameraSystem{
		entityManager: em,
		cameraEntity:  cameraEntity,
	}
}

// Camera 返回镜头组件
func (s *OrbitCameraSystem) Camera() (*components.OrbitCameraComponent, bool) {
	return ecs.GetComponent[*components.OrbitCameraComponent](s.entityManager, s.cameraEntity)
}

// Update 处理本帧输入并推进平滑动画
// 不会阻塞，也不会失败：非法输入被清洗为 0
func (s *OrbitCameraSystem) Update(dt float64, input utils.PointerInput) {
	cam, ok := s.Camera()
	if !ok {
		return
	}
	ApplyOrbitInput(cam, input)
	SmoothOrbit(cam, dt)
}

// Reset 恢复初始镜头（立即生效，不做平滑）
func (s *OrbitCameraSystem) Reset() {
	cam, ok := s.Camera()
	if !ok {
		return
	}
	cam.Target = cam.Initial
	cam.Current = cam.Initial
}

// Position 当前镜头位置
func (s *OrbitCameraSystem) Position() mgl64.Vec3 {
	cam, ok := s.Camera()
	if !ok {
		return mgl64.Vec3{}
	}
	return OrbitPosition(cam.Current)
}

// View 当前视图矩阵
func (s *OrbitCameraSystem) View() mgl64.Mat4 {
	cam, ok := s.Camera()
	if !ok {
		return mgl64.Ident4()
	}
	return OrbitView(cam.Current)
}

// Projection 透视投影矩阵
func (s *OrbitCameraSystem) Projection(aspect float64) mgl64.Mat4 {
	cam, ok := s.Camera()
	if !ok || !(aspect > 0) {
		return mgl64.Ident4()
	}
	return mgl64.Perspective(cam.FovY, aspect, cam.Near, cam.Far)
}

// ApplyOrbitInput 把一帧输入应用到 Target
func ApplyOrbitInput(cam *components.OrbitCameraComponent, input utils.PointerInput) {
	input = input.Sanitized()
	t := &cam.Target

	// 旋转：向右拖动增大 yaw，向上拖动增大 pitch（屏幕 Y 向下）
	if input.Buttons.Has(utils.ButtonPrimary) {
		dx, dy := input.DX, -input.DY
		if cam.InvertOrbitX {
			dx = -dx
		}
		if cam.InvertOrbitY {
			dy = -dy
		}
		t.Yaw += dx * cam.OrbitSensitivity
		t.Pitch += dy * cam.OrbitSensitivity
	}

	// 平移：沿镜头的 right/up 方向移动注视点，距离随半径缩放
	if input.Buttons.Has(utils.ButtonSecondary) && (input.DX != 0 || input.DY != 0) {
		right, up := OrbitBasis(*t)
		scale := cam.PanSensitivity * t.Radius
		t.Focus = t.Focus.
			Sub(right.Mul(input.DX * scale)).
			Add(up.Mul(input.DY * scale))
	}

	// 缩放：任何按键状态下都生效
	if input.Scroll != 0 {
		factor := 1 - input.Scroll*cam.ZoomSensitivity
		if factor < minZoomFactor {
			factor = minZoomFactor
		}
		t.Radius *= factor
	}

	ClampOrbit(cam, t)
	wrapYaw(cam)
}

// ClampOrbit 约束俯仰角和半径
func ClampOrbit(cam *components.OrbitCameraComponent, s *components.OrbitState) {
	limit := pitchLimit(cam.PitchLimit)
	if math.IsNaN(s.Pitch) {
		s.Pitch = 0
	}
	s.Pitch = mgl64.Clamp(s.Pitch, -limit, limit)

	minR := cam.MinRadius
	if !(minR >= minRadiusFloor) {
		minR = minRadiusFloor
	}
	maxR := cam.MaxRadius
	if !(maxR >= minR) {
		maxR = math.Inf(1)
	}
	if math.IsNaN(s.Radius) {
		s.Radius = minR
	}
	s.Radius = mgl64.Clamp(s.Radius, minR, maxR)
}

// pitchLimit 返回严格小于 90° 的俯仰角上限
func pitchLimit(limit float64) float64 {
	maxLimit := math.Nextafter(math.Pi/2, 0)
	if !(limit > 0) || limit > maxLimit {
		return maxLimit
	}
	return limit
}

// wrapYaw 偏航角超过一圈时，Current 和 Target 同步回绕
func wrapYaw(cam *components.OrbitCameraComponent) {
	const turn = 2 * math.Pi
	if math.IsNaN(cam.Target.Yaw) || math.IsInf(cam.Target.Yaw, 0) {
		cam.Target.Yaw, cam.Current.Yaw = 0, 0
		return
	}
	if math.Abs(cam.Target.Yaw) <= turn {
		return
	}
	k := math.Trunc(cam.Target.Yaw/turn) * turn
	cam.Target.Yaw -= k
	cam.Current.Yaw -= k
}

// SmoothOrbit 让 Current 以指数平滑逼近 Target
// 差值小于阈值时直接吸附，静止的镜头在零输入下逐位保持不变
func SmoothOrbit(cam *components.OrbitCameraComponent, dt float64) {
	if cam.Smoothing <= 0 || math.IsNaN(cam.Smoothing) {
		cam.Current = cam.Target
		return
	}
	if cam.Current == cam.Target {
		return
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}

	alpha := 1 - math.Exp(-cam.Smoothing*dt)
	c, t := &cam.Current, cam.Target
	c.Yaw = lerpSnap(c.Yaw, t.Yaw, alpha)
	c.Pitch = lerpSnap(c.Pitch, t.Pitch, alpha)
	c.Radius = lerpSnap(c.Radius, t.Radius, alpha)
	for i := range c.Focus {
		c.Focus[i] = lerpSnap(c.Focus[i], t.Focus[i], alpha)
	}
}

func lerpSnap(from, to, alpha float64) float64 {
	v := utils.Lerp(from, to, alpha)
	if math.Abs(to-v) < snapEpsilon {
		return to
	}
	return v
}

// OrbitDirection 从注视点指向镜头的单位向量
func OrbitDirection(s components.OrbitState) mgl64.Vec3 {
	sinYaw, cosYaw := math.Sincos(s.Yaw)
	sinPitch, cosPitch := math.Sincos(s.Pitch)
	return mgl64.Vec3{cosPitch * sinYaw, sinPitch, cosPitch * cosYaw}
}

// OrbitPosition 镜头位置 = focus + radius * direction
func OrbitPosition(s components.OrbitState) mgl64.Vec3 {
	return s.Focus.Add(OrbitDirection(s).Mul(s.Radius))
}

// OrbitBasis 返回镜头的 right 和 up 方向（世界坐标）
// right 只由 yaw 决定，因此在正上/正下方俯视时依然有定义
func OrbitBasis(s components.OrbitState) (right, up mgl64.Vec3) {
	sinYaw, cosYaw := math.Sincos(s.Yaw)
	right = mgl64.Vec3{cosYaw, 0, -sinYaw}
	forward := OrbitDirection(s).Mul(-1)
	up = right.Cross(forward).Normalize()
	return right, up
}

// OrbitUp LookAt 使用的上方向
// 视线与世界 Up 平行时 LookAt 矩阵奇异，改用由 yaw 推出的镜头 up
func OrbitUp(s components.OrbitState) mgl64.Vec3 {
	if math.Abs(OrbitDirection(s).Dot(worldUp)) >= degenerateUpDot {
		_, up := OrbitBasis(s)
		return up
	}
	return worldUp
}

// OrbitView 视图矩阵
func OrbitView(s components.OrbitState) mgl64.Mat4 {
	return mgl64.LookAtV(OrbitPosition(s), s.Focus, OrbitUp(s))
}
