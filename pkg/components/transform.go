package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 实体在世界空间中的位置和朝向
// 坐标系：Y 轴向上，右手系（与渲染系统的 LookAt 一致）
type TransformComponent struct {
	Translation mgl64.Vec3 // 世界坐标
	Yaw         float64    // 绕 Y 轴旋转（弧度）
	Scale       float64    // 统一缩放，0 视为 1
}
