package components

import "github.com/go-gl/mathgl/mgl64"

// OrbitState 轨道镜头的球坐标状态
type OrbitState struct {
	Focus  mgl64.Vec3 // 注视点（世界坐标）
	Yaw    float64    // 偏航角（弧度），绕 Y 轴
	Pitch  float64    // 俯仰角（弧度），正值表示从上方俯视
	Radius float64    // 到注视点的距离，始终 > 0
}

// OrbitCameraComponent 管理轨道镜头的目标状态和平滑动画。
// 用户输入只修改 Target；Current 以指数平滑逼近 Target，渲染使用 Current。
type OrbitCameraComponent struct {
	// Current 当前显示状态
	Current OrbitState

	// Target 输入驱动的目标状态
	Target OrbitState

	// Initial 初始状态（用于重置镜头）
	Initial OrbitState

	// 输入灵敏度
	OrbitSensitivity float64 // 弧度/像素
	PanSensitivity   float64 // 每像素平移量（乘以半径）
	ZoomSensitivity  float64 // 每格滚轮的缩放比例

	// 约束
	MinRadius  float64 // 最小半径（> 0）
	MaxRadius  float64 // 最大半径
	PitchLimit float64 // 俯仰角绝对值上限（弧度，严格小于 90°）

	// Smoothing 平滑系数（1/秒），0 表示不平滑
	Smoothing float64

	// 反转输入方向
	InvertOrbitX bool
	InvertOrbitY bool

	// 投影参数
	FovY float64 // 垂直视场角（弧度）
	Near float64
	Far  float64
}
