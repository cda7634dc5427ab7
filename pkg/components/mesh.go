package components

// MeshShape 网格形状标识
// 渲染器根据形状生成线框，不加载任何模型文件
type MeshShape int

const (
	// MeshCube 立方体，Size 为边长
	MeshCube MeshShape = iota
	// MeshPlane 水平平面（XZ），Size 为边长，Subdivisions 为网格细分数
	MeshPlane
	// MeshPointLight 点光源标记（渲染为小圆点）
	MeshPointLight
)

// String 返回形状名称（用于调试面板）
func (s MeshShape) String() string {
	switch s {
	case MeshCube:
		return "cube"
	case MeshPlane:
		return "plane"
	case MeshPointLight:
		return "light"
	default:
		return "unknown"
	}
}

// MeshComponent 网格组件
type MeshComponent struct {
	Shape        MeshShape
	Size         float64
	Subdivisions int
}
