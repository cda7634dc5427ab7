package components

// LinearColor 线性空间颜色，分量可以大于 1（HDR 自发光）
type LinearColor struct {
	R, G, B float64
}

// MaterialComponent 材质组件
// BaseColor 为 sRGB 基础色；Emissive 非零时渲染器优先使用自发光颜色（经色调映射）
type MaterialComponent struct {
	BaseColor LinearColor
	Emissive  LinearColor
}
