package components

// PointLightComponent 点光源
// 渲染器用它做简单的朝向明暗（Lambert），不产生阴影
type PointLightComponent struct {
	Intensity float64
	Range     float64
}
