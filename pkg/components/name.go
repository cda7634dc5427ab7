package components

// NameComponent 实体名称，用于调试面板和日志
type NameComponent struct {
	Name string
}
