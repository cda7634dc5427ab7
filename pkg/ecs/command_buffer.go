package ecs

import "reflect"

// CommandOperation 延迟命令类型
type CommandOperation int

const (
	// CreateEntityCommand 创建实体并附加组件
	CreateEntityCommand CommandOperation = iota
	// DestroyEntityCommand 递归删除实体
	DestroyEntityCommand
)

// Command 一条延迟执行的场景修改
type Command struct {
	Op         CommandOperation
	EntityID   EntityID
	Parent     EntityID
	Components []interface{}
}

// CommandBuffer 收集一帧内的实体创建/删除请求，帧末统一应用
//
// 系统遍历实体时只读取"当前"实体集合；本帧新建的实体在 Flush 之后才可见。
// 实体ID在请求时即已分配，调用方可以立即拿到句柄。
// 单写者：只应在更新线程中使用。
type CommandBuffer struct {
	em       *EntityManager
	commands []Command
}

// NewCommandBuffer 创建绑定到 EntityManager 的命令缓冲
func NewCommandBuffer(em *EntityManager) *CommandBuffer {
	return &CommandBuffer{
		em:       em,
		commands: make([]Command, 0, 16),
	}
}

// Spawn 请求创建实体，返回预分配的实体ID
func (cb *CommandBuffer) Spawn(components ...interface{}) EntityID {
	return cb.SpawnChild(InvalidEntity, components...)
}

// SpawnChild 请求创建挂在 parent 下的实体
func (cb *CommandBuffer) SpawnChild(parent EntityID, components ...interface{}) EntityID {
	id := cb.em.reserveID()
	cb.commands = append(cb.commands, Command{
		Op:         CreateEntityCommand,
		EntityID:   id,
		Parent:     parent,
		Components: components,
	})
	return id
}

// Despawn 请求递归删除实体
func (cb *CommandBuffer) Despawn(id EntityID) {
	cb.commands = append(cb.commands, Command{
		Op:       DestroyEntityCommand,
		EntityID: id,
	})
}

// Len 待执行的命令数
func (cb *CommandBuffer) Len() int {
	return len(cb.commands)
}

// Flush 按请求顺序应用所有命令并清空缓冲
// 删除只做标记，仍需调用 RemoveMarkedEntities 完成清理
// 返回创建的实体数量
func (cb *CommandBuffer) Flush() int {
	created := 0
	for _, cmd := range cb.commands {
		switch cmd.Op {
		case CreateEntityCommand:
			cb.em.components[cmd.EntityID] = make(map[reflect.Type]interface{}, len(cmd.Components))
			for _, comp := range cmd.Components {
				if comp == nil {
					continue
				}
				cb.em.AddComponent(cmd.EntityID, comp)
			}
			if cmd.Parent != InvalidEntity {
				cb.em.SetParent(cmd.EntityID, cmd.Parent)
				// 父实体已标记删除（例如本帧寿命到期），新子实体不能留下
				if cb.em.IsMarkedForDestroy(cmd.Parent) {
					cb.em.DestroyEntity(cmd.EntityID)
				}
			}
			created++
		case DestroyEntityCommand:
			cb.em.DestroyEntityRecursive(cmd.EntityID)
		}
	}
	clear(cb.commands)
	cb.commands = cb.commands[:0]
	return created
}
