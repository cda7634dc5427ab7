package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 无效实体ID（ID从1开始分配）
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
//
// 场景图是一个扁平的实体集合；父子关系只用于递归删除。
// 删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 在帧末统一清理，
// 保证同一帧内的遍历不会被删除操作打乱。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 父子关系: parent -> children / child -> parent
	children map[EntityID][]EntityID
	parents  map[EntityID]EntityID
	// 待删除的实体ID列表（去重）
	entitiesToDestroy []EntityID
	markedForDestroy  map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		children:          make(map[EntityID][]EntityID),
		parents:           make(map[EntityID]EntityID),
		entitiesToDestroy: make([]EntityID, 0),
		markedForDestroy:  make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.reserveID()
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// reserveID 分配一个ID但不创建实体（CommandBuffer 使用）
func (em *EntityManager) reserveID() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	return id
}

// IsAlive 实体是否存在（已标记但未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, exists := em.components[id]
	return exists
}

// IsMarkedForDestroy 实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, marked := em.markedForDestroy[id]
	return marked
}

// EntityCount 当前存活实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记、标记不存在的实体都是安全的空操作
func (em *EntityManager) DestroyEntity(id EntityID) {
	if !em.IsAlive(id) {
		return
	}
	if _, marked := em.markedForDestroy[id]; marked {
		return
	}
	em.markedForDestroy[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// DestroyEntityRecursive 标记实体及其所有子孙实体待删除
func (em *EntityManager) DestroyEntityRecursive(id EntityID) {
	if !em.IsAlive(id) {
		return
	}
	em.DestroyEntity(id)
	for _, child := range em.children[id] {
		em.DestroyEntityRecursive(child)
	}
}

// SetParent 把 child 挂到 parent 下
// 任一实体不存在、或会形成环时忽略
func (em *EntityManager) SetParent(child, parent EntityID) {
	if child == parent || !em.IsAlive(child) || !em.IsAlive(parent) {
		return
	}
	for p := parent; p != InvalidEntity; p = em.parents[p] {
		if p == child {
			return
		}
	}
	em.detach(child)
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
}

// Parent 返回实体的父实体，没有则返回 InvalidEntity
func (em *EntityManager) Parent(id EntityID) EntityID {
	return em.parents[id]
}

// Children 返回实体的直接子实体（副本）
func (em *EntityManager) Children(id EntityID) []EntityID {
	return slices.Clone(em.children[id])
}

// detach 断开实体与父实体的关系
func (em *EntityManager) detach(child EntityID) {
	parent, ok := em.parents[child]
	if !ok {
		return
	}
	siblings := em.children[parent]
	if i := slices.Index(siblings, child); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(em.children, parent)
	} else {
		em.children[parent] = siblings
	}
	delete(em.parents, child)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回本次实际删除的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range em.entitiesToDestroy {
		if !em.IsAlive(id) {
			continue
		}
		// 子实体在递归删除时已被标记；这里只需要断开关系
		for _, child := range em.children[id] {
			delete(em.parents, child)
		}
		delete(em.children, id)
		em.detach(id)
		delete(em.components, id)
		removed++
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
	clear(em.markedForDestroy)
	return removed
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序，调用方可安全地在遍历时增删实体）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}
