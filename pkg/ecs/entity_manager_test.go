package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component before adding")
	}

	// 添加组件
	em.AddComponent(id, &testPositionComponent{})

	// 添加后应该返回true
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	// 查询拥有 Position+Velocity 的实体
	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)

	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}

	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	// 查询只拥有 Position 的实体
	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
}

func TestMultipleComponentTypes(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加多个不同类型的组件
	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20})
	em.AddComponent(id, &testVelocityComponent{VX: 5, VY: 10})

	// 验证两个组件都能正确获取
	posComp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Position component should be found")
	}
	pos := posComp.(*testPositionComponent)
	if pos.X != 10 || pos.Y != 20 {
		t.Error("Position component data mismatch")
	}

	velComp, found := em.GetComponent(id, reflect.TypeOf(&testVelocityComponent{}))
	if !found {
		t.Error("Velocity component should be found")
	}
	vel := velComp.(*testVelocityComponent)
	if vel.VX != 5 || vel.VY != 10 {
		t.Error("Velocity component data mismatch")
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.HasComponent(id1, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id3 should be removed")
	}
}

func TestDestroyEntityIdempotent(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{X: 7})

	// 同一帧内重复请求删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id1)
	if got := em.RemoveMarkedEntities(); got != 1 {
		t.Errorf("Expected 1 removed entity, got %d", got)
	}

	// 对已删除实体再次请求删除
	em.DestroyEntity(id1)
	em.DestroyEntityRecursive(id1)
	if got := em.RemoveMarkedEntities(); got != 0 {
		t.Errorf("Removing an already-removed entity should be a no-op, removed %d", got)
	}

	// 其他实体不受影响
	pos, ok := GetComponent[*testPositionComponent](em, id2)
	if !ok || pos.X != 7 {
		t.Error("Unrelated entity should be untouched")
	}
	if em.EntityCount() != 1 {
		t.Errorf("Expected 1 live entity, got %d", em.EntityCount())
	}
}

func TestDestroyUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(42)
	em.DestroyEntityRecursive(InvalidEntity)
	if got := em.RemoveMarkedEntities(); got != 0 {
		t.Errorf("Expected nothing removed, got %d", got)
	}
}

func TestDestroyEntityRecursive(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	child := em.CreateEntity()
	grandchild := em.CreateEntity()
	other := em.CreateEntity()

	em.SetParent(child, root)
	em.SetParent(grandchild, child)

	em.DestroyEntityRecursive(root)
	if !em.IsMarkedForDestroy(grandchild) {
		t.Error("Grandchild should be marked for destroy")
	}
	if got := em.RemoveMarkedEntities(); got != 3 {
		t.Errorf("Expected 3 removed entities, got %d", got)
	}

	for _, id := range []EntityID{root, child, grandchild} {
		if em.IsAlive(id) {
			t.Errorf("Entity %d should be removed", id)
		}
	}
	if !em.IsAlive(other) {
		t.Error("Unrelated entity should survive")
	}
}

func TestDestroyChildDetachesFromParent(t *testing.T) {
	em := NewEntityManager()
	parent := em.CreateEntity()
	child := em.CreateEntity()
	em.SetParent(child, parent)

	em.DestroyEntity(child)
	em.RemoveMarkedEntities()

	if len(em.Children(parent)) != 0 {
		t.Error("Removed child should be detached from its parent")
	}
}

func TestDestroyParentOrphansChildren(t *testing.T) {
	em := NewEntityManager()
	parent := em.CreateEntity()
	child := em.CreateEntity()
	em.SetParent(child, parent)

	// 非递归删除只删除父实体
	em.DestroyEntity(parent)
	em.RemoveMarkedEntities()

	if !em.IsAlive(child) {
		t.Fatal("Child should survive a non-recursive destroy")
	}
	if em.Parent(child) != InvalidEntity {
		t.Error("Orphaned child should have no parent")
	}
}

func TestSetParentRejectsCycles(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()

	em.SetParent(b, a)
	em.SetParent(a, b) // 会形成环，应忽略
	em.SetParent(a, a)

	if em.Parent(a) != InvalidEntity {
		t.Error("Cycle should be rejected")
	}
	if em.Parent(b) != a {
		t.Error("Original relation should be kept")
	}
}

func TestSetParentReparents(t *testing.T) {
	em := NewEntityManager()
	p1 := em.CreateEntity()
	p2 := em.CreateEntity()
	c := em.CreateEntity()

	em.SetParent(c, p1)
	em.SetParent(c, p2)

	if len(em.Children(p1)) != 0 {
		t.Error("Child should be removed from previous parent")
	}
	if children := em.Children(p2); len(children) != 1 || children[0] != c {
		t.Errorf("Expected p2 children [%d], got %v", c, children)
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
	}

	ids := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("Query result not sorted: %v", ids)
		}
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testVelocityComponent{VX: 3})
	if !HasComponent[*testVelocityComponent](em, id) {
		t.Fatal("Generic HasComponent should find the component")
	}

	// 泛型版本与反射版本使用同一个类型键
	if !em.HasComponent(id, reflect.TypeOf(&testVelocityComponent{})) {
		t.Error("Generic AddComponent should be visible to reflection API")
	}

	if ids := GetEntitiesWith2[*testVelocityComponent, *testPositionComponent](em); len(ids) != 0 {
		t.Errorf("Expected no entity with both components, got %v", ids)
	}

	RemoveComponent[*testVelocityComponent](em, id)
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Component should be removed")
	}
}
