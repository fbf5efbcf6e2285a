package entities

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]*Type{}
)

// Register 注册描述表，旧名称（例如 3DLINE）同时注册。
// 名称重复属于编程错误，直接 panic。
func Register(t *Type) {
	mu.Lock()
	defer mu.Unlock()

	for _, name := range []string{t.Name, t.Legacy} {
		if name == "" {
			continue
		}
		name = strings.ToUpper(name)
		if _, ok := registry[name]; ok {
			panic(fmt.Sprintf("entities: type %s registered twice", name))
		}
		registry[name] = t
	}
}

// Lookup 根据 0 组码中的名称查找描述表
func Lookup(name string) (*Type, bool) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := registry[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// MustLookup 查找内置类型，不存在时 panic
func MustLookup(name string) *Type {
	t, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("entities: %v: %s", ErrUnknownType, name))
	}
	return t
}

// Create 根据名称创建一条默认记录
func Create(name string) (*Record, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return New(t), nil
}

// Types 返回已注册的名称（包含旧名称），按字母排序
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
