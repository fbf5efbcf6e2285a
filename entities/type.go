package entities

import (
	"fmt"

	"github.com/zooyer/dxfcodec/core"
)

// Check 是写出前的记录级校验
type Check struct {
	Name string
	Fn   func(r *Record) error
}

// Type 是一种实体（或表项、对象）的字段描述表
type Type struct {
	Name      string
	Legacy    string        // 旧版本中使用的名称，例如 3DLINE
	LegacyMax core.Revision // Legacy 名称使用到的最高版本
	Min       core.Revision // 该类型最早出现的版本，0 表示不限
	Fields    []Field
	Checks    []Check
	// Inspect 读取完成后调用，返回的消息作为诊断信息记录
	Inspect func(r *Record) []string

	index  map[int][]int // 组码 -> 候选字段（按声明顺序）
	coords map[int][]int // 点的 Y/Z 组码 -> 候选字段
	names  map[string]int
}

// NewType 构造描述表并建立索引，多个字段块按顺序拼接。
// 字段名重复属于编程错误，直接 panic。
func NewType(name string, blocks ...[]Field) *Type {
	t := &Type{Name: name}
	for _, block := range blocks {
		t.Fields = append(t.Fields, block...)
	}
	t.index = make(map[int][]int)
	t.coords = make(map[int][]int)
	t.names = make(map[string]int, len(t.Fields))
	for i := range t.Fields {
		f := &t.Fields[i]
		if _, ok := t.names[f.Name]; ok {
			panic(fmt.Sprintf("entities: duplicate field %q in %s", f.Name, name))
		}
		t.names[f.Name] = i
		if f.Kind == List && f.Elem == 0 {
			panic(fmt.Sprintf("entities: chain field %q in %s has no element kind", f.Name, name))
		}
		if f.Kind == Marker {
			continue
		}
		t.index[f.Code] = append(t.index[f.Code], i)
		for _, alt := range f.Alt {
			t.index[alt] = append(t.index[alt], i)
		}
		if f.isPoint() {
			t.coords[f.Code+10] = append(t.coords[f.Code+10], i)
			if !f.Flat {
				t.coords[f.Code+20] = append(t.coords[f.Code+20], i)
			}
		}
	}
	return t
}

func (f *Field) isPoint() bool {
	return f.Kind == Point3D || (f.Kind == List && f.Elem == Point3D)
}

// Field 按名称查找字段描述
func (t *Type) Field(name string) (*Field, bool) {
	i, ok := t.names[name]
	if !ok {
		return nil, false
	}
	return &t.Fields[i], true
}

// NameFor 返回在目标版本中写出的类型名称
func (t *Type) NameFor(rev core.Revision) string {
	if t.Legacy != "" && rev <= t.LegacyMax {
		return t.Legacy
	}
	return t.Name
}

// Subclasses 返回目标版本中需要写出的子类标记
func (t *Type) Subclasses(rev core.Revision) []string {
	var markers []string
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Kind == Marker && rev.Within(f.Min, f.Max) {
			markers = append(markers, f.Default.Str)
		}
	}
	return markers
}

func (t *Type) String() string {
	return t.Name
}

// Subclass 构造一个子类标记字段
func Subclass(name string, since, until core.Revision) Field {
	return Field{
		Name:    "subclass:" + name,
		Code:    100,
		Kind:    Marker,
		Default: Value{Kind: Marker, Str: name},
		Min:     since,
		Max:     until,
	}
}
