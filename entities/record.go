package entities

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/zooyer/dxfcodec/core"
)

// 作用于整个格式的常量
const (
	ByLayer      = "BYLAYER"
	ByBlock      = "BYBLOCK"
	DefaultLayer = "0"
	ColorByBlock = 0
	ColorByLayer = 256
	ModelSpace   = 0
	PaperSpace   = 1
)

// Record 是一个实体实例，值与 Type.Fields 一一对应
type Record struct {
	Type   *Type
	values []Value
}

// New 创建记录，所有字段取默认值
func New(t *Type) *Record {
	r := &Record{Type: t, values: make([]Value, len(t.Fields))}
	for i := range t.Fields {
		r.values[i] = t.Fields[i].zero()
	}
	return r
}

func (r *Record) lookup(name string, kinds ...Kind) (int, error) {
	i, ok := r.Type.names[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrNoField, r.Type.Name, name)
	}
	if len(kinds) == 0 {
		return i, nil
	}
	for _, k := range kinds {
		if r.Type.Fields[i].Kind == k {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s.%s is %v, not %v", ErrKind, r.Type.Name, name, r.Type.Fields[i].Kind, kinds)
}

// Get 返回字段值的副本
func (r *Record) Get(name string) (Value, error) {
	i, err := r.lookup(name)
	if err != nil {
		return Value{}, err
	}
	return r.values[i].Clone(), nil
}

func (r *Record) Int(name string) (int64, error) {
	i, err := r.lookup(name, Int32, Int16, Flag, Handle)
	if err != nil {
		return 0, err
	}
	return r.values[i].Int, nil
}

func (r *Record) Float(name string) (float64, error) {
	i, err := r.lookup(name, Double)
	if err != nil {
		return 0, err
	}
	return r.values[i].Float, nil
}

func (r *Record) Text(name string) (string, error) {
	i, err := r.lookup(name, String)
	if err != nil {
		return "", err
	}
	return r.values[i].Str, nil
}

func (r *Record) Point(name string) (core.Point, error) {
	i, err := r.lookup(name, Point3D)
	if err != nil {
		return core.Point{}, err
	}
	return r.values[i].Point, nil
}

func (r *Record) Handle(name string) (int64, error) {
	i, err := r.lookup(name, Handle)
	if err != nil {
		return 0, err
	}
	return r.values[i].Int, nil
}

// Chain 返回记录持有的链，可以直接追加
func (r *Record) Chain(name string) (*Chain[Item], error) {
	i, err := r.lookup(name, List)
	if err != nil {
		return nil, err
	}
	return r.values[i].Items, nil
}

// ID 返回组码 5 的句柄，没有句柄字段时为 0
func (r *Record) ID() int64 {
	id, _ := r.Handle("handle")
	return id
}

// Set 设置字段值，值会被复制
func (r *Record) Set(name string, v Value) error {
	i, err := r.lookup(name)
	if err != nil {
		return err
	}
	f := &r.Type.Fields[i]
	if f.Kind == Marker {
		return fmt.Errorf("%w: %s.%s is a subclass marker", ErrKind, r.Type.Name, name)
	}
	if v.Kind != f.Kind {
		return fmt.Errorf("%w: %s.%s is %v, not %v", ErrKind, r.Type.Name, name, f.Kind, v.Kind)
	}
	if err := checkKind(f.Kind, v); err != nil {
		return err
	}
	if f.Valid != nil && f.Kind != List {
		if err := f.Valid(v); err != nil {
			return fmt.Errorf("%s.%s: %w", r.Type.Name, name, err)
		}
	}
	if v.Kind == List && v.Items == nil {
		v.Items = &Chain[Item]{}
	}
	r.values[i] = v.Clone()
	return nil
}

func (r *Record) SetInt(name string, v int64) error {
	i, err := r.lookup(name, Int32, Int16, Flag)
	if err != nil {
		return err
	}
	return r.Set(name, Value{Kind: r.Type.Fields[i].Kind, Int: v})
}

func (r *Record) SetHandle(name string, v int64) error {
	return r.Set(name, HandleValue(v))
}

func (r *Record) SetFloat(name string, v float64) error {
	return r.Set(name, FloatValue(v))
}

func (r *Record) SetText(name string, v string) error {
	return r.Set(name, StringValue(v))
}

func (r *Record) SetPoint(name string, p core.Point) error {
	return r.Set(name, PointValue(p))
}

// Append 向链字段追加一个元素，组码取字段的主组码
func (r *Record) Append(name string, v Value) error {
	i, err := r.lookup(name, List)
	if err != nil {
		return err
	}
	return r.AppendItem(name, Item{Code: r.Type.Fields[i].Code, Value: v})
}

// AppendItem 向链字段追加一个带组码的元素
func (r *Record) AppendItem(name string, it Item) error {
	i, err := r.lookup(name, List)
	if err != nil {
		return err
	}
	f := &r.Type.Fields[i]
	elem := f.Elem
	if elem == Point3D && it.Code != f.Code {
		elem = Double
	}
	if it.Value.Kind != elem {
		return fmt.Errorf("%w: %s.%s code %d holds %v, not %v", ErrKind, r.Type.Name, name, it.Code, elem, it.Value.Kind)
	}
	r.values[i].Items.Append(Item{Code: it.Code, Value: it.Value.Clone()})
	return nil
}

// Clone 深拷贝，链也会被复制
func (r *Record) Clone() *Record {
	out := &Record{Type: r.Type, values: make([]Value, len(r.values))}
	for i, v := range r.values {
		out.values[i] = v.Clone()
	}
	return out
}

// Map 返回字段名到普通 Go 值的映射，不包含子类标记
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i := range r.Type.Fields {
		if r.Type.Fields[i].Kind == Marker {
			continue
		}
		m[r.Type.Fields[i].Name] = r.values[i].Plain()
	}
	return m
}

// Equal 比较类型与全部字段
func (r *Record) Equal(o *Record) bool {
	if r.Type != o.Type {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Free 释放记录持有的所有链，返回释放的节点数
func (r *Record) Free(logger *log.Logger) int {
	n := 0
	for i := range r.values {
		if r.values[i].Items.Len() > 0 {
			n += r.values[i].Items.FreeAll(logger)
		}
	}
	return n
}

func (r *Record) String() string {
	return fmt.Sprintf("%s(%x)", r.Type.Name, r.ID())
}
