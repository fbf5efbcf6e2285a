package entities

import (
	"fmt"
	"math"

	"github.com/zooyer/dxfcodec/core"
)

// Kind 是字段的语义类型，决定值的解析与输出格式
type Kind int

const (
	Int32  Kind = iota + 1 // 90-99
	Int16                  // 60-79, 170-179, 270-289
	Double                 // 10-59, 140-149, 210-239
	Handle                 // 十六进制句柄，组码 5 / 105
	Flag                   // 0 或 1
	String                 // 字符串
	Point3D                // code, code+10, code+20
	List                   // 重复出现的组码组成的链
	Marker                 // 子类标记 (100)
)

var kindNames = map[Kind]string{
	Int32:   "int32",
	Int16:   "int16",
	Double:  "double",
	Handle:  "handle",
	Flag:    "flag",
	String:  "string",
	Point3D: "point",
	List:    "chain",
	Marker:  "marker",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("entities.Kind(%d)", int(k))
}

// Value 是一个字段的值，只有与 Kind 对应的成员有意义
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Point core.Point
	Items *Chain[Item]
}

// Item 是链中的一个元素，保留原始组码以便按原顺序写回
type Item struct {
	Code  int
	Value Value
}

func IntValue(v int64) Value        { return Value{Kind: Int32, Int: v} }
func Int16Value(v int64) Value      { return Value{Kind: Int16, Int: v} }
func FloatValue(v float64) Value    { return Value{Kind: Double, Float: v} }
func HandleValue(v int64) Value     { return Value{Kind: Handle, Int: v} }
func StringValue(v string) Value    { return Value{Kind: String, Str: v} }
func PointValue(p core.Point) Value { return Value{Kind: Point3D, Point: p} }

func FlagValue(v bool) Value {
	if v {
		return Value{Kind: Flag, Int: 1}
	}
	return Value{Kind: Flag}
}

// ChainValue 构造链值，所有元素使用同一个组码
func ChainValue(code int, values ...Value) Value {
	items := &Chain[Item]{}
	for _, v := range values {
		items.Append(Item{Code: code, Value: v})
	}
	return Value{Kind: List, Items: items}
}

// Clone 深拷贝，链会被复制
func (v Value) Clone() Value {
	if v.Items != nil {
		v.Items = v.Items.Clone(func(it Item) Item {
			it.Value = it.Value.Clone()
			return it
		})
	}
	return v
}

// Equal 按 Kind 比较值
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Int32, Int16, Handle, Flag:
		return v.Int == o.Int
	case Double:
		return v.Float == o.Float
	case String, Marker:
		return v.Str == o.Str
	case Point3D:
		return v.Point == o.Point
	case List:
		if v.Items.Len() != o.Items.Len() {
			return false
		}
		b := o.Items.Head()
		for a := v.Items.Head(); a != nil; a = a.Next() {
			if a.Value.Code != b.Value.Code || !a.Value.Value.Equal(b.Value.Value) {
				return false
			}
			b = b.Next()
		}
		return true
	}
	return true
}

// Plain 返回普通 Go 值: int64, float64, string, core.Point 或 []any
func (v Value) Plain() any {
	switch v.Kind {
	case Int32, Int16, Handle, Flag:
		return v.Int
	case Double:
		return v.Float
	case String, Marker:
		return v.Str
	case Point3D:
		return v.Point
	case List:
		items := make([]any, 0, v.Items.Len())
		for it := range v.Items.All() {
			items = append(items, [2]any{it.Code, it.Value.Plain()})
		}
		return items
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case Handle:
		return fmt.Sprintf("%x", v.Int)
	case List:
		return fmt.Sprintf("chain(%d)", v.Items.Len())
	}
	return fmt.Sprint(v.Plain())
}

// OmitFunc 返回 true 时写出时省略该字段
type OmitFunc func(f *Field, v Value) bool

// ValidFunc 校验读入或设置的值，返回错误时保留原值
type ValidFunc func(v Value) error

// Field 描述一个字段的编解码规则
type Field struct {
	Name     string
	Code     int
	Alt      []int // 同义组码，例如 92 的 160
	Kind     Kind
	Elem     Kind // 链元素类型: String, Double, Point3D, Handle
	Default  Value
	Min, Max core.Revision
	Omit     OmitFunc
	Valid    ValidFunc
	Fallback string // 非空字符串字段，为空时回退到该值
	Group    string // 102 应用组，例如 "{ACAD_REACTORS"
	Flat     bool   // 二维点，只有 X/Y
	Count    int    // 定长链的元素个数，0 表示不限
}

// zero 返回字段类型的零值，链总是非 nil
func (f *Field) zero() Value {
	v := f.Default.Clone()
	v.Kind = f.Kind
	if f.Kind == List && v.Items == nil {
		v.Items = &Chain[Item]{}
	}
	return v
}

// OmitDefault 值等于默认值时省略
func OmitDefault(f *Field, v Value) bool {
	return v.Equal(f.zero())
}

// OmitEmpty 空字符串或空链时省略
func OmitEmpty(_ *Field, v Value) bool {
	switch v.Kind {
	case List:
		return v.Items.Len() == 0
	default:
		return v.Str == ""
	}
}

// OmitZero 数值为 0 时省略
func OmitZero(_ *Field, v Value) bool {
	switch v.Kind {
	case Double:
		return v.Float == 0
	case Point3D:
		return v.Point == core.Point{}
	default:
		return v.Int == 0
	}
}

// Between 整数值必须位于 [lo, hi]
func Between(lo, hi int64) ValidFunc {
	return func(v Value) error {
		if v.Int < lo || v.Int > hi {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrRange, v.Int, lo, hi)
		}
		return nil
	}
}

// OneOf 整数值必须为其中之一
func OneOf(values ...int64) ValidFunc {
	return func(v Value) error {
		for _, x := range values {
			if v.Int == x {
				return nil
			}
		}
		return fmt.Errorf("%w: %d not one of %v", ErrRange, v.Int, values)
	}
}

// NonNegative 浮点值不能为负
func NonNegative(v Value) error {
	if v.Float < 0 {
		return fmt.Errorf("%w: %g is negative", ErrRange, v.Float)
	}
	return nil
}

// checkKind 按类型做内置的范围检查
func checkKind(k Kind, v Value) error {
	switch k {
	case Int16:
		if v.Int < math.MinInt16 || v.Int > math.MaxInt16 {
			return fmt.Errorf("%w: %d overflows int16", ErrRange, v.Int)
		}
	case Int32:
		if v.Int < math.MinInt32 || v.Int > math.MaxInt32 {
			return fmt.Errorf("%w: %d overflows int32", ErrRange, v.Int)
		}
	case Flag:
		if v.Int != 0 && v.Int != 1 {
			return fmt.Errorf("%w: flag must be 0 or 1, got %d", ErrRange, v.Int)
		}
	case Handle:
		if v.Int < 0 {
			return fmt.Errorf("%w: negative handle %d", ErrRange, v.Int)
		}
	}
	return nil
}
