package entities

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zooyer/dxfcodec/core"
)

var (
	errNilScanner = errors.New("nil scanner")
	errNilType    = errors.New("nil type")
)

// decodeState 记录一次读取过程中各字段的填充情况
type decodeState struct {
	seen   []bool
	marker int    // 下一个期望的子类标记位置
	point  int    // 最近一次收到 X 坐标的点字段，-1 表示没有
	group  string // 当前所在的 102 应用组
}

// Decode 读取一个实体的全部组码，直到下一个 0 组码。
// 调用前 s.LastTag 为类型名称所在的 0 组码；返回时 s.LastTag 为下一个 0 组码。
// 致命错误时仍然返回已读取的部分记录。
func (c *Codec) Decode(s *core.Scanner, t *Type) (*Record, error) {
	if t == nil {
		return nil, &DecodeError{Source: "<nil>", Type: "<nil>", Err: errNilType}
	}
	if s == nil {
		return nil, &DecodeError{Source: "<nil>", Type: t.Name, Err: errNilScanner}
	}

	r := New(t)
	st := &decodeState{seen: make([]bool, len(t.Fields)), point: -1}
	for {
		if !s.Next() {
			err := s.Err()
			if err == nil {
				// 实体中途遇到文件结尾
				err = io.ErrUnexpectedEOF
			}
			return r, &DecodeError{Source: s.Source(), Line: s.Line(), Type: t.Name, Err: err}
		}

		tag := s.LastTag
		if tag.Code == 0 {
			break
		}

		switch tag.Code {
		case 999:
			c.diagnose(s, t, tag.Code, Comment, "%s", tag.String())
		case 100:
			c.subclass(s, r, st, tag)
		case 102:
			// {ACAD_REACTORS 等应用组的边界，不作为字段保存
			if v := tag.String(); v == "}" {
				st.group = ""
			} else if strings.HasPrefix(v, "{") {
				st.group = v
			}
		default:
			c.field(s, r, st, tag)
		}
	}

	c.normalize(r)
	if t.Inspect != nil {
		for _, msg := range t.Inspect(r) {
			c.diagnose(s, t, 0, BadValue, "%s", msg)
		}
	}
	return r, nil
}

func (c *Codec) diagnose(s *core.Scanner, t *Type, code int, kind DiagnosticKind, format string, args ...any) {
	c.report(Diagnostic{
		Source:  s.Source(),
		Line:    s.Line(),
		Type:    t.Name,
		Code:    code,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Codec) subclass(s *core.Scanner, r *Record, st *decodeState, tag core.Tag) {
	t := r.Type
	name := tag.String()

	match := func(i int) bool {
		f := &t.Fields[i]
		if f.Kind != Marker || f.Default.Str != name {
			return false
		}
		st.seen[i] = true
		if !c.rev.Within(f.Min, f.Max) {
			c.diagnose(s, t, tag.Code, RevisionMismatch, "subclass %s is not used in %v", name, c.rev)
		}
		return true
	}

	for i := st.marker; i < len(t.Fields); i++ {
		if match(i) {
			st.marker = i + 1
			return
		}
	}
	// 顺序不对，但属于该类型
	for i := 0; i < st.marker; i++ {
		if match(i) {
			c.diagnose(s, t, tag.Code, BadSubclass, "subclass %s out of order", name)
			return
		}
	}

	expected := "none"
	for i := st.marker; i < len(t.Fields); i++ {
		if f := &t.Fields[i]; f.Kind == Marker && c.rev.Within(f.Min, f.Max) {
			expected = f.Default.Str
			break
		}
	}
	c.diagnose(s, t, tag.Code, BadSubclass, "unexpected subclass %s, expected %s", name, expected)
}

// closed 判断候选字段是否已经不再接收该组码：
// 标量已填充、定长链已满，或两个候选之间声明的字段已经读到。
func (st *decodeState) closed(r *Record, i, next int) bool {
	f := &r.Type.Fields[i]
	if f.Kind == List {
		if f.Count > 0 && r.values[i].Items.Len() >= f.Count {
			return true
		}
	} else if st.seen[i] {
		return true
	}
	for j := i + 1; j < next; j++ {
		if st.seen[j] {
			return true
		}
	}
	return false
}

// inGroup 优先选择与当前 102 应用组一致的候选
func (st *decodeState) inGroup(t *Type, candidates []int) []int {
	if len(candidates) == 1 {
		return candidates
	}
	var matched []int
	for _, i := range candidates {
		if t.Fields[i].Group == st.group {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return candidates
	}
	return matched
}

// pick 按声明顺序选择第一个未关闭的候选，最后一个候选始终接收
func (st *decodeState) pick(r *Record, candidates []int) int {
	last := len(candidates) - 1
	for k := 0; k < last; k++ {
		if !st.closed(r, candidates[k], candidates[k+1]) {
			return candidates[k]
		}
	}
	return candidates[last]
}

func (c *Codec) field(s *core.Scanner, r *Record, st *decodeState, tag core.Tag) {
	t := r.Type

	if candidates, ok := t.index[tag.Code]; ok {
		i := st.pick(r, st.inGroup(t, candidates))
		c.apply(s, r, st, i, tag)
		return
	}

	if candidates, ok := t.coords[tag.Code]; ok {
		i := -1
		for _, k := range candidates {
			if k == st.point {
				i = k
				break
			}
		}
		if i < 0 {
			i = st.pick(r, candidates)
		}
		c.coord(s, r, st, i, tag)
		return
	}

	c.diagnose(s, t, tag.Code, UnknownCode, "unknown group code, value %q discarded", tag.String())
}

// parse 按类型解析原始值
func parse(kind Kind, tag core.Tag) (Value, error) {
	switch kind {
	case Int32, Int16, Flag:
		n, err := tag.Int()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Int: n}, nil
	case Handle:
		n, err := tag.Hex()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Int: n}, nil
	case Double, Point3D:
		f, err := tag.Float()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Double, Float: f}, nil
	case String:
		return StringValue(tag.String()), nil
	}
	return Value{}, fmt.Errorf("%w: cannot parse %v", ErrKind, kind)
}

func (c *Codec) checkRevision(s *core.Scanner, r *Record, st *decodeState, i int, code int) {
	f := &r.Type.Fields[i]
	if !st.seen[i] && !c.rev.Within(f.Min, f.Max) {
		c.diagnose(s, r.Type, code, RevisionMismatch, "%s is not defined in %v", f.Name, c.rev)
	}
	st.seen[i] = true
}

func (c *Codec) apply(s *core.Scanner, r *Record, st *decodeState, i int, tag core.Tag) {
	f := &r.Type.Fields[i]

	kind := f.Kind
	if kind == List {
		kind = f.Elem
		// 点链上的其它组码（如 LWPOLYLINE 的宽度与凸度）按浮点数保存
		if kind == Point3D && tag.Code != f.Code {
			kind = Double
		}
	}
	v, err := parse(kind, tag)
	if err != nil {
		c.diagnose(s, r.Type, tag.Code, BadValue, "%s: %v", f.Name, err)
		return
	}
	if err := checkKind(kind, v); err != nil {
		dk := BadValue
		if kind == Int16 || kind == Int32 {
			dk = Overflow
		}
		c.diagnose(s, r.Type, tag.Code, dk, "%s: %v", f.Name, err)
		return
	}

	switch {
	case f.Kind == Point3D:
		c.checkRevision(s, r, st, i, tag.Code)
		r.values[i].Point.X = v.Float
		st.point = i
	case f.Kind == List && kind == Point3D:
		c.checkRevision(s, r, st, i, tag.Code)
		r.values[i].Items.Append(Item{Code: tag.Code, Value: PointValue(core.Point{X: v.Float})})
		st.point = i
	case f.Kind == List:
		c.checkRevision(s, r, st, i, tag.Code)
		r.values[i].Items.Append(Item{Code: tag.Code, Value: v})
	default:
		if f.Valid != nil {
			if err := f.Valid(v); err != nil {
				c.diagnose(s, r.Type, tag.Code, BadValue, "%s: %v", f.Name, err)
				return
			}
		}
		if st.seen[i] && !r.values[i].Equal(v) {
			c.diagnose(s, r.Type, tag.Code, Overwritten, "%s: %s replaced by %s", f.Name, r.values[i], v)
		}
		c.checkRevision(s, r, st, i, tag.Code)
		r.values[i] = v
	}
}

// coord 处理点的 Y (code+10) 与 Z (code+20) 坐标
func (c *Codec) coord(s *core.Scanner, r *Record, st *decodeState, i int, tag core.Tag) {
	f := &r.Type.Fields[i]
	v, err := parse(Double, tag)
	if err != nil {
		c.diagnose(s, r.Type, tag.Code, BadValue, "%s: %v", f.Name, err)
		return
	}
	c.checkRevision(s, r, st, i, tag.Code)

	set := func(p *core.Point) {
		if tag.Code == f.Code+10 {
			p.Y = v.Float
		} else {
			p.Z = v.Float
		}
	}

	if f.Kind == Point3D {
		set(&r.values[i].Point)
		return
	}
	items := r.values[i].Items
	if last := items.Last(); last == nil || last.Value.Value.Kind != Point3D {
		// 缺少 X 坐标
		items.Append(Item{Code: f.Code, Value: PointValue(core.Point{})})
	}
	set(&items.Last().Value.Value.Point)
}

// normalize 空的图层、线型等字段回退到约定值
func (c *Codec) normalize(r *Record) {
	for i := range r.Type.Fields {
		f := &r.Type.Fields[i]
		if f.Kind == String && f.Fallback != "" && r.values[i].Str == "" {
			r.values[i].Str = f.Fallback
		}
	}
}
