package entities

import (
	"bytes"
	"fmt"
	"io"

	"github.com/zooyer/dxfcodec/core"
	"golang.org/x/text/encoding"
)

// WithEncoding 字符串按该代码页写出（R2007 之前的版本）
func WithEncoding(enc encoding.Encoding) Option {
	return func(c *Codec) { c.encoding = enc }
}

// Validate 执行写出前的检查，不写出任何内容
func (c *Codec) Validate(r *Record) error {
	t := r.Type
	if t.Min != 0 && c.rev < t.Min {
		if c.strict {
			return &EncodeError{Type: t.Name, Handle: r.ID(), Revision: c.rev, Check: "revision", Err: ErrRevision}
		}
		c.report(Diagnostic{
			Type:    t.Name,
			Kind:    RevisionMismatch,
			Message: fmt.Sprintf("%s (handle %x) requires %v, written anyway", t.Name, r.ID(), t.Min),
		})
	}
	for _, check := range t.Checks {
		if err := check.Fn(r); err != nil {
			return &EncodeError{Type: t.Name, Handle: r.ID(), Revision: c.rev, Check: check.Name, Err: err}
		}
	}
	return nil
}

// Encode 写出一个实体。校验失败时返回 *EncodeError，w 不会收到任何字节。
func (c *Codec) Encode(w io.Writer, r *Record) (int, error) {
	if err := c.Validate(r); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	opts := []core.WriterOption{core.WithPrecision(c.precision)}
	if !c.rev.Unicode() {
		opts = append(opts, core.WithEncoding(c.encoding))
	}
	cw := core.NewWriter(&buf, opts...)

	t := r.Type
	cw.WriteString(0, t.NameFor(c.rev))

	group := ""
	for i := range t.Fields {
		f := &t.Fields[i]
		if !c.rev.Within(f.Min, f.Max) {
			continue
		}
		if f.Kind == Marker {
			c.openGroup(cw, &group, "")
			cw.WriteString(100, f.Default.Str)
			continue
		}

		v := r.values[i]
		if f.Kind == String && f.Fallback != "" && v.Str == "" {
			v.Str = f.Fallback
			c.report(Diagnostic{
				Type:    t.Name,
				Code:    f.Code,
				Kind:    Repaired,
				Message: fmt.Sprintf("empty %s (handle %x) written as %q", f.Name, r.ID(), f.Fallback),
			})
		}
		if f.Omit != nil && f.Omit(f, v) {
			continue
		}

		c.openGroup(cw, &group, f.Group)
		if f.Kind == List {
			for it := range v.Items.All() {
				writeValue(cw, it.Code, it.Value, f.Flat)
			}
			continue
		}
		writeValue(cw, f.Code, v, f.Flat)
	}
	c.openGroup(cw, &group, "")

	if err := cw.Flush(); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return n, err
}

// openGroup 切换 102 应用组，相邻的同组字段共用一对括号
func (c *Codec) openGroup(cw *core.Writer, current *string, group string) {
	if *current == group {
		return
	}
	if *current != "" {
		cw.WriteString(102, "}")
	}
	if group != "" {
		cw.WriteString(102, group)
	}
	*current = group
}

func writeValue(cw *core.Writer, code int, v Value, flat bool) {
	switch v.Kind {
	case Int32, Int16, Flag:
		cw.WriteInt(code, v.Int)
	case Double:
		cw.WriteFloat(code, v.Float)
	case Handle:
		cw.WriteHex(code, v.Int)
	case String:
		cw.WriteString(code, v.Str)
	case Point3D:
		cw.WritePoint(code, v.Point, flat)
	}
}
