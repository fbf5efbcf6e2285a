package core

import (
	"bufio"
	"io"
	"strconv"

	"golang.org/x/text/encoding"
)

// DefaultPrecision 浮点数默认输出 6 位小数 (C 语言 %f)
const DefaultPrecision = 6

// Writer 按 "组码行 + 值行" 写出 DXF 标签流
type Writer struct {
	w         *bufio.Writer
	encoder   *encoding.Encoder
	precision int
	lines     int
	err       error
}

// WriterOption 配置 Writer
type WriterOption func(*Writer)

// WithPrecision 设置浮点数小数位数
func WithPrecision(n int) WriterOption {
	return func(w *Writer) {
		if n >= 0 {
			w.precision = n
		}
	}
}

// WithEncoding 使用指定代码页编码字符串值
func WithEncoding(enc encoding.Encoding) WriterOption {
	return func(w *Writer) {
		if enc != nil {
			w.encoder = enc.NewEncoder()
		}
	}
}

func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{
		w:         bufio.NewWriter(w),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// Precision 返回浮点数小数位数
func (w *Writer) Precision() int {
	return w.precision
}

// FormatCode 组码右对齐到 3 位: "  0", " 10", "100"
func FormatCode(code int) string {
	s := strconv.Itoa(code)
	for len(s) < 3 {
		s = " " + s
	}
	return s
}

// FormatFloat 定点格式，不使用科学计数法
func FormatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func (w *Writer) writeLine(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
		return
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.err = err
		return
	}
	w.lines++
}

// WriteTag 写出组码和原始值
func (w *Writer) WriteTag(code int, value string) {
	w.writeLine(FormatCode(code))
	w.writeLine(value)
}

func (w *Writer) WriteString(code int, value string) {
	if w.encoder != nil {
		if encoded, err := w.encoder.String(value); err == nil {
			value = encoded
		}
	}
	w.WriteTag(code, value)
}

func (w *Writer) WriteInt(code int, value int64) {
	w.WriteTag(code, strconv.FormatInt(value, 10))
}

func (w *Writer) WriteFloat(code int, value float64) {
	w.WriteTag(code, FormatFloat(value, w.precision))
}

func (w *Writer) WriteHex(code int, value int64) {
	w.WriteTag(code, strconv.FormatInt(value, 16))
}

// WritePoint 写出 code, code+10, code+20 三个坐标，flat 时省略 Z
func (w *Writer) WritePoint(code int, p Point, flat bool) {
	w.WriteFloat(code, p.X)
	w.WriteFloat(code+10, p.Y)
	if !flat {
		w.WriteFloat(code+20, p.Z)
	}
}

// Flush 将缓冲区写入底层 io.Writer
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) Err() error {
	return w.err
}

// Lines 返回已写出的行数
func (w *Writer) Lines() int {
	return w.lines
}
