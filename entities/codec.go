package entities

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/zooyer/dxfcodec/core"
	"golang.org/x/text/encoding"
)

// DiagnosticKind 非致命问题的分类
type DiagnosticKind int

const (
	UnknownCode DiagnosticKind = iota + 1
	BadValue
	BadSubclass
	RevisionMismatch
	Comment
	Overflow
	Repaired
	Overwritten // 标量字段重复出现，保留最后一个值
)

var diagnosticNames = map[DiagnosticKind]string{
	UnknownCode:      "unknown code",
	BadValue:         "bad value",
	BadSubclass:      "bad subclass",
	RevisionMismatch: "revision",
	Comment:          "comment",
	Overflow:         "overflow",
	Repaired:         "repaired",
	Overwritten:      "overwritten",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticNames[k]; ok {
		return name
	}
	return fmt.Sprintf("entities.DiagnosticKind(%d)", int(k))
}

// Diagnostic 记录一个非致命问题，读取或写出继续进行
type Diagnostic struct {
	Source  string
	Line    int
	Type    string
	Code    int
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: code %d: %v: %s", d.Source, d.Line, d.Type, d.Code, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: code %d: %v: %s", d.Type, d.Code, d.Kind, d.Message)
}

// Codec 按目标版本读写实体记录，同一个 Codec 不能并发使用
type Codec struct {
	rev         core.Revision
	precision   int
	strict      bool
	encoding    encoding.Encoding
	logger      *log.Logger
	diagnostics []Diagnostic
}

type Option func(*Codec)

// WithLogger 诊断信息同时写入该日志
func WithLogger(logger *log.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrecision 浮点数输出的小数位数
func WithPrecision(n int) Option {
	return func(c *Codec) {
		if n >= 0 {
			c.precision = n
		}
	}
}

// WithStrict 严格模式下拒绝写出目标版本中不存在的类型
func WithStrict(strict bool) Option {
	return func(c *Codec) { c.strict = strict }
}

// DefaultLogger 输出到 stderr，只显示警告以上级别
func DefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "dxf",
		Level:  log.WarnLevel,
	})
}

// DiscardLogger 丢弃所有日志
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}

func NewCodec(rev core.Revision, opts ...Option) *Codec {
	c := &Codec{
		rev:       rev,
		precision: core.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = DefaultLogger()
	}
	return c
}

func (c *Codec) Revision() core.Revision {
	return c.rev
}

// SetRevision 切换目标版本，读取 HEADER 中的 $ACADVER 之后调用
func (c *Codec) SetRevision(rev core.Revision) {
	c.rev = rev
}

func (c *Codec) Precision() int {
	return c.precision
}

func (c *Codec) Logger() *log.Logger {
	return c.logger
}

// Diagnostics 返回累计的诊断信息
func (c *Codec) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Reset 清空诊断信息
func (c *Codec) Reset() {
	c.diagnostics = nil
}

func (c *Codec) report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)

	kv := []any{"type", d.Type, "code", d.Code, "kind", d.Kind.String()}
	if d.Line > 0 {
		kv = append(kv, "source", d.Source, "line", d.Line)
	}
	switch d.Kind {
	case Comment:
		c.logger.Info(d.Message, kv...)
	case Repaired:
		c.logger.Debug(d.Message, kv...)
	default:
		c.logger.Warn(d.Message, kv...)
	}
}
