package entities

import (
	"errors"
	"fmt"

	"github.com/zooyer/dxfcodec/core"
)

var (
	ErrRange           = errors.New("value out of range")
	ErrDegenerate      = errors.New("degenerate geometry: start and end points coincide")
	ErrIdenticalAngles = errors.New("start angle and end angle are identical")
	ErrAngleRange      = errors.New("angle outside [0, 360]")
	ErrZeroRadius      = errors.New("radius is zero")
	ErrRevision        = errors.New("type not available in target revision")
	ErrNoField         = errors.New("no such field")
	ErrKind            = errors.New("field kind mismatch")
	ErrUnknownType     = errors.New("unknown entity type")
)

// DecodeError 读取过程中的致命错误（标签流损坏或截断）
type DecodeError struct {
	Source string
	Line   int
	Type   string
	Err    error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d: decoding %s: %v", err.Source, err.Line, err.Type, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// EncodeError 写出前的校验失败，此时不会写出任何内容
type EncodeError struct {
	Type     string
	Handle   int64
	Revision core.Revision
	Check    string
	Err      error
}

func (err *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s (handle %x) for %v: %s: %v", err.Type, err.Handle, err.Revision, err.Check, err.Err)
}

func (err *EncodeError) Unwrap() error {
	return err.Err
}
