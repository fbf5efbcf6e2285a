package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// Scanner 按 "组码行 + 值行" 读取 DXF 标签流
type Scanner struct {
	reader  *bufio.Reader
	LastTag Tag
	source  string
	line    int
	decoder *encoding.Decoder
	err     error
}

// ScannerOption 配置 Scanner
type ScannerOption func(*Scanner)

// WithSource 设置诊断信息中使用的来源名称（通常是文件名）
func WithSource(name string) ScannerOption {
	return func(s *Scanner) { s.source = name }
}

// WithDecoding 使用指定代码页解码字符串值
func WithDecoding(enc encoding.Encoding) ScannerOption {
	return func(s *Scanner) {
		if enc != nil {
			s.decoder = enc.NewDecoder()
		}
	}
}

func NewScanner(r io.Reader, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		reader: bufio.NewReader(r),
		source: "<stream>",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCodePage 切换代码页，读取 HEADER 中的 $DWGCODEPAGE 之后调用
func (s *Scanner) SetCodePage(name string) error {
	enc, err := LookupCodePage(name)
	if err != nil {
		return err
	}
	s.decoder = nil
	if enc != nil {
		s.decoder = enc.NewDecoder()
	}
	return nil
}

func (s *Scanner) readLine() (string, bool, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false, err
	}
	s.line++
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for {
		line, ok, err := s.readLine()
		if !ok {
			if err != io.EOF {
				s.err = &StreamError{Source: s.source, Line: s.line, Err: err}
			}
			return false
		}
		if codeStr = strings.TrimSpace(line); codeStr != "" {
			break
		}
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = &StreamError{Source: s.source, Line: s.line, Err: fmt.Errorf("invalid group code %q", codeStr)}
		return false
	}

	// 2. 读取 Value 行
	valueLine, ok, err := s.readLine()
	if !ok {
		// Value 行如果 EOF 也是不完整的
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = &StreamError{Source: s.source, Line: s.line, Err: err}
		return false
	}

	// 保留 Value 开头的空格（DXF 规范要求）
	if s.decoder != nil {
		if decoded, err := s.decoder.String(valueLine); err == nil {
			valueLine = decoded
		}
	}

	s.LastTag = Tag{Code: code, Value: valueLine}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}

// Line 返回最近读取的行号（从 1 开始）
func (s *Scanner) Line() int {
	return s.line
}

// Source 返回来源名称
func (s *Scanner) Source() string {
	return s.source
}

// StreamError 表示标签流本身损坏（截断、读错误、非法组码）
type StreamError struct {
	Source string
	Line   int
	Err    error
}

func (err *StreamError) Error() string {
	return fmt.Sprintf("%s:%d: %v", err.Source, err.Line, err.Err)
}

func (err *StreamError) Unwrap() error {
	return err.Err
}
