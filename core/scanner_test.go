package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestScanner_Basic(t *testing.T) {
	// 模拟一个简单的 DXF 片段
	dxfData := "  0\nSECTION\n  2\nHEADER\n\n  0\nENDSEC\n"
	r := strings.NewReader(dxfData)
	scanner := NewScanner(r)

	expected := []Tag{
		{0, "SECTION"},
		{2, "HEADER"},
		{0, "ENDSEC"},
	}
	lines := []int{2, 4, 7}

	for i, exp := range expected {
		if !scanner.Next() {
			t.Fatalf("第 %d 步读取失败: %v", i, scanner.Err())
		}
		if scanner.LastTag != exp {
			t.Errorf("第 %d 步数据不符: 期望 %+v, 得到 %+v", i, exp, scanner.LastTag)
		}
		if scanner.Line() != lines[i] {
			t.Errorf("第 %d 步行号不符: 期望 %d, 得到 %d", i, lines[i], scanner.Line())
		}
	}
	if scanner.Next() {
		t.Fatalf("期望结束, 得到 %+v", scanner.LastTag)
	}
	if scanner.Err() != nil {
		t.Fatalf("正常结束不应返回错误: %v", scanner.Err())
	}
}

func TestScanner_NoTrailingNewline(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\r\nEOF"))
	if !scanner.Next() {
		t.Fatalf("读取失败: %v", scanner.Err())
	}
	if scanner.LastTag != (Tag{0, "EOF"}) {
		t.Errorf("数据不符: %+v", scanner.LastTag)
	}
}

func TestScanner_Truncated(t *testing.T) {
	scanner := NewScanner(strings.NewReader("  0\nLINE\n 10\n"), WithSource("a.dxf"))
	if !scanner.Next() {
		t.Fatal(scanner.Err())
	}
	if scanner.Next() {
		t.Fatal("截断的值行不应读取成功")
	}
	var se *StreamError
	if !errors.As(scanner.Err(), &se) {
		t.Fatalf("期望 StreamError, 得到 %v", scanner.Err())
	}
	if !errors.Is(se, io.ErrUnexpectedEOF) || se.Line != 3 || se.Source != "a.dxf" {
		t.Errorf("错误信息不符: %+v", se)
	}
}

func TestScanner_BadCode(t *testing.T) {
	scanner := NewScanner(strings.NewReader("abc\nLINE\n"))
	if scanner.Next() {
		t.Fatal("非法组码不应读取成功")
	}
	if scanner.Err() == nil || !strings.Contains(scanner.Err().Error(), "invalid group code") {
		t.Errorf("错误信息不符: %v", scanner.Err())
	}
}

func TestScanner_CodePage(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("Maß")
	if err != nil {
		t.Fatal(err)
	}
	scanner := NewScanner(strings.NewReader("  8\n" + raw + "\n"))
	if err := scanner.SetCodePage("ANSI_1252"); err != nil {
		t.Fatal(err)
	}
	if !scanner.Next() {
		t.Fatal(scanner.Err())
	}
	if scanner.LastTag.Value != "Maß" {
		t.Errorf("解码失败: %q", scanner.LastTag.Value)
	}
	if err := scanner.SetCodePage("ANSI_932"); err == nil {
		t.Error("不支持的代码页应返回错误")
	}
}

func TestTag_Values(t *testing.T) {
	if v, err := (Tag{5, " 1F\n"}).Hex(); err != nil || v != 0x1f {
		t.Errorf("Hex: %v %v", v, err)
	}
	if v, err := (Tag{62, "  7"}).Int(); err != nil || v != 7 {
		t.Errorf("Int: %v %v", v, err)
	}
	if _, err := (Tag{40, "abc"}).Float(); err == nil {
		t.Error("Float 应该失败")
	}
	if _, err := (Tag{40, "NaN"}).Float(); err == nil {
		t.Error("NaN 应该失败")
	}
	if v := (Tag{40, "abc"}).AsFloat(); v != 0 {
		t.Errorf("AsFloat: %v", v)
	}
}
