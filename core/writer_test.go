package core

import (
	"bytes"
	"testing"
)

func TestWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString(0, "LINE")
	w.WriteHex(5, 0x2a)
	w.WriteInt(62, 7)
	w.WritePoint(10, Point{X: 1, Y: 2.5, Z: -3}, false)
	w.WriteFloat(40, 1e20)
	w.WriteString(100, "AcDbEntity")
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	expected := "  0\nLINE\n  5\n2a\n 62\n7\n" +
		" 10\n1.000000\n 20\n2.500000\n 30\n-3.000000\n" +
		" 40\n100000000000000000000.000000\n100\nAcDbEntity\n"
	if buf.String() != expected {
		t.Errorf("输出不符:\n%q\n期望:\n%q", buf.String(), expected)
	}
	if w.Lines() != 16 {
		t.Errorf("行数不符: %d", w.Lines())
	}
}

func TestWriter_Precision(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithPrecision(3))
	w.WritePoint(10, Point{X: 1.23456, Y: 2}, true)
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != " 10\n1.235\n 20\n2.000\n" {
		t.Errorf("输出不符: %q", buf.String())
	}
}

func TestRevision(t *testing.T) {
	cases := []struct {
		in  string
		out Revision
		ok  bool
	}{
		{"R12", R12, true},
		{"r2000", R2000, true},
		{"2004", R2004, true},
		{"AC1009", R11, true},
		{"AC1015", R2000, true},
		{"AC1032", R2018, true},
		{"AC9999", 0, false},
		{"R9", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		rev, err := ParseRevision(c.in)
		if (err == nil) != c.ok {
			t.Errorf("%q: unexpected err = %v", c.in, err)
			continue
		}
		if rev != c.out {
			t.Errorf("%q: 期望 %v, 得到 %v", c.in, c.out, rev)
		}
	}

	if R2004.ACADVER() != "AC1018" || R2002.ACADVER() != "AC1015" || R12.ACADVER() != "AC1009" {
		t.Error("ACADVER 不符")
	}
	// R2008 与 R2009 共用 R2007 的代码
	for _, rev := range []Revision{R2007, R2008, R2009} {
		if code := rev.ACADVER(); code != "AC1021" {
			t.Errorf("%v: ACADVER 为 %q", rev, code)
		}
	}
	if rev, _ := ParseRevision(R2009.ACADVER()); rev != R2007 {
		t.Errorf("AC1021 应读作 R2007, 得到 %v", rev)
	}
	if R2010.ACADVER() != "AC1024" {
		t.Error("R2010 应有自己的代码")
	}
	if !R12.Within(0, R12) || R13.Within(0, R12) || R12.Within(R13, 0) || !R2009.Within(R2004, 0) {
		t.Error("Within 不符")
	}
	if Revision(99).String() != "core.Revision(99)" || R14.String() != "R14" {
		t.Error("String 不符")
	}
}
