package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

func newDocument() *dxf.Document {
	return dxf.New(core.R2000, dxf.WithCodecOptions(entities.WithLogger(entities.DiscardLogger())))
}

func TestGetDimValue(t *testing.T) {
	doc := newDocument()
	doc.DimStyles["STANDARD"] = &dxf.DimStyle{Name: "STANDARD", Precision: 2, Scale: 1}

	tests := []struct {
		style       string
		text        string
		measurement float64
		want        float64
	}{
		{"Standard", "", 1234.5678, 1234.57},
		{"Standard", "<> mm", 10.004, 10},
		{"UNKNOWN", "", 2.6, 3},
		// 文字覆盖，去掉 MTEXT 格式后取数字
		{"Standard", `\A1;1200`, 0, 1200},
	}
	for _, tt := range tests {
		dim := entities.New(entities.DimensionType)
		_ = dim.SetText("style", tt.style)
		_ = dim.SetText("text", tt.text)
		_ = dim.SetFloat("measurement", tt.measurement)

		if diff := cmp.Diff(tt.want, GetDimValue(doc, dim), approx); diff != "" {
			t.Errorf("%q %q: 测量值不符 (-want +got):\n%s", tt.style, tt.text, diff)
		}
	}
}

func TestGetAttrs(t *testing.T) {
	doc := newDocument()
	ins := newInsert(t, "SC", core.Point{}, 0, 1)

	var children []*entities.Record
	for _, kv := range [][2]string{{"SERIAL", "A-01"}, {"WIDTH", "900"}} {
		a := entities.New(entities.AttribType)
		_ = a.SetText("tag", kv[0])
		_ = a.SetText("value", kv[1])
		children = append(children, a)
	}
	doc.Add(ins, append(children, entities.New(entities.SeqEndType))...)

	want := map[string]string{"SERIAL": "A-01", "WIDTH": "900"}
	if diff := cmp.Diff(want, GetAttrs(doc, ins)); diff != "" {
		t.Errorf("属性不符 (-want +got):\n%s", diff)
	}
	if v := GetAttr(doc, ins, "WIDTH"); v != "900" {
		t.Errorf("属性值不符: %q", v)
	}
	if v := GetAttr(doc, newInsert(t, "SC", core.Point{}, 0, 1), "WIDTH"); v != "" {
		t.Errorf("没有属性时应为空: %q", v)
	}
}
