package entities

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zooyer/dxfcodec/core"
)

func TestRecord_Accessors(t *testing.T) {
	r := New(CircleType)

	if _, err := r.Float("missing"); !errors.Is(err, ErrNoField) {
		t.Errorf("期望 ErrNoField, 得到 %v", err)
	}
	if _, err := r.Float("layer"); !errors.Is(err, ErrKind) {
		t.Errorf("期望 ErrKind, 得到 %v", err)
	}
	if err := r.SetText("radius", "1"); !errors.Is(err, ErrKind) {
		t.Errorf("期望 ErrKind, 得到 %v", err)
	}
	if err := r.SetInt("color", 70000); !errors.Is(err, ErrRange) {
		t.Errorf("期望 ErrRange, 得到 %v", err)
	}
	if err := r.SetInt("visibility", 2); !errors.Is(err, ErrRange) {
		t.Errorf("期望 ErrRange, 得到 %v", err)
	}
	if err := r.Set("subclass:AcDbCircle", StringValue("x")); !errors.Is(err, ErrKind) {
		t.Errorf("子类标记不能设置, 得到 %v", err)
	}

	if err := r.SetInt("color", 1); err != nil {
		t.Fatal(err)
	}
	v, err := r.Get("color")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != Int16 || v.Int != 1 {
		t.Errorf("SetInt 应使用字段自身的类型: %+v", v)
	}
}

func TestRecord_SetValidates(t *testing.T) {
	r := New(LineType)

	tests := []struct {
		name string
		set  func() error
	}{
		{"shadow_mode", func() error { return r.SetInt("shadow_mode", 9) }},
		{"linetype_scale", func() error { return r.SetFloat("linetype_scale", -4) }},
		{"thickness", func() error { return r.Set("thickness", FloatValue(-0.5)) }},
	}
	for _, tt := range tests {
		before, _ := r.Get(tt.name)
		if err := tt.set(); !errors.Is(err, ErrRange) {
			t.Errorf("%s: 期望 ErrRange, 得到 %v", tt.name, err)
		}
		if after, _ := r.Get(tt.name); !after.Equal(before) {
			t.Errorf("%s: 越界值不应写入, 得到 %v", tt.name, after)
		}
	}

	if err := r.SetInt("shadow_mode", 3); err != nil {
		t.Errorf("合法值应写入: %v", err)
	}
	if err := r.SetFloat("linetype_scale", 0); err != nil {
		t.Errorf("合法值应写入: %v", err)
	}
}

func TestRecord_Clone(t *testing.T) {
	r := New(LWPolylineType)
	_ = AddVertex(r, core.Point{X: 1})

	clone := r.Clone()
	_ = AddVertex(clone, core.Point{X: 2})
	_ = clone.SetText("layer", "COPY")

	if n := len(Vertices(r)); n != 1 {
		t.Errorf("原记录被修改: %d 个顶点", n)
	}
	if layer, _ := r.Text("layer"); layer != DefaultLayer {
		t.Errorf("原记录被修改: %q", layer)
	}
	if r.Equal(clone) {
		t.Error("修改后的副本不应相等")
	}
	if !r.Equal(r.Clone()) {
		t.Error("副本应与原记录相等")
	}

	// Get 返回的链也是副本
	v, _ := r.Get("vertices")
	v.Items.Append(Item{Code: 10, Value: PointValue(core.Point{})})
	if n := len(Vertices(r)); n != 1 {
		t.Errorf("Get 返回的值不应影响记录: %d 个顶点", n)
	}
}

func TestRecord_Free(t *testing.T) {
	r := New(ProxyEntityType)
	_ = r.Append("data", StringValue("AAAA"))
	_ = r.Append("data", StringValue("BBBB"))
	_ = r.AppendItem("object_ids", Item{Code: 340, Value: StringValue("1F")})

	if n := r.Free(DiscardLogger()); n != 3 {
		t.Errorf("释放数量不符: %d", n)
	}
	if items, _ := r.Chain("data"); items.Len() != 0 {
		t.Errorf("链应为空: %d", items.Len())
	}
}

func TestRegistry(t *testing.T) {
	for name, want := range map[string]*Type{
		"LINE":              LineType,
		"3dline":            LineType,
		" circle ":          CircleType,
		"SPATIAL_FILTER":    SpatialFilterType,
		"Acad_Proxy_Entity": ProxyEntityType,
		"ATTDEF":            AttDefType,
	} {
		got, ok := Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %v, %v", name, got, ok)
		}
	}

	if _, err := Create("FOO"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("期望 ErrUnknownType, 得到 %v", err)
	}
	r, err := Create("arc")
	if err != nil || r.Type != ArcType {
		t.Fatalf("Create 失败: %v", err)
	}

	names := Types()
	if !slices.IsSorted(names) {
		t.Error("Types 应按字母排序")
	}
	for _, name := range []string{"3DLINE", "3DSOLID", "INSERT", "LAYER", "LWPOLYLINE", "OLE2FRAME"} {
		if !slices.Contains(names, name) {
			t.Errorf("缺少 %s", name)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("重复注册应 panic")
		}
	}()
	Register(&Type{Name: "line"})
}

func TestNewType_Duplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("重复字段应 panic")
		}
	}()
	NewType("BROKEN", []Field{
		{Name: "a", Code: 1, Kind: String},
		{Name: "a", Code: 2, Kind: String},
	})
}

func TestValue_Plain(t *testing.T) {
	v := ChainValue(310, StringValue("AA"), StringValue("BB"))
	want := []any{[2]any{310, "AA"}, [2]any{310, "BB"}}
	if diff := cmp.Diff(want, v.Plain()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := HandleValue(0x2a).String(); got != "2a" {
		t.Errorf("句柄应为十六进制: %q", got)
	}
	if !FlagValue(true).Equal(Value{Kind: Flag, Int: 1}) {
		t.Error("FlagValue(true) 应为 1")
	}
}
