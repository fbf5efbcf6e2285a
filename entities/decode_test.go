package entities

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zooyer/dxfcodec/core"
)

// scan 返回已读到第一个 0 组码的 Scanner
func scan(t *testing.T, text string) *core.Scanner {
	t.Helper()
	s := core.NewScanner(strings.NewReader(text), core.WithSource("test.dxf"))
	if !s.Next() {
		t.Fatalf("读取类型名称失败: %v", s.Err())
	}
	return s
}

func testCodec(rev core.Revision, opts ...Option) *Codec {
	return NewCodec(rev, append([]Option{WithLogger(DiscardLogger())}, opts...)...)
}

func decode(t *testing.T, c *Codec, typ *Type, text string) *Record {
	t.Helper()
	s := scan(t, text)
	r, err := c.Decode(s, typ)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	return r
}

func TestDecode_DefaultFill(t *testing.T) {
	c := testCodec(core.R2000)
	s := scan(t, "  0\nLINE\n  0\nEOF\n")
	r, err := c.Decode(s, LineType)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(New(LineType).Map(), r.Map()); diff != "" {
		t.Errorf("默认值不符 (-want +got):\n%s", diff)
	}
	if s.LastTag != (core.Tag{Code: 0, Value: "EOF"}) {
		t.Errorf("下一个实体的 0 组码应保留在 LastTag, 得到 %+v", s.LastTag)
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}

	layer, _ := r.Text("layer")
	linetype, _ := r.Text("linetype")
	extrusion, _ := r.Point("extrusion")
	if layer != DefaultLayer || linetype != ByLayer || extrusion != (core.Point{Z: 1}) {
		t.Errorf("默认值不符: %q %q %v", layer, linetype, extrusion)
	}
}

func TestDecode_Line(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LineType, "  0\nLINE\n  5\n2A\n102\n{ACAD_REACTORS\n330\n1F\n102\n}\n"+
		"100\nAcDbEntity\n  8\nWALLS\n  6\nDASHED\n 62\n1\n"+
		"100\nAcDbLine\n 39\n0.5\n 10\n1.0\n 20\n2.0\n 30\n3.0\n 11\n4.0\n 21\n5.0\n 31\n6.0\n  0\nEOF\n")

	want := New(LineType).Map()
	want["handle"] = int64(0x2a)
	want["owner_soft"] = "1F"
	want["layer"] = "WALLS"
	want["linetype"] = "DASHED"
	want["color"] = int64(1)
	want["thickness"] = 0.5
	want["start"] = core.Point{X: 1, Y: 2, Z: 3}
	want["end"] = core.Point{X: 4, Y: 5, Z: 6}
	if diff := cmp.Diff(want, r.Map()); diff != "" {
		t.Errorf("记录不符 (-want +got):\n%s", diff)
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}
}

func TestDecode_UnknownCode(t *testing.T) {
	const body = "  8\nWALLS\n 10\n1.0\n 20\n2.0\n 11\n3.0\n 21\n4.0\n"
	const tail = "  0\nEOF\n"

	clean := decode(t, testCodec(core.R12), LineType, "  0\nLINE\n"+body+tail)

	c := testCodec(core.R12)
	noisy := decode(t, c, LineType, "  0\nLINE\n"+body+"  1\nhello\n"+tail)

	if diff := cmp.Diff(clean.Map(), noisy.Map()); diff != "" {
		t.Errorf("未知组码影响了记录 (-want +got):\n%s", diff)
	}
	diags := c.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("期望 1 条诊断, 得到 %v", diags)
	}
	if d := diags[0]; d.Kind != UnknownCode || d.Code != 1 || d.Line != 14 || d.Source != "test.dxf" || d.Type != "LINE" {
		t.Errorf("诊断信息不符: %+v", d)
	}
}

func TestDecode_OutOfRange(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LineType, "  0\nLINE\n 60\n5\n 62\n70000\n284\n9\n 48\n-2\n  0\nEOF\n")

	visibility, _ := r.Int("visibility")
	color, _ := r.Int("color")
	scale, _ := r.Float("linetype_scale")
	if visibility != 0 || color != ColorByLayer || scale != 1 {
		t.Errorf("越界值不应写入字段: visibility=%d color=%d scale=%v", visibility, color, scale)
	}

	var kinds []DiagnosticKind
	for _, d := range c.Diagnostics() {
		kinds = append(kinds, d.Kind)
	}
	// 284 在 R2000 中不存在，但越界检查先于版本检查
	want := []DiagnosticKind{BadValue, Overflow, BadValue, BadValue}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("诊断信息不符 (-want +got):\n%s", diff)
	}
}

func TestDecode_VisibilityOnly(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, CircleType, "  0\nCIRCLE\n 60\n5\n 40\n2.5\n  0\nEOF\n")
	if v, _ := r.Int("visibility"); v != 0 {
		t.Errorf("visibility 应保持默认值, 得到 %d", v)
	}
	if radius, _ := r.Float("radius"); radius != 2.5 {
		t.Errorf("后续字段应继续读取, 得到 %v", radius)
	}
	if len(c.Diagnostics()) != 1 {
		t.Errorf("期望 1 条诊断, 得到 %v", c.Diagnostics())
	}
}

func TestDecode_Comment(t *testing.T) {
	c := testCodec(core.R12)
	r := decode(t, c, PointType, "  0\nPOINT\n999\nmade by hand\n 10\n1.0\n999\n100%d done %s\n  0\nEOF\n")
	if diff := cmp.Diff(New(PointType).Map()["layer"], r.Map()["layer"]); diff != "" {
		t.Error(diff)
	}
	var messages []string
	for _, d := range c.Diagnostics() {
		if d.Kind != Comment {
			t.Errorf("注释应记录为 Comment: %+v", d)
		}
		messages = append(messages, d.Message)
	}
	// 注释原样保存，不作为格式串
	if diff := cmp.Diff([]string{"made by hand", "100%d done %s"}, messages); diff != "" {
		t.Errorf("注释不符 (-want +got):\n%s", diff)
	}
}

func TestDecode_Overwritten(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LineType, "  0\nLINE\n  5\n2A\n102\n{ACAD_REACTORS\n330\n1F\n330\n20\n102\n}\n"+
		"  8\nWALLS\n  8\nWALLS\n330\n21\n  0\nEOF\n")

	if owner, _ := r.Text("owner_soft"); owner != "21" {
		t.Errorf("应保留最后一个值, 得到 %q", owner)
	}
	var messages []string
	for _, d := range c.Diagnostics() {
		if d.Kind != Overwritten || d.Code != 330 {
			t.Errorf("诊断信息不符: %+v", d)
		}
		messages = append(messages, d.Message)
	}
	// 相同的值重复出现不记录
	want := []string{"owner_soft: 1F replaced by 20", "owner_soft: 20 replaced by 21"}
	if diff := cmp.Diff(want, messages); diff != "" {
		t.Errorf("诊断信息不符 (-want +got):\n%s", diff)
	}
}

func TestDecode_AttDef(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, AttDefType, "  0\nATTDEF\n  5\n3C\n100\nAcDbEntity\n  8\n0\n"+
		"100\nAcDbText\n 10\n0.0\n 20\n0.0\n 30\n0.0\n 40\n3.5\n  1\n1\n"+
		"100\nAcDbAttributeDefinition\n  3\nNUMBER\n  2\nNO\n 70\n6\n  0\nEOF\n")

	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}
	prompt, _ := r.Text("prompt")
	tag, _ := r.Text("tag")
	value, _ := r.Text("value")
	if prompt != "NUMBER" || tag != "NO" || value != "1" {
		t.Errorf("字段不符: %q %q %q", prompt, tag, value)
	}
	if IsInvisible(r) || !IsConstant(r) || !IsVerify(r) || IsPreset(r) {
		t.Errorf("属性标志不符: %v", r.Map()["flags"])
	}

	// ATTRIB 没有提示
	if _, err := New(AttribType).Text("prompt"); !errors.Is(err, ErrNoField) {
		t.Errorf("期望 ErrNoField, 得到 %v", err)
	}
	if IsInvisible(New(LineType)) {
		t.Error("没有 flags 字段时应返回 false")
	}
}

func TestDecode_Subclass(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LineType, "  0\nLINE\n100\nAcDbEntity\n100\nAcDbCircle\n 10\n1.0\n  0\nEOF\n")
	if p, _ := r.Point("start"); p.X != 1 {
		t.Errorf("子类不符时应继续读取, 得到 %v", p)
	}
	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != BadSubclass || !strings.Contains(diags[0].Message, "expected AcDbLine") {
		t.Errorf("诊断信息不符: %v", diags)
	}
}

func TestDecode_Revision(t *testing.T) {
	c := testCodec(core.R12)
	r := decode(t, c, LineType, "  0\nLINE\n420\n255\n  0\nEOF\n")
	if v, _ := r.Int("color_value"); v != 255 {
		t.Errorf("版本不符的字段仍应读取, 得到 %d", v)
	}
	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != RevisionMismatch {
		t.Errorf("诊断信息不符: %v", diags)
	}
}

func TestDecode_Fallback(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LineType, "  0\nLINE\n  8\n\n  6\n   \n  0\nEOF\n")
	layer, _ := r.Text("layer")
	linetype, _ := r.Text("linetype")
	if layer != DefaultLayer || linetype != ByLayer {
		t.Errorf("空值应回退: layer=%q linetype=%q", layer, linetype)
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("回退不产生诊断: %v", c.Diagnostics())
	}
}

func TestDecode_Truncated(t *testing.T) {
	c := testCodec(core.R12)

	// 值行缺失
	s := scan(t, "  0\nLINE\n  8\nWALLS\n 10\n")
	r, err := c.Decode(s, LineType)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("期望 DecodeError, 得到 %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) || de.Line != 5 || de.Type != "LINE" || de.Source != "test.dxf" {
		t.Errorf("错误信息不符: %+v", de)
	}
	if layer, _ := r.Text("layer"); layer != "WALLS" {
		t.Errorf("已读取的字段应保留, 得到 %q", layer)
	}

	// 实体中途结束
	s = scan(t, "  0\nLINE\n  8\nWALLS\n")
	if _, err := c.Decode(s, LineType); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("期望 io.ErrUnexpectedEOF, 得到 %v", err)
	}

	if _, err := c.Decode(nil, LineType); err == nil {
		t.Error("nil Scanner 应返回错误")
	}
	if _, err := c.Decode(scan(t, "  0\nLINE\n  0\nEOF\n"), nil); !errors.Is(err, errNilType) {
		t.Errorf("nil 类型应返回错误, 得到 %v", err)
	}
}

func TestDecode_ProxyRepeatedCodes(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, ProxyEntityType, "  0\nACAD_PROXY_ENTITY\n  5\n3C\n100\nAcDbEntity\n  8\n0\n"+
		" 92\n16\n310\nAAAA\n310\nBBBB\n"+
		"100\nAcDbProxyEntity\n 90\n498\n 91\n501\n 93\n64\n310\nCCCC\n"+
		"330\n1A\n340\n1B\n360\n1C\n 94\n0\n 95\n12\n 70\n1\n  0\nEOF\n")

	m := r.Map()
	want := map[string]any{
		"graphics":     []any{[2]any{310, "AAAA"}, [2]any{310, "BBBB"}},
		"data":         []any{[2]any{310, "CCCC"}},
		"object_ids":   []any{[2]any{330, "1A"}, [2]any{340, "1B"}, [2]any{360, "1C"}},
		"app_class_id": int64(501),
		"owner_soft":   "",
		"owner_hard":   "",
	}
	for name, v := range want {
		if diff := cmp.Diff(v, m[name]); diff != "" {
			t.Errorf("%s 不符 (-want +got):\n%s", name, diff)
		}
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}
}

func TestDecode_ProxyFormat(t *testing.T) {
	c := testCodec(core.R2000)
	decode(t, c, ProxyEntityType, "  0\nACAD_PROXY_ENTITY\n 70\n0\n  0\nEOF\n")
	diags := c.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "not DXF") {
		t.Errorf("诊断信息不符: %v", diags)
	}
}

func TestDecode_ProprietaryOrder(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, Solid3DType, "  0\n3DSOLID\n100\nAcDbModelerGeometry\n 70\n1\n"+
		"  1\nline one\n  3\nmore\n  1\nline two\n  0\nEOF\n")
	want := []any{[2]any{1, "line one"}, [2]any{3, "more"}, [2]any{1, "line two"}}
	if diff := cmp.Diff(want, r.Map()["proprietary_data"]); diff != "" {
		t.Errorf("专有数据顺序不符 (-want +got):\n%s", diff)
	}
}

func TestDecode_SpatialFilter(t *testing.T) {
	var b strings.Builder
	b.WriteString("  0\nSPATIAL_FILTER\n  5\n80\n330\n7F\n100\nAcDbFilter\n100\nAcDbSpatialFilter\n")
	b.WriteString(" 70\n2\n 10\n0.0\n 20\n0.0\n 10\n5.0\n 20\n5.0\n")
	b.WriteString(" 11\n0.0\n 21\n0.0\n 31\n0.0\n 71\n1\n 72\n0\n 73\n0\n")
	for i := 0; i < 24; i++ {
		b.WriteString(" 40\n" + []string{"1.0", "0.0", "0.0", "0.0"}[i%4] + "\n")
	}
	b.WriteString("  0\nEOF\n")

	c := testCodec(core.R2000)
	r := decode(t, c, SpatialFilterType, b.String())

	inverse, err := Matrix(r, "inverse_block_transform")
	if err != nil {
		t.Fatal(err)
	}
	clip, err := Matrix(r, "clip_transform")
	if err != nil {
		t.Fatal(err)
	}
	if inverse != clip || inverse[0] != 1 || inverse[4] != 1 || inverse[1] != 0 {
		t.Errorf("矩阵不符: %v %v", inverse, clip)
	}
	if front, _ := r.Float("front_distance"); front != 0 {
		t.Errorf("front_distance 不应被矩阵占用, 得到 %v", front)
	}
	if owner, _ := r.Text("owner"); owner != "7F" {
		t.Errorf("组外的 330 应为所有者, 得到 %q", owner)
	}
	if boundary, _ := r.Chain("boundary"); boundary.Len() != 2 {
		t.Errorf("边界点数量不符: %d", boundary.Len())
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}
}

func TestDecode_SpatialFilterFrontClip(t *testing.T) {
	var b strings.Builder
	b.WriteString("  0\nSPATIAL_FILTER\n 70\n2\n 10\n0.0\n 20\n0.0\n 10\n5.0\n 20\n5.0\n")
	b.WriteString(" 72\n1\n 40\n2.5\n 73\n0\n")
	for i := 0; i < 24; i++ {
		b.WriteString(" 40\n1.0\n")
	}
	b.WriteString("  0\nEOF\n")

	r := decode(t, testCodec(core.R2000), SpatialFilterType, b.String())
	if front, _ := r.Float("front_distance"); front != 2.5 {
		t.Errorf("front_distance 不符: %v", front)
	}
	for _, name := range []string{"inverse_block_transform", "clip_transform"} {
		if items, _ := r.Chain(name); items.Len() != 12 {
			t.Errorf("%s 数量不符: %d", name, items.Len())
		}
	}
}

func TestDecode_ObjectOwners(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, ImageDefType, "  0\nIMAGEDEF\n  5\n90\n102\n{ACAD_REACTORS\n330\n91\n102\n}\n330\n92\n"+
		"100\nAcDbRasterImageDef\n 90\n0\n  1\nlogo.png\n 10\n640.0\n 20\n480.0\n 11\n0.5\n 12\n0.5\n280\n1\n281\n2\n  0\nEOF\n")

	soft, _ := r.Text("owner_soft")
	owner, _ := r.Text("owner")
	size, _ := r.Point("image_size")
	if soft != "91" || owner != "92" || size != (core.Point{X: 640, Y: 480}) {
		t.Errorf("字段不符: soft=%q owner=%q size=%v", soft, owner, size)
	}
}

func TestDecode_LWPolyline(t *testing.T) {
	c := testCodec(core.R2000)
	r := decode(t, c, LWPolylineType, "  0\nLWPOLYLINE\n100\nAcDbEntity\n  8\n0\n100\nAcDbPolyline\n 90\n3\n 70\n1\n"+
		" 10\n0.0\n 20\n0.0\n 10\n10.0\n 20\n0.0\n 42\n1.0\n 10\n10.0\n 20\n10.0\n  0\nEOF\n")

	want := []core.Point{{}, {X: 10}, {X: 10, Y: 10}}
	if diff := cmp.Diff(want, Vertices(r)); diff != "" {
		t.Errorf("顶点不符 (-want +got):\n%s", diff)
	}
	items, _ := r.Chain("vertices")
	if items.Len() != 4 {
		t.Errorf("链中应包含凸度, 得到 %d 项", items.Len())
	}
	if len(c.Diagnostics()) != 0 {
		t.Errorf("不应有诊断信息: %v", c.Diagnostics())
	}
}
