package entities

import (
	"math"
	"regexp"
	"strconv"

	"github.com/zooyer/dxfcodec/core"
)

// DimensionType 标注。只描述线性标注（对齐 / 旋转）需要的点。
var DimensionType = NewType("DIMENSION", entityCommon(), []Field{
	Subclass("AcDbDimension", core.R13, 0),
	{Name: "block", Code: 2, Kind: String, Omit: OmitEmpty},
	// 10 标注线起点，11 文字中点
	{Name: "def_point", Code: 10, Kind: Point3D},
	{Name: "text_mid", Code: 11, Kind: Point3D},
	// 低 3 位为标注类型
	{Name: "kind", Code: 70, Kind: Int16},
	{Name: "attachment", Code: 71, Kind: Int16, Min: core.R2000, Omit: OmitZero},
	// 文字覆盖，"<>" 表示测量值
	{Name: "text", Code: 1, Kind: String, Omit: OmitEmpty},
	{Name: "style", Code: 3, Kind: String, Default: StringValue("STANDARD")},
	{Name: "measurement", Code: 42, Kind: Double, Min: core.R2000, Omit: OmitZero},
	{Name: "text_rotation", Code: 53, Kind: Double, Omit: OmitZero},
	extrusion(),
	Subclass("AcDbAlignedDimension", core.R13, 0),
	// 被测量的起点与终点
	{Name: "measure_start", Code: 13, Kind: Point3D},
	{Name: "measure_end", Code: 14, Kind: Point3D},
	Subclass("AcDbRotatedDimension", core.R13, 0),
	{Name: "angle", Code: 50, Kind: Double, Omit: OmitZero},
})

func init() {
	Register(DimensionType)
}

// DimensionKind 标注类型，组码 70 的低 3 位
func DimensionKind(r *Record) int {
	kind, _ := r.Int("kind")
	return int(kind & 0x07)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ExtensionPoints 计算标注线上的两个转角点，分别对应 13 与 14 点的投影
func ExtensionPoints(r *Record) (start, end core.Point) {
	def, _ := r.Point("def_point")
	p13, _ := r.Point("measure_start")
	p14, _ := r.Point("measure_end")
	angle, _ := r.Float("angle")

	// 标注线的单位方向向量
	rad := degToRad(angle)
	dir := core.Point{X: math.Cos(rad), Y: math.Sin(rad)}

	project := func(p core.Point) core.Point {
		d := p.Sub(def)
		dot := d.X*dir.X + d.Y*dir.Y
		return core.Point{X: def.X + dir.X*dot, Y: def.Y + dir.Y*dot}
	}
	return project(p13), project(p14)
}

// DimensionBBox 标注的包围盒，exe 为标注线超出延伸线的长度 (DIMEXE)
func DimensionBBox(r *Record, exe float64) core.BBox {
	c13, c14 := ExtensionPoints(r)
	p13, _ := r.Point("measure_start")
	p14, _ := r.Point("measure_end")
	mid, _ := r.Point("text_mid")
	angle, _ := r.Float("angle")

	// 延伸线方向垂直于标注线，朝远离测量点的一侧
	up := degToRad(angle + 90.0)
	u := core.Point{X: math.Cos(up), Y: math.Sin(up)}
	toLine := c13.Sub(p13)
	if toLine.X*u.X+toLine.Y*u.Y < 0 {
		u = u.Scale(-1)
	}

	box := core.PointBox(core.Point{X: p13.X, Y: p13.Y})
	for _, p := range []core.Point{p14, c13.Add(u.Scale(exe)), c14.Add(u.Scale(exe)), mid} {
		box = box.Extend(core.Point{X: p.X, Y: p.Y})
	}
	return box
}

var (
	mtextFormat = regexp.MustCompile(`\\[A-Z].*?;`)
	number      = regexp.MustCompile(`[0-9.]+`)
)

// Measurement 测量值。没有 42 组码时从文字覆盖中提取数字。
func Measurement(r *Record) float64 {
	val, _ := r.Float("measurement")
	text, _ := r.Text("text")
	if val <= 0 && text != "" {
		clean := mtextFormat.ReplaceAllString(text, "")
		if match := number.FindString(clean); match != "" {
			if parsed, err := strconv.ParseFloat(match, 64); err == nil {
				val = parsed
			}
		}
	}
	return val
}
