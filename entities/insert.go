package entities

import "github.com/zooyer/dxfcodec/core"

// InsertType 块参照。attribs_follow 为 1 时后面跟随 ATTRIB，直到 SEQEND。
var InsertType = NewType("INSERT", entityCommon(), []Field{
	Subclass("AcDbBlockReference", core.R13, 0),
	{Name: "attribs_follow", Code: 66, Kind: Flag, Omit: OmitDefault},
	{Name: "block", Code: 2, Kind: String},
	{Name: "location", Code: 10, Kind: Point3D},
	// 默认缩放为 1
	{Name: "scale_x", Code: 41, Kind: Double, Default: FloatValue(1), Omit: OmitDefault},
	{Name: "scale_y", Code: 42, Kind: Double, Default: FloatValue(1), Omit: OmitDefault},
	{Name: "scale_z", Code: 43, Kind: Double, Default: FloatValue(1), Omit: OmitDefault},
	{Name: "rotation", Code: 50, Kind: Double, Omit: OmitZero},
	{Name: "columns", Code: 70, Kind: Int16, Default: Int16Value(1), Omit: OmitDefault},
	{Name: "rows", Code: 71, Kind: Int16, Default: Int16Value(1), Omit: OmitDefault},
	{Name: "column_spacing", Code: 44, Kind: Double, Omit: OmitZero},
	{Name: "row_spacing", Code: 45, Kind: Double, Omit: OmitZero},
	extrusion(),
})

func init() {
	Register(InsertType)
}

// InsertScale 返回 INSERT 的三个缩放系数
func InsertScale(r *Record) core.Point {
	x, _ := r.Float("scale_x")
	y, _ := r.Float("scale_y")
	z, _ := r.Float("scale_z")
	return core.Point{X: x, Y: y, Z: z}
}
