package entities

import "github.com/zooyer/dxfcodec/core"

// 多段线标志 (组码 70)
const (
	PolylineClosed = 1
	Polyline3D     = 8
)

// PolylineType 旧式多段线，后面跟随 VERTEX，以 SEQEND 结束
var PolylineType = NewType("POLYLINE", entityCommon(), []Field{
	Subclass("AcDb2dPolyline", core.R13, 0),
	{Name: "vertices_follow", Code: 66, Kind: Flag, Default: FlagValue(true)},
	// 10/20 恒为 0，30 为标高
	{Name: "origin", Code: 10, Kind: Point3D},
	thickness(),
	{Name: "flags", Code: 70, Kind: Int16, Omit: OmitZero},
	{Name: "start_width", Code: 40, Kind: Double, Omit: OmitZero},
	{Name: "end_width", Code: 41, Kind: Double, Omit: OmitZero},
	{Name: "mesh_m", Code: 71, Kind: Int16, Omit: OmitZero},
	{Name: "mesh_n", Code: 72, Kind: Int16, Omit: OmitZero},
	{Name: "smooth_m", Code: 73, Kind: Int16, Omit: OmitZero},
	{Name: "smooth_n", Code: 74, Kind: Int16, Omit: OmitZero},
	{Name: "curve_type", Code: 75, Kind: Int16, Omit: OmitZero, Valid: OneOf(0, 5, 6, 8)},
	extrusion(),
})

// VertexType 多段线顶点
var VertexType = NewType("VERTEX", entityCommon(), []Field{
	Subclass("AcDbVertex", core.R13, 0),
	Subclass("AcDb2dVertex", core.R13, 0),
	{Name: "location", Code: 10, Kind: Point3D},
	{Name: "start_width", Code: 40, Kind: Double, Omit: OmitZero},
	{Name: "end_width", Code: 41, Kind: Double, Omit: OmitZero},
	{Name: "bulge", Code: 42, Kind: Double, Omit: OmitZero},
	{Name: "flags", Code: 70, Kind: Int16, Omit: OmitZero},
	{Name: "tangent", Code: 50, Kind: Double, Omit: OmitZero},
})

// SeqEndType 结束 POLYLINE 的顶点序列或 INSERT 的属性序列
var SeqEndType = NewType("SEQEND", entityCommon())

func init() {
	Register(PolylineType)
	Register(VertexType)
	Register(SeqEndType)
}
