package entities

import "github.com/zooyer/dxfcodec/core"

// PointType 点
var PointType = NewType("POINT", entityCommon(), []Field{
	Subclass("AcDbPoint", core.R13, 0),
	{Name: "location", Code: 10, Kind: Point3D},
	thickness(),
	extrusion(),
	{Name: "x_axis_angle", Code: 50, Kind: Double, Min: core.R13, Omit: OmitZero},
})

// SolidType 四边形填充实体，第四个点可与第三个点重合
var SolidType = NewType("SOLID", entityCommon(), []Field{
	Subclass("AcDbTrace", core.R13, 0),
	{Name: "corner1", Code: 10, Kind: Point3D},
	{Name: "corner2", Code: 11, Kind: Point3D},
	{Name: "corner3", Code: 12, Kind: Point3D},
	{Name: "corner4", Code: 13, Kind: Point3D},
	thickness(),
	extrusion(),
})

func init() {
	Register(PointType)
	Register(SolidType)
}
