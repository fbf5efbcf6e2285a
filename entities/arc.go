package entities

import (
	"github.com/zooyer/dxfcodec/core"
)

// ArcType 圆弧，角度单位为度
var ArcType = NewType("ARC", entityCommon(), []Field{
	Subclass("AcDbCircle", core.R13, 0),
	thickness(),
	{Name: "center", Code: 10, Kind: Point3D},
	{Name: "radius", Code: 40, Kind: Double},
	Subclass("AcDbArc", core.R13, 0),
	{Name: "start_angle", Code: 50, Kind: Double},
	{Name: "end_angle", Code: 51, Kind: Double},
	extrusion(),
})

// CircleType 圆
var CircleType = NewType("CIRCLE", entityCommon(), []Field{
	Subclass("AcDbCircle", core.R13, 0),
	thickness(),
	{Name: "center", Code: 10, Kind: Point3D},
	{Name: "radius", Code: 40, Kind: Double},
	extrusion(),
})

func init() {
	// 顺序与报错优先级一致
	ArcType.Checks = []Check{
		{Name: "distinct angles", Fn: checkArcAngles},
		{Name: "angle range", Fn: checkAngleRange},
		{Name: "radius", Fn: checkRadius},
	}
	CircleType.Checks = []Check{
		{Name: "radius", Fn: checkRadius},
	}
	Register(ArcType)
	Register(CircleType)
}

func checkArcAngles(r *Record) error {
	start, err := r.Float("start_angle")
	if err != nil {
		return err
	}
	end, err := r.Float("end_angle")
	if err != nil {
		return err
	}
	if start == end {
		return ErrIdenticalAngles
	}
	return nil
}

func checkAngleRange(r *Record) error {
	for _, name := range []string{"start_angle", "end_angle"} {
		angle, err := r.Float(name)
		if err != nil {
			return err
		}
		if angle < 0 || angle > 360 {
			return ErrAngleRange
		}
	}
	return nil
}

func checkRadius(r *Record) error {
	radius, err := r.Float("radius")
	if err != nil {
		return err
	}
	if radius <= 0 {
		return ErrZeroRadius
	}
	return nil
}
