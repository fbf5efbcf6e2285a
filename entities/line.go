package entities

import (
	"github.com/zooyer/dxfcodec/core"
)

// LineType 两点直线，R11 及以前写作 3DLINE
var LineType = NewType("LINE", entityCommon(), []Field{
	Subclass("AcDbLine", core.R13, 0),
	thickness(),
	{Name: "start", Code: 10, Kind: Point3D},
	{Name: "end", Code: 11, Kind: Point3D},
	extrusion(),
})

func init() {
	LineType.Legacy = "3DLINE"
	LineType.LegacyMax = core.R11
	LineType.Checks = []Check{
		{Name: "distinct end points", Fn: checkLine},
	}
	Register(LineType)
}

func checkLine(r *Record) error {
	p0, err := r.Point("start")
	if err != nil {
		return err
	}
	p1, err := r.Point("end")
	if err != nil {
		return err
	}
	if p0 == p1 {
		return ErrDegenerate
	}
	return nil
}

// NewLine 构造一条直线，起点与终点重合时返回 ErrDegenerate
func NewLine(handle int64, start, end core.Point) (*Record, error) {
	if start == end {
		return nil, ErrDegenerate
	}
	r := New(LineType)
	r.values[LineType.names["handle"]] = HandleValue(handle)
	r.values[LineType.names["start"]] = PointValue(start)
	r.values[LineType.names["end"]] = PointValue(end)
	return r, nil
}
