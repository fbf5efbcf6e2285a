package entities

import (
	"fmt"

	"github.com/zooyer/dxfcodec/core"
)

// LWPolylineType 轻量多段线。每个顶点的 40/41/42（起止宽度、凸度）紧跟在其 10/20 之后。
var LWPolylineType = NewType("LWPOLYLINE", entityCommon(), []Field{
	Subclass("AcDbPolyline", core.R13, 0),
	{Name: "count", Code: 90, Kind: Int32},
	{Name: "flags", Code: 70, Kind: Int16},
	{Name: "constant_width", Code: 43, Kind: Double, Omit: OmitZero},
	{Name: "polyline_elevation", Code: 38, Kind: Double, Omit: OmitZero},
	thickness(),
	{Name: "vertices", Code: 10, Alt: []int{40, 41, 42}, Kind: List, Elem: Point3D, Flat: true},
	extrusion(),
})

func init() {
	LWPolylineType.Min = core.R14
	LWPolylineType.Inspect = func(r *Record) []string {
		n, _ := r.Int("count")
		if got := len(Vertices(r)); int64(got) != n {
			return []string{fmt.Sprintf("vertex count %d does not match %d vertices", n, got)}
		}
		return nil
	}
	Register(LWPolylineType)
}

// Vertices 返回多段线链中的所有顶点，忽略宽度与凸度
func Vertices(r *Record) []core.Point {
	items, err := r.Chain("vertices")
	if err != nil {
		return nil
	}
	var points []core.Point
	for it := range items.All() {
		if it.Value.Kind == Point3D {
			points = append(points, it.Value.Point)
		}
	}
	return points
}

// AddVertex 追加一个顶点并更新顶点数
func AddVertex(r *Record, p core.Point) error {
	if err := r.Append("vertices", PointValue(p)); err != nil {
		return err
	}
	return r.SetInt("count", int64(len(Vertices(r))))
}
