package utils

import (
	"errors"
	"fmt"

	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

var errDonut = errors.New("outside diameter is smaller than the inside diameter")

// Donut 用两个凸度为 1 的顶点画圆环，返回 POLYLINE 以及跟随的 VERTEX、SEQEND。
// 句柄从 handle 开始依次递增。
func Donut(handle int64, center core.Point, outside, inside float64) (*entities.Record, []*entities.Record, error) {
	if outside < inside {
		return nil, nil, fmt.Errorf("%w: %g < %g", errDonut, outside, inside)
	}
	var (
		width  = 0.5 * (outside - inside)
		offset = 0.25 * (outside + inside)
	)

	polyline := entities.New(entities.PolylineType)
	err := errors.Join(
		polyline.SetHandle("handle", handle),
		polyline.SetPoint("origin", core.Point{Z: center.Z}),
		polyline.SetInt("flags", entities.PolylineClosed),
		polyline.SetFloat("start_width", width),
		polyline.SetFloat("end_width", width),
	)
	if err != nil {
		return nil, nil, err
	}

	var children []*entities.Record
	for i, dx := range []float64{-offset, offset} {
		v := entities.New(entities.VertexType)
		err := errors.Join(
			v.SetHandle("handle", handle+int64(i)+1),
			v.SetPoint("location", core.Point{X: center.X + dx, Y: center.Y, Z: center.Z}),
			v.SetFloat("start_width", width),
			v.SetFloat("end_width", width),
			v.SetFloat("bulge", 1),
		)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, v)
	}

	end := entities.New(entities.SeqEndType)
	if err := end.SetHandle("handle", handle+3); err != nil {
		return nil, nil, err
	}
	return polyline, append(children, end), nil
}
