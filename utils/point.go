package utils

import (
	"math"

	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

// TransformPoint 将局部坐标点经过 INSERT 变换转换到父级/世界坐标
func TransformPoint(p core.Point, ins *entities.Record) core.Point {
	var (
		scale     = entities.InsertScale(ins)
		origin, _ = ins.Point("location")
		angle, _  = ins.Float("rotation")
	)
	rad := angle * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	// 1. 缩放
	tx := p.X * scale.X
	ty := p.Y * scale.Y
	tz := p.Z * scale.Z

	// 2. 旋转
	rx := tx*cos - ty*sin
	ry := tx*sin + ty*cos

	// 3. 平移
	return core.Point{
		X: rx + origin.X,
		Y: ry + origin.Y,
		Z: tz + origin.Z,
	}
}
