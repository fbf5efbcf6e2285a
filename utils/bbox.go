package utils

import (
	"math"
	"strings"

	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

// TransformBBox 执行矩阵变换：将局部坐标变换到插入点所在的世界坐标
func TransformBBox(local core.BBox, ins *entities.Record) core.BBox {
	corners := []core.Point{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
	}

	box := core.PointBox(TransformPoint(corners[0], ins))
	for _, p := range corners[1:] {
		box = box.Extend(TransformPoint(p, ins))
	}
	return box
}

// MergeBoxes 合并重叠的矩形
func MergeBoxes(boxes []core.BBox, gap float64) []core.BBox {
	if len(boxes) < 2 {
		return boxes
	}

	for {
		changed := false
		var merged []core.BBox
		visited := make([]bool, len(boxes))
		for i := 0; i < len(boxes); i++ {
			if visited[i] {
				continue
			}
			curr := boxes[i]
			visited[i] = true
			for j := i + 1; j < len(boxes); j++ {
				if !visited[j] && !IsSeparate(curr, boxes[j], gap) {
					curr.Min.X = math.Min(curr.Min.X, boxes[j].Min.X)
					curr.Min.Y = math.Min(curr.Min.Y, boxes[j].Min.Y)
					curr.Max.X = math.Max(curr.Max.X, boxes[j].Max.X)
					curr.Max.Y = math.Max(curr.Max.Y, boxes[j].Max.Y)
					visited[j], changed = true, true
				}
			}
			merged = append(merged, curr)
		}
		boxes = merged
		if !changed {
			break
		}
	}

	return boxes
}

// IsSeparate 判断两个 BBox 是否完全分离
func IsSeparate(a, b core.BBox, gap float64) bool {
	return a.Max.X+gap < b.Min.X || a.Min.X-gap > b.Max.X ||
		a.Max.Y+gap < b.Min.Y || a.Min.Y-gap > b.Max.Y
}

func InBox(box core.BBox, point core.Point) bool {
	return point.X >= box.Min.X && point.X <= box.Max.X && point.Y >= box.Min.Y && point.Y <= box.Max.Y
}

func boxOf(points ...core.Point) (core.BBox, bool) {
	if len(points) == 0 {
		return core.BBox{}, false
	}
	box := core.PointBox(points[0])
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box, true
}

func pointsOf(r *entities.Record, names ...string) []core.Point {
	points := make([]core.Point, 0, len(names))
	for _, name := range names {
		if p, err := r.Point(name); err == nil {
			points = append(points, p)
		}
	}
	return points
}

// arcBox 圆弧的包围盒：两个端点加上扫过的象限点
func arcBox(r *entities.Record) core.BBox {
	center, _ := r.Point("center")
	radius, _ := r.Float("radius")
	start, _ := r.Float("start_angle")
	end, _ := r.Float("end_angle")

	at := func(deg float64) core.Point {
		rad := deg * math.Pi / 180.0
		return core.Point{X: center.X + radius*math.Cos(rad), Y: center.Y + radius*math.Sin(rad), Z: center.Z}
	}
	if end < start {
		end += 360
	}
	box := core.PointBox(at(start)).Extend(at(end))
	for q := math.Ceil(start/90) * 90; q < end; q += 90 {
		box = box.Extend(at(q))
	}
	return box
}

// EntityBBox 实体在自身坐标系中的包围盒，没有几何信息的类型返回 false。
// INSERT 与 POLYLINE 需要文档，见 GetEntityBBoxWCS。
func EntityBBox(r *entities.Record) (core.BBox, bool) {
	switch r.Type {
	case entities.LineType:
		return boxOf(pointsOf(r, "start", "end")...)
	case entities.PointType, entities.AttribType, entities.VertexType:
		return boxOf(pointsOf(r, "location")...)
	case entities.CircleType:
		center, _ := r.Point("center")
		radius, _ := r.Float("radius")
		d := core.Point{X: radius, Y: radius}
		return core.BBox{Min: center.Sub(d), Max: center.Add(d)}, true
	case entities.ArcType:
		return arcBox(r), true
	case entities.SolidType:
		return boxOf(pointsOf(r, "corner1", "corner2", "corner3", "corner4")...)
	case entities.LWPolylineType:
		return boxOf(entities.Vertices(r)...)
	case entities.OLE2FrameType:
		return boxOf(pointsOf(r, "upper_left", "lower_right")...)
	case entities.DimensionType:
		return entities.DimensionBBox(r, 0), true
	}
	return core.BBox{}, false
}

// entityBox 世界坐标下的包围盒，块参照按块内实体递归计算
func entityBox(d *dxf.Document, entity *entities.Record) (core.BBox, bool) {
	switch entity.Type {
	case entities.InsertType:
		location, _ := entity.Point("location")
		name, _ := entity.Text("block")
		block, ok := d.Block(name)
		if !ok || block.Entities.Len() == 0 {
			return core.PointBox(location), true
		}

		var (
			localBox core.BBox
			found    bool
		)
		for sub := range block.Entities.All() {
			sb, ok := entityBox(d, sub)
			if !ok {
				continue
			}
			if !found {
				localBox, found = sb, true
				continue
			}
			localBox = localBox.Union(sb)
		}
		if !found {
			return core.PointBox(location), true
		}
		return TransformBBox(localBox, entity), true
	case entities.PolylineType:
		var points []core.Point
		for v := range d.Children(entity).All() {
			points = append(points, pointsOf(v, "location")...)
		}
		return boxOf(points...)
	case entities.DimensionType:
		style, _ := entity.Text("style")
		var exe = 0.0
		if s, ok := d.DimStyles[strings.ToUpper(style)]; ok {
			exe = s.ExLimit * s.Scale
		}
		return entities.DimensionBBox(entity, exe), true
	}
	return EntityBBox(entity)
}

// GetEntityBBoxWCS 实体在世界坐标中的包围盒，没有几何信息时为零值
func GetEntityBBoxWCS(d *dxf.Document, entity *entities.Record) core.BBox {
	box, _ := entityBox(d, entity)
	return box
}
