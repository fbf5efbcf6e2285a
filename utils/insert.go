package utils

import (
	"github.com/zooyer/dxfcodec/entities"
)

// CombineInserts 合并嵌套块的变换，返回等效的 INSERT（不属于任何文档）
func CombineInserts(parent, child *entities.Record) *entities.Record {
	combined := child.Clone()

	// 1. 旋转叠加
	pr, _ := parent.Float("rotation")
	cr, _ := child.Float("rotation")
	_ = combined.SetFloat("rotation", pr+cr)

	// 2. 缩放叠加
	ps, cs := entities.InsertScale(parent), entities.InsertScale(child)
	_ = combined.SetFloat("scale_x", ps.X*cs.X)
	_ = combined.SetFloat("scale_y", ps.Y*cs.Y)
	_ = combined.SetFloat("scale_z", ps.Z*cs.Z)

	// 3. 插入点叠加：子块的插入点需要经过父块的 缩放 -> 旋转 -> 平移 变换
	location, _ := child.Point("location")
	_ = combined.SetPoint("location", TransformPoint(location, parent))

	return combined
}
