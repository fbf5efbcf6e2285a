package entities

import (
	"fmt"

	"github.com/zooyer/dxfcodec/core"
)

// ImageDefType 光栅图像定义
var ImageDefType = NewType("IMAGEDEF", objectCommon(), []Field{
	Subclass("AcDbRasterImageDef", core.R14, 0),
	{Name: "class_version", Code: 90, Kind: Int32},
	{Name: "file_name", Code: 1, Kind: String},
	// 以像素计的图像大小 (U, V)
	{Name: "image_size", Code: 10, Kind: Point3D, Flat: true},
	{Name: "pixel_size_u", Code: 11, Kind: Double, Default: FloatValue(1)},
	{Name: "pixel_size_v", Code: 12, Kind: Double, Default: FloatValue(1)},
	{Name: "loaded", Code: 280, Kind: Flag, Default: FlagValue(true)},
	{Name: "resolution_units", Code: 281, Kind: Int16, Valid: OneOf(0, 2, 5)},
	{Name: "image_reactors", Code: 330, Kind: List, Elem: String, Omit: OmitEmpty},
})

// SpatialFilterType 外部参照剪裁边界
var SpatialFilterType = NewType("SPATIAL_FILTER", objectCommon(), []Field{
	Subclass("AcDbFilter", core.R14, 0),
	Subclass("AcDbSpatialFilter", core.R14, 0),
	{Name: "point_count", Code: 70, Kind: Int16},
	// 2 个点为矩形边界（左下、右上），更多为多段线边界
	{Name: "boundary", Code: 10, Kind: List, Elem: Point3D, Flat: true},
	extrusion(),
	{Name: "origin", Code: 11, Kind: Point3D},
	{Name: "display_boundary", Code: 71, Kind: Flag},
	{Name: "front_clip", Code: 72, Kind: Flag},
	{Name: "front_distance", Code: 40, Kind: Double, Omit: OmitZero},
	{Name: "back_clip", Code: 73, Kind: Flag},
	{Name: "back_distance", Code: 41, Kind: Double, Omit: OmitZero},
	// 4x3 矩阵，按列存储，各 12 个值
	{Name: "inverse_block_transform", Code: 40, Kind: List, Elem: Double, Count: 12},
	{Name: "clip_transform", Code: 40, Kind: List, Elem: Double, Count: 12},
})

// SpatialIndexType 空间索引，只保存时间戳
var SpatialIndexType = NewType("SPATIAL_INDEX", objectCommon(), []Field{
	Subclass("AcDbIndex", core.R14, 0),
	{Name: "timestamp", Code: 40, Kind: Double},
	Subclass("AcDbSpatialIndex", core.R14, 0),
})

func init() {
	for _, t := range []*Type{ImageDefType, SpatialFilterType, SpatialIndexType} {
		t.Min = core.R14
	}

	SpatialFilterType.Checks = []Check{
		{Name: "boundary points", Fn: func(r *Record) error {
			items, err := r.Chain("boundary")
			if err != nil {
				return err
			}
			if items.Len() < 2 {
				return fmt.Errorf("%w: %d boundary points, want at least 2", ErrRange, items.Len())
			}
			return nil
		}},
		{Name: "matrix size", Fn: func(r *Record) error {
			for _, name := range []string{"inverse_block_transform", "clip_transform"} {
				items, err := r.Chain(name)
				if err != nil {
					return err
				}
				if n := items.Len(); n != 0 && n != 12 {
					return fmt.Errorf("%w: %s has %d values, want 12", ErrRange, name, n)
				}
			}
			return nil
		}},
	}
	SpatialFilterType.Inspect = func(r *Record) []string {
		n, _ := r.Int("point_count")
		items, _ := r.Chain("boundary")
		if int64(items.Len()) != n {
			return []string{fmt.Sprintf("point count %d does not match %d boundary points", n, items.Len())}
		}
		return nil
	}

	Register(ImageDefType)
	Register(SpatialFilterType)
	Register(SpatialIndexType)
}

// Matrix 将 12 个值的链转换为 4x3 矩阵（按列存储）
func Matrix(r *Record, name string) ([12]float64, error) {
	var m [12]float64
	items, err := r.Chain(name)
	if err != nil {
		return m, err
	}
	if items.Len() != len(m) {
		return m, fmt.Errorf("%w: %s has %d values", ErrRange, name, items.Len())
	}
	i := 0
	for it := range items.All() {
		m[i] = it.Value.Float
		i++
	}
	return m, nil
}
