package entities

import (
	"fmt"

	"github.com/zooyer/dxfcodec/core"
)

// ProxyEntityType 第三方应用的代理实体。
// R13 使用 AcDbZombieEntity，R14 起使用 AcDbProxyEntity。
var ProxyEntityType = NewType("ACAD_PROXY_ENTITY", entityCommon(), []Field{
	thickness(),
	Subclass("AcDbZombieEntity", core.R13, core.R13),
	Subclass("AcDbProxyEntity", core.R14, 0),
	{Name: "class_id", Code: 90, Kind: Int32, Default: IntValue(498)},
	{Name: "app_class_id", Code: 91, Kind: Int32, Default: IntValue(500)},
	{Name: "data_size", Code: 93, Kind: Int32},
	{Name: "data", Code: 310, Kind: List, Elem: String, Omit: OmitEmpty},
	{Name: "object_ids", Code: 330, Alt: []int{340, 350, 360}, Kind: List, Elem: String, Omit: OmitEmpty},
	{Name: "terminator", Code: 94, Kind: Int32, Valid: OneOf(0)},
	{Name: "drawing_format", Code: 95, Kind: Int32, Min: core.R2000},
	{Name: "original_format", Code: 70, Kind: Int16, Min: core.R2000, Default: Int16Value(1), Valid: OneOf(0, 1)},
})

// OLE2FrameType 嵌入的 OLE 对象，二进制数据按 310 行保存
var OLE2FrameType = NewType("OLE2FRAME", entityCommon(), []Field{
	Subclass("AcDbOle2Frame", core.R13, 0),
	thickness(),
	{Name: "ole_version", Code: 70, Kind: Int16, Default: Int16Value(2)},
	{Name: "program_name", Code: 3, Kind: String},
	{Name: "upper_left", Code: 10, Kind: Point3D},
	{Name: "lower_right", Code: 11, Kind: Point3D},
	{Name: "object_type", Code: 71, Kind: Int16, Default: Int16Value(2), Valid: Between(1, 3)},
	{Name: "tile_mode", Code: 72, Kind: Int16, Valid: Between(0, 1)},
	{Name: "data_length", Code: 90, Kind: Int32},
	{Name: "data", Code: 310, Kind: List, Elem: String, Omit: OmitEmpty},
	{Name: "end_marker", Code: 1, Kind: String, Default: StringValue("OLE")},
})

func init() {
	ProxyEntityType.Min = core.R13
	ProxyEntityType.Inspect = func(r *Record) []string {
		if format, _ := r.Int("original_format"); format != 1 {
			return []string{fmt.Sprintf("original data format %d is not DXF", format)}
		}
		return nil
	}
	Register(ProxyEntityType)

	OLE2FrameType.Min = core.R14
	OLE2FrameType.Checks = []Check{
		{Name: "ole version", Fn: func(r *Record) error {
			if v, _ := r.Int("ole_version"); v != 2 {
				return fmt.Errorf("%w: OLE version %d, want 2", ErrRange, v)
			}
			return nil
		}},
	}
	Register(OLE2FrameType)
}
