package entities

import "github.com/zooyer/dxfcodec/core"

// 应用组名称
const (
	ReactorsGroup     = "{ACAD_REACTORS"
	XDictionaryGroup  = "{ACAD_XDICTIONARY"
	defaultExtrusionZ = 1.0
)

// entityCommon 所有图形实体共有的字段，顺序即写出顺序
func entityCommon() []Field {
	return []Field{
		{Name: "handle", Code: 5, Kind: Handle},
		{Name: "owner_soft", Code: 330, Kind: String, Min: core.R14, Group: ReactorsGroup, Omit: OmitEmpty},
		{Name: "owner_hard", Code: 360, Kind: String, Min: core.R14, Group: XDictionaryGroup, Omit: OmitEmpty},
		Subclass("AcDbEntity", core.R13, 0),
		{Name: "paperspace", Code: 67, Kind: Flag, Min: core.R13, Default: FlagValue(false), Omit: OmitDefault},
		{Name: "layer", Code: 8, Kind: String, Default: StringValue(DefaultLayer), Fallback: DefaultLayer},
		{Name: "linetype", Code: 6, Kind: String, Default: StringValue(ByLayer), Fallback: ByLayer, Omit: OmitDefault},
		{Name: "elevation", Code: 38, Kind: Double, Max: core.R11, Omit: OmitZero},
		{Name: "material", Code: 347, Kind: String, Min: core.R2008, Omit: OmitEmpty},
		{Name: "color", Code: 62, Kind: Int16, Default: Int16Value(ColorByLayer), Omit: OmitDefault},
		{Name: "lineweight", Code: 370, Kind: Int16, Min: core.R2002},
		{Name: "linetype_scale", Code: 48, Kind: Double, Min: core.R13, Default: FloatValue(1), Omit: OmitDefault, Valid: NonNegative},
		{Name: "visibility", Code: 60, Kind: Flag, Min: core.R13, Omit: OmitDefault},
		{Name: "graphics_size", Code: 92, Alt: []int{160}, Kind: Int32, Min: core.R2000},
		{Name: "graphics", Code: 310, Kind: List, Elem: String, Min: core.R2000, Omit: OmitEmpty},
		{Name: "color_value", Code: 420, Kind: Int32, Min: core.R2004},
		{Name: "color_name", Code: 430, Kind: String, Min: core.R2004, Omit: OmitEmpty},
		{Name: "transparency", Code: 440, Kind: Int32, Min: core.R2004},
		{Name: "plot_style", Code: 390, Kind: String, Min: core.R2009, Omit: OmitEmpty},
		{Name: "shadow_mode", Code: 284, Kind: Int16, Min: core.R2009, Valid: Between(0, 3)},
	}
}

// symbolCommon 表项 (TABLES 段) 共有的字段
func symbolCommon(handleCode int) []Field {
	return []Field{
		{Name: "handle", Code: handleCode, Kind: Handle},
		{Name: "owner_soft", Code: 330, Kind: String, Min: core.R14, Group: ReactorsGroup, Omit: OmitEmpty},
		{Name: "owner_hard", Code: 360, Kind: String, Min: core.R14, Group: XDictionaryGroup, Omit: OmitEmpty},
		{Name: "owner", Code: 330, Kind: String, Min: core.R2000, Omit: OmitEmpty},
		Subclass("AcDbSymbolTableRecord", core.R13, 0),
	}
}

// objectCommon OBJECTS 段中对象共有的字段
func objectCommon() []Field {
	return []Field{
		{Name: "handle", Code: 5, Kind: Handle},
		{Name: "owner_soft", Code: 330, Kind: String, Min: core.R14, Group: ReactorsGroup, Omit: OmitEmpty},
		{Name: "owner_hard", Code: 360, Kind: String, Min: core.R14, Group: XDictionaryGroup, Omit: OmitEmpty},
		{Name: "owner", Code: 330, Kind: String, Min: core.R14, Omit: OmitEmpty},
	}
}

// thickness 厚度，非负
func thickness() Field {
	return Field{Name: "thickness", Code: 39, Kind: Double, Omit: OmitZero, Valid: NonNegative}
}

// extrusion 拉伸方向，默认 (0,0,1)
func extrusion() Field {
	return Field{
		Name:    "extrusion",
		Code:    210,
		Kind:    Point3D,
		Default: PointValue(core.Point{Z: defaultExtrusionZ}),
		Min:     core.R12,
		Omit:    OmitDefault,
	}
}
