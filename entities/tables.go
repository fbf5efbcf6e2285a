package entities

import "github.com/zooyer/dxfcodec/core"

// LayerType 图层表项
var LayerType = NewType("LAYER", symbolCommon(5), []Field{
	Subclass("AcDbLayerTableRecord", core.R13, 0),
	{Name: "name", Code: 2, Kind: String},
	{Name: "flags", Code: 70, Kind: Int16},
	{Name: "color", Code: 62, Kind: Int16, Default: Int16Value(7)},
	{Name: "linetype", Code: 6, Kind: String, Default: StringValue("CONTINUOUS"), Fallback: "CONTINUOUS"},
	{Name: "plot", Code: 290, Kind: Flag, Min: core.R2000, Default: FlagValue(true), Omit: OmitDefault},
	{Name: "lineweight", Code: 370, Kind: Int16, Min: core.R2000, Default: Int16Value(-3)},
	{Name: "plot_style", Code: 390, Kind: String, Min: core.R2000, Omit: OmitEmpty},
	{Name: "material", Code: 347, Kind: String, Min: core.R2007, Omit: OmitEmpty},
})

// AppIDType 注册应用表项
var AppIDType = NewType("APPID", symbolCommon(5), []Field{
	Subclass("AcDbRegAppTableRecord", core.R13, 0),
	{Name: "name", Code: 2, Kind: String},
	{Name: "flags", Code: 70, Kind: Int16},
})

// DimStyleType 标注样式表项，句柄使用组码 105
var DimStyleType = NewType("DIMSTYLE", symbolCommon(105), []Field{
	Subclass("AcDbDimStyleTableRecord", core.R13, 0),
	{Name: "name", Code: 2, Kind: String},
	{Name: "flags", Code: 70, Kind: Int16},
	{Name: "post", Code: 3, Kind: String, Omit: OmitEmpty},
	{Name: "alt_post", Code: 4, Kind: String, Omit: OmitEmpty},
	// 全局比例，影响所有标注特征
	{Name: "scale", Code: 40, Kind: Double, Default: FloatValue(1)},
	{Name: "arrow_size", Code: 41, Kind: Double, Default: FloatValue(0.18)},
	{Name: "ext_offset", Code: 42, Kind: Double, Default: FloatValue(0.0625)},
	{Name: "dim_increment", Code: 43, Kind: Double, Default: FloatValue(0.38)},
	// 标注线超出延伸线的长度 (DIMEXE)
	{Name: "ext_extension", Code: 44, Kind: Double, Default: FloatValue(0.18)},
	{Name: "text_height", Code: 140, Kind: Double, Default: FloatValue(0.18)},
	{Name: "linear_factor", Code: 144, Kind: Double, Default: FloatValue(1), Omit: OmitDefault},
	{Name: "text_above", Code: 77, Kind: Int16, Omit: OmitZero},
	{Name: "zero_suppress", Code: 78, Kind: Int16, Omit: OmitZero},
	// 显示的小数位数 (DIMDEC)
	{Name: "precision", Code: 271, Kind: Int16, Min: core.R13, Default: Int16Value(4)},
})

func init() {
	for _, t := range []*Type{LayerType, AppIDType, DimStyleType} {
		t.Checks = []Check{{Name: "table entry name", Fn: requireName}}
		Register(t)
	}
}
