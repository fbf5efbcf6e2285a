package entities

import "github.com/zooyer/dxfcodec/core"

// 属性标志 (组码 70)
const (
	AttribInvisible = 1
	AttribConstant  = 2
	AttribVerify    = 4 // 输入时需要确认
	AttribPreset    = 8 // 插入时不提示
)

// attribute ATTRIB 与 ATTDEF 共有的字段，prompt 只有属性定义才有
func attribute(subclass string, prompt bool) []Field {
	fields := []Field{
		Subclass("AcDbText", core.R13, 0),
		thickness(),
		{Name: "location", Code: 10, Kind: Point3D},
		{Name: "height", Code: 40, Kind: Double, Valid: NonNegative},
		{Name: "value", Code: 1, Kind: String},
		Subclass(subclass, core.R13, 0),
	}
	if prompt {
		fields = append(fields, Field{Name: "prompt", Code: 3, Kind: String})
	}
	return append(fields, []Field{
		{Name: "tag", Code: 2, Kind: String}, // 属性标签，如 "序号"
		{Name: "flags", Code: 70, Kind: Int16},
		{Name: "field_length", Code: 73, Kind: Int16, Omit: OmitZero},
		{Name: "rotation", Code: 50, Kind: Double, Omit: OmitZero},
		{Name: "x_scale", Code: 41, Kind: Double, Default: FloatValue(1), Omit: OmitDefault},
		{Name: "oblique", Code: 51, Kind: Double, Omit: OmitZero},
		{Name: "style", Code: 7, Kind: String, Default: StringValue("STANDARD"), Omit: OmitDefault},
		{Name: "text_flags", Code: 71, Kind: Int16, Omit: OmitZero},
		{Name: "align_h", Code: 72, Kind: Int16, Omit: OmitZero},
		{Name: "align_v", Code: 74, Kind: Int16, Omit: OmitZero},
		{Name: "align_point", Code: 11, Kind: Point3D, Omit: OmitZero},
		extrusion(),
	}...)
}

// AttribType 块参照上的属性，跟在 INSERT 之后，以 SEQEND 结束
var AttribType = NewType("ATTRIB", entityCommon(), attribute("AcDbAttribute", false))

// AttDefType 块定义中的属性定义
var AttDefType = NewType("ATTDEF", entityCommon(), attribute("AcDbAttributeDefinition", true))

func init() {
	Register(AttribType)
	Register(AttDefType)
}

// AttribFlag 判断 ATTRIB / ATTDEF 的 70 组码是否包含 flag
func AttribFlag(r *Record, flag int64) bool {
	flags, err := r.Int("flags")
	return err == nil && flags&flag != 0
}

func IsInvisible(r *Record) bool { return AttribFlag(r, AttribInvisible) }
func IsConstant(r *Record) bool { return AttribFlag(r, AttribConstant) }
func IsVerify(r *Record) bool { return AttribFlag(r, AttribVerify) }
func IsPreset(r *Record) bool { return AttribFlag(r, AttribPreset) }
