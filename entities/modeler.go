package entities

import (
	"github.com/zooyer/dxfcodec/core"
)

// ACIS 实体：3DSOLID、REGION、BODY。专有数据按 1 与 3 的原始顺序保存在同一条链中。
func modelerFields(solid bool) []Field {
	fields := []Field{
		thickness(),
		Subclass("AcDbModelerGeometry", core.R13, 0),
	}
	if solid {
		fields = append(fields, Subclass("AcDb3dSolid", core.R2008, 0))
	}
	fields = append(fields,
		Field{Name: "modeler_version", Code: 70, Kind: Int16, Min: core.R13, Default: Int16Value(1), Valid: OneOf(1)},
		Field{Name: "proprietary_data", Code: 1, Alt: []int{3}, Kind: List, Elem: String, Omit: OmitEmpty},
	)
	if solid {
		fields = append(fields, Field{Name: "history", Code: 350, Kind: String, Min: core.R2008, Omit: OmitEmpty})
	}
	return fields
}

var (
	Solid3DType = NewType("3DSOLID", entityCommon(), modelerFields(true))
	RegionType  = NewType("REGION", entityCommon(), modelerFields(false))
	BodyType    = NewType("BODY", entityCommon(), modelerFields(false))
)

func init() {
	for _, t := range []*Type{Solid3DType, RegionType, BodyType} {
		t.Min = core.R13
		Register(t)
	}
}
