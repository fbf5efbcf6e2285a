package entities

import (
	"errors"

	"github.com/zooyer/dxfcodec/core"
)

var errEmptyName = errors.New("name is empty")

// BlockType 块定义的开始，块中的实体跟在其后，以 ENDBLK 结束
var BlockType = NewType("BLOCK", []Field{
	{Name: "handle", Code: 5, Kind: Handle},
	{Name: "owner", Code: 330, Kind: String, Min: core.R2000, Omit: OmitEmpty},
	Subclass("AcDbEntity", core.R13, 0),
	{Name: "paperspace", Code: 67, Kind: Flag, Min: core.R13, Omit: OmitDefault},
	{Name: "layer", Code: 8, Kind: String, Default: StringValue(DefaultLayer), Fallback: DefaultLayer},
	Subclass("AcDbBlockBegin", core.R13, 0),
	{Name: "name", Code: 2, Kind: String},
	{Name: "flags", Code: 70, Kind: Int16},
	{Name: "base", Code: 10, Kind: Point3D},
	{Name: "name2", Code: 3, Kind: String, Omit: OmitEmpty},
	{Name: "xref_path", Code: 1, Kind: String, Omit: OmitEmpty},
	{Name: "description", Code: 4, Kind: String, Min: core.R2000, Omit: OmitEmpty},
})

// EndBlkType 块定义的结束
var EndBlkType = NewType("ENDBLK", []Field{
	{Name: "handle", Code: 5, Kind: Handle},
	{Name: "owner", Code: 330, Kind: String, Min: core.R2000, Omit: OmitEmpty},
	Subclass("AcDbEntity", core.R13, 0),
	{Name: "paperspace", Code: 67, Kind: Flag, Min: core.R13, Omit: OmitDefault},
	{Name: "layer", Code: 8, Kind: String, Min: core.R13, Default: StringValue(DefaultLayer), Fallback: DefaultLayer},
	Subclass("AcDbBlockEnd", core.R13, 0),
})

func init() {
	BlockType.Checks = []Check{{Name: "block name", Fn: requireName}}
	Register(BlockType)
	Register(EndBlkType)
}

// requireName 表项与块的名称不能为空
func requireName(r *Record) error {
	name, err := r.Text("name")
	if err != nil {
		return err
	}
	if name == "" {
		return errEmptyName
	}
	return nil
}
