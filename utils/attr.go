package utils

import (
	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/entities"
)

// GetAttrs 返回 INSERT 的属性，标签 -> 值
func GetAttrs(doc *dxf.Document, ins *entities.Record) map[string]string {
	var attrs = make(map[string]string)
	for a := range doc.Children(ins).All() {
		tag, _ := a.Text("tag")
		value, _ := a.Text("value")
		attrs[tag] = value
	}

	return attrs
}

func GetAttr(doc *dxf.Document, ins *entities.Record, key string) string {
	return GetAttrs(doc, ins)[key]
}
