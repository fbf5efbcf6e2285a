package utils

import (
	"math"
	"strings"

	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/entities"
)

func GetDimValue(doc *dxf.Document, dim *entities.Record) float64 {
	// 1. 如果有手动文字覆盖，直接按文字提取数字
	if text, _ := dim.Text("text"); text != "" && !strings.Contains(text, "<>") {
		return entities.Measurement(dim)
	}

	// 2. 查找标注样式定义的精度
	precision := 0 // 默认取整
	style, _ := dim.Text("style")
	if s, ok := doc.DimStyles[strings.ToUpper(style)]; ok {
		precision = s.Precision
	}

	// 3. 根据精度进行四舍五入
	p := math.Pow(10, float64(precision))
	measurement, _ := dim.Float("measurement")

	return math.Round(measurement*p) / p
}
