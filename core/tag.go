package core

import (
	"math"
	"strconv"
	"strings"
)

// Tag 代表 DXF 中的一组标签对
type Tag struct {
	Code  int
	Value string
}

// Int 将值解析为整数
func (t Tag) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(t.Value), 10, 64)
}

// Float 将值解析为浮点数
func (t Tag) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: t.Value, Err: strconv.ErrRange}
	}
	return f, nil
}

// Hex 将值解析为十六进制句柄
func (t Tag) Hex() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(t.Value), 16, 64)
}

// String 清洗字符串（去除多余空格）
func (t Tag) String() string {
	return strings.TrimSpace(t.Value)
}

// AsFloat 将值转换为 float64，失败时为 0
func (t Tag) AsFloat() float64 {
	f, _ := t.Float()
	return f
}

// AsInt 将值转换为 int，失败时为 0
func (t Tag) AsInt() int {
	i, _ := t.Int()
	return int(i)
}

// AsString 清洗字符串（去除多余空格）
func (t Tag) AsString() string {
	return t.String()
}

// Point 代表三维空间中的一个点
type Point struct {
	X, Y, Z float64
}

// Add 向量相加
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub 向量相减
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale 缩放
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f, Z: p.Z * f}
}

// Norm 向量长度
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// BBox 代表包围盒
type BBox struct {
	Min, Max Point
}

// Extend 扩展包围盒使其包含 p
func (b BBox) Extend(p Point) BBox {
	return BBox{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union 合并两个包围盒
func (b BBox) Union(o BBox) BBox {
	return b.Extend(o.Min).Extend(o.Max)
}

// PointBox 返回只包含一个点的包围盒
func PointBox(p Point) BBox {
	return BBox{Min: p, Max: p}
}
