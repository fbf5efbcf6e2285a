package utils

import (
	"errors"
	"fmt"
	"math"

	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

// Inherit 构造新实体时从哪个实体继承图层、线型、颜色等公共属性
type Inherit int

const (
	InheritNone  Inherit = iota // 使用默认值
	InheritStart                // 第一个实体（中点时为直线本身）
	InheritEnd                  // 第二个实体
)

var errInherit = errors.New("illegal inherit value")

// 可继承的公共属性
var inherited = []string{
	"linetype", "layer", "thickness", "linetype_scale", "visibility",
	"color", "paperspace", "owner_soft", "owner_hard",
}

// inherit 复制公共属性，字符串与链都是副本
func inherit(dst, src *entities.Record) error {
	for _, name := range inherited {
		v, err := src.Get(name)
		if errors.Is(err, entities.ErrNoField) {
			continue
		}
		if err != nil {
			return err
		}
		if err := dst.Set(name, v); err != nil && !errors.Is(err, entities.ErrNoField) {
			return err
		}
	}
	return nil
}

func endpoints(line *entities.Record) (p0, p1 core.Point, err error) {
	if p0, err = line.Point("start"); err != nil {
		return
	}
	if p1, err = line.Point("end"); err != nil {
		return
	}
	if p0 == p1 {
		err = fmt.Errorf("%w: %s", entities.ErrDegenerate, line)
	}
	return
}

// MidPoint 返回直线中点处的 POINT
func MidPoint(line *entities.Record, handle int64, mode Inherit) (*entities.Record, error) {
	if mode != InheritNone && mode != InheritStart {
		return nil, fmt.Errorf("%w: %d", errInherit, mode)
	}
	p0, p1, err := endpoints(line)
	if err != nil {
		return nil, err
	}

	point := entities.New(entities.PointType)
	if err := point.SetHandle("handle", handle); err != nil {
		return nil, err
	}
	if err := point.SetPoint("location", p0.Add(p1).Scale(0.5)); err != nil {
		return nil, err
	}
	if mode == InheritStart {
		if err := inherit(point, line); err != nil {
			return nil, err
		}
	}
	return point, nil
}

// Length 直线长度，两端点重合时返回 ErrDegenerate
func Length(line *entities.Record) (float64, error) {
	p0, p1, err := endpoints(line)
	if err != nil {
		return 0, err
	}
	return p1.Sub(p0).Norm(), nil
}

// LineFromPoints 由两个 POINT 构造直线
func LineFromPoints(p0, p1 *entities.Record, handle int64, mode Inherit) (*entities.Record, error) {
	if mode < InheritNone || mode > InheritEnd {
		return nil, fmt.Errorf("%w: %d", errInherit, mode)
	}
	start, err := p0.Point("location")
	if err != nil {
		return nil, err
	}
	end, err := p1.Point("location")
	if err != nil {
		return nil, err
	}

	line, err := entities.NewLine(handle, start, end)
	if err != nil {
		return nil, err
	}
	switch mode {
	case InheritStart:
		err = inherit(line, p0)
	case InheritEnd:
		err = inherit(line, p1)
	}
	if err != nil {
		return nil, err
	}
	return line, nil
}

// ArcLength 圆弧长度，终止角小于起始角时跨过 0 度
func ArcLength(arc *entities.Record) (float64, error) {
	radius, err := arc.Float("radius")
	if err != nil {
		return 0, err
	}
	if radius <= 0 {
		return 0, entities.ErrZeroRadius
	}
	start, _ := arc.Float("start_angle")
	end, _ := arc.Float("end_angle")
	sweep := end - start
	if sweep < 0 {
		sweep += 360
	}
	return radius * sweep * math.Pi / 180.0, nil
}
