package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
	"github.com/zooyer/dxfcodec/utils"
	"github.com/zooyer/golib/xmath"
	"github.com/zooyer/golib/xos"
)

type Window struct {
	Box     core.BBox          // 门窗范围(纯门窗面积)
	Area    core.BBox          // 覆盖范围(含标注面积)
	Label   []*entities.Record // 所有标注
	Widths  []float64          // 标注宽度
	Heights []float64          // 标注高度
}

func (w Window) Width() float64 {
	return w.Box.Max.X - w.Box.Min.X
}

func (w Window) Height() float64 {
	return w.Box.Max.Y - w.Box.Min.Y
}

func (w Window) MaxWidth() float64 {
	if len(w.Widths) < 1 {
		return 0
	}

	return slices.Max(w.Widths)
}

func (w Window) MaxHeight() float64 {
	if len(w.Heights) < 1 {
		return 0
	}

	return slices.Max(w.Heights)
}

func (w Window) VerifyWidth(epsilon float64) bool {
	return len(w.Widths) > 0 && xmath.Equal(w.Width(), slices.Max(w.Widths), epsilon)
}

func (w Window) VerifyHeight(epsilon float64) bool {
	return len(w.Heights) > 0 && xmath.Equal(w.Height(), slices.Max(w.Heights), epsilon)
}

type Form struct {
	doc  *dxf.Document      // 文档
	tka4 *entities.Record   // A4纸，块名TKA4
	scs  []*entities.Record // 楼号信息，块名SC
	pjs  []core.BBox        // 楼号窗户，图层PJ
	bzs  []*entities.Record // 窗户标注
}

func (f Form) getAttr(key string) string {
	for _, sc := range f.scs {
		if attr := utils.GetAttr(f.doc, sc, key); attr != "" {
			return attr
		}
	}

	return ""
}

func (f Form) BBox() core.BBox {
	return utils.GetEntityBBoxWCS(f.doc, f.tka4)
}

func (f Form) Serial() string {
	return f.getAttr("序号")
}

func (f Form) Building() string {
	return f.getAttr("楼号")
}

func (f Form) Windows(winGap, bzGap float64) (windows []Window) {
	// 合并散线为矩形
	var boxes = utils.MergeBoxes(f.pjs, winGap)

	// 排序窗户 (从上到下)
	sort.Slice(boxes, func(i, j int) bool {
		if math.Abs(boxes[i].Max.Y-boxes[j].Max.Y) > 500 {
			return boxes[i].Max.Y > boxes[j].Max.Y
		}
		return boxes[i].Min.X < boxes[j].Min.X
	})

	for _, box := range boxes {
		var (
			area  = box              // 扩展范围
			alls  = f.bzs            // 所有标注
			curr  []*entities.Record // 当前标注
			nears []*entities.Record // 附近标注
		)

		for {
			if alls, curr, area = getBZ(f.doc, alls, area, bzGap); len(curr) == 0 {
				break
			}
			nears = append(nears, curr...)
		}

		var widths, heights []float64
		for _, near := range nears {
			var (
				value    = utils.GetDimValue(f.doc, near)
				angle, _ = near.Float("angle")
			)

			switch int(angle) {
			case 0, 180:
				widths = append(widths, value)
			case 90, 270:
				heights = append(heights, value)
			}
		}

		windows = append(windows, Window{
			Box:     box,
			Area:    area,
			Label:   nears,
			Widths:  widths,
			Heights: heights,
		})
	}

	return
}

// getBox 收集指定图层上的实体范围，嵌套块按合并后的变换展开
func getBox(doc *dxf.Document, layer string, entity, parent *entities.Record) (boxes []core.BBox) {
	if name, _ := entity.Text("layer"); name == layer {
		if box, ok := utils.EntityBBox(entity); ok {
			if parent != nil {
				box = utils.TransformBBox(box, parent)
			}
			boxes = append(boxes, box)
		}
	}

	if entity.Type != entities.InsertType {
		return
	}

	name, _ := entity.Text("block")
	block, exists := doc.Block(name)
	if !exists {
		return
	}

	insert := entity
	if parent != nil {
		insert = utils.CombineInserts(parent, entity)
	}

	for sub := range block.Entities.All() {
		boxes = append(boxes, getBox(doc, layer, sub, insert)...)
	}

	return
}

// getBZ 寻找与当前 box 邻近的标注
// 返回：未被匹配的标注(rest)、本次匹配到的标注(near)、扩充后的新盒子(newBox)
func getBZ(doc *dxf.Document, bzs []*entities.Record, box core.BBox, gap float64) (rest, near []*entities.Record, newBox core.BBox) {
	newBox = box

	for _, bz := range bzs {
		// 只要转角标注
		if entities.DimensionKind(bz) != 0 {
			rest = append(rest, bz)
			continue
		}

		var b = utils.GetEntityBBoxWCS(doc, bz)
		if utils.IsSeparate(box, b, gap) {
			rest = append(rest, bz)
			continue
		}

		// 盒子扩充，下一轮迭代就能通过标注线抓到更外圈的总尺寸标注
		near = append(near, bz)
		newBox = newBox.Union(core.BBox{
			Min: core.Point{X: b.Min.X, Y: b.Min.Y, Z: newBox.Min.Z},
			Max: core.Point{X: b.Max.X, Y: b.Max.Y, Z: newBox.Max.Z},
		})
	}
	return
}

func renderBool(b bool) string {
	if b {
		return "✅"
	}

	return "❌"
}

var measureCmd = &cobra.Command{
	Use:   "measure [input.dxf]",
	Short: "Measure the windows of a confirmation sheet and write a CSV",
	Long: `Each TKA4 block reference is one sheet. Lines on layer PJ inside a sheet
are merged into windows, rotated dimensions next to a window give its labelled
width and height, and the SC block attributes give the serial and building.

The CSV is written next to the input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, filename, err := open(args)
		if err != nil {
			return err
		}
		csv := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv"
		return measure(cmd.OutOrStdout(), doc, csv)
	},
}

func init() {
	flags := measureCmd.Flags()
	flags.Float64("bz-gap", 30, "max distance between a window and its dimensions")
	flags.Float64("win-gap", 20, "max distance between lines of the same window")
	flags.String("layer", "PJ", "layer holding the window lines")
	config.SetDefault("bz-gap", 30.0)
	config.SetDefault("win-gap", 20.0)
	config.SetDefault("layer", "PJ")
}

func measure(out io.Writer, doc *dxf.Document, filename string) error {
	var (
		epsilon = config.GetFloat64("epsilon")
		bzGap   = config.GetFloat64("bz-gap")
		winGap  = config.GetFloat64("win-gap")
		layer   = config.GetString("layer")

		pjs []core.BBox
		scs []*entities.Record
		a4s []*entities.Record
		bzs []*entities.Record
	)

	// 1. 提取确认单A4(块名TKA4)、楼号信息(块名SC)、楼号门窗(图层PJ)、门窗标注
	for entity := range doc.Entities.All() {
		switch entity.Type {
		case entities.InsertType:
			switch name, _ := entity.Text("block"); strings.ToUpper(name) {
			case "SC":
				scs = append(scs, entity)
			case "TKA4":
				a4s = append(a4s, entity)
			}
		case entities.DimensionType:
			bzs = append(bzs, entity)
		}

		pjs = append(pjs, getBox(doc, layer, entity, nil)...)
	}

	// 2. 按 X 坐标从左到右排序
	sort.Slice(a4s, func(i, j int) bool {
		pi, _ := a4s[i].Point("location")
		pj, _ := a4s[j].Point("location")
		return pi.X < pj.X
	})

	fmt.Fprintf(out, "开始处理: %d 个门窗数据...\n", len(a4s))

	// 3. 划分组件、信息归属
	var forms = make([]Form, 0, len(a4s))
	for _, a4 := range a4s {
		var (
			box   = utils.GetEntityBBoxWCS(doc, a4)
			attrs []*entities.Record
			inner []core.BBox
		)

		for _, sc := range scs {
			if p, _ := sc.Point("location"); utils.InBox(box, p) {
				attrs = append(attrs, sc)
			}
		}

		for _, pb := range pjs {
			mid := pb.Min.Add(pb.Max).Scale(0.5)
			if utils.InBox(box, mid) {
				inner = append(inner, pb)
			}
		}

		forms = append(forms, Form{doc: doc, tka4: a4, scs: attrs, pjs: inner, bzs: bzs})
	}

	// 4. 写入表头
	const (
		header    = "序号,楼号,宽度,高度,校验,测量宽度,测量高度,识别宽度,识别高度\n"
		emptyLine = ",,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,,"
	)
	if err := os.WriteFile(filename, []byte(header), 0644); err != nil {
		return err
	}
	fmt.Fprintln(out, "写入文件:", filename)
	fmt.Fprintln(out)

	var (
		totalWin  int     // 总窗户数
		totalArea float64 // 总窗户面积
	)
	// 5. 写入表格，打印输出
	for i, form := range forms {
		var (
			box  = form.BBox()
			wins = form.Windows(winGap, bzGap)
		)

		fmt.Fprintf(out, "[TKA4.%02d] | RECTANG %.2f,%.2f %.2f,%.2f | SC=%s\n",
			i+1, box.Min.X, box.Min.Y, box.Max.X, box.Max.Y, renderBool(len(form.scs) == 1),
		)
		for j, sc := range form.scs {
			attrs := utils.GetAttrs(doc, sc)
			fmt.Fprintf(out, "    [SC.%02d] | 序号:%s 金额:%s 面积:%s 楼号:%s\n",
				j+1, attrs["序号"], attrs["金额"], attrs["面积"], attrs["楼号"],
			)
		}

		for j, w := range wins {
			var width, height = w.Width(), w.Height()
			fmt.Fprintf(out, "    [窗户%d] | %.1f x %.1f | RECTANG %.2f,%.2f %.2f,%.2f\n",
				j+1, width, height, w.Box.Min.X, w.Box.Min.Y, w.Box.Max.X, w.Box.Max.Y,
			)
			var verifyWidth, verifyHeight = w.VerifyWidth(epsilon), w.VerifyHeight(epsilon)
			fmt.Fprintln(out, "       |-- [识别宽度]:", w.Widths, renderBool(verifyWidth))
			fmt.Fprintln(out, "       |-- [识别高度]:", w.Heights, renderBool(verifyHeight))
			fmt.Fprintf(out, "       |-- [最终范围]: RECTANG %.0f,%.0f %.0f,%.0f\n", w.Area.Min.X, w.Area.Min.Y, w.Area.Max.X, w.Area.Max.Y)

			totalWin++
			totalArea += width * height

			var serial, building string
			if j == 0 {
				serial, building = form.Serial(), form.Building()
			}

			var line = fmt.Sprintf("%s,%s,%.0f,%.0f,%s,%.0f,%.0f,%s,%s\n",
				serial, building, w.MaxWidth(), w.MaxHeight(),
				renderBool(verifyWidth && verifyHeight), width, height,
				fmt.Sprint(w.Widths), fmt.Sprint(w.Heights),
			)
			if err := xos.AppendFile(filename, []byte(line), 0644); err != nil {
				return err
			}
		}

		// 填充空行，至少7行
		for j := len(wins); j < 7; j++ {
			var line = emptyLine[:strings.Count(header, ",")] + "\n"
			if err := xos.AppendFile(filename, []byte(line), 0644); err != nil {
				return err
			}
		}
	}

	// 写入统计信息
	var stat = fmt.Sprintf("共%d楼号,共%d门窗,共%f面积%s\n",
		len(forms), totalWin, totalArea, emptyLine[:strings.Count(header, ",")-2],
	)
	return xos.AppendFile(filename, []byte(stat), 0644)
}
