package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/entities"
	"github.com/zooyer/dxfcodec/utils"
	"github.com/zooyer/golib/xmath"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [input.dxf]",
	Short: "Print what was decoded from a drawing",
	Long: `Print the revision, code page, entity counts per section, skipped types
and every diagnostic collected while decoding.

Lines shorter than --epsilon are listed as well, they usually come from
exploded blocks and break the window measurement.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, filename, err := open(args)
		if doc == nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(filename))
		fmt.Fprintf(out, "%s %s (%s)\n", labelStyle.Render("版本:"), doc.Revision, doc.Revision.ACADVER())
		if doc.CodePage != "" {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("代码页:"), doc.CodePage)
		}

		for _, t := range doc.Tables {
			fmt.Fprintf(out, "%s %s x%d\n", labelStyle.Render("表:"), t.Name, t.Entries.Len())
		}
		for _, name := range slices.Sorted(maps.Keys(doc.Blocks)) {
			fmt.Fprintf(out, "%s %s x%d\n", labelStyle.Render("块:"), name, doc.Blocks[name].Entities.Len())
		}
		printCounts(out, "实体:", doc.Entities)
		printCounts(out, "对象:", doc.Objects)
		for _, name := range slices.Sorted(maps.Keys(doc.Skipped)) {
			fmt.Fprintf(out, "%s %s x%d\n", warnStyle.Render("跳过:"), name, doc.Skipped[name])
		}

		shortLines(out, doc, config.GetFloat64("epsilon"))

		for _, d := range doc.Diagnostics() {
			fmt.Fprintln(out, warnStyle.Render("诊断:"), d)
		}

		// 截断的文件也打印已读取的部分
		return err
	},
}

func printCounts(out io.Writer, label string, chain *entities.Chain[*entities.Record]) {
	counts := make(map[string]int)
	for r := range chain.All() {
		counts[r.Type.Name]++
	}
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(out, "%s %s x%d\n", labelStyle.Render(label), name, counts[name])
	}
}

// shortLines 列出长度接近 0 的直线
func shortLines(out io.Writer, doc *dxf.Document, epsilon float64) {
	for r := range doc.Entities.All() {
		if r.Type != entities.LineType {
			continue
		}
		length, err := utils.Length(r)
		if err == nil && !xmath.Equal(length, 0, epsilon) {
			continue
		}
		layer, _ := r.Text("layer")
		fmt.Fprintf(out, "%s LINE %x layer=%s length=%.3f\n", warnStyle.Render("短线:"), r.ID(), layer, length)
	}
}
