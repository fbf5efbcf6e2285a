package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.dxf] [output.dxf]",
	Short: "Rewrite a drawing for another revision",
	Long: `Decode every registered entity of the input drawing and encode it again
for the target revision. Fields the target revision does not have are dropped,
unregistered entity types are skipped.

Without an output name the result is written next to the input,
e.g. plan.dxf -> plan.R12.dxf.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rev, err := revision()
		if err != nil {
			return err
		}
		doc, filename, err := open(args)
		if err != nil {
			return err
		}

		output := strings.TrimSuffix(filename, filepath.Ext(filename)) + "." + rev.String() + ".dxf"
		if len(args) > 1 {
			output = args[1]
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s -> %s %s\n", labelStyle.Render(doc.Revision.String()), filename, labelStyle.Render(rev.String()), output)
		for name, n := range doc.Skipped {
			fmt.Fprintf(out, "  %s %s x%d\n", warnStyle.Render("跳过"), name, n)
		}
		if n := len(doc.Diagnostics()); n > 0 {
			fmt.Fprintf(out, "  %s %d\n", warnStyle.Render("诊断"), n)
		}

		if err = doc.Save(output, rev); err != nil {
			return fmt.Errorf("%s: %w", output, err)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("revision", "r", "R2000", "target revision, e.g. R12, R2000 or AC1015")
}
