package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	dxf "github.com/zooyer/dxfcodec"
	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
	"github.com/zooyer/golib/xos"
)

// Version 通过 -ldflags 设置
var Version = "dev"

var (
	config = viper.New()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "dxfconv", Level: log.WarnLevel})

	// 双击运行（没有参数）时退出前暂停，方便查看输出
	pause bool

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	rootCmd = &cobra.Command{
		Use:   "dxfconv",
		Short: "Read, inspect and rewrite DXF drawings",
		Long: `dxfconv reads a DXF drawing and writes it back for another AutoCAD revision,
prints what was decoded, or measures the windows in a confirmation sheet.

Every flag can also be set with a DXFCONV_ environment variable,
e.g. DXFCONV_REVISION=R12.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if config.GetBool("verbose") {
				logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
)

func init() {
	config.SetEnvPrefix("DXFCONV")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()
	config.SetDefault("revision", core.R2000.String())
	config.SetDefault("precision", core.DefaultPrecision)
	config.SetDefault("epsilon", 1.0)
	config.SetDefault("strict", false)
	config.SetDefault("verbose", false)

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "print every diagnostic while decoding")
	flags.Int("precision", core.DefaultPrecision, "decimal places of written floats")
	flags.Bool("strict", false, "refuse entities the target revision does not have")
	flags.Float64("epsilon", 1.0, "tolerance when comparing lengths")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(measureCmd)
}

func codecOptions() []entities.Option {
	return []entities.Option{
		entities.WithLogger(logger),
		entities.WithPrecision(config.GetInt("precision")),
		entities.WithStrict(config.GetBool("strict")),
	}
}

// input 返回命令行中的文件，没有时弹出文件选择框
func input(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	pause = true
	filename, err := zenity.SelectFile(
		zenity.Title("选择 DXF 文件"),
		zenity.FileFilters{{Name: "DXF", Patterns: []string{"*.dxf", "*.DXF"}}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", errors.New("请把DXF文件拖入该程序上执行！")
	}
	return filename, err
}

func open(args []string) (*dxf.Document, string, error) {
	filename, err := input(args)
	if err != nil {
		return nil, "", err
	}

	logger.Debug("open", "file", filename)
	doc, err := dxf.Open(filename, dxf.WithCodecOptions(codecOptions()...))
	if err != nil {
		return doc, filename, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, filename, nil
}

func revision() (core.Revision, error) {
	name := config.GetString("revision")
	rev, err := core.ParseRevision(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, name)
	}
	return rev, nil
}

func main() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
	if pause {
		xos.PauseExit()
	}
	if err != nil {
		os.Exit(1)
	}
}
