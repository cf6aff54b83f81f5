package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/dsl"
	"github.com/ByLCY/axisplot/renderer"
	canvasrenderer "github.com/ByLCY/axisplot/renderer/canvas"
	termrenderer "github.com/ByLCY/axisplot/renderer/term"
	"github.com/ByLCY/axisplot/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("axisplot: %v", err)
	}
}

type renderFlags struct {
	output   string
	format   string
	dataJSON string
	debug    string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "axisplot",
		Short:         "坐标轴布局与渲染",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newRangeCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <file.axis>",
		Short: "将 .axis 描述文件渲染为 PDF、SVG 或终端预览",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "输出路径（默认与输入同名；term 格式默认输出到标准输出）")
	cmd.Flags().StringVar(&f.format, "format", "", "输出格式：pdf、svg、term（默认按输出扩展名推断）")
	cmd.Flags().StringVar(&f.dataJSON, "data", "", "绑定到 DSL 的 JSON 数据")
	cmd.Flags().StringVar(&f.debug, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "输出调试日志")
	return cmd
}

func newRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <min> <max> <ticks>",
		Short: "计算调整后的刻度范围",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("无法解析 min %q", args[0])
			}
			hi, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("无法解析 max %q", args[1])
			}
			ticks, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("无法解析 ticks %q", args[2])
			}
			out, n, interval := axis.ComputeRange([2]float64{lo, hi}, ticks)
			fmt.Fprintf(cmd.OutOrStdout(), "range: [%g, %g]\nlabels: %d\ninterval: %g\n", out[0], out[1], n, interval)
			return nil
		},
	}
}

// runRender 串联解析、场景构建与渲染。
func runRender(stdout io.Writer, inputPath string, f renderFlags) error {
	var data any
	if f.dataJSON != "" {
		if err := json.Unmarshal([]byte(f.dataJSON), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	format, err := resolveFormat(f.format, f.output)
	if err != nil {
		return err
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if f.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	s, err := scene.FromDocument(doc, scene.Options{
		Data:    data,
		BaseDir: filepath.Dir(inputPath),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("构建场景失败: %w", err)
	}

	r := newRenderer(format)
	if f.debug != "" {
		if err := writeDebug(s, r, f.debug); err != nil {
			return err
		}
	}

	out, err := r.Render(s)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}

	output := f.output
	if output == "" {
		if format == "term" {
			_, err := stdout.Write(out)
			return err
		}
		output = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	fmt.Fprintf(stdout, "已生成：%s\n", output)
	return nil
}

// resolveFormat 优先使用 --format，否则按输出扩展名推断，默认 pdf。
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		switch ext := strings.ToLower(filepath.Ext(output)); ext {
		case "":
			format = "pdf"
		case ".txt":
			format = "term"
		default:
			format = strings.TrimPrefix(ext, ".")
		}
	}
	switch format = strings.ToLower(format); format {
	case "pdf", "svg", "term":
		return format, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %s", format)
	}
}

type measuringRenderer interface {
	renderer.Renderer
	axis.TextMeasurer
}

func newRenderer(format string) measuringRenderer {
	switch format {
	case "term":
		return termrenderer.NewRenderer(termrenderer.Options{})
	default:
		f, _ := canvasrenderer.ParseFormat(format)
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: f})
	}
}

func writeDebug(s *scene.Scene, m axis.TextMeasurer, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := scene.WriteDebugJSON(s.Build(m), debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
