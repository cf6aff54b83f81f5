// Package scene 把解析后的 .axis 文档（以及可选的 JSON 数据）转换为一组配置好的坐标轴。
package scene

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/dsl"
)

// Options 配置场景构建所需的外部输入。
type Options struct {
	Data    any          // JSON 解码后的数据，用于 ${path} 插值
	BaseDir string       // 解析 range-from 中相对路径的目录
	Logger  *slog.Logger // 为空时不输出日志
}

// Meta 是文档的元数据，写入 PDF 信息字典。
type Meta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Resources 保存 resources 段中声明的颜色与文本样式。
type Resources struct {
	Colors map[string]axis.Color `json:"colors"`
	Styles map[string]Style      `json:"styles"`
}

// Style 是一组尚未应用的文本属性，可以通过 extends 继承。
type Style struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// Entry 是场景中一条具名的轴。
type Entry struct {
	Name string
	Axis *axis.Axis
}

// Layout 是某条轴的构建结果。
type Layout struct {
	Name   string             `json:"name"`
	Result *axis.LayoutResult `json:"result"`
}

// Scene 是一个视口及放置在其中的全部坐标轴。
type Scene struct {
	Name      string
	Version   string
	Width     int
	Height    int
	Meta      Meta
	Resources Resources
	Axes      []Entry

	logger *slog.Logger
}

// Frame 返回场景尺寸的视口，文本测量委托给 m。
func (s *Scene) Frame(m axis.TextMeasurer) *axis.Frame {
	return axis.NewFrame(s.Width, s.Height, m)
}

// Axis 按名称查找轴。
func (s *Scene) Axis(name string) *axis.Axis {
	for _, e := range s.Axes {
		if e.Name == name {
			return e.Axis
		}
	}
	return nil
}

// Build 依次构建所有轴的布局。
func (s *Scene) Build(m axis.TextMeasurer) []Layout {
	vp := s.Frame(m)
	out := make([]Layout, 0, len(s.Axes))
	for _, e := range s.Axes {
		out = append(out, Layout{Name: e.Name, Result: e.Axis.Build(vp)})
	}
	return out
}

// Render 先绘制所有轴的几何图元，再绘制全部文本，返回图元总数。
func (s *Scene) Render(m axis.TextMeasurer, sink axis.Sink) int {
	vp := s.Frame(m)
	total := 0
	for _, e := range s.Axes {
		total += e.Axis.RenderOpaqueGeometry(vp, sink)
	}
	for _, e := range s.Axes {
		total += e.Axis.RenderOverlay(vp, sink)
	}
	s.logger.Debug("scene rendered", "scene", s.Name, "primitives", total)
	return total
}

// FromDocument 根据文档构建场景。文档必须包含一个 viewport 段。
func FromDocument(doc *dsl.Document, opts Options) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	section := firstViewport(doc)
	if section == nil {
		return nil, fmt.Errorf("文档中缺少 viewport 段落")
	}
	w, h, err := viewportSize(section.Params)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:      doc.Name,
		Version:   doc.Version,
		Width:     w,
		Height:    h,
		Meta:      collectMeta(doc, opts.Data),
		Resources: res,
		logger:    logger,
	}

	b := &axisBuilder{res: res, data: opts.Data, baseDir: opts.BaseDir}
	seen := map[string]bool{}
	if section.Block != nil {
		for _, stmt := range section.Block.Statements {
			if stmt.Command == nil || stmt.Command.Name != "axis" {
				continue
			}
			name := fmt.Sprintf("axis%d", len(s.Axes)+1)
			if len(stmt.Command.Args) > 0 {
				name = stmt.Command.Args[0].Value
			}
			if seen[name] {
				return nil, fmt.Errorf("轴 %s 重复定义", name)
			}
			seen[name] = true

			cfg, err := b.config(stmt.Command.Block)
			if err != nil {
				return nil, fmt.Errorf("轴 %s: %w", name, err)
			}
			a := axis.New(axis.WithLogger(logger.With("axis", name)))
			a.Configure(cfg)
			s.Axes = append(s.Axes, Entry{Name: name, Axis: a})
		}
	}
	if len(s.Axes) == 0 {
		return nil, fmt.Errorf("viewport 中没有定义任何 axis")
	}
	logger.Debug("scene built", "scene", s.Name, "axes", len(s.Axes), "width", w, "height", h)
	return s, nil
}

func firstViewport(doc *dsl.Document) *dsl.ViewportSection {
	for _, section := range doc.Sections {
		if section.Viewport != nil {
			return section.Viewport
		}
	}
	return nil
}

func viewportSize(params []*dsl.Lexeme) (int, int, error) {
	if len(params) < 2 {
		return 0, 0, fmt.Errorf("viewport 需要宽和高，例如 viewport 400 300")
	}
	w, err := parsePixels(params[0].Value)
	if err != nil {
		return 0, 0, fmt.Errorf("viewport 宽度: %w", err)
	}
	h, err := parsePixels(params[1].Value)
	if err != nil {
		return 0, 0, fmt.Errorf("viewport 高度: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("viewport 尺寸必须为正数：%dx%d", w, h)
	}
	return w, h, nil
}

func collectMeta(doc *dsl.Document, data any) Meta {
	meta := Meta{Creator: "axisplot"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			val := interpolated(stmt.Assignment.Value, data)
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = val
			case "author":
				meta.Author = val
			case "subject":
				meta.Subject = val
			case "creator":
				meta.Creator = val
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	return meta
}
