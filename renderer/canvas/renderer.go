package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/fonts"
	"github.com/ByLCY/axisplot/renderer"
	"github.com/ByLCY/axisplot/scene"
)

// Format 是输出文件格式。
type Format int

const (
	FormatPDF Format = iota
	FormatSVG
)

// ParseFormat 将 "pdf"/"svg" 映射为 Format。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "pdf":
		return FormatPDF, nil
	case "svg":
		return FormatSVG, nil
	default:
		return FormatPDF, fmt.Errorf("不支持的输出格式 %s", s)
	}
}

const (
	defaultStrokeWidth = 1.0 // px
	shadowOffset       = 1.0 // px，阴影向右下偏移
)

// Renderer draws scenes via github.com/tdewolff/canvas.
// 它同时实现 axis.TextMeasurer，保证字号搜索与最终绘制使用同一套字体度量。
type Renderer struct {
	format      Format
	strokeWidth float64

	fontMu   sync.Mutex
	families map[axis.Family]*canvas.FontFamily
	fontErr  error
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ axis.TextMeasurer = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Format      Format
	StrokeWidth float64 // 轴线与刻度的线宽（px），默认 1
}

// NewRenderer creates a PDF renderer with default options.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer for the given output format.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = defaultStrokeWidth
	}
	return &Renderer{
		format:      opts.Format,
		strokeWidth: opts.StrokeWidth,
		families:    map[axis.Family]*canvas.FontFamily{},
	}
}

// Render renders the scene into a PDF or SVG byte slice.
func (r *Renderer) Render(s *scene.Scene) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("场景尺寸无效：%dx%d", s.Width, s.Height)
	}

	w, h := toMm(float64(s.Width)), toMm(float64(s.Height))
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	// 默认坐标系即为左下角原点、y 轴向上，与轴布局的设备坐标一致
	ctx.SetCoordSystem(canvas.CartesianI)

	sink := &drawSink{r: r, ctx: ctx}
	s.Render(r, sink)
	if err := r.takeFontErr(); err != nil {
		return nil, err
	}
	if sink.err != nil {
		return nil, sink.err
	}

	var buf bytes.Buffer
	switch r.format {
	case FormatSVG:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		writer := pdf.New(&buf, w, h, nil)
		applyMeta(writer, s.Meta)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta scene.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// Measure 实现 axis.TextMeasurer，返回像素尺寸。高度取字体的上升部加下降部。
func (r *Renderer) Measure(text string, style axis.TextStyle, fontSize int) axis.Size {
	face, err := r.fontFace(style, float64(fontSize), style.Color)
	if err != nil {
		return axis.Size{}
	}
	m := face.Metrics()
	return axis.Size{
		W: toPx(face.TextWidth(text)),
		H: toPx(m.Ascent + m.Descent),
	}
}

// drawSink 把轴的图元画到 canvas 上下文中。
type drawSink struct {
	r   *Renderer
	ctx *canvas.Context
	err error
}

func (d *drawSink) DrawSegments(segments []axis.Segment) {
	d.ctx.SetStrokeColor(canvas.Black)
	d.ctx.SetStrokeWidth(toMm(d.r.strokeWidth))
	d.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	p := &canvas.Path{}
	for _, seg := range segments {
		p.MoveTo(toMm(seg.From.X), toMm(seg.From.Y))
		p.LineTo(toMm(seg.To.X), toMm(seg.To.Y))
	}
	d.ctx.DrawPath(0, 0, p)
}

func (d *drawSink) DrawText(t axis.TextRecord) {
	if d.err != nil || t.Text == "" {
		return
	}
	size := float64(t.FontSize)
	if t.Style.Shadow {
		shadow, err := d.r.fontFace(t.Style, size, axis.Color{})
		if err != nil {
			d.err = err
			return
		}
		d.drawLine(shadow, t, shadowOffset, -shadowOffset)
	}
	face, err := d.r.fontFace(t.Style, size, t.Style.Color)
	if err != nil {
		d.err = err
		return
	}
	d.drawLine(face, t, 0, 0)
}

// drawLine 根据对齐方式把锚点换算为基线位置后绘制单行文本。
func (d *drawSink) drawLine(face *canvas.FontFace, t axis.TextRecord, dx, dy float64) {
	var align canvas.TextAlign
	switch t.Justification.H {
	case axis.AlignLeft:
		align = canvas.Left
	case axis.AlignRight:
		align = canvas.Right
	default:
		align = canvas.Center
	}

	m := face.Metrics()
	x := toMm(t.Anchor.X + dx)
	y := toMm(t.Anchor.Y + dy)
	switch t.Justification.V {
	case axis.AlignTop:
		y -= m.Ascent
	case axis.AlignBottom:
		y += m.Descent
	default:
		y -= (m.Ascent - m.Descent) / 2
	}
	d.ctx.DrawText(x, y, canvas.NewTextLine(face, t.Text, align))
}

func (r *Renderer) fontFace(style axis.TextStyle, sizePt float64, col axis.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(style.Family)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromAxis(col), fontStyle(style), canvas.FontNormal), nil
}

// ensureFontFamily 加载并缓存字体族的四种字形。加载失败时回退到 sans，并记录错误供 Render 返回。
func (r *Renderer) ensureFontFamily(f axis.Family) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[f]; ok {
		return family, nil
	}
	family, err := loadFamily(f)
	if err != nil {
		if r.fontErr == nil {
			r.fontErr = err
		}
		if f == axis.FamilySans {
			return nil, err
		}
		if family, err = loadFamily(axis.FamilySans); err != nil {
			return nil, err
		}
	}
	r.families[f] = family
	return family, nil
}

func (r *Renderer) takeFontErr() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	err := r.fontErr
	r.fontErr = nil
	return err
}

func loadFamily(f axis.Family) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("axisplot-" + f.String())
	for _, v := range []struct {
		bold, italic bool
		style        canvas.FontStyle
	}{
		{false, false, canvas.FontRegular},
		{true, false, canvas.FontBold},
		{false, true, canvas.FontItalic},
		{true, true, canvas.FontBold | canvas.FontItalic},
	} {
		data, err := fonts.Load(f.String(), v.bold, v.italic)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, v.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", f, err)
		}
	}
	return family, nil
}

func fontStyle(s axis.TextStyle) canvas.FontStyle {
	style := canvas.FontRegular
	if s.Bold {
		style = canvas.FontBold
	}
	if s.Italic {
		style |= canvas.FontItalic
	}
	return style
}

func colorFromAxis(c axis.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
