// Package termrenderer 在字符网格上预览场景，用于终端中快速检查轴的布局。
package termrenderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/renderer"
	"github.com/ByLCY/axisplot/scene"
)

// 默认每个字符单元对应 8×16 像素。
const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// Options configures the terminal renderer.
type Options struct {
	CellWidth  int  // 每个字符单元的像素宽度
	CellHeight int  // 每个字符单元的像素高度
	Palette16  bool // 将颜色映射到 16 色调色板
}

// Renderer 把场景画到 tcell 的模拟屏幕上，再导出为纯文本。
// 同时实现 axis.TextMeasurer：字号为 s 的字符占 s/2 × s 像素，与单元格的宽高比一致。
type Renderer struct {
	cellW, cellH int
	palette16    bool
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ axis.TextMeasurer = (*Renderer)(nil)
)

// NewRenderer creates a terminal renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.CellWidth <= 0 {
		opts.CellWidth = defaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = defaultCellHeight
	}
	return &Renderer{cellW: opts.CellWidth, cellH: opts.CellHeight, palette16: opts.Palette16}
}

// Measure 按显示宽度（东亚宽字符计 2）估算文本尺寸。
func (r *Renderer) Measure(text string, _ axis.TextStyle, fontSize int) axis.Size {
	cells := runewidth.StringWidth(text)
	s := float64(fontSize)
	return axis.Size{W: 0.5 * s * float64(cells), H: s}
}

// Render 返回场景的文本预览，行尾空白会被去掉。
func (r *Renderer) Render(s *scene.Scene) ([]byte, error) {
	screen, err := r.Draw(s)
	if err != nil {
		return nil, err
	}
	defer screen.Fini()

	cells, w, h := screen.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				// 宽字符的第二个单元
				continue
			}
			line.WriteString(string(c.Runes))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Draw 把场景画到新的模拟屏幕上。调用方负责 Fini。
func (r *Renderer) Draw(s *scene.Scene) (tcell.SimulationScreen, error) {
	if s == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("场景尺寸无效：%dx%d", s.Width, s.Height)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("初始化终端屏幕失败: %w", err)
	}
	cols := int(math.Ceil(float64(s.Width) / float64(r.cellW)))
	rows := int(math.Ceil(float64(s.Height) / float64(r.cellH)))
	screen.SetSize(cols, rows)
	screen.Clear()

	s.Render(r, &cellSink{r: r, screen: screen, cols: cols, rows: rows})
	screen.Show()
	return screen, nil
}

// cell 将像素坐标（左下角原点）换算为单元格坐标（左上角原点）。
func (r *Renderer) cell(p axis.Point, rows int) (int, int) {
	x := int(math.Floor(p.X / float64(r.cellW)))
	y := rows - 1 - int(math.Floor(p.Y/float64(r.cellH)))
	return x, y
}

func (r *Renderer) style(ts axis.TextStyle) tcell.Style {
	st := tcell.StyleDefault.Bold(ts.Bold).Italic(ts.Italic)
	if ts.Color == (axis.Color{}) {
		return st
	}
	return st.Foreground(r.color(ts.Color))
}

func (r *Renderer) color(c axis.Color) tcell.Color {
	if !r.palette16 {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return nearestPaletteColor(c)
}

// nearestPaletteColor 在 16 色调色板中按 CIE L*a*b* 距离选取最接近的颜色。
func nearestPaletteColor(c axis.Color) tcell.Color {
	want := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best, bestDist := tcell.ColorWhite, math.Inf(1)
	for i := 0; i < 16; i++ {
		pc := tcell.PaletteColor(i)
		pr, pg, pb := pc.RGB()
		cand := colorful.Color{R: float64(pr) / 255, G: float64(pg) / 255, B: float64(pb) / 255}
		if d := want.DistanceLab(cand); d < bestDist {
			best, bestDist = pc, d
		}
	}
	return best
}

// cellSink 在字符网格上绘制线段与文本。
type cellSink struct {
	r          *Renderer
	screen     tcell.Screen
	cols, rows int
}

func (c *cellSink) put(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.screen.SetContent(x, y, ch, nil, st)
}

func (c *cellSink) DrawSegments(segments []axis.Segment) {
	for _, seg := range segments {
		dx, dy := seg.To.X-seg.From.X, seg.To.Y-seg.From.Y
		ch := lineRune(dx, dy)
		step := float64(min(c.r.cellW, c.r.cellH)) / 2
		n := int(math.Ceil(math.Hypot(dx, dy)/step)) + 1
		for i := 0; i < n; i++ {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			x, y := c.r.cell(seg.From.Lerp(seg.To, t), c.rows)
			c.put(x, y, ch, tcell.StyleDefault)
		}
	}
}

func lineRune(dx, dy float64) rune {
	switch {
	case dx == 0 && dy == 0:
		return '·'
	case math.Abs(dy) <= math.Abs(dx)*0.4:
		return '─'
	case math.Abs(dx) <= math.Abs(dy)*0.4:
		return '│'
	case dx*dy > 0:
		return '/'
	default:
		return '\\'
	}
}

func (c *cellSink) DrawText(t axis.TextRecord) {
	width := runewidth.StringWidth(t.Text)
	if width == 0 {
		return
	}
	anchor := t.Anchor
	half := float64(c.r.cellH) / 2
	switch t.Justification.V {
	case axis.AlignTop:
		anchor.Y -= half
	case axis.AlignBottom:
		anchor.Y += half
	}
	x, y := c.r.cell(anchor, c.rows)
	switch t.Justification.H {
	case axis.AlignCenter:
		x -= width / 2
	case axis.AlignRight:
		x -= width
	}

	st := c.r.style(t.Style)
	for _, ch := range t.Text {
		c.put(x, y, ch, st)
		x += runewidth.RuneWidth(ch)
	}
}
