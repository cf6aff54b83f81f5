package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 目标框的分配比例，均相对于视口短边。
const (
	labelDepthRatio   = 0.05 // 横向轴：标签高度
	labelBreadthRatio = 0.2  // 纵向轴：标签宽度
	titleDepthRatio   = 0.08 // 标题高度
	titleBreadthRatio = 0.3  // 纵向轴：标题宽度
)

// Build 计算轴在视口中的布局。输入（端点、视口尺寸、配置版本）不变时直接返回上次的结果。
func (a *Axis) Build(vp Viewport) *LayoutResult {
	p1 := vp.ToDevice(a.cfg.Point1)
	p2 := vp.ToDevice(a.cfg.Point2)
	w, h := vp.PixelSize()
	size := [2]int{w, h}

	if a.result != nil && a.cache.fresh(p1, p2, size, a.gen) {
		a.logger.Debug("axis layout cache hit", "generation", a.gen)
		return a.result
	}

	// 只改了标题时沿用刻度与标签，只重新排标题
	titleOnlyChange := a.result != nil &&
		a.cache.sameGeometry(p1, p2, size) &&
		titleOnly.IsSuperSet(&a.dirty)

	a.updateAdjustedRange()
	cfg := a.cfg

	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	theta := math.Atan2(dy, dx)
	g := geometry{
		p1:      p1,
		p2:      p2,
		length:  math.Hypot(dx, dy),
		theta:   theta,
		orient:  classify(dx, dy),
		perp:    perpendicular(theta),
		minSide: float64(min(w, h)),
	}

	res := &LayoutResult{
		Range:       a.adjusted,
		Orientation: g.orient,
		Theta:       theta,
		Viewport:    size,
	}

	next := buildCache{
		valid:  true,
		gen:    a.gen,
		point1: p1,
		point2: p2,
		size:   size,
	}

	if titleOnlyChange {
		prev := a.result
		res.Ticks = append([]Segment(nil), prev.Ticks...)
		res.Labels = append([]LabelRecord(nil), prev.Labels...)
		if prev.Line != nil {
			line := *prev.Line
			res.Line = &line
		}
		next.labelFontSize = a.cache.labelFontSize
		next.labelBand = a.cache.labelBand
		a.logger.Debug("axis title rebuild", "generation", a.gen)
	} else {
		next.labelFontSize, next.labelBand = a.buildTicksAndLabels(res, g, vp)
		a.logger.Debug("axis rebuild",
			"generation", a.gen,
			"labels", a.adjusted.Labels,
			"labelFontSize", next.labelFontSize,
			"orientation", g.orient.String())
	}

	if cfg.TitleVisibility && cfg.Title != "" {
		res.Title = a.buildTitle(g, next.labelBand, vp)
		next.titleFontSize = res.Title.FontSize
	}

	a.cache = next
	a.result = res
	a.dirty.ClearAll()
	return res
}

// geometry 是一次构建中不变的轴几何量。
type geometry struct {
	p1, p2  Point
	length  float64
	theta   float64
	orient  Orientation
	perp    Point
	minSide float64
}

// buildTicksAndLabels 生成轴线、刻度与标签，返回标签字号与标签带宽度。
func (a *Axis) buildTicksAndLabels(res *LayoutResult, g geometry, vp Viewport) (int, float64) {
	cfg := a.cfg
	ar := a.adjusted
	n := ar.Labels

	if cfg.AxisVisibility {
		res.Line = &Segment{From: g.p1, To: g.p2}
	}

	tickLen := float64(cfg.TickLength)
	positions := make([]Point, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		positions[i] = g.p1.Lerp(g.p2, t)
		values[i] = tickValue(ar, i)
		if cfg.TickVisibility {
			res.Ticks = append(res.Ticks, Segment{
				From: positions[i],
				To:   positions[i].Add(g.perp.Scale(tickLen)),
			})
		}
	}

	if !cfg.LabelVisibility {
		return 0, 0
	}

	texts := make([]string, n)
	for i, v := range values {
		texts[i] = formatLabel(cfg.LabelFormat, v)
	}
	slot := g.length / float64(n)
	target := Size{W: slot, H: labelDepthRatio * g.minSide}
	if g.orient == Vertical {
		target = Size{W: labelBreadthRatio * g.minSide, H: slot}
	}
	fontSize, extents := a.fitFonts(texts, []Size{target}, cfg.FontFactor*cfg.LabelFactor, cfg.LabelStyle, vp)

	band := 0.0
	res.Labels = make([]LabelRecord, n)
	for i := range texts {
		off := stringOffset(extents[i].W, extents[i].H, g.theta)
		band = math.Max(band, off)
		center := positions[i].Add(g.perp.Scale(tickLen + float64(cfg.TickOffset) + off/2))
		anchor, j := justify(center, extents[i], g.orient, g.perp)
		res.Labels[i] = LabelRecord{
			TextRecord: TextRecord{
				Text:          texts[i],
				Anchor:        anchor,
				Justification: j,
				FontSize:      fontSize,
				Extent:        extents[i],
				Style:         cfg.LabelStyle,
			},
			Value: values[i],
		}
	}
	return fontSize, band + float64(cfg.TickOffset)
}

// buildTitle 将标题放在轴中点外侧，越过刻度与标签带。
func (a *Axis) buildTitle(g geometry, labelBand float64, vp Viewport) *TextRecord {
	cfg := a.cfg
	target := Size{W: g.length, H: titleDepthRatio * g.minSide}
	if g.orient == Vertical {
		target = Size{W: titleBreadthRatio * g.minSide, H: titleDepthRatio * g.minSide}
	}
	fontSize, extents := a.fitFonts([]string{cfg.Title}, []Size{target}, cfg.FontFactor, cfg.TitleStyle, vp)
	extent := extents[0]

	dist := float64(cfg.TickLength + cfg.TickOffset)
	if cfg.LabelVisibility {
		dist += labelBand
	}
	dist += stringOffset(extent.W, extent.H, g.theta) / 2

	mid := g.p1.Lerp(g.p2, 0.5)
	anchor, j := justify(mid.Add(g.perp.Scale(dist)), extent, g.orient, g.perp)
	return &TextRecord{
		Text:          cfg.Title,
		Anchor:        anchor,
		Justification: j,
		FontSize:      fontSize,
		Extent:        extent,
		Style:         cfg.TitleStyle,
	}
}

// tickValue 返回第 i 个刻度的数值，去掉插值带来的尾差（0.30000000000000004 → 0.3）。
func tickValue(ar AdjustedRange, i int) float64 {
	v := ar.Min + (ar.Max-ar.Min)*float64(i)/float64(ar.Labels-1)
	if math.Abs(v) < math.Abs(ar.Max-ar.Min)*1e-12 {
		return 0
	}
	clean, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return clean
}

// formatLabel 按 printf 格式输出刻度值并去掉格式带来的填充空格。
func formatLabel(format string, v float64) string {
	if format == "" {
		format = "%g"
	}
	return strings.TrimSpace(fmt.Sprintf(format, v))
}
