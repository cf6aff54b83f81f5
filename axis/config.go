package axis

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// 配置项的取值范围。
const (
	MinTickLength = 0
	MaxTickLength = 100
	MinFactor     = 0.1
	MaxFactor     = 2.0
)

// Config 是轴的全部可配置项。通过 Configure 或各个 Set 方法写入，越界值会被截断而不是拒绝。
type Config struct {
	Point1          Coordinate
	Point2          Coordinate
	Range           [2]float64
	NumberOfLabels  int
	LabelFormat     string
	AdjustLabels    bool
	FontFactor      float64
	LabelFactor     float64
	TickLength      int
	TickOffset      int
	AxisVisibility  bool
	TickVisibility  bool
	LabelVisibility bool
	TitleVisibility bool
	Title           string
	TitleStyle      TextStyle
	LabelStyle      TextStyle
}

// DefaultConfig 返回新轴的初始配置。
func DefaultConfig() Config {
	return Config{
		Point1:          Normalized(0, 0),
		Point2:          Normalized(0.75, 0),
		Range:           [2]float64{0, 1},
		NumberOfLabels:  5,
		LabelFormat:     "%g",
		AdjustLabels:    true,
		FontFactor:      1,
		LabelFactor:     0.75,
		TickLength:      5,
		TickOffset:      2,
		AxisVisibility:  true,
		TickVisibility:  true,
		LabelVisibility: true,
		TitleVisibility: true,
		TitleStyle:      TextStyle{Bold: true, Italic: true, Shadow: true},
		LabelStyle:      TextStyle{Bold: true, Italic: true, Shadow: true},
	}
}

// field 标识一个配置项，用于脏位集合。
type field uint

const (
	fieldPoint1 field = iota
	fieldPoint2
	fieldRange
	fieldNumberOfLabels
	fieldLabelFormat
	fieldAdjustLabels
	fieldFontFactor
	fieldLabelFactor
	fieldTickLength
	fieldTickOffset
	fieldAxisVisibility
	fieldTickVisibility
	fieldLabelVisibility
	fieldTitleVisibility
	fieldTitle
	fieldTitleStyle
	fieldLabelStyle
	fieldCount
)

// titleOnly 是只影响标题的配置项集合。
var titleOnly = func() *bitset.BitSet {
	var b bitset.BitSet
	b.Set(uint(fieldTitle)).Set(uint(fieldTitleStyle)).Set(uint(fieldTitleVisibility))
	return &b
}()

// rangeInputs 是影响调整后范围的配置项。
var rangeInputs = func() *bitset.BitSet {
	var b bitset.BitSet
	b.Set(uint(fieldRange)).Set(uint(fieldNumberOfLabels)).Set(uint(fieldAdjustLabels))
	return &b
}()

// Axis 描述一条二维坐标轴：两个端点、数值范围、刻度与标签、标题。
// Axis 只属于一个调用方，不做并发保护。
type Axis struct {
	cfg Config

	gen   uint64        // 每次配置变化递增
	dirty bitset.BitSet // 上次构建之后变化过的配置项

	adjusted   AdjustedRange
	rangeStale bool

	cache  buildCache
	result *LayoutResult

	logger *slog.Logger

	// 测试中用于统计调用次数
	computeRange func(in [2]float64, ticks int) ([2]float64, int, float64)
	fitFonts     func(texts []string, targets []Size, factor float64, style TextStyle, m TextMeasurer) (int, []Size)
}

// Option 配置 Axis 的可选依赖。
type Option func(*Axis)

// WithLogger 设置调试日志输出；默认丢弃。
func WithLogger(l *slog.Logger) Option {
	return func(a *Axis) {
		if l != nil {
			a.logger = l
		}
	}
}

// New 创建使用默认配置的轴。
func New(opts ...Option) *Axis {
	a := &Axis{
		cfg:          DefaultConfig(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		computeRange: ComputeRange,
		fitFonts:     FitFontSizes,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.gen = 1
	a.rangeStale = true
	for f := field(0); f < fieldCount; f++ {
		a.dirty.Set(uint(f))
	}
	return a
}

// Configure 通过各个 setter 应用整份配置，返回截断后的实际配置。
func (a *Axis) Configure(c Config) Config {
	a.SetPoint1(c.Point1)
	a.SetPoint2(c.Point2)
	a.SetRange(c.Range[0], c.Range[1])
	a.SetNumberOfLabels(c.NumberOfLabels)
	a.SetLabelFormat(c.LabelFormat)
	a.SetAdjustLabels(c.AdjustLabels)
	a.SetFontFactor(c.FontFactor)
	a.SetLabelFactor(c.LabelFactor)
	a.SetTickLength(c.TickLength)
	a.SetTickOffset(c.TickOffset)
	a.SetAxisVisibility(c.AxisVisibility)
	a.SetTickVisibility(c.TickVisibility)
	a.SetLabelVisibility(c.LabelVisibility)
	a.SetTitleVisibility(c.TitleVisibility)
	a.SetTitle(c.Title)
	a.SetTitleStyle(c.TitleStyle)
	a.SetLabelStyle(c.LabelStyle)
	return a.cfg
}

// Config 返回当前配置的副本。
func (a *Axis) Config() Config { return a.cfg }

// Generation 返回配置版本号，每次有效修改都会递增。
func (a *Axis) Generation() uint64 { return a.gen }

func (a *Axis) touch(f field) {
	a.gen++
	a.dirty.Set(uint(f))
	if rangeInputs.Test(uint(f)) {
		a.rangeStale = true
	}
}

func (a *Axis) SetPoint1(c Coordinate) Coordinate {
	if a.cfg.Point1 != c {
		a.cfg.Point1 = c
		a.touch(fieldPoint1)
	}
	return a.cfg.Point1
}

func (a *Axis) SetPoint2(c Coordinate) Coordinate {
	if a.cfg.Point2 != c {
		a.cfg.Point2 = c
		a.touch(fieldPoint2)
	}
	return a.cfg.Point2
}

// SetRange 设置数值范围，允许 min > max（反向轴）。
func (a *Axis) SetRange(min, max float64) [2]float64 {
	r := [2]float64{min, max}
	if a.cfg.Range != r {
		a.cfg.Range = r
		a.touch(fieldRange)
	}
	return a.cfg.Range
}

// SetNumberOfLabels 截断到 [2, 25]。
func (a *Axis) SetNumberOfLabels(n int) int {
	n = clampInt(n, MinLabels, MaxLabels)
	if a.cfg.NumberOfLabels != n {
		a.cfg.NumberOfLabels = n
		a.touch(fieldNumberOfLabels)
	}
	return n
}

// SetLabelFormat 设置 printf 风格的标签格式；格式是否合法由调用方负责。
func (a *Axis) SetLabelFormat(format string) string {
	if a.cfg.LabelFormat != format {
		a.cfg.LabelFormat = format
		a.touch(fieldLabelFormat)
	}
	return format
}

func (a *Axis) SetAdjustLabels(on bool) bool {
	if a.cfg.AdjustLabels != on {
		a.cfg.AdjustLabels = on
		a.touch(fieldAdjustLabels)
	}
	return on
}

// SetFontFactor 截断到 [0.1, 2.0]。
func (a *Axis) SetFontFactor(f float64) float64 {
	f = clampFloat(f, MinFactor, MaxFactor)
	if a.cfg.FontFactor != f {
		a.cfg.FontFactor = f
		a.touch(fieldFontFactor)
	}
	return f
}

// SetLabelFactor 截断到 [0.1, 2.0]。
func (a *Axis) SetLabelFactor(f float64) float64 {
	f = clampFloat(f, MinFactor, MaxFactor)
	if a.cfg.LabelFactor != f {
		a.cfg.LabelFactor = f
		a.touch(fieldLabelFactor)
	}
	return f
}

// SetTickLength 截断到 [0, 100] 像素。
func (a *Axis) SetTickLength(px int) int {
	px = clampInt(px, MinTickLength, MaxTickLength)
	if a.cfg.TickLength != px {
		a.cfg.TickLength = px
		a.touch(fieldTickLength)
	}
	return px
}

// SetTickOffset 截断到 [0, 100] 像素。
func (a *Axis) SetTickOffset(px int) int {
	px = clampInt(px, MinTickLength, MaxTickLength)
	if a.cfg.TickOffset != px {
		a.cfg.TickOffset = px
		a.touch(fieldTickOffset)
	}
	return px
}

func (a *Axis) SetAxisVisibility(on bool) bool {
	return a.setFlag(&a.cfg.AxisVisibility, on, fieldAxisVisibility)
}

func (a *Axis) SetTickVisibility(on bool) bool {
	return a.setFlag(&a.cfg.TickVisibility, on, fieldTickVisibility)
}

func (a *Axis) SetLabelVisibility(on bool) bool {
	return a.setFlag(&a.cfg.LabelVisibility, on, fieldLabelVisibility)
}

func (a *Axis) SetTitleVisibility(on bool) bool {
	return a.setFlag(&a.cfg.TitleVisibility, on, fieldTitleVisibility)
}

func (a *Axis) setFlag(dst *bool, on bool, f field) bool {
	if *dst != on {
		*dst = on
		a.touch(f)
	}
	return on
}

func (a *Axis) SetTitle(title string) string {
	if a.cfg.Title != title {
		a.cfg.Title = title
		a.touch(fieldTitle)
	}
	return title
}

func (a *Axis) SetTitleStyle(s TextStyle) TextStyle {
	if a.cfg.TitleStyle != s {
		a.cfg.TitleStyle = s
		a.touch(fieldTitleStyle)
	}
	return s
}

func (a *Axis) SetLabelStyle(s TextStyle) TextStyle {
	if a.cfg.LabelStyle != s {
		a.cfg.LabelStyle = s
		a.touch(fieldLabelStyle)
	}
	return s
}

// AdjustedRange 返回调整后的范围；仅在 Range、NumberOfLabels、AdjustLabels 变化后重新计算。
func (a *Axis) AdjustedRange() AdjustedRange {
	a.updateAdjustedRange()
	return a.adjusted
}

// AdjustedNumberOfLabels 返回调整后的标签数量。
func (a *Axis) AdjustedNumberOfLabels() int {
	a.updateAdjustedRange()
	return a.adjusted.Labels
}

func (a *Axis) updateAdjustedRange() {
	if !a.rangeStale {
		return
	}
	cfg := a.cfg
	if cfg.AdjustLabels {
		out, n, interval := a.computeRange(cfg.Range, cfg.NumberOfLabels)
		if out[0] > out[1] {
			interval = -interval
		}
		a.adjusted = AdjustedRange{Min: out[0], Max: out[1], Labels: n, Interval: interval}
	} else {
		a.adjusted = rawRange(cfg.Range, cfg.NumberOfLabels)
	}
	a.rangeStale = false
}

// ShallowCopy 复制 other 的全部配置；缓存与上次的构建结果不复制。
func (a *Axis) ShallowCopy(other *Axis) {
	if other == nil || other == a {
		return
	}
	a.Configure(other.cfg)
}

// String 输出配置摘要，便于日志与调试。
func (a *Axis) String() string {
	c := a.cfg
	var sb strings.Builder
	fmt.Fprintf(&sb, "Axis{point1=%s point2=%s", c.Point1, c.Point2)
	fmt.Fprintf(&sb, " range=[%g, %g] labels=%d format=%q adjust=%t", c.Range[0], c.Range[1], c.NumberOfLabels, c.LabelFormat, c.AdjustLabels)
	fmt.Fprintf(&sb, " fontFactor=%g labelFactor=%g tickLength=%d tickOffset=%d", c.FontFactor, c.LabelFactor, c.TickLength, c.TickOffset)
	fmt.Fprintf(&sb, " visible(axis=%t ticks=%t labels=%t title=%t) title=%q}", c.AxisVisibility, c.TickVisibility, c.LabelVisibility, c.TitleVisibility, c.Title)
	return sb.String()
}
