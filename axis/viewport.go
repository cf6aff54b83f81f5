package axis

import (
	"fmt"
	"math"
)

// CoordinateSystem 标识 Point1/Point2 的坐标系。
type CoordinateSystem int

const (
	// NormalizedViewport 以视口宽高为 1 的归一化坐标。
	NormalizedViewport CoordinateSystem = iota
	// Display 为像素坐标，原点在左下角。
	Display
)

func (s CoordinateSystem) String() string {
	if s == Display {
		return "display"
	}
	return "normalized-viewport"
}

// Coordinate 是带坐标系的逻辑点。
type Coordinate struct {
	System CoordinateSystem `json:"system"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
}

// Normalized 构造归一化视口坐标。
func Normalized(x, y float64) Coordinate { return Coordinate{System: NormalizedViewport, X: x, Y: y} }

// Pixels 构造像素坐标。
func Pixels(x, y float64) Coordinate { return Coordinate{System: Display, X: x, Y: y} }

func (c Coordinate) String() string {
	return fmt.Sprintf("%s(%g, %g)", c.System, c.X, c.Y)
}

// Family 是字体族，对应 sans / mono / serif 三套内置字体。
type Family int

const (
	FamilySans Family = iota
	FamilyMono
	FamilySerif
)

func (f Family) String() string {
	switch f {
	case FamilyMono:
		return "mono"
	case FamilySerif:
		return "serif"
	default:
		return "sans"
	}
}

func (f Family) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// ParseFamily 将名称映射为字体族，未知名称回退到 sans。
func ParseFamily(name string) Family {
	switch name {
	case "mono", "courier", "Courier":
		return FamilyMono
	case "serif", "times", "Times":
		return FamilySerif
	default:
		return FamilySans
	}
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// TextStyle 描述标题或标签的文本属性。
type TextStyle struct {
	Family Family `json:"family"`
	Bold   bool   `json:"bold"`
	Italic bool   `json:"italic"`
	Shadow bool   `json:"shadow"`
	Color  Color  `json:"color"`
}

// TextMeasurer 测量给定字号下文本的像素尺寸。
// 实现必须对字号单调不减：更大的字号不会得到更小的宽或高。
type TextMeasurer interface {
	Measure(text string, style TextStyle, fontSize int) Size
}

// Viewport resolves logical coordinates to device pixels and measures text.
type Viewport interface {
	TextMeasurer
	ToDevice(c Coordinate) Point
	PixelSize() (w, h int)
}

// Frame 是固定像素尺寸的视口实现。
type Frame struct {
	Width    int
	Height   int
	Measurer TextMeasurer
}

var _ Viewport = (*Frame)(nil)

// NewFrame 创建 w×h 像素的视口，文本测量委托给 m。
func NewFrame(w, h int, m TextMeasurer) *Frame {
	return &Frame{Width: w, Height: h, Measurer: m}
}

// ToDevice 将逻辑坐标换算为像素坐标，结果四舍五入到整数像素。
func (f *Frame) ToDevice(c Coordinate) Point {
	switch c.System {
	case Display:
		return Point{X: math.Round(c.X), Y: math.Round(c.Y)}
	default:
		return Point{
			X: math.Round(c.X * float64(f.Width)),
			Y: math.Round(c.Y * float64(f.Height)),
		}
	}
}

func (f *Frame) PixelSize() (int, int) { return f.Width, f.Height }

func (f *Frame) Measure(text string, style TextStyle, fontSize int) Size {
	if f.Measurer == nil {
		return Size{}
	}
	return f.Measurer.Measure(text, style, fontSize)
}
