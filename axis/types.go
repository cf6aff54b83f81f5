package axis

// 该文件定义轴布局结果，供渲染器与调试 JSON 共用。

// Point 是设备坐标中的点（像素，原点在左下角，y 轴向上）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 返回 p+q。
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale 返回 p*k。
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Lerp 在 p 与 q 之间按 t 线性插值。
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Size 表示文本或目标区域的宽高（像素）。
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Fits reports whether s fits inside target in both dimensions.
func (s Size) Fits(target Size) bool { return s.W <= target.W && s.H <= target.H }

// Segment 表示一条线段。
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// HAlign 是文本相对锚点的水平对齐。
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (h HAlign) String() string {
	switch h {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// MarshalText 使调试 JSON 输出可读的对齐名。
func (h HAlign) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// VAlign 是文本相对锚点的垂直对齐。
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (v VAlign) String() string {
	switch v {
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	default:
		return "middle"
	}
}

func (v VAlign) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Justification 组合水平与垂直对齐。
type Justification struct {
	H HAlign `json:"h"`
	V VAlign `json:"v"`
}

// TextRecord 是一个已经确定锚点、对齐和字号的文本。
type TextRecord struct {
	Text          string        `json:"text"`
	Anchor        Point         `json:"anchor"`
	Justification Justification `json:"justification"`
	FontSize      int           `json:"fontSize"`
	Extent        Size          `json:"extent"` // 该字号下测得的尺寸
	Style         TextStyle     `json:"style"`
}

// LabelRecord 在 TextRecord 的基础上记录刻度值。
type LabelRecord struct {
	TextRecord
	Value float64 `json:"value"`
}

// Orientation 描述轴在标签对齐意义上是横向还是纵向。
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// LayoutResult 保存一次构建的全部几何结果。每次重建都会生成新的值，不会原地修改旧结果。
type LayoutResult struct {
	Ticks       []Segment     `json:"ticks"`
	Labels      []LabelRecord `json:"labels"`
	Title       *TextRecord   `json:"title,omitempty"`
	Line        *Segment      `json:"line,omitempty"`
	Range       AdjustedRange `json:"range"`
	Orientation Orientation   `json:"orientation"`
	Theta       float64       `json:"theta"`
	Viewport    [2]int        `json:"viewport"`
}
