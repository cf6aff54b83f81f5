package axis

import "unicode/utf8"

// stubMeasurer 是测试用的等宽测量器：宽度 = 0.6 × 字号 × 字符数，高度 = 字号。
type stubMeasurer struct {
	calls   int
	byText  map[string]int
	advance float64
}

func newStubMeasurer() *stubMeasurer {
	return &stubMeasurer{byText: map[string]int{}, advance: 0.6}
}

func (m *stubMeasurer) Measure(text string, style TextStyle, size int) Size {
	m.calls++
	m.byText[text]++
	n := float64(utf8.RuneCountInString(text))
	w := m.advance * float64(size) * n
	if style.Bold {
		w *= 1.1
	}
	return Size{W: w, H: float64(size)}
}

// recordingSink 记录收到的图元。
type recordingSink struct {
	segments []Segment
	texts    []TextRecord
}

func (s *recordingSink) DrawSegments(segments []Segment) {
	s.segments = append(s.segments, segments...)
}

func (s *recordingSink) DrawText(t TextRecord) { s.texts = append(s.texts, t) }

// countingAxis 创建一个统计 ComputeRange 与字号搜索调用次数的轴。
func countingAxis() (*Axis, *int, *int) {
	a := New()
	ranges, fits := 0, 0
	a.computeRange = func(in [2]float64, ticks int) ([2]float64, int, float64) {
		ranges++
		return ComputeRange(in, ticks)
	}
	a.fitFonts = func(texts []string, targets []Size, factor float64, style TextStyle, m TextMeasurer) (int, []Size) {
		fits++
		return FitFontSizes(texts, targets, factor, style, m)
	}
	return a, &ranges, &fits
}
