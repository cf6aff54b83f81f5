package axis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func horizontalAxis(a *Axis) {
	a.Configure(Config{
		Point1:          Pixels(10, 10),
		Point2:          Pixels(110, 10),
		Range:           [2]float64{0, 100},
		NumberOfLabels:  6,
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
		Title:           "Latency",
	})
}

func TestBuildHorizontalAxis(t *testing.T) {
	a := New()
	horizontalAxis(a)
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Equal(t, Horizontal, res.Orientation)
	require.Len(t, res.Ticks, 6)
	require.Len(t, res.Labels, 6)
	require.NotNil(t, res.Line)
	assert.Equal(t, Segment{From: Point{10, 10}, To: Point{110, 10}}, *res.Line)

	wantText := []string{"0", "20", "40", "60", "80", "100"}
	for i, tick := range res.Ticks {
		x := 10 + 20*float64(i)
		assert.InDelta(t, x, tick.From.X, 1e-9)
		assert.InDelta(t, 10, tick.From.Y, 1e-9)
		// 刻度朝下（从左到右时的右手侧）
		assert.InDelta(t, x, tick.To.X, 1e-9)
		assert.InDelta(t, 5, tick.To.Y, 1e-9)

		l := res.Labels[i]
		assert.Equal(t, wantText[i], l.Text)
		assert.InDelta(t, x, l.Anchor.X, 1e-9)
		assert.Less(t, l.Anchor.Y, 5.0, "label %d should sit below the tick", i)
		assert.Equal(t, Justification{H: AlignCenter, V: AlignTop}, l.Justification)
		assert.Equal(t, res.Labels[0].FontSize, l.FontSize)
	}

	require.NotNil(t, res.Title)
	assert.Equal(t, "Latency", res.Title.Text)
	assert.InDelta(t, 60, res.Title.Anchor.X, 1e-9)
	assert.Less(t, res.Title.Anchor.Y, res.Labels[0].Anchor.Y-res.Labels[0].Extent.H)
}

func TestBuildLabelsFollowFormat(t *testing.T) {
	a := New()
	horizontalAxis(a)
	a.SetLabelFormat("%6.1f ms")
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))
	assert.Equal(t, "0.0 ms", res.Labels[0].Text)
	assert.Equal(t, "100.0 ms", res.Labels[5].Text)
}

func TestBuildAdjustsRange(t *testing.T) {
	a := New()
	horizontalAxis(a)
	a.SetRange(0.25, 96.7)
	a.SetNumberOfLabels(10)
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Len(t, res.Ticks, 11)
	assert.Equal(t, 11, a.AdjustedNumberOfLabels())
	assert.Equal(t, AdjustedRange{Min: 0, Max: 100, Labels: 11, Interval: 10}, a.AdjustedRange())
	for i, l := range res.Labels {
		assert.InDelta(t, float64(i)*10, l.Value, 1e-9)
	}
	assert.Equal(t, "30", res.Labels[3].Text)
}

func TestBuildWithoutAdjustment(t *testing.T) {
	a := New()
	horizontalAxis(a)
	a.SetRange(0.25, 96.7)
	a.SetAdjustLabels(false)
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Len(t, res.Labels, 6)
	assert.Equal(t, 0.25, res.Labels[0].Value)
	assert.InDelta(t, 96.7, res.Labels[5].Value, 1e-9)
}

func TestBuildCacheHit(t *testing.T) {
	a, ranges, fits := countingAxis()
	horizontalAxis(a)
	m := newStubMeasurer()
	vp := NewFrame(200, 200, m)

	first := a.Build(vp)
	require.Equal(t, 1, *ranges)
	require.Equal(t, 2, *fits) // 标签 + 标题
	calls := m.calls

	second := a.Build(vp)
	assert.Same(t, first, second)
	assert.Equal(t, 1, *ranges)
	assert.Equal(t, 2, *fits)
	assert.Equal(t, calls, m.calls)

	// 等价的新视口同样命中缓存
	third := a.Build(NewFrame(200, 200, m))
	assert.Same(t, first, third)
}

func TestBuildSetterWithSameValueKeepsCache(t *testing.T) {
	a, _, fits := countingAxis()
	horizontalAxis(a)
	vp := NewFrame(200, 200, newStubMeasurer())
	first := a.Build(vp)
	gen := a.Generation()

	a.SetTitle("Latency")
	a.SetNumberOfLabels(6)
	assert.Equal(t, gen, a.Generation())
	assert.Same(t, first, a.Build(vp))
	assert.Equal(t, 2, *fits)
}

func TestBuildTitleChangeKeepsTicksAndLabels(t *testing.T) {
	a, ranges, fits := countingAxis()
	horizontalAxis(a)
	m := newStubMeasurer()
	vp := NewFrame(200, 200, m)

	first := a.Build(vp)
	labelMeasures := m.byText["100"]
	a.SetTitle("Throughput")
	second := a.Build(vp)

	require.NotSame(t, first, second)
	assert.Equal(t, first.Ticks, second.Ticks)
	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Line, second.Line)
	assert.Equal(t, "Throughput", second.Title.Text)
	assert.Equal(t, "Latency", first.Title.Text, "previous result must not be mutated")

	assert.Equal(t, 1, *ranges)
	assert.Equal(t, 3, *fits) // 只重新搜索了标题字号
	assert.Equal(t, labelMeasures, m.byText["100"], "labels must not be measured again")
}

func TestBuildRangeChangeRebuildsEverything(t *testing.T) {
	a, ranges, fits := countingAxis()
	horizontalAxis(a)
	vp := NewFrame(200, 200, newStubMeasurer())

	first := a.Build(vp)
	a.SetRange(0, 10)
	second := a.Build(vp)

	assert.Equal(t, 2, *ranges)
	assert.Equal(t, 4, *fits)
	assert.NotEqual(t, first.Labels[1].Text, second.Labels[1].Text)
	assert.Equal(t, "2", second.Labels[1].Text)
	assert.NotSame(t, first.Title, second.Title)
}

func TestBuildPointChangeRebuildsEverything(t *testing.T) {
	a, ranges, fits := countingAxis()
	horizontalAxis(a)
	vp := NewFrame(200, 200, newStubMeasurer())

	first := a.Build(vp)
	a.SetPoint2(Pixels(190, 10))
	second := a.Build(vp)

	// 范围输入没变，不需要重新取整
	assert.Equal(t, 1, *ranges)
	assert.Equal(t, 4, *fits)
	assert.NotEqual(t, first.Ticks, second.Ticks)
	assert.InDelta(t, 190, second.Ticks[5].From.X, 1e-9)
	assert.InDelta(t, 100, second.Title.Anchor.X, 1e-9)
}

func TestBuildViewportResizeRebuilds(t *testing.T) {
	a, _, fits := countingAxis()
	a.SetPoint1(Normalized(0.1, 0.1))
	a.SetPoint2(Normalized(0.9, 0.1))
	m := newStubMeasurer()

	small := a.Build(NewFrame(200, 100, m))
	large := a.Build(NewFrame(400, 200, m))

	assert.Equal(t, 2, *fits) // 无标题，每次只搜索标签字号
	assert.InDelta(t, 20, small.Ticks[0].From.X, 1e-9)
	assert.InDelta(t, 40, large.Ticks[0].From.X, 1e-9)
	assert.Equal(t, [2]int{400, 200}, large.Viewport)
}

func TestBuildVerticalAxisLabelsToTheRight(t *testing.T) {
	a := New()
	a.SetPoint1(Pixels(50, 10))
	a.SetPoint2(Pixels(50, 190))
	a.SetRange(0, 1)
	a.SetTitle("Ratio")
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Equal(t, Vertical, res.Orientation)
	assert.InDelta(t, math.Pi/2, res.Theta, 1e-12)
	for _, tick := range res.Ticks {
		assert.InDelta(t, 55, tick.To.X, 1e-9)
		assert.InDelta(t, tick.From.Y, tick.To.Y, 1e-9)
	}
	for _, l := range res.Labels {
		assert.Equal(t, Justification{H: AlignLeft, V: AlignMiddle}, l.Justification)
		assert.Greater(t, l.Anchor.X, 55.0)
	}
	require.NotNil(t, res.Title)
	assert.Equal(t, AlignLeft, res.Title.Justification.H)
	assert.InDelta(t, 100, res.Title.Anchor.Y, 1e-9)
}

func TestBuildReversedHorizontalAxisLabelsAbove(t *testing.T) {
	a := New()
	a.SetPoint1(Pixels(150, 100))
	a.SetPoint2(Pixels(50, 100))
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Equal(t, Horizontal, res.Orientation)
	for _, l := range res.Labels {
		assert.Equal(t, AlignBottom, l.Justification.V)
		assert.Greater(t, l.Anchor.Y, 100.0)
	}
}

func TestBuildDownwardVerticalAxisLabelsToTheLeft(t *testing.T) {
	a := New()
	a.SetPoint1(Pixels(100, 190))
	a.SetPoint2(Pixels(100, 10))
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	require.Equal(t, Vertical, res.Orientation)
	for _, l := range res.Labels {
		assert.Equal(t, AlignRight, l.Justification.H)
		assert.Less(t, l.Anchor.X, 100.0)
	}
}

func TestBuildDiagonalClassification(t *testing.T) {
	a := New()
	a.SetPoint1(Pixels(0, 0))
	a.SetPoint2(Pixels(100, 100))
	assert.Equal(t, Horizontal, a.Build(NewFrame(200, 200, newStubMeasurer())).Orientation)

	a.SetPoint2(Pixels(100, 101))
	assert.Equal(t, Vertical, a.Build(NewFrame(200, 200, newStubMeasurer())).Orientation)
}

func TestBuildVisibilityFlags(t *testing.T) {
	a, _, fits := countingAxis()
	horizontalAxis(a)
	a.SetAxisVisibility(false)
	a.SetTickVisibility(false)
	a.SetLabelVisibility(false)
	a.SetTitleVisibility(false)
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	assert.Nil(t, res.Line)
	assert.Empty(t, res.Ticks)
	assert.Empty(t, res.Labels)
	assert.Nil(t, res.Title)
	assert.Equal(t, 0, *fits)
	assert.Equal(t, 6, res.Range.Labels)
}

func TestBuildZeroLengthAxis(t *testing.T) {
	a := New()
	a.SetPoint1(Pixels(40, 40))
	a.SetPoint2(Pixels(40, 40))
	a.SetTitle("T")
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))

	assert.Equal(t, 0.0, res.Theta)
	require.NotEmpty(t, res.Labels)
	assert.Equal(t, MinFontSize, res.Labels[0].FontSize)
	for _, tick := range res.Ticks {
		assert.Equal(t, Point{40, 40}, tick.From)
	}
}

func TestBuildZeroRange(t *testing.T) {
	a := New()
	horizontalAxis(a)
	a.SetRange(5, 5)
	res := a.Build(NewFrame(200, 200, newStubMeasurer()))
	require.GreaterOrEqual(t, len(res.Labels), MinLabels)
	assert.Greater(t, res.Range.Interval, 0.0)
	for _, l := range res.Labels {
		assert.False(t, math.IsNaN(l.Anchor.X) || math.IsNaN(l.Anchor.Y))
	}
}

func TestResetForcesRebuild(t *testing.T) {
	a, ranges, _ := countingAxis()
	horizontalAxis(a)
	vp := NewFrame(200, 200, newStubMeasurer())
	first := a.Build(vp)
	a.Reset()
	assert.Nil(t, a.LastResult())
	second := a.Build(vp)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Ticks, second.Ticks)
	assert.Equal(t, 2, *ranges)
}

func TestRenderDispatch(t *testing.T) {
	a, _, fits := countingAxis()
	horizontalAxis(a)
	vp := NewFrame(200, 200, newStubMeasurer())
	sink := &recordingSink{}

	lines := a.RenderOpaqueGeometry(vp, sink)
	texts := a.RenderOverlay(vp, sink)

	assert.Equal(t, 7, lines) // 轴线 + 6 个刻度
	assert.Equal(t, 7, texts) // 标题 + 6 个标签
	assert.Len(t, sink.segments, 7)
	assert.Equal(t, "Latency", sink.texts[0].Text)
	assert.Equal(t, 2, *fits, "overlay must reuse the opaque pass layout")
}
