package canvasrenderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/dsl"
	"github.com/ByLCY/axisplot/scene"
)

const plotDSL = `
plot Latency v1 {
  meta { title: "Latency" author: "ops" }
  viewport 400 300 {
    axis x {
      point1: [0.1, 0.1]
      point2: [0.9, 0.1]
      range: [0.25, 96.7]
      labels: 10
      title: "p99 (ms)"
    }
    axis y {
      point1: [40px, 30px]
      point2: [40px, 270px]
      label-style: { family: serif; shadow: false }
    }
  }
}
`

func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	doc, err := dsl.ParseString(plotDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	s, err := scene.FromDocument(doc, scene.Options{})
	if err != nil {
		t.Fatalf("scene failed: %v", err)
	}
	return s
}

// 字号越大测得的尺寸越大，且不同字体族都能加载。
func TestMeasureMonotonic(t *testing.T) {
	r := NewRenderer()
	for _, family := range []axis.Family{axis.FamilySans, axis.FamilyMono, axis.FamilySerif} {
		style := axis.TextStyle{Family: family, Bold: true, Italic: true}
		prev := axis.Size{}
		for size := axis.MinFontSize; size <= 40; size++ {
			got := r.Measure("-12.5", style, size)
			if got.W <= 0 || got.H <= 0 {
				t.Fatalf("%s size %d: empty measurement %+v", family, size, got)
			}
			if got.W < prev.W || got.H < prev.H {
				t.Fatalf("%s size %d: measurement shrank %+v < %+v", family, size, got, prev)
			}
			prev = got
		}
	}
}

// 等宽字体下相同字符数的文本宽度相同。
func TestMeasureMonoEqualWidth(t *testing.T) {
	r := NewRenderer()
	style := axis.TextStyle{Family: axis.FamilyMono}
	a := r.Measure("0.25", style, 12)
	b := r.Measure("96.7", style, 12)
	if math.Abs(a.W-b.W) > 1e-9 {
		t.Fatalf("mono widths differ: %g vs %g", a.W, b.W)
	}
	// 12pt 下的高度应在字号附近（像素 = 点）
	if a.H < 8 || a.H > 18 {
		t.Fatalf("unexpected text height %g for 12pt", a.H)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := NewRenderer().Render(buildScene(t))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderSVG(t *testing.T) {
	r := NewRendererWithOptions(Options{Format: FormatSVG, StrokeWidth: 0.5})
	data, err := r.Render(buildScene(t))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("output is not an SVG document")
	}
	if !bytes.Contains(data, []byte("<path")) {
		t.Fatalf("expected axis paths in SVG output")
	}
}

func TestRenderRejectsEmptyScene(t *testing.T) {
	if _, err := NewRenderer().Render(nil); err == nil {
		t.Fatalf("expected error for nil scene")
	}
	if _, err := NewRenderer().Render(&scene.Scene{}); err == nil {
		t.Fatalf("expected error for zero-sized scene")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPDF, "PDF": FormatPDF, "svg": FormatSVG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Fatalf("expected error for png")
	}
}

func TestUnitRoundTrip(t *testing.T) {
	for _, px := range []float64{0, 1, 12, 400} {
		if got := toPx(toMm(px)); math.Abs(got-px) > 1e-9 {
			t.Fatalf("round trip %g -> %g", px, got)
		}
	}
}
