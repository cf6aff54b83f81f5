package axis

// Sink 接收构建好的图元并负责实际绘制。
type Sink interface {
	DrawSegments(segments []Segment)
	DrawText(t TextRecord)
}

// RenderOpaqueGeometry 绘制轴线与刻度，返回绘制的图元数量。
func (a *Axis) RenderOpaqueGeometry(vp Viewport, sink Sink) int {
	res := a.Build(vp)
	var segments []Segment
	if res.Line != nil {
		segments = append(segments, *res.Line)
	}
	segments = append(segments, res.Ticks...)
	if len(segments) == 0 {
		return 0
	}
	sink.DrawSegments(segments)
	return len(segments)
}

// RenderOverlay 绘制标题与标签，返回绘制的文本数量。
func (a *Axis) RenderOverlay(vp Viewport, sink Sink) int {
	res := a.Build(vp)
	count := 0
	if res.Title != nil {
		sink.DrawText(*res.Title)
		count++
	}
	for _, l := range res.Labels {
		sink.DrawText(l.TextRecord)
		count++
	}
	return count
}
