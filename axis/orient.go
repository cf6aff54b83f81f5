package axis

import "math"

// classify 判断轴在标签对齐意义上的方向：与水平方向夹角不超过 45°（|dy| <= |dx|）视为横向。
// 该分类只影响标签与标题的对齐，不影响刻度几何。
func classify(dx, dy float64) Orientation {
	if math.Abs(dy) <= math.Abs(dx) {
		return Horizontal
	}
	return Vertical
}

// perpendicular 返回沿 Point1→Point2 前进时右手侧的单位法向量（方向向量顺时针旋转 90°，y 轴向上）。
func perpendicular(theta float64) Point {
	return Point{X: math.Sin(theta), Y: -math.Cos(theta)}
}

// stringOffset 估算文本中心与刻度端点之间需要留出的距离。
// 横向轴主要由文本高度决定，纵向轴主要由文本宽度决定。
func stringOffset(width, height, theta float64) float64 {
	f1 := height * math.Cos(theta)
	f2 := width * math.Sin(theta)
	return 1.2 * math.Sqrt(f1*f1+f2*f2)
}

// justify 将文本中心换算为锚点与对齐方式，使文本背向轴线展开。
func justify(center Point, extent Size, o Orientation, perp Point) (Point, Justification) {
	if o == Horizontal {
		j := Justification{H: AlignCenter}
		if perp.Y <= 0 {
			j.V = AlignTop
			return Point{X: center.X, Y: center.Y + extent.H/2}, j
		}
		j.V = AlignBottom
		return Point{X: center.X, Y: center.Y - extent.H/2}, j
	}
	j := Justification{V: AlignMiddle}
	if perp.X >= 0 {
		j.H = AlignLeft
		return Point{X: center.X - extent.W/2, Y: center.Y}, j
	}
	j.H = AlignRight
	return Point{X: center.X + extent.W/2, Y: center.Y}, j
}
