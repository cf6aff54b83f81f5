package axis

// buildCache 记录上次构建时的输入，用于判断是否需要重建。
type buildCache struct {
	valid  bool
	gen    uint64
	point1 Point
	point2 Point
	size   [2]int

	titleFontSize int
	labelFontSize int
	labelBand     float64 // 标签占用的法向宽度，标题需要越过它
}

// fresh reports whether a build with these inputs would reproduce the cached result.
func (c *buildCache) fresh(p1, p2 Point, size [2]int, gen uint64) bool {
	return c.valid && c.gen == gen && c.sameGeometry(p1, p2, size)
}

func (c *buildCache) sameGeometry(p1, p2 Point, size [2]int) bool {
	return c.valid && c.point1 == p1 && c.point2 == p2 && c.size == size
}

// Reset 丢弃缓存与上次的构建结果，下次 Build 会完整重建。
func (a *Axis) Reset() {
	a.cache = buildCache{}
	a.result = nil
	a.rangeStale = true
	for f := field(0); f < fieldCount; f++ {
		a.dirty.Set(uint(f))
	}
}

// LastResult 返回上次构建的结果；尚未构建时为 nil。
func (a *Axis) LastResult() *LayoutResult { return a.result }
