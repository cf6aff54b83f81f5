package axis

// 字号搜索的整数区间。下限是可读性底线：即便放不下也不会再缩小。
const (
	MinFontSize = 6
	MaxFontSize = 200
)

// FitFontSize 搜索使 text 能放进 target×factor 的最大字号，返回字号与该字号下的实测尺寸。
// 若最小字号仍然溢出，则返回 MinFontSize 并接受溢出。
func FitFontSize(text string, target Size, factor float64, style TextStyle, m TextMeasurer) (int, Size) {
	size, extents := FitFontSizes([]string{text}, []Size{target}, factor, style, m)
	return size, extents[0]
}

// FitFontSizes 为一组文本选择同一个字号：每个文本都要放进各自的目标框。
// targets 可以只有一个元素，表示所有文本共用同一个目标框；为空时不做搜索，返回 MinFontSize。
func FitFontSizes(texts []string, targets []Size, factor float64, style TextStyle, m TextMeasurer) (int, []Size) {
	extents := make([]Size, len(texts))
	if len(texts) == 0 || len(targets) == 0 || m == nil {
		return MinFontSize, extents
	}
	limits := make([]Size, len(texts))
	for i := range texts {
		t := targets[0]
		if len(targets) == len(texts) {
			t = targets[i]
		}
		limits[i] = Size{W: t.W * factor, H: t.H * factor}
	}

	fits := func(size int) bool {
		for i, text := range texts {
			if !m.Measure(text, style, size).Fits(limits[i]) {
				return false
			}
		}
		return true
	}

	best := MinFontSize
	if fits(MinFontSize) {
		// 二分：lo 始终可行，hi 之上均不可行
		lo, hi := MinFontSize, MaxFontSize
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if fits(mid) {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		best = lo
	}

	for i, text := range texts {
		extents[i] = m.Measure(text, style, best)
	}
	return best, extents
}
