package axis

import "math"

// MaxLabels 是标签（刻度）数量上限，MinLabels 是下限。
const (
	MinLabels = 2
	MaxLabels = 25
)

const (
	// degenerateSpan 是相对跨度的下限，低于它的区间按 lo == hi 处理。
	degenerateSpan  = 1e-9
	maxFixups       = 4
	maxCoarsenSteps = 64
)

// niceMultipliers 按从细到粗排列，同距离时取前者。
var niceMultipliers = [...]float64{1, 2, 5, 10}

// AdjustedRange 是经过“取整”后的范围与刻度数。
type AdjustedRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Labels   int     `json:"labels"`
	Interval float64 `json:"interval"`
}

// ComputeRange computes a "nice" range that contains in and the number of ticks
// (end ticks included) that lands on round values. For example ((0.25, 96.7), 10)
// yields ((0, 100), 11, 10).
//
// Reversed input ranges (in[0] > in[1]) produce a reversed output range.
func ComputeRange(in [2]float64, ticks int) (out [2]float64, outTicks int, interval float64) {
	ticks = clampInt(ticks, MinLabels, MaxLabels)

	lo, hi := in[0], in[1]
	reversed := lo > hi
	if reversed {
		lo, hi = hi, lo
	}
	// 非有限输入或跨度溢出时原样返回
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(hi-lo, 0) {
		return in, ticks, (in[1] - in[0]) / float64(ticks-1)
	}
	// 退化区间：跨度相对数值量级可以忽略时（包括 lo == hi），以量级（为 0 时用 1）扩出一个非零跨度。
	// 否则刻度倍数会超出 float64 的整数精度。
	if mag := math.Max(math.Abs(lo), math.Abs(hi)); hi-lo <= degenerateSpan*mag {
		delta := 0.1 * mag
		if delta == 0 {
			delta = 1
		}
		lo, hi = lo-delta, hi+delta
	}

	raw := (hi - lo) / float64(ticks-1)
	exp := int(math.Floor(math.Log10(raw)))
	idx := nearestMultiplier(raw / pow10(exp))

	var outLo, outHi float64
	for step := 0; ; step++ {
		interval = niceInterval(niceMultipliers[idx], exp)
		outLo, outHi = expand(lo, hi, niceMultipliers[idx], exp)
		outTicks = int(math.Round((outHi-outLo)/interval)) + 1
		if outTicks <= MaxLabels || step >= maxCoarsenSteps {
			break
		}
		// 刻度过多时换更粗的间隔，重新扩展区间
		idx++
		if idx == len(niceMultipliers) {
			idx = 1
			exp++
		}
	}
	if outTicks < MinLabels {
		outTicks = MinLabels
		outHi = outLo + interval
	}

	if reversed {
		outLo, outHi = outHi, outLo
	}
	return [2]float64{outLo, outHi}, outTicks, interval
}

func nearestMultiplier(n float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range niceMultipliers {
		if d := math.Abs(c - n); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// niceInterval 返回 c×10^exp；exp 为负时用除法，避免 0.1 之类的表示误差被放大。
func niceInterval(c float64, exp int) float64 {
	if exp < 0 {
		return c / pow10(-exp)
	}
	return c * pow10(exp)
}

// expand 将 [lo, hi] 向外扩展到 c×10^exp 的整数倍。
func expand(lo, hi, c float64, exp int) (float64, float64) {
	interval := niceInterval(c, exp)
	qLo := math.Floor(lo / interval)
	qHi := math.Ceil(hi / interval)
	outLo := scaled(qLo, c, exp)
	outHi := scaled(qHi, c, exp)
	// 浮点误差可能让端点落在输入区间内侧，最多修正几步
	for i := 0; outLo > lo && i < maxFixups; i++ {
		next := scaled(qLo-1, c, exp)
		if next == outLo {
			break
		}
		qLo--
		outLo = next
	}
	for i := 0; outHi < hi && i < maxFixups; i++ {
		next := scaled(qHi+1, c, exp)
		if next == outHi {
			break
		}
		qHi++
		outHi = next
	}
	// 仍未包住输入时，包含关系优先于端点取整
	outLo = math.Min(outLo, lo)
	outHi = math.Max(outHi, hi)
	return outLo, outHi
}

func scaled(q, c float64, exp int) float64 {
	if exp < 0 {
		return q * c / pow10(-exp)
	}
	return q * c * pow10(exp)
}

func pow10(exp int) float64 { return math.Pow10(exp) }

// rawRange 是未开启 AdjustLabels 时使用的范围：原样保留，只截断标签数。
func rawRange(r [2]float64, labels int) AdjustedRange {
	labels = clampInt(labels, MinLabels, MaxLabels)
	return AdjustedRange{
		Min:      r[0],
		Max:      r[1],
		Labels:   labels,
		Interval: (r[1] - r[0]) / float64(labels-1),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
