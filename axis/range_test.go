package axis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRangeNiceValues(t *testing.T) {
	out, ticks, interval := ComputeRange([2]float64{0.25, 96.7}, 10)
	require.Equal(t, [2]float64{0, 100}, out)
	require.Equal(t, 11, ticks)
	require.Equal(t, 10.0, interval)

	out, ticks, interval = ComputeRange([2]float64{0, 100}, 6)
	require.Equal(t, [2]float64{0, 100}, out)
	require.Equal(t, 6, ticks)
	require.Equal(t, 20.0, interval)
}

func TestComputeRangeSmallDecimals(t *testing.T) {
	out, ticks, interval := ComputeRange([2]float64{0.013, 0.087}, 5)
	assert.Equal(t, 0.02, interval)
	assert.Equal(t, [2]float64{0, 0.1}, out)
	assert.Equal(t, 6, ticks)
}

func TestComputeRangeInvariants(t *testing.T) {
	ranges := [][2]float64{
		{0, 1},
		{0.25, 96.7},
		{-3.7, 12.2},
		{-1e6, -999.5},
		{1e-4, 3e-4},
		{17, 18},
		{-0.5, 0.5},
		{0, 1e9},
		{123.456, 123.457},
	}
	for _, r := range ranges {
		for n := MinLabels; n <= MaxLabels; n++ {
			out, ticks, interval := ComputeRange(r, n)
			if out[0] > r[0] || out[1] < r[1] {
				t.Fatalf("range %v n=%d: output %v does not contain input", r, n, out)
			}
			if ticks < MinLabels || ticks > MaxLabels {
				t.Fatalf("range %v n=%d: tick count %d out of bounds", r, n, ticks)
			}
			if interval <= 0 {
				t.Fatalf("range %v n=%d: non-positive interval %g", r, n, interval)
			}
			span := out[1] - out[0]
			if diff := math.Abs(interval*float64(ticks-1) - span); diff > 1e-6*span {
				t.Fatalf("range %v n=%d: interval %g × %d != span %g (diff %g)", r, n, interval, ticks-1, span, diff)
			}
		}
	}
}

// checkRangeInvariants 校验输出包含输入、刻度数在界内且间隔与跨度一致。
func checkRangeInvariants(t *testing.T, r [2]float64, n int) {
	t.Helper()
	out, ticks, interval := ComputeRange(r, n)
	lo, hi := math.Min(r[0], r[1]), math.Max(r[0], r[1])
	olo, ohi := math.Min(out[0], out[1]), math.Max(out[0], out[1])
	if olo > lo || ohi < hi {
		t.Fatalf("range %v n=%d: output %v does not contain input", r, n, out)
	}
	if ticks < MinLabels || ticks > MaxLabels {
		t.Fatalf("range %v n=%d: tick count %d out of bounds", r, n, ticks)
	}
	if interval <= 0 {
		t.Fatalf("range %v n=%d: non-positive interval %g", r, n, interval)
	}
	span := ohi - olo
	tol := 1e-6*span + 1e-12*math.Max(math.Abs(olo), math.Abs(ohi))
	if diff := math.Abs(interval*float64(ticks-1) - span); diff > tol {
		t.Fatalf("range %v n=%d: interval %g × %d != span %g (diff %g)", r, n, interval, ticks-1, span, diff)
	}
}

// 跨度只有几个 ulp 的区间：刻度倍数超出 float64 整数精度时也必须返回。
func TestComputeRangeNarrowSpanAtLargeMagnitude(t *testing.T) {
	ranges := [][2]float64{
		{1e16 + 2, 1e16 + 6},
		{222.08869274275344, 222.0886927427535},
		{1.24915107995492e+08, 1.2491510799549203e+08},
		{-570692.5692461171, -570692.5692461163},
		{1e300, math.Nextafter(1e300, math.Inf(1))},
		{-1e-300, -1e-300},
	}
	for _, r := range ranges {
		for n := MinLabels; n <= MaxLabels; n++ {
			checkRangeInvariants(t, r, n)
		}
	}

	// 按 lo == hi 的方式扩展：±10% 的量级
	out, _, interval := ComputeRange([2]float64{1e16 + 2, 1e16 + 6}, 25)
	assert.Equal(t, 1e14, interval)
	assert.InDelta(t, 9e15, out[0], 2e14)
	assert.InDelta(t, 1.1e16, out[1], 2e14)
}

func TestComputeRangeRandomNarrowSpans(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20000; i++ {
		base := (rng.Float64()*2 - 1) * math.Pow(10, float64(rng.Intn(24)-6))
		ulps := rng.Intn(8)
		hi := base
		for j := 0; j < ulps; j++ {
			hi = math.Nextafter(hi, math.Inf(1))
		}
		// 一半的样本用相对跨度在阈值附近的区间
		if i%2 == 1 {
			hi = base + math.Abs(base)*math.Pow(10, -float64(rng.Intn(12)+3))
		}
		checkRangeInvariants(t, [2]float64{base, hi}, MinLabels+rng.Intn(MaxLabels-MinLabels+1))
	}
}

func TestComputeRangeNonFiniteReturns(t *testing.T) {
	for _, r := range [][2]float64{{math.NaN(), 1}, {0, math.Inf(1)}, {-math.MaxFloat64, math.MaxFloat64}} {
		out, ticks, _ := ComputeRange(r, 5)
		assert.Equal(t, 5, ticks)
		assert.Equal(t, r[1], out[1])
	}
}

func TestComputeRangeDegenerate(t *testing.T) {
	for _, v := range []float64{5, 0, -42, 1e-9} {
		for _, n := range []int{2, 5, 25} {
			out, ticks, interval := ComputeRange([2]float64{v, v}, n)
			require.Greater(t, interval, 0.0, "value %g n=%d", v, n)
			require.LessOrEqual(t, out[0], v)
			require.GreaterOrEqual(t, out[1], v)
			require.Less(t, out[0], out[1])
			require.GreaterOrEqual(t, ticks, MinLabels)
			require.LessOrEqual(t, ticks, MaxLabels)
		}
	}
}

func TestComputeRangeReversed(t *testing.T) {
	out, ticks, interval := ComputeRange([2]float64{96.7, 0.25}, 10)
	require.Equal(t, [2]float64{100, 0}, out)
	require.Equal(t, 11, ticks)
	require.Equal(t, 10.0, interval)
}

func TestComputeRangeClampsRequestedTicks(t *testing.T) {
	_, low, _ := ComputeRange([2]float64{0, 10}, 0)
	_, lowRef, _ := ComputeRange([2]float64{0, 10}, MinLabels)
	assert.Equal(t, lowRef, low)

	_, high, _ := ComputeRange([2]float64{0, 10}, 1000)
	assert.LessOrEqual(t, high, MaxLabels)
}

func TestComputeRangeTieBreaksTowardFinerInterval(t *testing.T) {
	// raw interval 1.5 is equally close to 1 and 2
	_, _, interval := ComputeRange([2]float64{0, 3}, 3)
	assert.Equal(t, 1.0, interval)
}

func TestRawRangeKeepsInput(t *testing.T) {
	ar := rawRange([2]float64{0.25, 96.7}, 40)
	assert.Equal(t, 0.25, ar.Min)
	assert.Equal(t, 96.7, ar.Max)
	assert.Equal(t, MaxLabels, ar.Labels)
	assert.InDelta(t, (96.7-0.25)/24, ar.Interval, 1e-12)
}
