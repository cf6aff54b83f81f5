package canvasrenderer

// 场景以像素为单位，输出时按 1px = 1pt 映射；canvas 内部使用毫米。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// toMm 将像素(pt)转换为毫米(mm)。
func toMm(px float64) float64 { return px * PtToMm }

// toPx 将毫米(mm)转换为像素(pt)。
func toPx(mm float64) float64 { return mm * MmToPt }
