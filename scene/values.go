package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/binding"
	"github.com/ByLCY/axisplot/dsl"
)

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		var builder strings.Builder
		for _, part := range val.Expr.Parts {
			builder.WriteString(part.Value)
		}
		return builder.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}

// interpolated 返回值的文本形式，字符串中的 ${path} 会被 data 替换。
func interpolated(val *dsl.Value, data any) string {
	s := valueToString(val)
	if val != nil && val.String != nil {
		return binding.Interpolate(s, data)
	}
	return s
}

// parseNumber 解析数值，字符串形式的值先做插值，例如 "${stats.max}"。
func parseNumber(val *dsl.Value, data any) (float64, error) {
	s := strings.TrimSpace(interpolated(val, data))
	if s == "" {
		return 0, fmt.Errorf("缺少数值")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析数值 %q", s)
	}
	return f, nil
}

func parseInt(val *dsl.Value, data any) (int, error) {
	f, err := parseNumber(val, data)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("无法解析布尔值 %q", s)
	}
	return b, nil
}

func parsePixels(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析像素值 %q", s)
	}
	return int(f), nil
}

// parseCoordinate 解析 [x, y]。带 px 后缀的分量为像素坐标，否则为归一化坐标（支持 %）。
// 两个分量必须使用同一坐标系。
func parseCoordinate(val *dsl.Value) (axis.Coordinate, error) {
	if val == nil || val.Array == nil || len(val.Array.Values) != 2 {
		return axis.Coordinate{}, fmt.Errorf("坐标应写为 [x, y]")
	}
	var xy [2]float64
	pixels := 0
	for i, item := range val.Array.Values {
		s := valueToString(item)
		switch {
		case strings.HasSuffix(s, "px"):
			pixels++
			s = strings.TrimSuffix(s, "px")
		case strings.HasSuffix(s, "%"):
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return axis.Coordinate{}, fmt.Errorf("无法解析坐标分量 %q", s)
			}
			xy[i] = f / 100
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return axis.Coordinate{}, fmt.Errorf("无法解析坐标分量 %q", s)
		}
		xy[i] = f
	}
	switch pixels {
	case 0:
		return axis.Normalized(xy[0], xy[1]), nil
	case 2:
		return axis.Pixels(xy[0], xy[1]), nil
	default:
		return axis.Coordinate{}, fmt.Errorf("坐标分量不能混用像素与归一化值")
	}
}

func parsePair(val *dsl.Value, data any) ([2]float64, error) {
	if val == nil || val.Array == nil || len(val.Array.Values) != 2 {
		return [2]float64{}, fmt.Errorf("应写为 [min, max]")
	}
	var out [2]float64
	for i, item := range val.Array.Values {
		f, err := parseNumber(item, data)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}
