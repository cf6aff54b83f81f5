package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ${path} 或 ${path|%.1f}
var exprPattern = regexp.MustCompile(`\$\{([^}|]+)(?:\|([^}]*))?\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 占位符可以带一个 printf 格式：${stats.max|%.1f}。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		val, ok := Lookup(data, path)
		if !ok {
			return match
		}
		if format := strings.TrimSpace(groups[2]); format != "" {
			return fmt.Sprintf(format, val)
		}
		return fmt.Sprint(val)
	})
}

// Lookup 按 a.b[0].c 形式的路径在 JSON 解码后的数据中取值。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// Number 取路径上的数值，支持 JSON 数字与可解析的字符串。
func Number(data any, path string) (float64, bool) {
	val, ok := Lookup(data, path)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	c, ok := current.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := c[key]
	return val, ok
}

func descendArray(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}
