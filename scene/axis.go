package scene

import (
	"fmt"
	"strings"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/datasource"
	"github.com/ByLCY/axisplot/dsl"
)

type axisBuilder struct {
	res     Resources
	data    any
	baseDir string
}

// config 把 axis 块中的赋值翻译为轴配置。未出现的键保持默认值，越界值交给 Configure 截断。
func (b *axisBuilder) config(block *dsl.Block) (axis.Config, error) {
	cfg := axis.DefaultConfig()
	if block == nil {
		return cfg, nil
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			return cfg, fmt.Errorf("axis 块中只允许 key: value 形式的属性，遇到 %s", stmt.Command.Name)
		}
		key := strings.ToLower(stmt.Assignment.Key)
		if err := b.apply(&cfg, key, stmt.Assignment.Value); err != nil {
			return cfg, fmt.Errorf("%s: %w", key, err)
		}
	}
	return cfg, nil
}

func (b *axisBuilder) apply(cfg *axis.Config, key string, val *dsl.Value) error {
	var err error
	switch key {
	case "point1":
		cfg.Point1, err = parseCoordinate(val)
	case "point2":
		cfg.Point2, err = parseCoordinate(val)
	case "range":
		cfg.Range, err = parsePair(val, b.data)
	case "range-from":
		cfg.Range, err = b.rangeFrom(interpolated(val, b.data))
	case "labels":
		cfg.NumberOfLabels, err = parseInt(val, b.data)
	case "format":
		cfg.LabelFormat = interpolated(val, b.data)
	case "adjust":
		cfg.AdjustLabels, err = parseBool(valueToString(val))
	case "font-factor":
		cfg.FontFactor, err = parseNumber(val, b.data)
	case "label-factor":
		cfg.LabelFactor, err = parseNumber(val, b.data)
	case "tick-length":
		cfg.TickLength, err = parseInt(val, b.data)
	case "tick-offset":
		cfg.TickOffset, err = parseInt(val, b.data)
	case "axis-visible":
		cfg.AxisVisibility, err = parseBool(valueToString(val))
	case "ticks-visible":
		cfg.TickVisibility, err = parseBool(valueToString(val))
	case "labels-visible":
		cfg.LabelVisibility, err = parseBool(valueToString(val))
	case "title-visible":
		cfg.TitleVisibility, err = parseBool(valueToString(val))
	case "title":
		cfg.Title = interpolated(val, b.data)
	case "title-style":
		cfg.TitleStyle, err = b.style(cfg.TitleStyle, val)
	case "label-style":
		cfg.LabelStyle, err = b.style(cfg.LabelStyle, val)
	default:
		return fmt.Errorf("未知的轴属性")
	}
	return err
}

// style 接受样式名或内联对象 { family: mono; bold: false }。
func (b *axisBuilder) style(base axis.TextStyle, val *dsl.Value) (axis.TextStyle, error) {
	if val != nil && val.Object != nil {
		props := map[string]string{}
		for _, entry := range val.Object.Entries {
			props[strings.ToLower(entry.Key)] = valueToString(entry.Value)
		}
		return applyStyle(base, props, b.res.Colors)
	}
	name := valueToString(val)
	style, ok := b.res.Styles[name]
	if !ok {
		return base, fmt.Errorf("style %s 未定义", name)
	}
	return applyStyle(base, style.Props, b.res.Colors)
}

func (b *axisBuilder) rangeFrom(ref string) ([2]float64, error) {
	r, err := datasource.ParseRef(ref)
	if err != nil {
		return [2]float64{}, err
	}
	return datasource.ColumnRange(r.Resolve(b.baseDir))
}
