package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/axisplot/axis"
	"github.com/ByLCY/axisplot/dsl"
)

func collectResources(doc *dsl.Document) (Resources, error) {
	res := Resources{
		Colors: map[string]axis.Color{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					return res, fmt.Errorf("color 声明缺少名称或取值")
				}
				c, err := parseColor(value)
				if err != nil {
					return res, fmt.Errorf("color %s: %w", name, err)
				}
				res.Colors[name] = c
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			default:
				return res, fmt.Errorf("未知的资源类型 %s", stmt.Command.Name)
			}
		}
	}

	styles, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = styles
	return res, nil
}

// color Ink = #333333 或 color Ink #333333
func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	var parts []string
	for _, arg := range cmd.Args[1:] {
		if arg.Value == "=" && len(parts) == 0 {
			continue
		}
		parts = append(parts, arg.Value)
	}
	return name, strings.Join(parts, "")
}

func parseStyleResource(cmd *dsl.Command) Style {
	if len(cmd.Args) == 0 {
		return Style{}
	}
	style := Style{
		Name:  cmd.Args[0].Value,
		Props: map[string]string{},
	}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if val := valueToString(stmt.Assignment.Value); val != "" {
			style.Props[strings.ToLower(stmt.Assignment.Key)] = val
		}
	}
	return style
}

func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var dfs func(name string) (Style, error)
	dfs = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return Style{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// applyStyle 把样式属性叠加到 base 上；未出现的属性保持 base 的取值。
func applyStyle(base axis.TextStyle, props map[string]string, colors map[string]axis.Color) (axis.TextStyle, error) {
	out := base
	for key, val := range props {
		switch key {
		case "family":
			out.Family = axis.ParseFamily(strings.ToLower(val))
		case "bold", "italic", "shadow":
			on, err := parseBool(val)
			if err != nil {
				return base, fmt.Errorf("样式属性 %s: %w", key, err)
			}
			switch key {
			case "bold":
				out.Bold = on
			case "italic":
				out.Italic = on
			default:
				out.Shadow = on
			}
		case "color":
			c, err := resolveColor(val, colors)
			if err != nil {
				return base, err
			}
			out.Color = c
		default:
			return base, fmt.Errorf("未知的样式属性 %s", key)
		}
	}
	return out, nil
}

func resolveColor(value string, colors map[string]axis.Color) (axis.Color, error) {
	if c, ok := colors[value]; ok {
		return c, nil
	}
	return parseColor(value)
}

// parseColor 支持 #rgb、#rrggbb 以及 hsl(h,s,l)，其中 s、l 取 0..1。
func parseColor(value string) (axis.Color, error) {
	value = strings.TrimSpace(value)
	var c colorful.Color
	switch {
	case strings.HasPrefix(value, "#"):
		parsed, err := colorful.Hex(value)
		if err != nil {
			return axis.Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
		}
		c = parsed
	case strings.HasPrefix(strings.ToLower(value), "hsl(") && strings.HasSuffix(value, ")"):
		parts := strings.Split(value[4:len(value)-1], ",")
		if len(parts) != 3 {
			return axis.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		var hsl [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return axis.Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
			}
			hsl[i] = f
		}
		c = colorful.Hsl(hsl[0], hsl[1], hsl[2])
	default:
		return axis.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	r, g, b := c.Clamped().RGB255()
	return axis.Color{R: r, G: g, B: b}, nil
}
