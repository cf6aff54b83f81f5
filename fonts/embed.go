// Package fonts 提供内置字体的字节数据：sans、mono 使用 Go 字体，serif 使用 Latin Modern。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 下标：0 常规，1 粗体，2 斜体，3 粗斜体
var families = map[string][4][]byte{
	"sans":  {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	"mono":  {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
	"serif": {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
}

// Load 返回内置字体族中某个字形的字节数据，family 可写为 "sans"、"mono"、"serif"，
// 也可带 "embed:" 前缀。
func Load(family string, bold, italic bool) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(family, "embed:"))
	faces, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("未知的内置字体族 %s", family)
	}
	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	return faces[idx], nil
}

// Families 列出全部内置字体族名称。
func Families() []string { return []string{"sans", "mono", "serif"} }
