package renderer

import "github.com/ByLCY/axisplot/scene"

// Renderer 将场景中的坐标轴输出为最终文件，例如 PDF、SVG 或终端预览文本。
// Render 返回生成的数据以及可能的错误。
type Renderer interface {
	Render(s *scene.Scene) ([]byte, error)
}
