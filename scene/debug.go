package scene

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将各轴的布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(layouts []Layout, path string) error {
	if len(layouts) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(layouts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
