package compose

import (
	"encoding/json"
	"os"
)

// debugDump 是调试 JSON 的顶层结构：页面加当时生效的配置。
type debugDump struct {
	Config Config `json:"config"`
	Pages  []Page `json:"pages"`
}

// WriteDebugJSON 将铺排结果输出为 JSON，便于调试或可视化对比。
func WriteDebugJSON(pages []Page, cfg Config, path string) error {
	data, err := json.MarshalIndent(debugDump{Config: cfg, Pages: pages}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
