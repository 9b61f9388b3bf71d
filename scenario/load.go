package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/dsl"
)

// Load parses the .flow file at path and builds it.
func Load(path string, data any, cfg config.Config) (*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开场景文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析场景失败: %w", err)
	}
	sc, err := Build(doc, data, cfg)
	if err != nil {
		return nil, fmt.Errorf("构建场景失败: %w", err)
	}
	return sc, nil
}

// ParseData decodes the -data flag: inline JSON, or @file to read JSON
// from a file. An empty string yields nil.
func ParseData(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	raw := []byte(s)
	if name, ok := strings.CutPrefix(s, "@"); ok {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("读取 data 文件失败: %w", err)
		}
		raw = b
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return v, nil
}
