package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/renderer"
	canvasrenderer "github.com/ByLCY/flowlayout/renderer/canvas"
	"github.com/ByLCY/flowlayout/renderer/raster"
	"github.com/ByLCY/flowlayout/scenario"
)

func main() {
	input := flag.String("in", "examples/gallery.flow", "场景文件路径")
	outPath := flag.String("out", "output/frames.pdf", "PDF 输出路径")
	pngPath := flag.String("png", "", "PNG 联系表输出路径")
	debug := flag.String("debug", "", "帧快照调试 JSON 输出路径")
	dataJSON := flag.String("data", "@examples/items.json", "绑定到场景的 JSON 数据，@开头表示从文件读取")
	configPath := flag.String("config", "", "TOML 配置文件路径，默认读取当前目录的 "+config.DefaultFile)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	inputData, err := scenario.ParseData(*dataJSON)
	if err != nil {
		log.Fatalf("%v", err)
	}
	style, err := renderer.StyleFromConfig(cfg.Render)
	if err != nil {
		log.Fatalf("解析渲染配置失败: %v", err)
	}

	outputs := []output{{path: *outPath, kind: "PDF", r: canvasrenderer.NewRenderer(style)}}
	if *pngPath != "" {
		outputs = append(outputs, output{path: *pngPath, kind: "PNG", r: raster.NewRenderer(style)})
	}
	n, err := run(*input, *debug, inputData, cfg, outputs)
	if err != nil {
		log.Fatalf("生成帧失败: %v", err)
	}
	for _, o := range outputs {
		fmt.Printf("已生成 %s（%d 帧）：%s\n", o.kind, n, o.path)
	}
}

// output 是一个渲染目标。
type output struct {
	path string
	kind string
	r    renderer.Renderer
}

// run 串联解析、场景回放与渲染，返回帧数。
func run(inputPath, debugPath string, data any, cfg config.Config, outputs []output) (int, error) {
	sc, err := scenario.Load(inputPath, data, cfg)
	if err != nil {
		return 0, err
	}
	result, err := sc.Run()
	if err != nil {
		return 0, fmt.Errorf("回放场景失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return 0, err
		}
	}

	for _, o := range outputs {
		if o.r == nil {
			return 0, fmt.Errorf("%s renderer 不能为空", o.kind)
		}
		if err := os.MkdirAll(filepath.Dir(o.path), 0o755); err != nil {
			return 0, fmt.Errorf("创建输出目录失败: %w", err)
		}
		data, err := o.r.Render(result)
		if err != nil {
			return 0, fmt.Errorf("渲染 %s 失败: %w", o.kind, err)
		}
		if err := os.WriteFile(o.path, data, 0o644); err != nil {
			return 0, fmt.Errorf("写入 %s 文件失败: %w", o.kind, err)
		}
	}
	return len(result.Frames), nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
