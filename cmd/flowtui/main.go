package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/scenario"
	"github.com/ByLCY/flowlayout/tui"
)

func main() {
	input := flag.String("in", "examples/gallery.flow", "场景文件路径")
	dataJSON := flag.String("data", "@examples/items.json", "绑定到场景的 JSON 数据，@开头表示从文件读取")
	configPath := flag.String("config", "", "TOML 配置文件路径，默认读取当前目录的 "+config.DefaultFile)
	noColor := flag.Bool("no-color", false, "禁用 ANSI 颜色")
	flag.Parse()

	if *noColor {
		lipgloss.SetColorProfile(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	data, err := scenario.ParseData(*dataJSON)
	if err != nil {
		log.Fatalf("%v", err)
	}
	sc, err := scenario.Load(*input, data, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	p := tea.NewProgram(tui.New(sc, cfg.TUI), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("终端界面退出异常: %v", err)
	}
}
