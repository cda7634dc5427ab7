// verify_lifecycle 无窗口运行塔防演示的模拟核心
//
// 以固定步长推进 N 个 tick，打印每次发射和删除，最后输出统计。
//
// 用法：
//
//	go run ./cmd/verify_lifecycle --ticks 600 --dt 0.0166667
//	go run ./cmd/verify_lifecycle --deltas 0.4,0.4,0.4,0.3,0.3
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/decker502/towerdemo/pkg/config"
	"github.com/decker502/towerdemo/pkg/scenes"
	"github.com/decker502/towerdemo/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "场景配置文件路径（默认使用代码中的默认配置）")
	ticks      = flag.Int("ticks", 600, "模拟 tick 数")
	dt         = flag.Float64("dt", 1.0/60.0, "每个 tick 的时间步长（秒）")
	deltas     = flag.String("deltas", "", "逗号分隔的步长序列，设置后忽略 --ticks 和 --dt")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(os.DirFS(filepath.Dir(*configPath)), filepath.Base(*configPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	steps, err := buildSteps(*deltas, *ticks, *dt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scene, err := scenes.NewTowerScene(cfg, nil, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	spawned, removed, peak := 0, 0, 0
	for i, step := range steps {
		report := scene.Step(step, utils.PointerInput{})
		spawned += report.Spawned
		removed += report.Removed

		if report.Spawned > 0 || report.Removed > 0 {
			fmt.Printf("tick %5d  t=%8.3fs  +%d -%d  alive=%d\n",
				i+1, scene.SimTime(), report.Spawned, report.Removed, scene.ProjectileCount())
		}
		if n := scene.ProjectileCount(); n > peak {
			peak = n
		}
	}

	fmt.Println("==========================================")
	fmt.Printf("ticks:            %d\n", len(steps))
	fmt.Printf("simulated time:   %.3fs\n", scene.SimTime())
	fmt.Printf("projectiles:      spawned %d, removed %d, alive %d (peak %d)\n",
		spawned, removed, scene.ProjectileCount(), peak)
	fmt.Printf("entities:         %d\n", scene.EntityManager().EntityCount())
	fmt.Printf("camera position:  %v\n", scene.CameraSystem().Position())
}

// buildSteps 解析步长序列
func buildSteps(list string, n int, step float64) ([]float64, error) {
	if list == "" {
		if n < 0 {
			return nil, fmt.Errorf("--ticks must be >= 0, got %d", n)
		}
		steps := make([]float64, n)
		for i := range steps {
			steps[i] = step
		}
		return steps, nil
	}

	parts := strings.Split(list, ",")
	steps := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid delta %q: %w", part, err)
		}
		steps = append(steps, v)
	}
	return steps, nil
}
