package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/ebitengine/hideconsole"
	"github.com/gonewx/catrun/pkg/app"
	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configFlag    = flag.String("config", "", "YAML file overriding the built-in game config")
	highScoreFlag = flag.String("highscore", "", "High score JSON file (default from config: highscore.json)")
	assetsFlag    = flag.String("assets", "", "Asset directory (default from config: assets)")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	seedFlag      = flag.Uint64("seed", 0, "Random seed (0 = time based)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		ConfigPath:    *configFlag,
		HighScorePath: *highScoreFlag,
		AssetDir:      *assetsFlag,
		Seed:          seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(config.TargetTPS)
	// 关闭窗口交给 App.Update 处理，和 ESC 退出走同一条路径
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "游戏运行失败: %v\n", err)
		os.Exit(1)
	}
}
