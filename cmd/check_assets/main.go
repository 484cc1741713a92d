// check_assets 检查配置中的资源文件能否加载
//
// 用法：
//
//	go run ./cmd/check_assets [--config data/game.yaml] [--assets dir] [--highscore file] [--strict]
//
// 每个资源输出一行 OK 或 FALLBACK；FALLBACK 表示游戏会使用占位图、静音或内置字体。
// 最后检查最高分文件，损坏的文件同样记为 FALLBACK（游戏会从 0 开始）。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/embedded"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	configFlag  = flag.String("config", config.DefaultConfigPath, "Game config YAML (relative to the working directory)")
	assetsFlag  = flag.String("assets", "", "Asset directory (default from config)")
	scoreFlag   = flag.String("highscore", "", "High score JSON file (default from config)")
	strictFlag  = flag.Bool("strict", false, "Exit with status 1 if any asset falls back")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// check 单个资源的检查项
type check struct {
	kind string
	path string
	load func(path string) error
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadGameConfig(config.DefaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *configFlag != config.DefaultConfigPath {
		if err := cfg.ApplyOverride(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	dir := *assetsFlag
	if dir == "" {
		dir = cfg.Assets.Dir
	}
	rm := game.NewResourceManager(audio.NewContext(48000), dir)

	loadImage := func(path string) error {
		_, err := rm.LoadImage(path)
		return err
	}
	loadSound := func(path string) error {
		_, err := rm.LoadSoundEffect(path)
		return err
	}
	loadFont := func(path string) error {
		_, err := rm.LoadFont(path, cfg.HUD.FontSize)
		return err
	}

	checks := []check{
		{"player", cfg.Assets.Player, loadImage},
		{"dog", cfg.Assets.Dog, loadImage},
		{"powerUp", cfg.Assets.PowerUp, loadImage},
		{"heart", cfg.Assets.Heart, loadImage},
		{"hitSound", cfg.Assets.HitSound, loadSound},
		{"powerSound", cfg.Assets.PowerSound, loadSound},
		{"music", cfg.Assets.Music, loadSound},
		{"font", cfg.Assets.Font, loadFont},
	}

	fmt.Printf("Asset directory: %s\n\n", dir)
	fallbacks := 0
	for _, c := range checks {
		if err := c.load(c.path); err != nil {
			fallbacks++
			fmt.Printf("FALLBACK  %-10s %-12s %v\n", c.kind, c.path, err)
			continue
		}
		fmt.Printf("OK        %-10s %s\n", c.kind, c.path)
	}

	fmt.Printf("\n%d/%d assets loaded\n", len(checks)-fallbacks, len(checks))

	scorePath := *scoreFlag
	if scorePath == "" {
		scorePath = cfg.HighScoreFile
	}
	if !checkHighScore(game.NewHighScoreStore(scorePath)) {
		fallbacks++
	}
	if *strictFlag && fallbacks > 0 {
		os.Exit(1)
	}
}

// checkHighScore 输出最高分文件状态，文件损坏时返回 false
func checkHighScore(store *game.HighScoreStore) bool {
	err := store.Load()
	switch {
	case err == nil:
		fmt.Printf("OK        highScore  %s (best %d)\n", store.Path(), store.Best())
	case errors.Is(err, os.ErrNotExist):
		fmt.Printf("OK        highScore  %s (not created yet)\n", store.Path())
	default:
		fmt.Printf("FALLBACK  highScore  %-12s %v\n", store.Path(), err)
		return false
	}
	return true
}
