// Package app 提供游戏应用的核心包装器
//
// 该包把配置加载、资源初始化和场景注册从 main 包中提取出来，
// main.go 只负责解析命令行参数和启动 ebiten。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/gonewx/catrun/pkg/scenes"
	"github.com/gonewx/catrun/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SettingsAppName gdata 存储设置使用的应用名
const SettingsAppName = "catrun"

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 覆盖默认配置的 YAML 文件，为空则只使用内置配置
	ConfigPath string
	// HighScorePath 最高分文件路径，为空则使用配置中的 highScoreFile
	HighScorePath string
	// AssetDir 资源目录，为空则使用配置中的 assets.dir
	AssetDir string
	// Seed 随机数种子
	Seed uint64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	ctx                      *game.Context
	session                  *game.Session
	input                    *systems.InputSystem
	sceneManager             *game.SceneManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 只有配置错误会返回 error；资源缺失只会降级。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfig(config.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	if cfg.ConfigPath != "" {
		if err := gameConfig.ApplyOverride(cfg.ConfigPath); err != nil {
			return nil, fmt.Errorf("自定义配置加载失败: %w", err)
		}
		log.Printf("[Config] Applied override: %s", cfg.ConfigPath)
	}

	keys, err := systems.ResolveKeys(gameConfig.Keys)
	if err != nil {
		return nil, fmt.Errorf("按键配置无效: %w", err)
	}

	ctx := game.NewContext(game.ContextOptions{
		Config:        gameConfig,
		AudioContext:  audio.NewContext(audioSampleRate),
		Settings:      game.OpenSettingsStore(SettingsAppName),
		HighScorePath: cfg.HighScorePath,
		AssetDir:      cfg.AssetDir,
		Seed:          cfg.Seed,
	})

	session := game.NewSession(ctx)
	renderSystem := systems.NewRenderSystem(ctx.Assets, gameConfig.HUD)

	// 创建场景管理器，游戏、暂停和 GAME OVER 共用一个场景
	sceneManager := game.NewSceneManager()
	playScene := scenes.NewPlayScene(renderSystem, session)
	sceneManager.Register(game.PhaseMenu, scenes.NewMenuScene(renderSystem, session, ctx))
	sceneManager.Register(game.PhasePlaying, playScene)
	sceneManager.Register(game.PhasePaused, playScene)
	sceneManager.Register(game.PhaseGameOver, playScene)
	sceneManager.Register(game.PhaseEndScreen, scenes.NewEndScene(renderSystem, session, ctx))
	sceneManager.Sync(session.Phase())

	if ctx.Settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ctx.Audio.PlayMusic(game.MusicBackground)

	log.Printf("[App] Initialized")
	return &App{
		ctx:          ctx,
		session:      session,
		input:        systems.NewInputSystem(keys),
		sceneManager: sceneManager,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 60 次），是唯一读取输入的地方
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	in := a.input.Poll()

	if in.Fullscreen {
		a.toggleFullscreen()
	}
	if in.Mute {
		a.ctx.Audio.ToggleMute()
	}

	a.session.Update(in)
	if a.session.Quit() {
		log.Printf("[App] Quit")
		return ebiten.Termination
	}

	a.sceneManager.Sync(a.session.Phase())
	a.sceneManager.Update(config.TickDuration())
	return nil
}

// toggleFullscreen 切换全屏并保存设置
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	if a.ctx.Settings != nil && a.ctx.Settings.GetSettings().Fullscreen != fullscreen {
		a.ctx.Settings.ToggleFullscreen()
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
