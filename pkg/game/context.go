package game

import (
	"log"
	"math/rand/v2"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Assets 启动时加载好的贴图和字体
// 贴图缺失时为占位图，字体缺失时为内置点阵字体，因此字段均不为 nil
type Assets struct {
	Player    *ebiten.Image
	Dog       *ebiten.Image
	PowerUp   *ebiten.Image
	Heart     *ebiten.Image
	Font      Font
	TitleFont Font
}

// Sprites 返回实体使用的贴图
func (a *Assets) Sprites() Sprites {
	if a == nil {
		return Sprites{}
	}
	return Sprites{Player: a.Player, Dog: a.Dog, PowerUp: a.PowerUp}
}

// Context 进程级共享状态
//
// 启动时构建一次，传给 Session、场景和渲染系统，进程退出时销毁。
// Resources、Audio、Settings、Assets 可为 nil（无头测试）。
type Context struct {
	Config     *config.GameConfig
	Resources  *ResourceManager
	Audio      *AudioManager
	Settings   *SettingsManager
	HighScores *HighScoreStore
	Assets     *Assets
	Rand       *rand.Rand
}

// ContextOptions NewContext 的参数
type ContextOptions struct {
	Config        *config.GameConfig
	AudioContext  *audio.Context // 可为 nil，此时所有音效静默
	Settings      PropStore      // 可为 nil，此时设置不持久化
	HighScorePath string         // 为空时使用配置中的路径
	AssetDir      string         // 为空时使用配置中的目录
	Seed          uint64
}

// NewContext 构建运行所需的全部共享状态
//
// 资源加载失败只会降级，不会返回错误。
func NewContext(opts ContextOptions) *Context {
	cfg := opts.Config

	assetDir := opts.AssetDir
	if assetDir == "" {
		assetDir = cfg.Assets.Dir
	}
	highScorePath := opts.HighScorePath
	if highScorePath == "" {
		highScorePath = cfg.HighScoreFile
	}

	settingsManager := NewSettingsManager(opts.Settings)
	resourceManager := NewResourceManager(opts.AudioContext, assetDir)
	audioManager := NewAudioManager(resourceManager, settingsManager)

	resourceManager.RegisterSound(entities.SoundHit, cfg.Assets.HitSound)
	resourceManager.RegisterSound(entities.SoundPower, cfg.Assets.PowerSound)
	resourceManager.RegisterSound(MusicBackground, cfg.Assets.Music)
	if opts.AudioContext != nil {
		audioManager.PreloadSounds([]string{entities.SoundHit, entities.SoundPower})
	}

	ctx := &Context{
		Config:     cfg,
		Resources:  resourceManager,
		Audio:      audioManager,
		Settings:   settingsManager,
		HighScores: OpenHighScoreStore(highScorePath),
		Assets:     LoadAssets(resourceManager, cfg),
		Rand:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
	log.Printf("[Context] Initialized (assets: %s, high score file: %s, seed: %d)", assetDir, highScorePath, opts.Seed)
	return ctx
}

// LoadAssets 加载全部贴图和字体，缺失的资源使用占位图或内置字体
func LoadAssets(rm *ResourceManager, cfg *config.GameConfig) *Assets {
	return &Assets{
		Player:    rm.LoadImageOrPlaceholder(cfg.Assets.Player, cfg.Player.Size),
		Dog:       rm.LoadImageOrPlaceholder(cfg.Assets.Dog, cfg.Dog.Size),
		PowerUp:   rm.LoadImageOrPlaceholder(cfg.Assets.PowerUp, cfg.PowerUp.Size),
		Heart:     rm.LoadImageOrPlaceholder(cfg.Assets.Heart, cfg.HUD.HeartSize),
		Font:      rm.FontOrDefault(cfg.Assets.Font, cfg.HUD.FontSize),
		TitleFont: rm.FontOrDefault(cfg.Assets.Font, cfg.HUD.TitleFontSize),
	}
}

// soundCue 返回玩家使用的音效出口
// Audio 为 nil 时返回 nil 接口，而不是包含 nil 指针的接口
func (c *Context) soundCue() entities.SoundCue {
	if c.Audio == nil {
		return nil
	}
	return c.Audio
}
