package config

import (
	"fmt"
	"os"

	"github.com/gonewx/catrun/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// ScoreConfig 计分配置
type ScoreConfig struct {
	RatePerSecond float64 `yaml:"ratePerSecond"` // 每秒累积的分数
}

// PlayerConfig 玩家（猫）配置
type PlayerConfig struct {
	Size        int     `yaml:"size"`        // 正方形边长（像素）
	Speed       float64 `yaml:"speed"`       // 每 tick 移动像素
	StartHealth int     `yaml:"startHealth"` // 初始生命值
	MaxHealth   int     `yaml:"maxHealth"`   // 生命值上限
	StartX      float64 `yaml:"startX"`      // 初始 X 坐标
	StartY      float64 `yaml:"startY"`      // 初始 Y 坐标
}

// DogConfig 下落障碍物（狗）配置
type DogConfig struct {
	Count     int `yaml:"count"`     // 同时存在的数量
	Size      int `yaml:"size"`      // 正方形边长（像素）
	SpeedMin  int `yaml:"speedMin"`  // 速度下限（每 tick 像素）
	SpeedMax  int `yaml:"speedMax"`  // 速度上限（每 tick 像素）
	SpawnYMin int `yaml:"spawnYMin"` // 生成 Y 坐标下限（屏幕上方，负值）
	SpawnYMax int `yaml:"spawnYMax"` // 生成 Y 坐标上限（屏幕上方，负值）
}

// PowerUpConfig 回血道具配置
type PowerUpConfig struct {
	Size      int     `yaml:"size"`
	Speed     float64 `yaml:"speed"` // 固定速度，重生时不重新随机
	SpawnYMin int     `yaml:"spawnYMin"`
	SpawnYMax int     `yaml:"spawnYMax"`
}

// HUDConfig 界面元素配置
type HUDConfig struct {
	HeartSize     int     `yaml:"heartSize"`     // 心形图标边长
	HeartSpacing  int     `yaml:"heartSpacing"`  // 心形图标间距（从右向左排列）
	Margin        int     `yaml:"margin"`        // 距屏幕边缘的留白
	FontSize      float64 `yaml:"fontSize"`      // 普通文字字号
	TitleFontSize float64 `yaml:"titleFontSize"` // 标题文字字号
}

// AssetsConfig 资源文件配置
// 所有路径相对于 Dir；任意文件缺失都会降级为占位图或静音
type AssetsConfig struct {
	Dir        string `yaml:"dir"`
	Player     string `yaml:"player"`
	Dog        string `yaml:"dog"`
	PowerUp    string `yaml:"powerUp"`
	Heart      string `yaml:"heart"`
	HitSound   string `yaml:"hitSound"`
	PowerSound string `yaml:"powerSound"`
	Music      string `yaml:"music"`
	Font       string `yaml:"font"` // 可选 TTF/OTF 字体，留空使用内置点阵字体
}

// KeyBindings 按键绑定，每个动作可绑定多个按键
// 按键名称使用 ebiten.Key 的文本形式，如 "ArrowLeft"、"A"、"Enter"
type KeyBindings struct {
	Left       []string `yaml:"left"`
	Right      []string `yaml:"right"`
	Up         []string `yaml:"up"`
	Down       []string `yaml:"down"`
	Pause      []string `yaml:"pause"`
	Confirm    []string `yaml:"confirm"`
	Cancel     []string `yaml:"cancel"`
	Mute       []string `yaml:"mute"`
	Fullscreen []string `yaml:"fullscreen"`
}

// GameConfig 游戏完整配置
type GameConfig struct {
	Score               ScoreConfig   `yaml:"score"`
	Player              PlayerConfig  `yaml:"player"`
	Dog                 DogConfig     `yaml:"dog"`
	PowerUp             PowerUpConfig `yaml:"powerUp"`
	HUD                 HUDConfig     `yaml:"hud"`
	GameOverHoldSeconds float64       `yaml:"gameOverHoldSeconds"` // GAME OVER 提示停留时长
	HighScoreFile       string        `yaml:"highScoreFile"`
	Assets              AssetsConfig  `yaml:"assets"`
	Keys                KeyBindings   `yaml:"keys"`
}

// DefaultGameConfig 返回内置默认配置
// 与 data/game.yaml 保持一致
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Score: ScoreConfig{RatePerSecond: 50},
		Player: PlayerConfig{
			Size:        50,
			Speed:       5,
			StartHealth: 3,
			MaxHealth:   5,
			StartX:      ScreenWidth / 2,
			StartY:      ScreenHeight - 100,
		},
		Dog: DogConfig{
			Count:     4,
			Size:      50,
			SpeedMin:  3,
			SpeedMax:  6,
			SpawnYMin: -400,
			SpawnYMax: -40,
		},
		PowerUp: PowerUpConfig{
			Size:      35,
			Speed:     3,
			SpawnYMin: -800,
			SpawnYMax: -40,
		},
		HUD: HUDConfig{
			HeartSize:     25,
			HeartSpacing:  30,
			Margin:        10,
			FontSize:      24,
			TitleFontSize: 64,
		},
		GameOverHoldSeconds: 1.0,
		HighScoreFile:       "highscore.json",
		Assets: AssetsConfig{
			Dir:        "assets",
			Player:     "cat.png",
			Dog:        "dog.png",
			PowerUp:    "power.png",
			Heart:      "heart.png",
			HitSound:   "hit.wav",
			PowerSound: "power.wav",
			Music:      "bgm.wav",
			Font:       "",
		},
		Keys: KeyBindings{
			Left:       []string{"ArrowLeft", "A"},
			Right:      []string{"ArrowRight", "D"},
			Up:         []string{"ArrowUp", "W"},
			Down:       []string{"ArrowDown", "S"},
			Pause:      []string{"P"},
			Confirm:    []string{"Enter"},
			Cancel:     []string{"Escape"},
			Mute:       []string{"M"},
			Fullscreen: []string{"F11"},
		},
	}
}

// LoadGameConfig 从嵌入数据加载游戏配置
// 参数：
//
//	path - 嵌入路径（如 "data/game.yaml"）
//
// 返回：
//
//	*GameConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败时返回
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", path, err)
	}

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyOverride 用磁盘上的用户配置文件覆盖已有配置
// 文件中未出现的字段保持原值；列表字段整体替换
func (c *GameConfig) ApplyOverride(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read override config %s: %w", path, err)
	}

	merged := *c
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse override config YAML from %s: %w", path, err)
	}

	if err := validateGameConfig(&merged); err != nil {
		return fmt.Errorf("invalid override config in %s: %w", path, err)
	}

	*c = merged
	return nil
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Score.RatePerSecond < 0 {
		return fmt.Errorf("score.ratePerSecond cannot be negative, got %v", cfg.Score.RatePerSecond)
	}

	p := cfg.Player
	if p.Size <= 0 || p.Size > ScreenWidth || p.Size > ScreenHeight {
		return fmt.Errorf("player.size must be in (0, %d], got %d", min(ScreenWidth, ScreenHeight), p.Size)
	}
	if p.Speed < 0 {
		return fmt.Errorf("player.speed cannot be negative, got %v", p.Speed)
	}
	if p.MaxHealth < 1 {
		return fmt.Errorf("player.maxHealth must be at least 1, got %d", p.MaxHealth)
	}
	if p.StartHealth < 1 || p.StartHealth > p.MaxHealth {
		return fmt.Errorf("player.startHealth must be in [1, %d], got %d", p.MaxHealth, p.StartHealth)
	}

	d := cfg.Dog
	if d.Count < 1 {
		return fmt.Errorf("dog.count must be at least 1, got %d", d.Count)
	}
	if d.Size <= 0 || d.Size > ScreenWidth {
		return fmt.Errorf("dog.size must be in (0, %d], got %d", ScreenWidth, d.Size)
	}
	if d.SpeedMin < 0 || d.SpeedMin > d.SpeedMax {
		return fmt.Errorf("dog speed range [%d, %d] is invalid", d.SpeedMin, d.SpeedMax)
	}
	if err := validateSpawnRange("dog", d.SpawnYMin, d.SpawnYMax); err != nil {
		return err
	}

	pu := cfg.PowerUp
	if pu.Size <= 0 || pu.Size > ScreenWidth {
		return fmt.Errorf("powerUp.size must be in (0, %d], got %d", ScreenWidth, pu.Size)
	}
	if pu.Speed < 0 {
		return fmt.Errorf("powerUp.speed cannot be negative, got %v", pu.Speed)
	}
	if err := validateSpawnRange("powerUp", pu.SpawnYMin, pu.SpawnYMax); err != nil {
		return err
	}

	if cfg.HUD.HeartSize <= 0 {
		return fmt.Errorf("hud.heartSize must be positive, got %d", cfg.HUD.HeartSize)
	}
	if cfg.HUD.FontSize <= 0 || cfg.HUD.TitleFontSize <= 0 {
		return fmt.Errorf("hud font sizes must be positive, got %v/%v", cfg.HUD.FontSize, cfg.HUD.TitleFontSize)
	}
	if cfg.GameOverHoldSeconds < 0 {
		return fmt.Errorf("gameOverHoldSeconds cannot be negative, got %v", cfg.GameOverHoldSeconds)
	}
	if cfg.HighScoreFile == "" {
		return fmt.Errorf("highScoreFile is required")
	}

	return validateKeyBindings(&cfg.Keys)
}

// validateSpawnRange 生成区间必须完全位于屏幕上方
func validateSpawnRange(name string, yMin, yMax int) error {
	if yMin > yMax {
		return fmt.Errorf("%s spawn range [%d, %d] is inverted", name, yMin, yMax)
	}
	if yMax >= 0 {
		return fmt.Errorf("%s spawnYMax must be negative (above the screen), got %d", name, yMax)
	}
	return nil
}

// validateKeyBindings 每个动作至少绑定一个合法按键
func validateKeyBindings(kb *KeyBindings) error {
	actions := []struct {
		name string
		keys []string
	}{
		{"left", kb.Left},
		{"right", kb.Right},
		{"up", kb.Up},
		{"down", kb.Down},
		{"pause", kb.Pause},
		{"confirm", kb.Confirm},
		{"cancel", kb.Cancel},
		{"mute", kb.Mute},
		{"fullscreen", kb.Fullscreen},
	}

	for _, a := range actions {
		if len(a.keys) == 0 {
			return fmt.Errorf("keys.%s needs at least one key", a.name)
		}
		if _, err := ParseKeys(a.keys); err != nil {
			return fmt.Errorf("keys.%s: %w", a.name, err)
		}
	}
	return nil
}

// ParseKeys 将按键名称列表转换为 ebiten.Key
func ParseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("unknown key %q: %w", name, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
