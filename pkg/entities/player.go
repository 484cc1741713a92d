package entities

import (
	"math"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputState 当前帧按住的方向键
type InputState struct {
	Left, Right, Up, Down bool
}

// Player 玩家控制的猫
//
// Health 只应通过 TakeDamage / Heal 修改，二者保证 0 <= Health <= MaxHealth。
// ScoreUnits 以 1/TargetTPS 分为单位累积，只应通过 AccrueScore / AccrueTick 修改，单调不减。
// 按 tick 累积时每次只加 ratePerSecond，不会出现 rate/TPS 的浮点舍入误差。
type Player struct {
	Body
	Health     int
	MaxHealth  int
	ScoreUnits float64

	// Cue 受伤/回血音效出口，可为 nil
	Cue SoundCue

	arena Arena
}

// NewPlayer 创建玩家
//
// 参数：
//   - cfg: 玩家配置（尺寸、速度、初始/最大生命值、初始位置）
//   - arena: 可活动区域
//   - img: 贴图，可为 nil
func NewPlayer(cfg config.PlayerConfig, arena Arena, img *ebiten.Image) *Player {
	return &Player{
		Body: Body{
			X:     cfg.StartX,
			Y:     cfg.StartY,
			Speed: cfg.Speed,
			Size:  cfg.Size,
			Image: img,
		},
		Health:    cfg.StartHealth,
		MaxHealth: cfg.MaxHealth,
		arena:     arena,
	}
}

// Move 根据按键移动并限制在区域内
// 斜向移动直接叠加两个方向的速度，不做归一化
func (p *Player) Move(in InputState) {
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}

	p.X = clamp(p.X, 0, float64(p.arena.Width-p.Size))
	p.Y = clamp(p.Y, 0, float64(p.arena.Height-p.Size))
}

// TakeDamage 扣除 1 点生命值并播放受伤音效
// 生命值已为 0 时不做任何事，返回是否生效
func (p *Player) TakeDamage() bool {
	if p.Health <= 0 {
		return false
	}
	p.Health--
	p.cue(SoundHit)
	return true
}

// Heal 恢复 1 点生命值并播放回血音效
// 已满时不做任何事，返回是否生效
func (p *Player) Heal() bool {
	if p.Health >= p.MaxHealth {
		return false
	}
	p.Health++
	p.cue(SoundPower)
	return true
}

// AccrueScore 累积 ratePerSecond * dt 分
// 负的 dt 或速率被忽略，保证分数单调不减
func (p *Player) AccrueScore(dt, ratePerSecond float64) {
	p.accrue(ratePerSecond * dt * config.TargetTPS)
}

// AccrueTick 累积一个固定 tick（1/TargetTPS 秒）的分数
func (p *Player) AccrueTick(ratePerSecond float64) {
	p.accrue(ratePerSecond)
}

func (p *Player) accrue(units float64) {
	if units > 0 {
		p.ScoreUnits += units
	}
}

// Score 返回整数分数 floor(ScoreUnits / TargetTPS)
func (p *Player) Score() int {
	return int(math.Floor(p.ScoreUnits / config.TargetTPS))
}

// IsAlive 生命值大于 0
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

func (p *Player) cue(soundID string) {
	if p.Cue != nil {
		p.Cue.PlaySound(soundID)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
