package entities

import (
	"math/rand/v2"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Faller 从屏幕上方落下、落出底部后原地重生的实体
type Faller interface {
	Entity
	Respawn()
}

// Dog 下落的障碍物，碰到玩家扣血
// 每次重生都会重新随机位置和速度
type Dog struct {
	Body
	cfg   config.DogConfig
	arena Arena
	rng   *rand.Rand
}

// NewDog 创建一只狗并按生成规则放置
func NewDog(cfg config.DogConfig, arena Arena, rng *rand.Rand, img *ebiten.Image) *Dog {
	d := &Dog{
		Body:  Body{Size: cfg.Size, Image: img},
		cfg:   cfg,
		arena: arena,
		rng:   rng,
	}
	d.Respawn()
	return d
}

// Update 每 tick 下落 Speed 像素，与 dt 无关
// 完全落出屏幕底部后重生
func (d *Dog) Update(dt float64) {
	d.Y += d.Speed
	if d.Y > float64(d.arena.Height) {
		d.Respawn()
	}
}

// Respawn 重新随机 y ∈ [SpawnYMin, SpawnYMax]、x ∈ [0, 宽-Size]、速度 ∈ [SpeedMin, SpeedMax]
func (d *Dog) Respawn() {
	d.Y = float64(randRange(d.rng, d.cfg.SpawnYMin, d.cfg.SpawnYMax))
	d.X = float64(randRange(d.rng, 0, d.arena.Width-d.Size))
	d.Speed = float64(randRange(d.rng, d.cfg.SpeedMin, d.cfg.SpeedMax))
}

// PowerUp 回血道具
// 生成区间比狗更高（更远离屏幕），速度固定不随机
type PowerUp struct {
	Body
	cfg   config.PowerUpConfig
	arena Arena
	rng   *rand.Rand
}

// NewPowerUp 创建回血道具并按生成规则放置
func NewPowerUp(cfg config.PowerUpConfig, arena Arena, rng *rand.Rand, img *ebiten.Image) *PowerUp {
	p := &PowerUp{
		Body:  Body{Size: cfg.Size, Speed: cfg.Speed, Image: img},
		cfg:   cfg,
		arena: arena,
		rng:   rng,
	}
	p.Respawn()
	return p
}

// Update 每 tick 下落 Speed 像素，落出底部后重生
func (p *PowerUp) Update(dt float64) {
	p.Y += p.Speed
	if p.Y > float64(p.arena.Height) {
		p.Respawn()
	}
}

// Respawn 只重新随机位置，速度保持不变
func (p *PowerUp) Respawn() {
	p.Y = float64(randRange(p.rng, p.cfg.SpawnYMin, p.cfg.SpawnYMax))
	p.X = float64(randRange(p.rng, 0, p.arena.Width-p.Size))
}

// randRange 返回 [lo, hi] 闭区间内的均匀随机整数
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
