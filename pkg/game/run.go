package game

import (
	"math/rand/v2"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprites 实体贴图，任一字段可为 nil（不绘制）
type Sprites struct {
	Player  *ebiten.Image
	Dog     *ebiten.Image
	PowerUp *ebiten.Image
}

// StepResult 一个 tick 内发生的碰撞
type StepResult struct {
	Hits  int  // 与玩家碰撞的狗数量
	Heals bool // 是否吃到回血道具
}

// Run 一局游戏
//
// Run 独占玩家、全部狗和回血道具。Entities 在创建时构建一次，
// 之后每个 tick 复用，不随帧重建。
type Run struct {
	Player   *entities.Player
	Dogs     []*entities.Dog
	PowerUp  *entities.PowerUp
	Entities []entities.Entity // 绘制顺序：狗、道具、玩家

	ratePerSecond float64
}

// NewRun 创建新的一局
//
// 参数：
//   - cfg: 游戏配置
//   - sprites: 实体贴图
//   - cue: 受伤/回血音效出口，可为 nil
//   - rng: 所有生成位置和速度的随机源
func NewRun(cfg *config.GameConfig, sprites Sprites, cue entities.SoundCue, rng *rand.Rand) *Run {
	arena := entities.Arena{Width: config.ScreenWidth, Height: config.ScreenHeight}

	r := &Run{
		Player:        entities.NewPlayer(cfg.Player, arena, sprites.Player),
		PowerUp:       entities.NewPowerUp(cfg.PowerUp, arena, rng, sprites.PowerUp),
		ratePerSecond: cfg.Score.RatePerSecond,
	}
	r.Player.Cue = cue

	r.Dogs = make([]*entities.Dog, cfg.Dog.Count)
	for i := range r.Dogs {
		r.Dogs[i] = entities.NewDog(cfg.Dog, arena, rng, sprites.Dog)
	}

	r.Entities = make([]entities.Entity, 0, len(r.Dogs)+2)
	for _, d := range r.Dogs {
		r.Entities = append(r.Entities, d)
	}
	r.Entities = append(r.Entities, r.PowerUp, r.Player)
	return r
}

// Step 推进一个固定 tick（1/TargetTPS 秒）：移动玩家、累积分数、更新下落物、结算碰撞
//
// 每只与玩家相交的狗造成 1 点伤害并立即重生；
// 道具与玩家相交时回 1 点血并重生（满血时道具照样被吃掉）。
func (r *Run) Step(move entities.InputState) StepResult {
	dt := config.TickDuration()
	r.Player.Move(move)
	r.Player.AccrueTick(r.ratePerSecond)

	for _, d := range r.Dogs {
		d.Update(dt)
	}
	r.PowerUp.Update(dt)

	var result StepResult
	for _, d := range r.Dogs {
		if entities.Overlaps(r.Player, d) {
			r.Player.TakeDamage()
			d.Respawn()
			result.Hits++
		}
	}
	if entities.Overlaps(r.Player, r.PowerUp) {
		r.Player.Heal()
		r.PowerUp.Respawn()
		result.Heals = true
	}
	return result
}

// Score 当前整数分数
func (r *Run) Score() int {
	return r.Player.Score()
}

// Over 玩家生命值耗尽
func (r *Run) Over() bool {
	return !r.Player.IsAlive()
}

// Draw 按顺序绘制全部实体
func (r *Run) Draw(screen *ebiten.Image) {
	for _, e := range r.Entities {
		e.Draw(screen)
	}
}
