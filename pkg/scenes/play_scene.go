package scenes

import (
	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/gonewx/catrun/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// overlayY 暂停和 GAME OVER 文字的纵坐标
const overlayY = config.ScreenHeight/2 - 20

// PlayScene 游戏画面
//
// 同一个场景服务于 Playing、Paused 和 GameOver 三个阶段：
//   - Playing: 背景、实体、分数、生命值
//   - Paused: 只有背景和 "PAUSED"
//   - GameOver: 游戏画面上叠加 "GAME OVER"
type PlayScene struct {
	render  *systems.RenderSystem
	session *game.Session
}

// NewPlayScene 创建游戏场景
func NewPlayScene(render *systems.RenderSystem, session *game.Session) *PlayScene {
	return &PlayScene{render: render, session: session}
}

// Update 游戏逻辑由 Session 推进，场景本身无状态
func (s *PlayScene) Update(deltaTime float64) {}

// Draw 按当前阶段绘制
func (s *PlayScene) Draw(screen *ebiten.Image) {
	assets := s.render.Assets()

	switch s.session.Phase() {
	case game.PhasePaused:
		s.render.DrawBackground(screen)
		s.render.DrawCentered(screen, "PAUSED", assets.TitleFont, overlayY, systems.TitleColor)
	case game.PhaseGameOver:
		s.render.DrawPlayfield(screen, s.session.Run())
		s.render.DrawCentered(screen, "GAME OVER", assets.TitleFont, overlayY, systems.TitleColor)
	default:
		s.render.DrawPlayfield(screen, s.session.Run())
	}
}
