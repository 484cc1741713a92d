package scenes

import (
	"fmt"

	"github.com/gonewx/catrun/pkg/game"
	"github.com/gonewx/catrun/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// 结算界面文字纵坐标
const (
	endScoreY     = 240
	endHighScoreY = 280
	endRetryY     = 330
	endQuitY      = 360
)

// EndScene 结算界面：本局分数、最高分、再来一局/退出提示
type EndScene struct {
	render  *systems.RenderSystem
	session *game.Session

	retryPrompt string
	quitPrompt  string
}

// NewEndScene 创建结算场景
func NewEndScene(render *systems.RenderSystem, session *game.Session, ctx *game.Context) *EndScene {
	keys := ctx.Config.Keys
	return &EndScene{
		render:      render,
		session:     session,
		retryPrompt: fmt.Sprintf("Press %s to Play Again", keyLabel(keys.Confirm)),
		quitPrompt:  fmt.Sprintf("Press %s to Quit", keyLabel(keys.Cancel)),
	}
}

// Update 结算界面没有自己的状态
func (s *EndScene) Update(deltaTime float64) {}

// Draw 绘制结算界面
func (s *EndScene) Draw(screen *ebiten.Image) {
	assets := s.render.Assets()

	score := 0
	if run := s.session.Run(); run != nil {
		score = run.Score()
	}

	highScore := fmt.Sprintf("Highscore: %d", s.session.HighScore())
	if s.session.IsNewHighScore() {
		highScore += " (NEW!)"
	}

	s.render.DrawBackground(screen)
	s.render.DrawCentered(screen, "GAME OVER", assets.TitleFont, titleY, systems.TitleColor)
	s.render.DrawCentered(screen, fmt.Sprintf("Your Score: %d", score), assets.Font, endScoreY, systems.TextColor)
	s.render.DrawCentered(screen, highScore, assets.Font, endHighScoreY, systems.TextColor)
	s.render.DrawCentered(screen, s.retryPrompt, assets.Font, endRetryY, systems.TextColor)
	s.render.DrawCentered(screen, s.quitPrompt, assets.Font, endQuitY, systems.TextColor)
}
