package scenes

import (
	"fmt"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/gonewx/catrun/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// 菜单文字纵坐标
const (
	menuPlayY      = 260
	menuQuitY      = 300
	menuHighScoreY = 360
)

// MenuScene 标题菜单：标题、开始/退出提示、最高分
type MenuScene struct {
	render  *systems.RenderSystem
	session *game.Session

	playPrompt string
	quitPrompt string
}

// NewMenuScene 创建菜单场景
// 提示文字中的按键名取自当前按键绑定
func NewMenuScene(render *systems.RenderSystem, session *game.Session, ctx *game.Context) *MenuScene {
	keys := ctx.Config.Keys
	return &MenuScene{
		render:     render,
		session:    session,
		playPrompt: fmt.Sprintf("Press %s to Play", keyLabel(keys.Confirm)),
		quitPrompt: fmt.Sprintf("Press %s to Quit", keyLabel(keys.Cancel)),
	}
}

// Update 菜单没有自己的状态
func (s *MenuScene) Update(deltaTime float64) {}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	assets := s.render.Assets()
	s.render.DrawBackground(screen)
	s.render.DrawCentered(screen, config.GameTitle, assets.TitleFont, titleY, systems.TitleColor)
	s.render.DrawCentered(screen, s.playPrompt, assets.Font, menuPlayY, systems.TextColor)
	s.render.DrawCentered(screen, s.quitPrompt, assets.Font, menuQuitY, systems.TextColor)
	s.render.DrawCentered(screen, fmt.Sprintf("Highscore: %d", s.session.HighScore()), assets.Font, menuHighScoreY, systems.TextColor)
}
