package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 界面颜色
var (
	BackgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	TextColor       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	TitleColor      = color.RGBA{R: 200, G: 0, B: 0, A: 255}
)

// RenderSystem 负责背景、实体、HUD 和居中文字的绘制
type RenderSystem struct {
	assets *game.Assets
	hud    config.HUDConfig
}

// NewRenderSystem 创建渲染系统
//
// 参数：
//   - assets: 已加载的贴图和字体（不能为 nil）
//   - hud: 心形图标和文字的布局配置
func NewRenderSystem(assets *game.Assets, hud config.HUDConfig) *RenderSystem {
	return &RenderSystem{assets: assets, hud: hud}
}

// DrawBackground 用背景色填充整个屏幕
func (s *RenderSystem) DrawBackground(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)
}

// DrawPlayfield 绘制一局游戏的完整画面：背景、实体、分数、生命值
func (s *RenderSystem) DrawPlayfield(screen *ebiten.Image, run *game.Run) {
	s.DrawBackground(screen)
	if run == nil {
		return
	}
	run.Draw(screen)
	s.DrawScore(screen, run.Score())
	s.DrawHearts(screen, run.Player.Health)
}

// DrawScore 在左上角绘制 "Score: N"
func (s *RenderSystem) DrawScore(screen *ebiten.Image, score int) {
	margin := float64(s.hud.Margin)
	s.DrawText(screen, fmt.Sprintf("Score: %d", score), s.assets.Font, margin, margin, TextColor)
}

// DrawHearts 每点生命值一个心形图标，从右上角向左排列
func (s *RenderSystem) DrawHearts(screen *ebiten.Image, health int) {
	if s.assets.Heart == nil {
		return
	}
	for _, pos := range HeartPositions(health, s.hud) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(pos.X), float64(pos.Y))
		screen.DrawImage(s.assets.Heart, op)
	}
}

// DrawText 在 (x, y) 绘制文字，(x, y) 为文字左上角
func (s *RenderSystem) DrawText(screen *ebiten.Image, str string, font game.Font, x, y float64, clr color.Color) {
	if font.Face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(font.Scale, font.Scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, font.Face, op)
}

// DrawCentered 在 y 处水平居中绘制文字
func (s *RenderSystem) DrawCentered(screen *ebiten.Image, str string, font game.Font, y float64, clr color.Color) {
	x := (float64(config.ScreenWidth) - MeasureText(str, font)) / 2
	s.DrawText(screen, str, font, x, y, clr)
}

// Assets 返回渲染使用的资源
func (s *RenderSystem) Assets() *game.Assets {
	return s.assets
}

// HeartPos 心形图标左上角坐标
type HeartPos struct {
	X, Y int
}

// HeartPositions 计算 health 个心形图标的位置
// 第 i 个图标位于 (屏幕宽 - (i+1)*间距, 留白)
func HeartPositions(health int, hud config.HUDConfig) []HeartPos {
	if health <= 0 {
		return nil
	}
	positions := make([]HeartPos, health)
	for i := range positions {
		positions[i] = HeartPos{
			X: config.ScreenWidth - (i+1)*hud.HeartSpacing,
			Y: hud.Margin,
		}
	}
	return positions
}

// MeasureText 返回文字按字体缩放后的宽度
func MeasureText(str string, font game.Font) float64 {
	if font.Face == nil {
		return 0
	}
	w, _ := text.Measure(str, font.Face, 0)
	return w * font.Scale
}
