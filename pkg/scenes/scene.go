// Package scenes 提供每个游戏阶段的画面：菜单、游戏中（含暂停和 GAME OVER 覆盖层）、结算。
//
// 场景只负责绘制，阶段转换全部由 game.Session 完成。
package scenes

import (
	"strings"

	"github.com/gonewx/catrun/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// titleY 菜单和结算界面标题的纵坐标
const titleY = 100

// keyLabel 返回按键绑定中第一个按键的显示名，如 "ENTER"
func keyLabel(names []string) string {
	if len(names) == 0 {
		return "?"
	}
	return strings.ToUpper(names[0])
}
