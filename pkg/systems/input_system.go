package systems

import (
	"fmt"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/entities"
	"github.com/gonewx/catrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyFunc 查询单个按键状态
type KeyFunc func(key ebiten.Key) bool

// ResolvedKeys 解析后的按键绑定
type ResolvedKeys struct {
	Left, Right, Up, Down []ebiten.Key
	Pause                 []ebiten.Key
	Confirm               []ebiten.Key
	Cancel                []ebiten.Key
	Mute                  []ebiten.Key
	Fullscreen            []ebiten.Key
}

// ResolveKeys 把配置中的按键名解析为 ebiten.Key
func ResolveKeys(kb config.KeyBindings) (ResolvedKeys, error) {
	var rk ResolvedKeys
	targets := []struct {
		name  string
		names []string
		dst   *[]ebiten.Key
	}{
		{"left", kb.Left, &rk.Left},
		{"right", kb.Right, &rk.Right},
		{"up", kb.Up, &rk.Up},
		{"down", kb.Down, &rk.Down},
		{"pause", kb.Pause, &rk.Pause},
		{"confirm", kb.Confirm, &rk.Confirm},
		{"cancel", kb.Cancel, &rk.Cancel},
		{"mute", kb.Mute, &rk.Mute},
		{"fullscreen", kb.Fullscreen, &rk.Fullscreen},
	}

	for _, t := range targets {
		keys, err := config.ParseKeys(t.names)
		if err != nil {
			return ResolvedKeys{}, fmt.Errorf("key binding %s: %w", t.name, err)
		}
		*t.dst = keys
	}
	return rk, nil
}

// InputSystem 每个 tick 读取一次键盘，生成 game.FrameInput
//
// 方向键读取按住状态，其余动作读取刚按下的边沿，
// 按住暂停键不会让游戏在暂停和继续之间来回切换。
type InputSystem struct {
	keys        ResolvedKeys
	pressed     KeyFunc
	justPressed KeyFunc
	closing     func() bool
}

// NewInputSystem 创建读取真实键盘的输入系统
func NewInputSystem(keys ResolvedKeys) *InputSystem {
	return &InputSystem{
		keys:        keys,
		pressed:     ebiten.IsKeyPressed,
		justPressed: inpututil.IsKeyJustPressed,
		closing:     ebiten.IsWindowBeingClosed,
	}
}

// NewInputSystemWithFuncs 创建使用指定查询函数的输入系统（用于测试）
// closing 可为 nil
func NewInputSystemWithFuncs(keys ResolvedKeys, pressed, justPressed KeyFunc, closing func() bool) *InputSystem {
	return &InputSystem{
		keys:        keys,
		pressed:     pressed,
		justPressed: justPressed,
		closing:     closing,
	}
}

// Poll 读取当前 tick 的输入快照
func (s *InputSystem) Poll() game.FrameInput {
	return game.FrameInput{
		Move: entities.InputState{
			Left:  anyKey(s.pressed, s.keys.Left),
			Right: anyKey(s.pressed, s.keys.Right),
			Up:    anyKey(s.pressed, s.keys.Up),
			Down:  anyKey(s.pressed, s.keys.Down),
		},
		Pause:      anyKey(s.justPressed, s.keys.Pause),
		Confirm:    anyKey(s.justPressed, s.keys.Confirm),
		Cancel:     anyKey(s.justPressed, s.keys.Cancel),
		Mute:       anyKey(s.justPressed, s.keys.Mute),
		Fullscreen: anyKey(s.justPressed, s.keys.Fullscreen),
		Close:      s.closing != nil && s.closing(),
	}
}

func anyKey(query KeyFunc, keys []ebiten.Key) bool {
	for _, k := range keys {
		if query(k) {
			return true
		}
	}
	return false
}
