package game

import (
	"log"
	"math"

	"github.com/gonewx/catrun/pkg/config"
	"github.com/gonewx/catrun/pkg/entities"
)

// Phase 游戏阶段
type Phase int

const (
	PhaseMenu      Phase = iota // 标题菜单
	PhasePlaying                // 游戏中
	PhasePaused                 // 暂停
	PhaseGameOver               // GAME OVER 提示停留
	PhaseEndScreen              // 结算界面
)

var phaseNames = map[Phase]string{
	PhaseMenu:      "Menu",
	PhasePlaying:   "Playing",
	PhasePaused:    "Paused",
	PhaseGameOver:  "GameOver",
	PhaseEndScreen: "EndScreen",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "None"
}

// FrameInput 一个 tick 的输入快照
// Move 是按住状态，其余字段是本 tick 刚按下（边沿触发）
type FrameInput struct {
	Move       entities.InputState
	Pause      bool
	Confirm    bool
	Cancel     bool
	Mute       bool
	Fullscreen bool
	Close      bool // 窗口关闭请求
}

// Session 顶层状态机
//
// 状态转换：
//
//	Menu -confirm-> Playing <-pause-> Paused
//	Playing -生命值耗尽-> GameOver -停留结束-> EndScreen -confirm-> Playing
//	Menu / Paused / EndScreen -cancel-> 退出；任何阶段关闭窗口 -> 退出
//
// 每个 tick 调用一次 Update，Session 是唯一修改 Run 的地方。
type Session struct {
	ctx   *Context
	phase Phase
	run   *Run
	quit  bool

	holdTicks     int // GAME OVER 停留的总 tick 数
	holdRemaining int
	newHighScore  bool
}

// NewSession 创建停在菜单阶段的会话
func NewSession(ctx *Context) *Session {
	hold := int(math.Round(ctx.Config.GameOverHoldSeconds * config.TargetTPS))
	return &Session{
		ctx:       ctx,
		phase:     PhaseMenu,
		holdTicks: max(hold, 0),
	}
}

// Phase 当前阶段
func (s *Session) Phase() Phase {
	return s.phase
}

// Run 当前这一局，菜单阶段为 nil
func (s *Session) Run() *Run {
	return s.run
}

// HighScore 已保存的最高分
func (s *Session) HighScore() int {
	return s.ctx.HighScores.Best()
}

// IsNewHighScore 本局是否刷新了最高分（结算界面使用）
func (s *Session) IsNewHighScore() bool {
	return s.newHighScore
}

// Quit 是否应退出进程
func (s *Session) Quit() bool {
	return s.quit
}

// Update 按当前阶段处理一个 tick 的输入
func (s *Session) Update(in FrameInput) {
	if s.quit {
		return
	}
	if in.Close {
		log.Printf("[Session] Window close requested")
		s.quit = true
		return
	}

	switch s.phase {
	case PhaseMenu:
		s.updateMenu(in)
	case PhasePlaying:
		s.updatePlaying(in)
	case PhasePaused:
		s.updatePaused(in)
	case PhaseGameOver:
		s.updateGameOver()
	case PhaseEndScreen:
		s.updateEndScreen(in)
	}
}

func (s *Session) updateMenu(in FrameInput) {
	if in.Confirm {
		s.startRun()
	} else if in.Cancel {
		s.requestQuit()
	}
}

func (s *Session) updatePlaying(in FrameInput) {
	if in.Pause {
		s.setPhase(PhasePaused)
		if s.ctx.Audio != nil {
			s.ctx.Audio.PauseMusic()
		}
		return
	}

	result := s.run.Step(in.Move)
	if result.Hits > 0 {
		log.Printf("[Session] Player hit by %d dog(s), health %d", result.Hits, s.run.Player.Health)
	}

	if s.run.Over() {
		log.Printf("[Session] Game over, score %d", s.run.Score())
		if s.holdTicks == 0 {
			s.enterEndScreen()
			return
		}
		s.holdRemaining = s.holdTicks
		s.setPhase(PhaseGameOver)
	}
}

func (s *Session) updatePaused(in FrameInput) {
	if in.Pause {
		s.setPhase(PhasePlaying)
		if s.ctx.Audio != nil {
			s.ctx.Audio.ResumeMusic()
		}
	} else if in.Cancel {
		s.requestQuit()
	}
}

// updateGameOver 停留期间忽略输入
func (s *Session) updateGameOver() {
	s.holdRemaining--
	if s.holdRemaining <= 0 {
		s.enterEndScreen()
	}
}

func (s *Session) updateEndScreen(in FrameInput) {
	if in.Confirm {
		s.startRun()
	} else if in.Cancel {
		s.requestQuit()
	}
}

// startRun 创建全新的一局并进入游戏阶段
func (s *Session) startRun() {
	s.run = NewRun(s.ctx.Config, s.ctx.Assets.Sprites(), s.ctx.soundCue(), s.ctx.Rand)
	s.newHighScore = false
	s.setPhase(PhasePlaying)
}

// enterEndScreen 进入结算界面，分数更高时保存最高分
func (s *Session) enterEndScreen() {
	updated, err := s.ctx.HighScores.Submit(s.run.Score())
	if err != nil {
		log.Printf("[Session] Warning: %v (high score not saved)", err)
	}
	s.newHighScore = updated
	s.setPhase(PhaseEndScreen)
}

func (s *Session) requestQuit() {
	log.Printf("[Session] Quit requested from %s", s.phase)
	s.quit = true
}

func (s *Session) setPhase(phase Phase) {
	log.Printf("[Session] %s -> %s", s.phase, phase)
	s.phase = phase
}
