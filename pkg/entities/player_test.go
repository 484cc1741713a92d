package entities

import (
	"math"
	"testing"

	"github.com/gonewx/catrun/pkg/config"
)

var testArena = Arena{Width: config.ScreenWidth, Height: config.ScreenHeight}

// recordingCue 记录播放过的音效
type recordingCue struct {
	played []string
}

func (c *recordingCue) PlaySound(soundID string) bool {
	c.played = append(c.played, soundID)
	return true
}

func newTestPlayer() (*Player, *recordingCue) {
	cue := &recordingCue{}
	p := NewPlayer(config.DefaultGameConfig().Player, testArena, nil)
	p.Cue = cue
	return p, cue
}

func TestNewPlayer(t *testing.T) {
	p, _ := newTestPlayer()

	if p.Health != 3 {
		t.Errorf("Health: got %d, want 3", p.Health)
	}
	if p.MaxHealth != 5 {
		t.Errorf("MaxHealth: got %d, want 5", p.MaxHealth)
	}
	if p.Score() != 0 {
		t.Errorf("Score: got %d, want 0", p.Score())
	}
	if p.X != 400 || p.Y != 500 {
		t.Errorf("position: got (%v,%v), want (400,500)", p.X, p.Y)
	}
	if !p.IsAlive() {
		t.Error("new player should be alive")
	}
}

func TestPlayerMove(t *testing.T) {
	tests := []struct {
		name         string
		in           InputState
		wantX, wantY float64
	}{
		{"idle", InputState{}, 400, 500},
		{"left", InputState{Left: true}, 395, 500},
		{"right", InputState{Right: true}, 405, 500},
		{"up", InputState{Up: true}, 400, 495},
		{"down", InputState{Down: true}, 400, 505},
		{"diagonal not normalized", InputState{Right: true, Up: true}, 405, 495},
		{"opposite cancels", InputState{Left: true, Right: true}, 400, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPlayer()
			p.Move(tt.in)
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("got (%v,%v), want (%v,%v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestPlayerMoveStaysInBounds 任意输入组合和起点下位置都在区域内
func TestPlayerMoveStaysInBounds(t *testing.T) {
	maxX := float64(testArena.Width - 50)
	maxY := float64(testArena.Height - 50)
	starts := [][2]float64{{0, 0}, {maxX, maxY}, {-100, 9999}, {9999, -100}, {2, 3}, {maxX - 1, 1}}

	for _, start := range starts {
		for mask := 0; mask < 16; mask++ {
			in := InputState{
				Left:  mask&1 != 0,
				Right: mask&2 != 0,
				Up:    mask&4 != 0,
				Down:  mask&8 != 0,
			}
			p, _ := newTestPlayer()
			p.X, p.Y = start[0], start[1]
			for i := 0; i < 3; i++ {
				p.Move(in)
				if p.X < 0 || p.X > maxX || p.Y < 0 || p.Y > maxY {
					t.Fatalf("start %v input %+v: position (%v,%v) out of bounds", start, in, p.X, p.Y)
				}
			}
		}
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	p, cue := newTestPlayer()

	for i := 0; i < 3; i++ {
		if !p.TakeDamage() {
			t.Fatalf("TakeDamage #%d returned false", i+1)
		}
	}
	if p.Health != 0 {
		t.Fatalf("Health: got %d, want 0", p.Health)
	}
	if p.IsAlive() {
		t.Error("player with 0 health should not be alive")
	}

	// 边界处重复调用是无操作
	if p.TakeDamage() {
		t.Error("TakeDamage at 0 health should return false")
	}
	if p.Health != 0 {
		t.Errorf("Health went below 0: %d", p.Health)
	}
	if len(cue.played) != 3 {
		t.Errorf("hit cues: got %d, want 3", len(cue.played))
	}
	for _, id := range cue.played {
		if id != SoundHit {
			t.Errorf("cue: got %q, want %q", id, SoundHit)
		}
	}
}

func TestPlayerHeal(t *testing.T) {
	p, cue := newTestPlayer()

	p.Heal()
	p.Heal()
	if p.Health != 5 {
		t.Fatalf("Health: got %d, want 5", p.Health)
	}
	if p.Heal() {
		t.Error("Heal at max health should return false")
	}
	if p.Health != 5 {
		t.Errorf("Health exceeded max: %d", p.Health)
	}
	if len(cue.played) != 2 || cue.played[0] != SoundPower {
		t.Errorf("power cues: got %v, want two %q", cue.played, SoundPower)
	}
}

// TestPlayerNilCue 没有音效出口时不崩溃
func TestPlayerNilCue(t *testing.T) {
	p := NewPlayer(config.DefaultGameConfig().Player, testArena, nil)
	p.TakeDamage()
	p.Heal()
	if p.Health != 3 {
		t.Errorf("Health: got %d, want 3", p.Health)
	}
}

// TestPlayerAccrueScore 分数等于 floor(sum(rate*dt))，且单调不减
func TestPlayerAccrueScore(t *testing.T) {
	p, _ := newTestPlayer()
	dts := []float64{0.016, 0.033, 0, 0.25, 0.1, 0.5, 0.017, 1.0}

	sum := 0.0
	last := 0
	for _, dt := range dts {
		p.AccrueScore(dt, 50)
		sum += 50 * dt
		if got, want := p.Score(), int(math.Floor(sum)); got != want {
			t.Errorf("after dt=%v: score %d, want %d", dt, got, want)
		}
		if p.Score() < last {
			t.Errorf("score decreased from %d to %d", last, p.Score())
		}
		last = p.Score()
	}
}

// TestPlayerAccrueScoreOneSecond 1 秒 × 50 分/秒 = 50 分
func TestPlayerAccrueScoreOneSecond(t *testing.T) {
	p, _ := newTestPlayer()
	for i := 0; i < 8; i++ {
		p.AccrueScore(0.125, 50)
	}
	if p.Score() != 50 {
		t.Errorf("Score: got %d, want 50", p.Score())
	}
}

// TestPlayerAccrueTick 按 tick 累积在每个整秒都得到精确分数
func TestPlayerAccrueTick(t *testing.T) {
	p, _ := newTestPlayer()
	for second := 1; second <= 10; second++ {
		for i := 0; i < config.TargetTPS; i++ {
			p.AccrueTick(50)
		}
		if got, want := p.Score(), second*50; got != want {
			t.Errorf("after %ds: score %d, want %d", second, got, want)
		}
	}
}

func TestPlayerAccrueScoreIgnoresNegative(t *testing.T) {
	p, _ := newTestPlayer()
	p.AccrueScore(1, 10)
	p.AccrueScore(-1, 10)
	p.AccrueScore(1, -10)
	if p.Score() != 10 {
		t.Errorf("Score: got %d, want 10", p.Score())
	}
}
