package game

import (
	"path/filepath"
	"testing"

	"github.com/gonewx/catrun/pkg/entities"
)

// newTestAudioManager 创建已注册背景音乐和受伤音效的音频管理器
func newTestAudioManager(t *testing.T) *AudioManager {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"bgm.wav", "hit.wav"} {
		if err := createTestWAV(filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}

	rm := NewResourceManager(testAudioContext, dir)
	rm.RegisterSound(MusicBackground, "bgm.wav")
	rm.RegisterSound(entities.SoundHit, "hit.wav")
	return NewAudioManager(rm, NewSettingsManager(newMemoryStore()))
}

func TestAudioManagerPlayMusic(t *testing.T) {
	am := newTestAudioManager(t)

	if !am.PlayMusic(MusicBackground) {
		t.Fatal("PlayMusic should succeed for a registered track")
	}
	if am.currentMusicID != MusicBackground || am.musicPaused {
		t.Errorf("current music: got %q (paused %v)", am.currentMusicID, am.musicPaused)
	}
	if am.PlayMusic("missing") {
		t.Error("PlayMusic should fail for an unregistered track")
	}
}

// TestAudioManagerUnmuteKeepsPausedMusic 游戏暂停期间静音再取消静音，音乐保持暂停
func TestAudioManagerUnmuteKeepsPausedMusic(t *testing.T) {
	am := newTestAudioManager(t)
	am.PlayMusic(MusicBackground)

	am.PauseMusic()
	if !am.ToggleMute() {
		t.Fatal("first ToggleMute should mute")
	}
	if am.ToggleMute() {
		t.Fatal("second ToggleMute should unmute")
	}

	if !am.musicPaused {
		t.Error("music should still be paused after unmuting")
	}
	if am.currentMusic.IsPlaying() {
		t.Error("music player should not be playing while paused")
	}

	am.ResumeMusic()
	if am.musicPaused {
		t.Error("ResumeMusic should clear the paused state")
	}
}

// TestAudioManagerResumeWhileMuted 静音时恢复游戏不会播放音乐
func TestAudioManagerResumeWhileMuted(t *testing.T) {
	am := newTestAudioManager(t)
	am.PlayMusic(MusicBackground)

	am.PauseMusic()
	am.ToggleMute()
	am.ResumeMusic()

	if am.currentMusic.IsPlaying() {
		t.Error("muted music should not resume")
	}
}

func TestAudioManagerPlaySoundMuted(t *testing.T) {
	am := newTestAudioManager(t)

	if !am.PlaySound(entities.SoundHit) {
		t.Error("PlaySound should succeed when sound is enabled")
	}
	am.ToggleMute()
	if am.PlaySound(entities.SoundHit) {
		t.Error("PlaySound should be skipped while muted")
	}
	if am.PlaySound("missing") {
		t.Error("PlaySound should fail for an unregistered sound")
	}
}

func TestAudioManagerNilSettings(t *testing.T) {
	am := NewAudioManager(NewResourceManager(nil, t.TempDir()), nil)

	if am.ToggleMute() {
		t.Error("ToggleMute without settings should report unmuted")
	}
	if am.PlayMusic(MusicBackground) {
		t.Error("PlayMusic should fail without registered music")
	}
	am.PauseMusic()
	am.ResumeMusic()
}
