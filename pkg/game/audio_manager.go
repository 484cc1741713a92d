package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音乐资源ID
const (
	MusicBackground = "bgm"
)

// AudioManager 音频管理器
// 职责：
//   - 通过资源ID播放受伤/回血音效和背景音乐
//   - 从 SettingsManager 读取音量和开关
//   - 资源缺失时静默跳过，绝不报错或崩溃
//
// AudioManager 实现 entities.SoundCue，作为玩家受伤/回血的音效出口。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager         // 可为 nil，使用默认音量
	soundPlayers    map[string]*audio.Player // 音效ID -> 播放器
	missing         map[string]bool          // 加载失败过的ID，不再重试
	currentMusic    *audio.Player
	currentMusicID  string
	musicPaused     bool // 被 PauseMusic 暂停，取消静音时不自动恢复
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效（单次）
//
// 返回：
//   - bool: 是否成功播放；音效关闭或资源不可用时返回 false
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.settings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.settings().SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐
// 同一时间只播放一首；音乐关闭时只记录ID，重新打开后 ResumeMusic 会开始播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	path, ok := am.resourceManager.SoundPath(musicID)
	if !ok {
		log.Printf("[AudioManager] Warning: Music not registered: %s", musicID)
		return false
	}

	player, err := am.resourceManager.LoadAudio(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load music %s: %v", musicID, err)
		return false
	}

	am.currentMusic = player
	am.currentMusicID = musicID
	am.musicPaused = false

	if !am.settings().MusicEnabled {
		return false
	}

	player.SetVolume(am.settings().MusicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.settings().MusicVolume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// PauseMusic 暂停当前背景音乐（游戏暂停）
// 暂停期间切换静音不会恢复播放，只有 ResumeMusic 会
func (am *AudioManager) PauseMusic() {
	am.musicPaused = true
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐（音乐开关关闭时不恢复）
func (am *AudioManager) ResumeMusic() {
	am.musicPaused = false
	am.playCurrentMusic()
}

// ToggleMute 同时切换音效和音乐并保存设置
// 取消静音时，若音乐正处于游戏暂停状态则保持暂停
//
// 返回：
//   - bool: 切换后是否静音
func (am *AudioManager) ToggleMute() bool {
	if am.settingsManager == nil {
		return false
	}

	muted := am.settingsManager.ToggleMute()
	if muted {
		if am.currentMusic != nil {
			am.currentMusic.Pause()
		}
	} else if !am.musicPaused {
		am.playCurrentMusic()
	}
	log.Printf("[AudioManager] Muted: %v", muted)
	return muted
}

// playCurrentMusic 按当前设置播放已加载的背景音乐
func (am *AudioManager) playCurrentMusic() {
	if am.currentMusic == nil || !am.settings().MusicEnabled {
		return
	}
	am.currentMusic.SetVolume(am.settings().MusicVolume)
	am.currentMusic.Play()
}

// PreloadSounds 预加载音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		if am.getSoundPlayer(soundID) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}

// getSoundPlayer 获取或加载音效播放器，失败返回 nil
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.missing[soundID] {
		return nil
	}

	path, ok := am.resourceManager.SoundPath(soundID)
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not registered: %s", soundID)
		am.missing[soundID] = true
		return nil
	}

	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		am.missing[soundID] = true
		return nil
	}

	am.soundPlayers[soundID] = player
	return player
}

// settings 当前设置，没有 SettingsManager 时使用默认值
func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings()
	}
	return DefaultSettings()
}
