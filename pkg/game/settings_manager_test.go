package game

import (
	"errors"
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// memoryStore 内存中的 PropStore
type memoryStore struct {
	props   map[string][]byte
	saveErr error
	saves   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{props: make(map[string][]byte)}
}

func (m *memoryStore) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *memoryStore) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	data, ok := m.props[objectKey+"/"+propKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *memoryStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.props[objectKey+"/"+propKey] = append([]byte(nil), data...)
	return nil
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 0.7 {
		t.Errorf("MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.MusicEnabled || !settings.SoundEnabled {
		t.Error("audio should be enabled by default")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilStore 测试存储为 nil 时的降级场景
func TestNewSettingsManagerNilStore(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().MusicVolume != 0.7 {
		t.Errorf("Degraded mode MusicVolume: got %v, want 0.7", sm.GetSettings().MusicVolume)
	}

	// 降级模式下 Save() 返回 nil，Load() 恢复默认值
	sm.GetSettings().MusicVolume = 0.3
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().MusicVolume != 0.7 {
		t.Errorf("After Load(): MusicVolume got %v, want 0.7", sm.GetSettings().MusicVolume)
	}
}

// TestSettingsLoadSaveGdata 使用真实 gdata 存储保存并重新加载
func TestSettingsLoadSaveGdata(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "catrun_test_settings",
	})
	if err != nil {
		t.Skipf("gdata not available: %v", err)
	}

	sm1 := NewSettingsManager(gdataManager)
	sm1.GetSettings().MusicVolume = 0.5
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	// 切换操作会立即保存
	sm1.ToggleMute()
	sm1.ToggleFullscreen()

	sm2 := NewSettingsManager(gdataManager)
	settings := sm2.GetSettings()
	if settings.MusicVolume != 0.5 {
		t.Errorf("Loaded MusicVolume: got %v, want 0.5", settings.MusicVolume)
	}
	if settings.SoundEnabled || settings.MusicEnabled {
		t.Error("Loaded audio flags: want both disabled after ToggleMute")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadCorrupt 损坏的数据回退为默认设置
func TestSettingsLoadCorrupt(t *testing.T) {
	store := newMemoryStore()
	store.props[settingsObject+"/"+settingsProperty] = []byte("musicVolume: [oops")

	sm := NewSettingsManager(store)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("settings after corrupt load: got %+v, want defaults", *sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
}

// TestSettingsLoadClampsVolume 超范围的音量在加载时被限制
func TestSettingsLoadClampsVolume(t *testing.T) {
	store := newMemoryStore()
	store.props[settingsObject+"/"+settingsProperty] = []byte("musicVolume: 3\nsoundVolume: -1\n")

	sm := NewSettingsManager(store)
	if sm.GetSettings().MusicVolume != 1 || sm.GetSettings().SoundVolume != 0 {
		t.Errorf("volumes: got %v/%v, want 1/0", sm.GetSettings().MusicVolume, sm.GetSettings().SoundVolume)
	}
}

// TestToggleMute 静音切换同时作用于音效和音乐，并立即保存
func TestToggleMute(t *testing.T) {
	store := newMemoryStore()
	sm := NewSettingsManager(store)

	if !sm.ToggleMute() {
		t.Fatal("first ToggleMute should mute")
	}
	if sm.GetSettings().SoundEnabled || sm.GetSettings().MusicEnabled {
		t.Error("muted settings should disable sound and music")
	}
	if store.saves != 1 {
		t.Errorf("saves: got %d, want 1", store.saves)
	}

	if sm.ToggleMute() {
		t.Fatal("second ToggleMute should unmute")
	}
	if !sm.GetSettings().SoundEnabled || !sm.GetSettings().MusicEnabled {
		t.Error("unmuted settings should enable sound and music")
	}

	// 只关了音乐时仍视为未静音，切换后全部关闭
	sm.GetSettings().MusicEnabled = false
	if !sm.ToggleMute() || sm.GetSettings().SoundEnabled {
		t.Error("partial mute should toggle to fully muted")
	}
}

// TestToggleFullscreen 保存失败不影响内存中的切换
func TestToggleFullscreen(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("disk full")
	sm := NewSettingsManager(store)

	if !sm.ToggleFullscreen() {
		t.Error("ToggleFullscreen should enable fullscreen")
	}
	if sm.ToggleFullscreen() {
		t.Error("second ToggleFullscreen should disable fullscreen")
	}
}

// TestClampVolume 测试 clampVolume 辅助函数
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-0.5, 0.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		if got := clampVolume(tt.input); got != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
