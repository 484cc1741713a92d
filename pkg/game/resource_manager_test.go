package game

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// createTestImage creates a size×size blue PNG for testing purposes.
func createTestImage(path string, size int) error {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, blue)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// createTestWAV writes a short silent 16-bit stereo WAV at 48kHz.
func createTestWAV(path string) error {
	const sampleRate = 48000
	pcm := make([]byte, 4*480)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // channels
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext, "assets")

	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.imageCache == nil || rm.audioCache == nil || rm.soundPaths == nil {
		t.Error("caches not initialized")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
}

func TestResolve(t *testing.T) {
	rm := NewResourceManager(nil, "assets")
	if got, want := rm.Resolve("cat.png"), filepath.Join("assets", "cat.png"); got != want {
		t.Errorf("Resolve: got %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "cat.png")
	if got := rm.Resolve(abs); got != abs {
		t.Errorf("Resolve(abs): got %q, want unchanged", got)
	}

	if got := NewResourceManager(nil, "").Resolve("cat.png"); got != "cat.png" {
		t.Errorf("Resolve without base dir: got %q", got)
	}
}

// TestLoadImage_Success tests successful image loading and caching.
func TestLoadImage_Success(t *testing.T) {
	dir := t.TempDir()
	if err := createTestImage(filepath.Join(dir, "cat.png"), 10); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	rm := NewResourceManager(testAudioContext, dir)
	img, err := rm.LoadImage("cat.png")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("Image size: got %v, want 10x10", img.Bounds())
	}

	again, err := rm.LoadImage("cat.png")
	if err != nil || again != img {
		t.Error("second LoadImage should return the cached image")
	}
	if rm.imageCache["cat.png"] != img {
		t.Error("loaded image should be cached")
	}
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(testAudioContext, dir)

	for _, path := range []string{"", "missing.png", "broken.png"} {
		if _, err := rm.LoadImage(path); err == nil {
			t.Errorf("LoadImage(%q) expected error", path)
		}
	}
	if _, cached := rm.imageCache["missing.png"]; cached {
		t.Error("failed load should not be cached")
	}
}

// TestLoadImageOrPlaceholder verifies that a missing sprite is replaced by a same-size placeholder.
func TestLoadImageOrPlaceholder(t *testing.T) {
	dir := t.TempDir()
	if err := createTestImage(filepath.Join(dir, "dog.png"), 20); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(testAudioContext, dir)

	scaled := rm.LoadImageOrPlaceholder("dog.png", 50)
	if scaled.Bounds().Dx() != 50 || scaled.Bounds().Dy() != 50 {
		t.Errorf("scaled size: got %v, want 50x50", scaled.Bounds())
	}

	placeholder := rm.LoadImageOrPlaceholder("missing.png", 35)
	if placeholder == nil {
		t.Fatal("placeholder is nil")
	}
	if placeholder.Bounds().Dx() != 35 || placeholder.Bounds().Dy() != 35 {
		t.Errorf("placeholder size: got %v, want 35x35", placeholder.Bounds())
	}
}

func TestLoadSoundEffect(t *testing.T) {
	dir := t.TempDir()
	if err := createTestWAV(filepath.Join(dir, "hit.wav")); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(testAudioContext, dir)

	player, err := rm.LoadSoundEffect("hit.wav")
	if err != nil {
		t.Fatalf("LoadSoundEffect failed: %v", err)
	}
	if again, err := rm.LoadSoundEffect("hit.wav"); err != nil || again != player {
		t.Error("second LoadSoundEffect should return the cached player")
	}

	loop, err := rm.LoadAudio("hit.wav")
	if err != nil {
		t.Fatalf("LoadAudio failed: %v", err)
	}
	if loop == player {
		t.Error("looping player should be cached separately from the one-shot player")
	}
}

func TestLoadAudio_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sound.flac"), []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := createTestWAV(filepath.Join(dir, "hit.wav")); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(testAudioContext, dir)
	if _, err := rm.LoadSoundEffect("sound.flac"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := rm.LoadSoundEffect("missing.wav"); err == nil {
		t.Error("expected error for missing file")
	}

	noAudio := NewResourceManager(nil, dir)
	if _, err := noAudio.LoadSoundEffect("hit.wav"); err == nil {
		t.Error("expected error without audio context")
	}
}

func TestRegisterSound(t *testing.T) {
	rm := NewResourceManager(nil, "")
	rm.RegisterSound("hit", "hit.wav")
	rm.RegisterSound("power", "")

	if path, ok := rm.SoundPath("hit"); !ok || path != "hit.wav" {
		t.Errorf("SoundPath(hit): got %q, %v", path, ok)
	}
	if _, ok := rm.SoundPath("power"); ok {
		t.Error("empty path should not be registered")
	}
}

func TestFontOrDefault(t *testing.T) {
	rm := NewResourceManager(nil, t.TempDir())

	f := rm.FontOrDefault("missing.ttf", 24)
	if f.Face == nil {
		t.Fatal("fallback font has nil face")
	}
	if f.Scale != 2 {
		t.Errorf("fallback scale: got %v, want 2", f.Scale)
	}

	if small := BitmapFont(6); small.Scale != 1 {
		t.Errorf("small bitmap font scale: got %v, want 1", small.Scale)
	}
	if _, err := rm.LoadFont("", 24); err == nil {
		t.Error("expected error for empty font path")
	}
}
