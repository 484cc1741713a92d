package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	auformat "github.com/gonewx/catrun/internal/audio"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// bitmapFontHeight is the pixel height of the built-in bitmap font, used to scale it to a font size.
const bitmapFontHeight = 12

// Placeholder colors.
var (
	placeholderFill   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	placeholderBorder = color.RGBA{R: 100, G: 100, B: 100, A: 255}
)

// Font is a drawable face plus the scale to draw it at.
// Bitmap faces are scaled up to the requested size; vector faces use Scale 1.
type Font struct {
	Face  text.Face
	Scale float64
}

// audioStream is a decoded stream that can be looped and measured.
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for images, audio and fonts
// read from the asset directory, so each file is decoded at most once.
//
// Every loader returns an error instead of panicking; the *OrPlaceholder and
// *OrDefault helpers turn those errors into the graceful fallbacks the game
// uses (a grey square for images, the built-in bitmap font for text).
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game
// goroutine during startup.
type ResourceManager struct {
	baseDir         string                            // Asset directory; relative paths are resolved against it
	imageCache      map[string]*ebiten.Image          // path -> Image
	audioCache      map[string]*audio.Player          // cache key -> Player
	audioContext    *audio.Context                    // May be nil when audio is unavailable
	fontSourceCache map[string]*text.GoTextFaceSource // path -> parsed font source
	soundPaths      map[string]string                 // sound ID -> path
}

// NewResourceManager creates a ResourceManager rooted at baseDir.
//
// Parameters:
//   - audioContext: The global audio context; nil disables every audio loader.
//   - baseDir: Directory that relative asset paths are resolved against.
func NewResourceManager(audioContext *audio.Context, baseDir string) *ResourceManager {
	return &ResourceManager{
		baseDir:         baseDir,
		imageCache:      make(map[string]*ebiten.Image),
		audioCache:      make(map[string]*audio.Player),
		audioContext:    audioContext,
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		soundPaths:      make(map[string]string),
	}
}

// Resolve returns the filesystem path for an asset path.
func (rm *ResourceManager) Resolve(path string) string {
	if rm.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rm.baseDir, path)
}

// LoadImage loads an image file and caches it for future use.
// Supported formats: PNG and JPEG.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image path")
	}
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(rm.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageOrPlaceholder loads an image scaled to size×size.
// Any failure is logged and replaced with a generated placeholder square.
func (rm *ResourceManager) LoadImageOrPlaceholder(path string, size int) *ebiten.Image {
	img, err := rm.LoadImage(path)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v (using placeholder)", err)
		return NewPlaceholderImage(size)
	}
	return scaleImage(img, size)
}

// NewPlaceholderImage generates a light grey square with a darker 2px border.
func NewPlaceholderImage(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.Fill(placeholderFill)
	vector.StrokeRect(img, 1, 1, float32(size-2), float32(size-2), 2, placeholderBorder, false)
	return img
}

// scaleImage returns img resized to size×size (img itself if already that size).
func scaleImage(img *ebiten.Image, size int) *ebiten.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	scaled := ebiten.NewImage(size, size)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	scaled.DrawImage(img, op)
	return scaled
}

// decodeAudio reads and decodes an audio file into a stream at the context sample rate.
// Supported formats: WAV, MP3, OGG Vorbis and Sun AU.
func (rm *ResourceManager) decodeAudio(path string) (audioStream, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available for %s", path)
	}
	if path == "" {
		return nil, fmt.Errorf("empty audio path")
	}

	// Read the entire file into memory so the stream can seek without keeping the file open
	audioData, err := os.ReadFile(rm.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(audioData)
	sampleRate := rm.audioContext.SampleRate()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	case ".au":
		s, err := auformat.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU audio %s: %w", path, err)
		}
		if s.SampleRate() == sampleRate {
			return s, nil
		}
		return audio.Resample(s, s.Length(), s.SampleRate(), sampleRate), nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}

// LoadAudio loads background music wrapped in an infinite loop.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	cacheKey := "loop:" + path
	if cachedPlayer, exists := rm.audioCache[cacheKey]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[cacheKey] = player
	return player, nil
}

// LoadSoundEffect loads a one-shot sound effect (no loop).
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// RegisterSound maps a sound ID to an asset path. Empty paths are ignored.
func (rm *ResourceManager) RegisterSound(soundID, path string) {
	if path == "" {
		return
	}
	rm.soundPaths[soundID] = path
}

// SoundPath returns the path registered for soundID.
func (rm *ResourceManager) SoundPath(soundID string) (string, bool) {
	path, ok := rm.soundPaths[soundID]
	return path, ok
}

// LoadFont loads a TrueType/OpenType font and returns a face of the given size.
func (rm *ResourceManager) LoadFont(path string, size float64) (Font, error) {
	if path == "" {
		return Font{}, fmt.Errorf("empty font path")
	}

	source, exists := rm.fontSourceCache[path]
	if !exists {
		fontData, err := os.ReadFile(rm.Resolve(path))
		if err != nil {
			return Font{}, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return Font{}, fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.fontSourceCache[path] = source
	}

	return Font{
		Face: &text.GoTextFace{
			Source:    source,
			Size:      size,
			Direction: text.DirectionLeftToRight,
		},
		Scale: 1,
	}, nil
}

// FontOrDefault loads the font at path, falling back to the built-in bitmap
// font scaled to size when path is empty or the file cannot be used.
func (rm *ResourceManager) FontOrDefault(path string, size float64) Font {
	if path != "" {
		f, err := rm.LoadFont(path, size)
		if err == nil {
			return f
		}
		log.Printf("[ResourceManager] Warning: %v (using bitmap font)", err)
	}
	return BitmapFont(size)
}

// BitmapFont returns the built-in bitmap font scaled to roughly size pixels.
func BitmapFont(size float64) Font {
	scale := size / bitmapFontHeight
	if scale < 1 {
		scale = 1
	}
	return Font{
		Face:  text.NewGoXFace(bitmapfont.Face),
		Scale: scale,
	}
}
