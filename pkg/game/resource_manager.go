package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"

	auaudio "github.com/decker502/dropcatch/internal/audio"
)

// ErrUnknownResource is returned when a resource ID is not in the manifest.
var ErrUnknownResource = errors.New("unknown resource ID")

// audioStream is a decoded PCM stream (16-bit stereo at the context sample rate).
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for images and audio assets,
// ensuring that resources are loaded only once and reused throughout the game.
//
// All files are read from an fs.FS, which is the embedded asset tree by
// default or an os.DirFS when the player points the game at a directory.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(assetsFS, audioContext, logger)
//	if err := rm.LoadResourceConfig("config/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImageByID("IMAGE_BUCKET")
type ResourceManager struct {
	fsys         fs.FS
	audioContext *audio.Context
	logger       *log.Logger

	imageCache map[string]*ebiten.Image // path -> Image
	soundCache map[string][]byte        // path -> decoded PCM bytes

	config      *ResourceConfig   // Parsed YAML manifest
	resourceMap map[string]string // Resource ID -> file path
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - fsys: The file system all resource paths are resolved against.
//   - audioContext: The global audio context used for decoding. May be nil when
//     no audio is loaded (e.g. image-only tools).
//   - logger: Logger for load diagnostics. nil uses the default logger.
func NewResourceManager(fsys fs.FS, audioContext *audio.Context, logger *log.Logger) *ResourceManager {
	if logger == nil {
		logger = log.Default()
	}
	return &ResourceManager{
		fsys:         fsys,
		audioContext: audioContext,
		logger:       logger.WithPrefix("ResourceManager"),
		imageCache:   make(map[string]*ebiten.Image),
		soundCache:   make(map[string][]byte),
		resourceMap:  make(map[string]string),
	}
}

// AudioContext returns the audio context used for decoding.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadResourceConfig loads and parses the YAML resource manifest.
//
// Parameters:
//   - configPath: Path of the manifest inside the resource file system.
//
// Returns:
//   - An error if the file cannot be opened or parsed
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()

	rm.logger.Debug("manifest loaded", "path", configPath, "groups", len(config.Groups), "resources", len(rm.resourceMap))
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	IMAGE_BUCKET -> images/bucket.png
//	SOUND_DROP   -> sounds/drop.wav
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".ogg"
			}
			rm.resourceMap[sound.ID] = fullPath
		}
	}
}

// ResolveID returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolveID(resourceID string) (string, error) {
	if rm.config == nil {
		return "", fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, resourceID)
	}
	return filePath, nil
}

// LoadImage loads an image file and caches it for future use.
// Supported formats: PNG and JPEG.
func (rm *ResourceManager) LoadImage(imagePath string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[imagePath]; exists {
		return cachedImage, nil
	}

	file, err := rm.fsys.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", imagePath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[imagePath] = ebitenImg

	rm.logger.Debug("image loaded", "path", imagePath, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return ebitenImg, nil
}

// LoadImageByID loads an image resource using its manifest ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	filePath, err := rm.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadImage(filePath)
}

// LoadTextureByID loads an image and wraps it in a Texture handle. Closing the
// handle releases the image from this manager.
func (rm *ResourceManager) LoadTextureByID(resourceID string) (*Texture, error) {
	filePath, err := rm.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	img, err := rm.LoadImage(filePath)
	if err != nil {
		return nil, err
	}
	return &Texture{img: img, path: filePath, rm: rm}, nil
}

// GetImage retrieves a previously loaded image, or nil.
func (rm *ResourceManager) GetImage(imagePath string) *ebiten.Image {
	return rm.imageCache[imagePath]
}

// ReleaseImage deallocates a cached image. Releasing an unknown path is a no-op.
func (rm *ResourceManager) ReleaseImage(imagePath string) {
	img, exists := rm.imageCache[imagePath]
	if !exists {
		return
	}
	img.Deallocate()
	delete(rm.imageCache, imagePath)
}

// LoadSound loads a one-shot sound and caches its fully decoded PCM bytes.
// Every playback creates its own player from these bytes, so overlapping plays
// never cut each other off.
// Supported formats: WAV (.wav), MP3 (.mp3), OGG Vorbis (.ogg) and Sun AU (.au).
func (rm *ResourceManager) LoadSound(soundPath string) ([]byte, error) {
	if pcm, exists := rm.soundCache[soundPath]; exists {
		return pcm, nil
	}

	stream, err := rm.OpenStream(soundPath)
	if err != nil {
		return nil, err
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound effect %s: %w", soundPath, err)
	}

	rm.soundCache[soundPath] = pcm
	rm.logger.Debug("sound loaded", "path", soundPath, "bytes", len(pcm))
	return pcm, nil
}

// LoadSoundByID loads a sound effect using its manifest ID.
func (rm *ResourceManager) LoadSoundByID(resourceID string) ([]byte, error) {
	filePath, err := rm.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadSound(filePath)
}

// OpenStream decodes an audio file into a seekable PCM stream. The file is read
// into memory first so the stream can seek without keeping the file open.
// Streams are not cached: each caller owns the returned stream.
func (rm *ResourceManager) OpenStream(audioPath string) (audioStream, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("failed to load audio %s: no audio context", audioPath)
	}

	audioData, err := fs.ReadFile(rm.fsys, audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", audioPath, err)
	}
	reader := bytes.NewReader(audioData)
	sampleRate := rm.audioContext.SampleRate()

	switch ext := strings.ToLower(path.Ext(audioPath)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", audioPath, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", audioPath, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", audioPath, err)
		}
		return s, nil
	case ".au":
		s, err := auaudio.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU audio %s: %w", audioPath, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}

// LoadResourceGroup loads all images and sounds of a manifest group.
// Music entries should live in their own group; they are opened as streams by
// AudioManager.NewMusic and never loaded here.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}

	for _, sound := range group.Sounds {
		if _, err := rm.LoadSoundByID(sound.ID); err != nil {
			return fmt.Errorf("failed to load sound %s in group %s: %w", sound.ID, groupName, err)
		}
	}

	return nil
}

// Close deallocates every cached image and drops the decoded sounds.
// It is safe to call more than once.
func (rm *ResourceManager) Close() error {
	for p, img := range rm.imageCache {
		img.Deallocate()
		delete(rm.imageCache, p)
	}
	clear(rm.soundCache)
	return nil
}
