package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// pngBytes encodes a solid w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, blue)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// wavBytes builds a silent 16-bit stereo 48kHz WAV with the given frame count.
func wavBytes(frames int) []byte {
	const (
		channels      = 2
		sampleRate    = 48000
		bitsPerSample = 16
	)
	dataLen := frames * channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

// auBytes builds a silent mono μ-law AU file.
func auBytes(rate, samples int) []byte {
	var buf bytes.Buffer
	for _, v := range []uint32{0x2e736e64, 24, uint32(samples), 1, uint32(rate), 1} {
		binary.Write(&buf, binary.BigEndian, v)
	}
	buf.Write(bytes.Repeat([]byte{0xFF}, samples))
	return buf.Bytes()
}

const testManifest = `version: "1.0"
base_path: ""
groups:
  init:
    images:
      - id: IMAGE_SHEET
        path: images/sheet
        cols: 8
        rows: 8
      - id: IMAGE_BUCKET
        path: images/bucket.png
    sounds:
      - id: SOUND_DROP
        path: sounds/drop.wav
  music:
    sounds:
      - id: MUSIC_RAIN
        path: sounds/rain.wav
  broken:
    images:
      - id: IMAGE_BROKEN
        path: images/broken.png
`

func newTestFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"config/resources.yaml": {Data: []byte(testManifest)},
		"images/sheet.png":      {Data: pngBytes(t, 32, 32)},
		"images/bucket.png":     {Data: pngBytes(t, 16, 16)},
		"images/broken.png":     {Data: []byte("not a png")},
		"sounds/drop.wav":       {Data: wavBytes(480)},
		"sounds/rain.wav":       {Data: wavBytes(4800)},
		"sounds/beep.flac":      {Data: []byte("fLaC")},
		"sounds/click.au":       {Data: auBytes(8000, 800)},
	}
}

func newTestResourceManager(t *testing.T) *ResourceManager {
	t.Helper()
	rm := NewResourceManager(newTestFS(t), testAudioContext, nil)
	require.NoError(t, rm.LoadResourceConfig("config/resources.yaml"))
	t.Cleanup(func() { rm.Close() })
	return rm
}

func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(fstest.MapFS{}, testAudioContext, nil)
	require.NotNil(t, rm)
	assert.NotNil(t, rm.imageCache)
	assert.NotNil(t, rm.soundCache)
	assert.Same(t, testAudioContext, rm.AudioContext())
}

func TestLoadImage_Success(t *testing.T) {
	rm := newTestResourceManager(t)

	img, err := rm.LoadImage("images/bucket.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestLoadImage_CachingMechanism(t *testing.T) {
	rm := newTestResourceManager(t)

	first, err := rm.LoadImage("images/bucket.png")
	require.NoError(t, err)
	second, err := rm.LoadImage("images/bucket.png")
	require.NoError(t, err)
	assert.Same(t, first, second, "second load must come from the cache")
	assert.Same(t, first, rm.GetImage("images/bucket.png"))
}

func TestLoadImage_Errors(t *testing.T) {
	rm := newTestResourceManager(t)

	_, err := rm.LoadImage("images/missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = rm.LoadImage("images/broken.png")
	assert.Error(t, err)
	assert.Nil(t, rm.GetImage("images/broken.png"), "failed decodes are not cached")
}

func TestReleaseImage(t *testing.T) {
	rm := newTestResourceManager(t)

	_, err := rm.LoadImage("images/bucket.png")
	require.NoError(t, err)
	rm.ReleaseImage("images/bucket.png")
	assert.Nil(t, rm.GetImage("images/bucket.png"))

	assert.NotPanics(t, func() { rm.ReleaseImage("images/never-loaded.png") })
}

func TestResolveID(t *testing.T) {
	rm := newTestResourceManager(t)

	tests := []struct {
		id   string
		want string
	}{
		{"IMAGE_SHEET", "images/sheet.png"},
		{"IMAGE_BUCKET", "images/bucket.png"},
		{"SOUND_DROP", "sounds/drop.wav"},
		{"MUSIC_RAIN", "sounds/rain.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := rm.ResolveID(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := rm.ResolveID("IMAGE_NOPE")
	assert.True(t, errors.Is(err, ErrUnknownResource))
}

func TestResolveIDWithoutManifest(t *testing.T) {
	rm := NewResourceManager(fstest.MapFS{}, testAudioContext, nil)
	_, err := rm.ResolveID("IMAGE_SHEET")
	assert.Error(t, err)
}

func TestLoadResourceConfig_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"config/bad.yaml": {Data: []byte("groups: [not, a, map")},
	}
	rm := NewResourceManager(fsys, testAudioContext, nil)

	assert.Error(t, rm.LoadResourceConfig("config/missing.yaml"))
	assert.Error(t, rm.LoadResourceConfig("config/bad.yaml"))
}

func TestLoadTextureByID(t *testing.T) {
	rm := newTestResourceManager(t)

	tex, err := rm.LoadTextureByID("IMAGE_SHEET")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), tex.Bounds())
	assert.NotNil(t, rm.GetImage("images/sheet.png"))

	require.NoError(t, tex.Close())
	assert.Nil(t, rm.GetImage("images/sheet.png"), "closing the texture releases the cached image")
	assert.Nil(t, tex.Image())
	assert.Equal(t, image.Rectangle{}, tex.Bounds())
	assert.NoError(t, tex.Close(), "Close is idempotent")

	_, err = rm.LoadTextureByID("IMAGE_NOPE")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestLoadSound(t *testing.T) {
	rm := newTestResourceManager(t)

	pcm, err := rm.LoadSoundByID("SOUND_DROP")
	require.NoError(t, err)
	assert.Len(t, pcm, 480*4, "16-bit stereo PCM")

	again, err := rm.LoadSound("sounds/drop.wav")
	require.NoError(t, err)
	assert.Equal(t, len(pcm), len(again))
}

func TestLoadSoundAU(t *testing.T) {
	rm := newTestResourceManager(t)

	pcm, err := rm.LoadSound("sounds/click.au")
	require.NoError(t, err)
	// 800 samples at 8kHz resampled to 48kHz stereo 16-bit
	assert.Len(t, pcm, 4800*4)
}

func TestOpenStream_Errors(t *testing.T) {
	rm := newTestResourceManager(t)

	_, err := rm.OpenStream("sounds/missing.wav")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = rm.OpenStream("sounds/beep.flac")
	assert.ErrorContains(t, err, "unsupported audio format")

	noAudio := NewResourceManager(newTestFS(t), nil, nil)
	_, err = noAudio.OpenStream("sounds/drop.wav")
	assert.ErrorContains(t, err, "no audio context")
}

func TestLoadResourceGroup(t *testing.T) {
	rm := newTestResourceManager(t)

	require.NoError(t, rm.LoadResourceGroup("init"))
	assert.NotNil(t, rm.GetImage("images/sheet.png"))
	assert.NotNil(t, rm.GetImage("images/bucket.png"))

	err := rm.LoadResourceGroup("broken")
	assert.ErrorContains(t, err, "IMAGE_BROKEN")

	assert.Error(t, rm.LoadResourceGroup("nope"))
}

func TestResourceManagerClose(t *testing.T) {
	rm := newTestResourceManager(t)
	require.NoError(t, rm.LoadResourceGroup("init"))

	require.NoError(t, rm.Close())
	assert.Nil(t, rm.GetImage("images/sheet.png"))
	assert.Empty(t, rm.soundCache)
	assert.NoError(t, rm.Close())
}
