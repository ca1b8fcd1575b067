package scenes

import (
	"image"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
)

// stepClock 由帧序号换算时间，避免浮点累加误差
type stepClock struct {
	frames int
	now    time.Duration
}

func (c *stepClock) step() {
	c.frames++
	c.now = time.Duration(c.frames) * time.Second / 60
}

func (c *stepClock) Now() time.Duration { return c.now }

// fixedRand 始终返回 0：取材区域在左上角，碎片生成在最左侧
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

type stubTexture image.Rectangle

func (s stubTexture) Bounds() image.Rectangle { return image.Rectangle(s) }

type countingSound struct{ plays int }

func (s *countingSound) Play() { s.plays++ }

type stubMusic struct {
	looping bool
	plays   int
	closed  int
}

func (m *stubMusic) SetLooping(l bool) { m.looping = l }
func (m *stubMusic) Play()             { m.plays++ }
func (m *stubMusic) Close() error {
	m.closed++
	return nil
}

func newTestScene(t *testing.T, keys ...ebiten.Key) (*CatchScene, *stepClock, *countingSound, *stubMusic) {
	t.Helper()
	clock := &stepClock{}
	sound := &countingSound{}
	music := &stubMusic{}
	cfg := config.DefaultGameConfig()

	keyMap, err := ParseKeyBindings(cfg.Keys)
	require.NoError(t, err)

	s := NewCatchScene(CatchSceneOptions{
		Config: cfg,
		Assets: catch.Assets{
			Sheet:  stubTexture(image.Rect(0, 0, 512, 512)),
			Bucket: stubTexture(image.Rect(0, 0, 64, 64)),
			Catch:  sound,
			Music:  music,
		},
		Keys:  keyMap,
		Clock: clock,
		Rand:  fixedRand{},
	})
	s.input.keyPressed = fakeKeys(keys...)
	s.input.pointer = fakePointer(false, 0, 0)
	return s, clock, sound, music
}

// advance 以 60fps 推进 n 帧
func advance(t *testing.T, s *CatchScene, clock *stepClock, n int) {
	t.Helper()
	for range n {
		clock.step()
		require.NoError(t, s.Update())
	}
}

func TestNewCatchSceneCreatesLoop(t *testing.T) {
	s, _, _, music := newTestScene(t)

	assert.Equal(t, catch.StateRunning, s.Loop().State())
	assert.True(t, music.looping)
	assert.Equal(t, 1, music.plays)
	assert.Len(t, s.Loop().Fragments(), 1)
	assert.Equal(t, 368.0, s.Loop().Catcher().X)
}

func TestCatchSceneUpdateMovesCatcher(t *testing.T) {
	s, clock, _, _ := newTestScene(t, ebiten.KeyA)

	advance(t, s, clock, 30)
	// 30 帧 * 200/60 = 100
	assert.InDelta(t, 268, s.Loop().Catcher().X, 1e-6)
}

func TestCatchScenePointerDrags(t *testing.T) {
	s, clock, _, _ := newTestScene(t)
	s.input.pointer = fakePointer(true, 100, 240)

	advance(t, s, clock, 1)
	assert.InDelta(t, 68, s.Loop().Catcher().X, 1e-9)
}

func TestCatchSceneCountsCatchesAndMisses(t *testing.T) {
	// 碎片都生成在 x=0，停在最左侧的接取桶接住全部
	s, clock, sound, _ := newTestScene(t, ebiten.KeyArrowLeft)

	advance(t, s, clock, 300)
	st := s.Stats()
	assert.Equal(t, 6, s.spawned)
	assert.Equal(t, 0, st.Missed)
	assert.Equal(t, sound.plays, st.Caught)
	assert.Equal(t, 4, st.Caught, "fragments spawned at 0s..3s reach the bucket 1.98s later")
	assert.Equal(t, 2, st.Fragments)

	// 接取桶停在右侧时全部漏掉
	s, clock, sound, _ = newTestScene(t, ebiten.KeyArrowRight)
	advance(t, s, clock, 300)
	st = s.Stats()
	assert.Equal(t, 0, st.Caught)
	assert.Equal(t, 0, sound.plays)
	assert.Equal(t, 3, st.Missed, "fragments spawned at 0s..2s leave the screen 2.72s later")
	assert.Equal(t, 3, st.Fragments)
}

func TestCatchSceneDispose(t *testing.T) {
	s, _, _, music := newTestScene(t)

	require.NoError(t, s.Dispose())
	assert.Equal(t, catch.StateDisposed, s.Loop().State())
	assert.Equal(t, 1, music.closed)

	require.NoError(t, s.Dispose())
	assert.Equal(t, 1, music.closed, "second Dispose releases nothing")
	assert.NoError(t, s.Update(), "Update after Dispose is a no-op")
}
