package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalls int
	drawCalled  bool
	updateErr   error
}

// Update records that Update was called.
func (m *MockScene) Update() error {
	m.updateCalls++
	return m.updateErr
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// disposableScene additionally records Dispose calls.
type disposableScene struct {
	MockScene
	disposed   int
	disposeErr error
}

func (d *disposableScene) Dispose() error {
	d.disposed++
	return d.disposeErr
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(nil)
	require.NotNil(t, sm)
	assert.Nil(t, sm.GetCurrentScene())
}

func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	assert.Same(t, mockScene, sm.GetCurrentScene())
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	require.NoError(t, sm.Update())
	assert.Equal(t, 1, mockScene.updateCalls)

	mockScene.updateErr = ebiten.Termination
	assert.ErrorIs(t, sm.Update(), ebiten.Termination, "Update must propagate the scene's error")
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)
	assert.True(t, mockScene.drawCalled)
}

func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager(nil)

	assert.NoError(t, sm.Update())
	assert.NotPanics(t, func() { sm.Draw(nil) })
	assert.NoError(t, sm.Close())
}

func TestSceneManagerSwitchDisposesPrevious(t *testing.T) {
	sm := NewSceneManager(nil)
	first := &disposableScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	assert.Equal(t, 0, first.disposed, "switching to the same scene keeps it")

	sm.SwitchTo(second)
	assert.Equal(t, 1, first.disposed)
	assert.Same(t, second, sm.GetCurrentScene())
}

func TestSceneManagerCloseReturnsDisposeError(t *testing.T) {
	sm := NewSceneManager(nil)
	boom := errors.New("boom")
	scene := &disposableScene{disposeErr: boom}
	sm.SwitchTo(scene)

	assert.ErrorIs(t, sm.Close(), boom)
	assert.Equal(t, 1, scene.disposed)
	assert.Nil(t, sm.GetCurrentScene())
	assert.NoError(t, sm.Close(), "second Close has nothing to dispose")
}
