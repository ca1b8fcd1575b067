package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
)

// KeyMap 解析后的左右移动按键
type KeyMap struct {
	Left  []ebiten.Key
	Right []ebiten.Key
}

// ParseKeyBindings 把配置中的按键名（如 "ArrowLeft"、"A"）解析为 ebiten.Key
func ParseKeyBindings(b config.KeyBindings) (KeyMap, error) {
	left, err := parseKeys(b.Left)
	if err != nil {
		return KeyMap{}, fmt.Errorf("left binding: %w", err)
	}
	right, err := parseKeys(b.Right)
	if err != nil {
		return KeyMap{}, fmt.Errorf("right binding: %w", err)
	}
	return KeyMap{Left: left, Right: right}, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("unknown key %q: %w", name, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// KeyState 按键查询，默认使用 ebiten.IsKeyPressed
type KeyState func(ebiten.Key) bool

func anyPressed(pressed KeyState, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// PointerState 指针查询：是否按下及其设备坐标
type PointerState func() (down bool, x, y float64)

// InputSampler 每帧从 ebiten 采集输入快照
type InputSampler struct {
	keys       KeyMap
	screenW    float64
	screenH    float64
	keyPressed KeyState
	pointer    PointerState
}

// NewInputSampler 创建输入采集器
//
// 参数：
//   - keys: 左右移动按键
//   - screenW, screenH: 逻辑屏幕尺寸（ebiten 的光标坐标已在此坐标系内）
func NewInputSampler(keys KeyMap, screenW, screenH float64) *InputSampler {
	return &InputSampler{
		keys:       keys,
		screenW:    screenW,
		screenH:    screenH,
		keyPressed: ebiten.IsKeyPressed,
		pointer:    newEbitenPointer(),
	}
}

// Sample 采集当前帧的输入
func (s *InputSampler) Sample() catch.Input {
	in := catch.Input{
		ScreenW: s.screenW,
		ScreenH: s.screenH,
		Left:    anyPressed(s.keyPressed, s.keys.Left),
		Right:   anyPressed(s.keyPressed, s.keys.Right),
	}
	in.PointerDown, in.PointerX, in.PointerY = s.pointer()
	return in
}

// newEbitenPointer 鼠标左键或任意触摸都视为指针按下，触摸优先使用第一个触点
func newEbitenPointer() PointerState {
	var touchIDs []ebiten.TouchID
	return func() (bool, float64, float64) {
		touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
		if len(touchIDs) > 0 {
			x, y := ebiten.TouchPosition(touchIDs[0])
			return true, float64(x), float64(y)
		}
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			return true, float64(x), float64(y)
		}
		return false, 0, 0
	}
}
