package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Stats 调试信息
type Stats struct {
	TPS       float64
	Fragments int
	Caught    int
	Missed    int
	Muted     bool
}

// Line 格式化为单行文本
func (s Stats) Line() string {
	line := fmt.Sprintf("TPS %.0f  falling %d  caught %d  missed %d", s.TPS, s.Fragments, s.Caught, s.Missed)
	if s.Muted {
		line += "  [muted]"
	}
	return line
}

// HUD 左上角调试信息
type HUD struct {
	face text.Face
	clr  color.Color
}

// NewHUD 创建使用 7x13 位图字体的 HUD
func NewHUD() *HUD {
	return &HUD{
		face: text.NewGoXFace(basicfont.Face7x13),
		clr:  color.RGBA{R: 230, G: 230, B: 230, A: 255},
	}
}

// Draw 绘制统计信息
func (h *HUD) Draw(screen *ebiten.Image, s Stats) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(6, 4)
	op.ColorScale.ScaleWithColor(h.clr)
	text.Draw(screen, s.Line(), h.face, op)
}
