// Package render 把世界坐标中的绘制请求投影到 ebiten 画面上
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/dropcatch/pkg/catch"
)

// imageSource 能提供 *ebiten.Image 的纹理句柄（game.Texture）
type imageSource interface {
	Image() *ebiten.Image
}

// SpriteBatch 实现 catch.Renderer
//
// Begin 与 End 之间的绘制使用同一个摄像机投影；
// 目标画面由 SetTarget 在每帧 Draw 开始时指定。
type SpriteBatch struct {
	target  *ebiten.Image
	camera  *catch.Camera
	drawing bool
	op      ebiten.DrawImageOptions
	// Draws 最近一批的绘制次数
	Draws int
}

// NewSpriteBatch 创建绘制批次
func NewSpriteBatch() *SpriteBatch {
	return &SpriteBatch{}
}

// SetTarget 设置本帧的目标画面
func (b *SpriteBatch) SetTarget(target *ebiten.Image) {
	b.target = target
}

// Clear 用纯色填充目标画面
func (b *SpriteBatch) Clear(c color.Color) {
	if b.target != nil {
		b.target.Fill(c)
	}
}

// Begin 开始一批绘制
func (b *SpriteBatch) Begin(camera *catch.Camera) {
	b.camera = camera
	b.drawing = true
	b.Draws = 0
}

// End 结束本批绘制
func (b *SpriteBatch) End() {
	b.drawing = false
}

// DrawTexture 以纹理原始尺寸绘制，(x, y) 为世界坐标中的左下角
func (b *SpriteBatch) DrawTexture(tex catch.Texture, x, y float64) {
	size := tex.Bounds()
	b.DrawRegion(tex, size, catch.Rect{X: x, Y: y, W: float64(size.Dx()), H: float64(size.Dy())})
}

// DrawRegion 将纹理的 src 区域绘制到世界坐标矩形 dst
func (b *SpriteBatch) DrawRegion(tex catch.Texture, src image.Rectangle, dst catch.Rect) {
	if !b.drawing || b.target == nil || b.camera == nil {
		return
	}
	is, ok := tex.(imageSource)
	if !ok {
		return
	}
	img := is.Image()
	if img == nil || src.Empty() {
		return
	}

	sub := img.SubImage(src).(*ebiten.Image)
	bounds := b.target.Bounds()

	b.op.GeoM.Reset()
	b.op.GeoM.Concat(DstGeoM(b.camera, src, dst, float64(bounds.Dx()), float64(bounds.Dy())))
	b.target.DrawImage(sub, &b.op)
	b.Draws++
}

// DstGeoM 计算把 src 尺寸的图片放到屏幕上 dst 投影位置所需的变换
func DstGeoM(camera *catch.Camera, src image.Rectangle, dst catch.Rect, screenW, screenH float64) ebiten.GeoM {
	x, y, w, h := camera.ProjectRect(dst, screenW, screenH)

	var g ebiten.GeoM
	g.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	g.Translate(x, y)
	return g
}
