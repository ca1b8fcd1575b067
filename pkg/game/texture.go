package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture 纹理句柄
// 关闭后图片从 ResourceManager 缓存中释放
type Texture struct {
	img  *ebiten.Image
	path string
	rm   *ResourceManager
}

// Image 返回底层图片，已关闭时返回 nil
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Bounds 纹理尺寸
func (t *Texture) Bounds() image.Rectangle {
	if t.img == nil {
		return image.Rectangle{}
	}
	return t.img.Bounds()
}

// Close 释放纹理，重复调用无效果
func (t *Texture) Close() error {
	if t.img == nil {
		return nil
	}
	t.rm.ReleaseImage(t.path)
	t.img = nil
	return nil
}
