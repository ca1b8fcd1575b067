package catch

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// Texture 纹理句柄（*ebiten.Image 及其包装都满足此接口）
type Texture interface {
	Bounds() image.Rectangle
}

// Sound 单次音效
// Play 必须立即返回，多次重叠调用互不影响
type Sound interface {
	Play()
}

// Music 流式背景音乐
type Music interface {
	SetLooping(looping bool)
	Play()
}

// Renderer 绘制协作者
// 坐标均为世界坐标，由实现负责通过摄像机投影到目标画面
type Renderer interface {
	Clear(c color.Color)
	Begin(camera *Camera)
	// DrawTexture 以纹理原始尺寸绘制，(x, y) 为左下角
	DrawTexture(tex Texture, x, y float64)
	// DrawRegion 绘制纹理的子区域到 dst
	DrawRegion(tex Texture, src image.Rectangle, dst Rect)
	End()
}

// Assets 游戏循环持有的资源
// Dispose 时对每个实现了 io.Closer 的句柄调用一次 Close
type Assets struct {
	Sheet  Texture
	Bucket Texture
	Catch  Sound
	Music  Music
}

func (a Assets) release() error {
	var errs []error
	for _, h := range []any{a.Sheet, a.Bucket, a.Catch, a.Music} {
		if c, ok := h.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
