package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/dropcatch/pkg/catch"
)

func TestDstGeoM(t *testing.T) {
	cam := catch.NewCamera(800, 480)

	tests := []struct {
		name             string
		src              image.Rectangle
		dst              catch.Rect
		screenW, screenH float64
		wantX, wantY     float64
		wantW, wantH     float64
	}{
		{
			name: "bucket at rest", src: image.Rect(0, 0, 64, 64),
			dst:     catch.Rect{X: 368, Y: 20, W: 64, H: 64},
			screenW: 800, screenH: 480,
			wantX: 368, wantY: 396, wantW: 64, wantH: 64,
		},
		{
			name: "fragment at spawn is just above the screen", src: image.Rect(100, 200, 164, 264),
			dst:     catch.Rect{X: 0, Y: 480, W: 64, H: 64},
			screenW: 800, screenH: 480,
			wantX: 0, wantY: -64, wantW: 64, wantH: 64,
		},
		{
			name: "scaled target", src: image.Rect(0, 0, 64, 64),
			dst:     catch.Rect{X: 0, Y: 0, W: 64, H: 64},
			screenW: 1600, screenH: 960,
			wantX: 0, wantY: 832, wantW: 128, wantH: 128,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DstGeoM(cam, tt.src, tt.dst, tt.screenW, tt.screenH)

			x0, y0 := g.Apply(0, 0)
			x1, y1 := g.Apply(float64(tt.src.Dx()), float64(tt.src.Dy()))
			assert.InDelta(t, tt.wantX, x0, 1e-9)
			assert.InDelta(t, tt.wantY, y0, 1e-9)
			assert.InDelta(t, tt.wantW, x1-x0, 1e-9)
			assert.InDelta(t, tt.wantH, y1-y0, 1e-9)
		})
	}
}

func TestDrawWithoutBeginIsIgnored(t *testing.T) {
	b := NewSpriteBatch()
	b.DrawRegion(nil, image.Rect(0, 0, 1, 1), catch.Rect{W: 1, H: 1})
	assert.Equal(t, 0, b.Draws)
}

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "TPS 60  falling 3  caught 2  missed 1", Stats{TPS: 60, Fragments: 3, Caught: 2, Missed: 1}.Line())
	assert.Equal(t, "TPS 0  falling 0  caught 0  missed 0  [muted]", Stats{Muted: true}.Line())
}
