package catch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	catcher := Rect{X: 368, Y: 20, W: 64, H: 64}

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"identical", Rect{X: 368, Y: 20, W: 64, H: 64}, true},
		{"partial x", Rect{X: 400, Y: 20, W: 64, H: 64}, true},
		{"partial y", Rect{X: 368, Y: 80, W: 64, H: 64}, true},
		{"gap on x", Rect{X: 433, Y: 20, W: 64, H: 64}, false},
		{"touching right edge", Rect{X: 432, Y: 20, W: 64, H: 64}, false},
		{"touching top edge", Rect{X: 368, Y: 84, W: 64, H: 64}, false},
		{"touching left edge", Rect{X: 304, Y: 20, W: 64, H: 64}, false},
		{"far above", Rect{X: 368, Y: 480, W: 64, H: 64}, false},
		{"contained", Rect{X: 380, Y: 30, W: 8, H: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Overlaps(catcher))
			assert.Equal(t, tt.want, catcher.Overlaps(tt.r), "overlap must be symmetric")
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 736))
	assert.Equal(t, 736.0, clamp(900, 0, 736))
	assert.Equal(t, 12.5, clamp(12.5, 0, 736))
}
