package catch

// Rect 轴对齐矩形（世界坐标，X/Y 为左下角）
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps 判断两个矩形是否有非零面积的交集
// 仅边缘相接（交集面积为 0）不算重叠
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Right 右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Top 上边界
func (r Rect) Top() float64 { return r.Y + r.H }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
