package catch

// Camera 正交摄像机
//
// 世界坐标以视口左下角为原点、Y 轴向上（yDown=false），
// 屏幕/设备坐标以左上角为原点、Y 轴向下。
// Update 根据视口尺寸和位置重新计算投影，Project/Unproject 使用最近一次的结果。
type Camera struct {
	ViewportWidth  float64
	ViewportHeight float64
	// X, Y 摄像机中心（世界坐标）
	X, Y  float64
	yDown bool

	// 世界坐标 -> 归一化设备坐标 [-1, 1]
	scaleX, scaleY float64
	offX, offY     float64
}

// NewCamera 创建一个覆盖 width x height 的 Y 轴向上摄像机
func NewCamera(width, height float64) *Camera {
	c := &Camera{}
	c.SetToOrtho(false, width, height)
	return c
}

// SetToOrtho 设置视口尺寸并把摄像机居中到视口
func (c *Camera) SetToOrtho(yDown bool, width, height float64) {
	c.yDown = yDown
	c.ViewportWidth = width
	c.ViewportHeight = height
	c.X = width / 2
	c.Y = height / 2
	c.Update()
}

// Update 重新计算投影
func (c *Camera) Update() {
	c.scaleX = 2 / c.ViewportWidth
	c.scaleY = 2 / c.ViewportHeight
	if c.yDown {
		c.scaleY = -c.scaleY
	}
	c.offX = -c.X * c.scaleX
	c.offY = -c.Y * c.scaleY
}

// Unproject 将设备坐标转换为世界坐标
//
// 参数:
//   - screenX, screenY: 设备坐标（左上角原点，Y 向下）
//   - screenW, screenH: 设备尺寸
func (c *Camera) Unproject(screenX, screenY, screenW, screenH float64) (float64, float64) {
	ndcX := 2*screenX/screenW - 1
	ndcY := 2*(screenH-screenY)/screenH - 1
	return (ndcX - c.offX) / c.scaleX, (ndcY - c.offY) / c.scaleY
}

// Project 将世界坐标转换为设备坐标（Unproject 的逆运算）
func (c *Camera) Project(worldX, worldY, screenW, screenH float64) (float64, float64) {
	ndcX := worldX*c.scaleX + c.offX
	ndcY := worldY*c.scaleY + c.offY
	return (ndcX + 1) * screenW / 2, screenH - (ndcY+1)*screenH/2
}

// ProjectRect 返回矩形在设备坐标中的左上角与尺寸
func (c *Camera) ProjectRect(r Rect, screenW, screenH float64) (x, y, w, h float64) {
	x0, y0 := c.Project(r.X, r.Y, screenW, screenH)
	x1, y1 := c.Project(r.Right(), r.Top(), screenW, screenH)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1 - x0, y1 - y0
}
