package game

import "time"

// Clock 单调时钟
type Clock interface {
	// Now 返回自某个固定起点以来经过的时间，单调不减
	Now() time.Duration
}

// MonotonicClock 基于 time.Time 单调读数的时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建以当前时刻为起点的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// FrameTimer 由时钟读数计算每帧的 deltaTime
type FrameTimer struct {
	clock   Clock
	last    time.Duration
	started bool
}

// NewFrameTimer 创建帧计时器
func NewFrameTimer(clock Clock) *FrameTimer {
	return &FrameTimer{clock: clock}
}

// Tick 读取时钟并返回当前时间和距上一次 Tick 经过的秒数
// 第一次调用的 deltaTime 为 0
func (ft *FrameTimer) Tick() (now time.Duration, deltaTime float64) {
	now = ft.clock.Now()
	if ft.started && now > ft.last {
		deltaTime = (now - ft.last).Seconds()
	}
	ft.last = now
	ft.started = true
	return now, deltaTime
}
