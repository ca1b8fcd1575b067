// Package catch 实现接取游戏的核心循环
//
// Loop 拥有摄像机、接取桶、下落碎片集合和生成计时器。
// 宿主在启动时调用 Create，每帧调用 Step（更新）和 Draw（绘制），退出时调用 Dispose。
// 输入、时钟、随机数和资源全部由调用方显式传入，本包不依赖任何引擎全局状态。
package catch

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/dropcatch/pkg/config"
)

// State 游戏循环状态
type State int

const (
	// StateNew 已构造，尚未 Create
	StateNew State = iota
	// StateRunning 运行中（唯一的稳定状态）
	StateRunning
	// StateDisposed 已释放资源（终态）
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rand 随机数来源，*math/rand/v2.Rand 满足此接口
type Rand interface {
	// IntN 返回 [0, n) 内的随机整数
	IntN(n int) int
}

// Input 单帧输入快照
type Input struct {
	// PointerDown 本帧指针（鼠标左键或触摸）是否按下
	PointerDown bool
	// PointerX, PointerY 指针的设备坐标（左上角原点）
	PointerX, PointerY float64
	// ScreenW, ScreenH 设备尺寸，用于反投影
	ScreenW, ScreenH float64
	Left             bool
	Right            bool
}

// Fragment 下落碎片
type Fragment struct {
	Bounds Rect
	// Src 在精灵图中的取材区域，仅用于绘制
	Src image.Rectangle
}

// StepResult 单帧统计
type StepResult struct {
	Spawned int
	Caught  int
	Missed  int
}

// Loop 游戏循环
type Loop struct {
	cfg    config.GameConfig
	assets Assets
	rng    Rand
	logger *log.Logger

	state     State
	camera    *Camera
	catcher   Rect
	fragments []Fragment
	lastSpawn time.Duration
	// sheet 实际精灵图尺寸，Create 时从纹理读取
	sheet image.Point
}

// Option 构造选项
type Option func(*Loop)

// WithLogger 设置日志记录器
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New 创建游戏循环（处于 StateNew，需调用 Create 进入运行状态）
//
// 参数:
//   - cfg: 已校验的游戏配置
//   - assets: 纹理、音效和音乐句柄，所有权转移给 Loop，在 Dispose 时释放
//   - rng: 随机数来源（生成位置与取材区域），nil 时使用随机种子的 PCG
func New(cfg config.GameConfig, assets Assets, rng Rand, opts ...Option) *Loop {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	l := &Loop{
		cfg:    cfg,
		assets: assets,
		rng:    rng,
		logger: log.Default().WithPrefix("Loop"),
		camera: NewCamera(cfg.Viewport.Width, cfg.Viewport.Height),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create 开始循环播放背景音乐，居中接取桶并生成第一个碎片
// 只能在 StateNew 下调用一次，其它状态下调用无效果
func (l *Loop) Create(now time.Duration) {
	if l.state != StateNew {
		return
	}

	if l.assets.Music != nil {
		l.assets.Music.SetLooping(true)
		l.assets.Music.Play()
	}

	cc := l.cfg.Catcher
	l.catcher = Rect{
		X: l.cfg.Viewport.Width/2 - cc.Size.Width/2,
		Y: cc.Y,
		W: cc.Size.Width,
		H: cc.Size.Height,
	}
	l.sheet = l.sheetSize()
	l.fragments = l.fragments[:0]
	l.spawn(now)
	l.state = StateRunning

	l.logger.Debug("created", "catcherX", l.catcher.X, "viewport", fmt.Sprintf("%.0fx%.0f", l.cfg.Viewport.Width, l.cfg.Viewport.Height))
}

// Step 推进一帧
//
// 参数:
//   - dt: 本帧经过的时间（秒）
//   - in: 本帧输入快照
//   - now: 单调时钟读数
//
// 顺序：输入 -> 生成检查 -> 碎片移动/移除（单次遍历）。
func (l *Loop) Step(dt float64, in Input, now time.Duration) StepResult {
	var res StepResult
	if l.state != StateRunning {
		return res
	}

	l.handleInput(dt, in)

	if now-l.lastSpawn >= l.cfg.SpawnInterval {
		l.spawn(now)
		res.Spawned++
	}

	caught, missed := l.updateFragments(dt)
	res.Caught = caught
	res.Missed = missed
	return res
}

// handleInput 处理输入，后面的规则覆盖前面的规则，最后夹紧到视口内
func (l *Loop) handleInput(dt float64, in Input) {
	if in.PointerDown && in.ScreenW > 0 && in.ScreenH > 0 {
		wx, _ := l.camera.Unproject(in.PointerX, in.PointerY, in.ScreenW, in.ScreenH)
		l.catcher.X = wx - l.catcher.W/2
	}
	if in.Left {
		l.catcher.X -= l.cfg.Catcher.Speed * dt
	}
	if in.Right {
		l.catcher.X += l.cfg.Catcher.Speed * dt
	}
	l.catcher.X = clamp(l.catcher.X, 0, l.cfg.Viewport.Width-l.catcher.W)
}

// updateFragments 移动所有碎片，原地过滤掉落出底边或被接住的碎片
func (l *Loop) updateFragments(dt float64) (caught, missed int) {
	speed := l.cfg.Fragment.Speed
	kept := l.fragments[:0]
	for _, f := range l.fragments {
		f.Bounds.Y -= speed * dt

		if f.Bounds.Top() < 0 {
			missed++
			continue
		}

		if f.Bounds.Overlaps(l.catcher) {
			if l.assets.Catch != nil {
				l.assets.Catch.Play()
			}
			caught++
			continue
		}

		kept = append(kept, f)
	}
	l.fragments = kept
	return caught, missed
}

// spawn 在视口顶端随机水平位置生成一个碎片并重置计时器
func (l *Loop) spawn(now time.Duration) {
	fc := l.cfg.Fragment
	w, h := int(fc.Size.Width), int(fc.Size.Height)

	srcX := l.randUpTo(l.sheet.X - w)
	srcY := l.randUpTo(l.sheet.Y - h)
	x := l.randUpTo(int(l.cfg.Viewport.Width - fc.Size.Width))

	l.fragments = append(l.fragments, Fragment{
		Bounds: Rect{X: float64(x), Y: l.cfg.Viewport.Height, W: fc.Size.Width, H: fc.Size.Height},
		Src:    image.Rect(srcX, srcY, srcX+w, srcY+h),
	})
	l.lastSpawn = now
}

// randUpTo 返回 [0, n] 内的随机整数，n <= 0 时返回 0
func (l *Loop) randUpTo(n int) int {
	if n <= 0 {
		return 0
	}
	return l.rng.IntN(n + 1)
}

// sheetSize 优先使用已加载精灵图的实际尺寸，纹理缺失时退回配置值
func (l *Loop) sheetSize() image.Point {
	if l.assets.Sheet != nil {
		if size := l.assets.Sheet.Bounds().Size(); size.X > 0 && size.Y > 0 {
			return size
		}
	}
	return image.Pt(int(l.cfg.Fragment.Sheet.Width), int(l.cfg.Fragment.Sheet.Height))
}

// Draw 清屏并绘制接取桶和所有碎片
// 每帧重新计算摄像机投影
func (l *Loop) Draw(r Renderer) {
	if l.state != StateRunning {
		return
	}

	r.Clear(l.cfg.Background.RGBA())
	l.camera.Update()

	r.Begin(l.camera)
	r.DrawTexture(l.assets.Bucket, l.catcher.X, l.catcher.Y)
	for _, f := range l.fragments {
		r.DrawRegion(l.assets.Sheet, f.Src, f.Bounds)
	}
	r.End()
}

// Pause 无操作（宿主负责暂停帧回调）
func (l *Loop) Pause() {}

// Resume 无操作
func (l *Loop) Resume() {}

// Resize 无操作，视口为固定的逻辑尺寸
func (l *Loop) Resize(width, height int) {}

// Dispose 释放所有资源并进入终态
// 重复调用是安全的，第二次及之后直接返回 nil
func (l *Loop) Dispose() error {
	if l.state == StateDisposed {
		return nil
	}
	l.state = StateDisposed
	l.fragments = nil

	if err := l.assets.release(); err != nil {
		l.logger.Error("release assets", "err", err)
		return fmt.Errorf("failed to release assets: %w", err)
	}
	l.logger.Debug("disposed")
	return nil
}

// State 当前状态
func (l *Loop) State() State {
	return l.state
}

// Catcher 接取桶当前矩形
func (l *Loop) Catcher() Rect {
	return l.catcher
}

// Fragments 当前存活碎片（只读副本）
func (l *Loop) Fragments() []Fragment {
	out := make([]Fragment, len(l.fragments))
	copy(out, l.fragments)
	return out
}
