package main

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
)

type simOptions struct {
	Seconds float64
	FPS     int
	Seed    uint64
	// Follow 每帧按下朝最低碎片方向的按键
	Follow bool
	Logger *log.Logger
}

// report 模拟结果
type report struct {
	Frames    int
	Spawned   int
	Caught    int
	Missed    int
	Remaining int
	Catches   int // 音效实际播放次数
}

func (r report) String() string {
	return fmt.Sprintf("frames=%d spawned=%d caught=%d missed=%d remaining=%d catches=%d",
		r.Frames, r.Spawned, r.Caught, r.Missed, r.Remaining, r.Catches)
}

// headless 资源：纹理只提供尺寸，音效只计数
type (
	sizeTexture  image.Rectangle
	countedSound struct{ plays int }
	silentMusic  struct{}
)

func (t sizeTexture) Bounds() image.Rectangle { return image.Rectangle(t) }
func (s *countedSound) Play()                 { s.plays++ }
func (silentMusic) SetLooping(bool)           {}
func (silentMusic) Play()                     {}

func simulate(cfg config.GameConfig, opts simOptions) (report, error) {
	if opts.FPS <= 0 {
		return report{}, errors.New("fps must be positive")
	}
	if opts.Seconds < 0 {
		return report{}, errors.New("seconds must not be negative")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sound := &countedSound{}
	sheet, bucket := cfg.Fragment.Sheet, cfg.Catcher.Size
	assets := catch.Assets{
		Sheet:  sizeTexture(image.Rect(0, 0, int(sheet.Width), int(sheet.Height))),
		Bucket: sizeTexture(image.Rect(0, 0, int(bucket.Width), int(bucket.Height))),
		Catch:  sound,
		Music:  silentMusic{},
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	loop := catch.New(cfg, assets, rng, catch.WithLogger(logger.WithPrefix("Loop")))
	loop.Create(0)

	r := report{Spawned: 1}
	frames := int(opts.Seconds * float64(opts.FPS))
	dt := 1 / float64(opts.FPS)
	for i := 1; i <= frames; i++ {
		// 整数纳秒推进时钟，避免浮点累加误差
		now := time.Duration(i) * time.Second / time.Duration(opts.FPS)
		res := loop.Step(dt, steer(loop, opts.Follow), now)
		r.Spawned += res.Spawned
		r.Caught += res.Caught
		r.Missed += res.Missed
		if res.Caught > 0 || res.Missed > 0 {
			logger.Debug("frame", "t", now, "caught", res.Caught, "missed", res.Missed)
		}
	}
	r.Frames = frames
	r.Remaining = len(loop.Fragments())
	r.Catches = sound.plays

	if err := loop.Dispose(); err != nil {
		return r, fmt.Errorf("dispose: %w", err)
	}
	return r, nil
}

// steer 返回朝最低碎片中心移动的输入
func steer(loop *catch.Loop, follow bool) catch.Input {
	if !follow {
		return catch.Input{}
	}
	frags := loop.Fragments()
	if len(frags) == 0 {
		return catch.Input{}
	}
	lowest := frags[0].Bounds
	for _, f := range frags[1:] {
		if f.Bounds.Y < lowest.Y {
			lowest = f.Bounds
		}
	}

	c := loop.Catcher()
	target := lowest.X + lowest.W/2
	center := c.X + c.W/2
	const deadZone = 4
	switch {
	case target < center-deadZone:
		return catch.Input{Left: true}
	case target > center+deadZone:
		return catch.Input{Right: true}
	}
	return catch.Input{}
}
