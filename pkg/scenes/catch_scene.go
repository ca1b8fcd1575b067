package scenes

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
	"github.com/decker502/dropcatch/pkg/game"
	"github.com/decker502/dropcatch/pkg/render"
)

// CatchScene 把 catch.Loop 接到 ebiten 宿主上
//
// Update 采集输入、读取时钟并推进一帧；Draw 通过 SpriteBatch 绘制。
// 场景拥有 Loop，Dispose 时释放 Loop 持有的全部资源。
type CatchScene struct {
	loop    *catch.Loop
	input   *InputSampler
	timer   *game.FrameTimer
	batch   *render.SpriteBatch
	hud     *render.HUD // 为 nil 时不显示调试信息
	audio   *game.AudioManager
	logger  *log.Logger
	caught  int
	missed  int
	spawned int
}

// CatchSceneOptions 场景构造参数
type CatchSceneOptions struct {
	Config config.GameConfig
	Assets catch.Assets
	Keys   KeyMap
	Clock  game.Clock
	// Rand 为 nil 时由游戏循环使用随机种子
	Rand   catch.Rand
	// Audio 用于 HUD 显示静音状态，可为 nil
	Audio  *game.AudioManager
	Debug  bool
	Logger *log.Logger
}

// NewCatchScene 创建场景并立即 Create 游戏循环（开始播放音乐、生成第一个碎片）
func NewCatchScene(opts CatchSceneOptions) *CatchScene {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.NewMonotonicClock()
	}

	s := &CatchScene{
		loop:   catch.New(opts.Config, opts.Assets, opts.Rand, catch.WithLogger(logger.WithPrefix("Loop"))),
		input:  NewInputSampler(opts.Keys, opts.Config.Viewport.Width, opts.Config.Viewport.Height),
		timer:  game.NewFrameTimer(clock),
		batch:  render.NewSpriteBatch(),
		audio:  opts.Audio,
		logger: logger.WithPrefix("CatchScene"),
	}
	if opts.Debug {
		s.hud = render.NewHUD()
	}

	now, _ := s.timer.Tick()
	s.loop.Create(now)
	s.spawned = 1
	return s
}

// Update 推进一帧
func (s *CatchScene) Update() error {
	now, dt := s.timer.Tick()
	res := s.loop.Step(dt, s.input.Sample(), now)

	s.spawned += res.Spawned
	s.caught += res.Caught
	s.missed += res.Missed
	if res.Caught > 0 || res.Missed > 0 {
		s.logger.Debug("fragments removed", "caught", res.Caught, "missed", res.Missed, "live", len(s.loop.Fragments()))
	}
	return nil
}

// Draw 绘制当前帧
func (s *CatchScene) Draw(screen *ebiten.Image) {
	s.batch.SetTarget(screen)
	s.loop.Draw(s.batch)

	if s.hud != nil {
		s.hud.Draw(screen, s.Stats())
	}
}

// Stats 当前统计
func (s *CatchScene) Stats() render.Stats {
	st := render.Stats{
		TPS:       ebiten.ActualTPS(),
		Fragments: len(s.loop.Fragments()),
		Caught:    s.caught,
		Missed:    s.missed,
	}
	if s.audio != nil {
		st.Muted = s.audio.Muted()
	}
	return st
}

// Loop 返回底层游戏循环
func (s *CatchScene) Loop() *catch.Loop {
	return s.loop
}

// Dispose 释放游戏循环持有的资源，重复调用安全
func (s *CatchScene) Dispose() error {
	if s.loop.State() == catch.StateDisposed {
		return nil
	}
	s.logger.Info("session finished", "spawned", s.spawned, "caught", s.caught, "missed", s.missed)
	return s.loop.Dispose()
}
