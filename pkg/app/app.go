// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
	"github.com/decker502/dropcatch/pkg/embedded"
	"github.com/decker502/dropcatch/pkg/game"
	"github.com/decker502/dropcatch/pkg/scenes"
)

const (
	// AppName gdata 存储使用的应用名
	AppName = "dropcatch"
	// ResourceConfigPath 资源配置在资源目录中的位置
	ResourceConfigPath = "config/resources.yaml"
	// sampleRate 音频上下文采样率
	sampleRate = 48000
)

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 游戏配置 YAML 路径，为空使用内置默认值
	ConfigPath string
	// AssetsDir 从磁盘目录加载资源，为空使用嵌入资源
	AssetsDir string
	// Seed 随机种子，0 表示随机
	Seed uint64
	// Fullscreen 以全屏启动（同时写入设置）
	Fullscreen bool
	// Debug 显示 HUD 调试信息
	Debug bool
	// Logger 为 nil 时使用 log.Default()
	Logger *log.Logger
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameConfig      config.GameConfig
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	sceneManager    *game.SceneManager
	logger          *log.Logger
	closed          bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入资源时，调用此函数前必须先调用 embedded.Init() 或 embedded.InitSub()。
// 任何资源加载失败都会返回错误，不会以缺失资源的状态启动。
func NewApp(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	appLogger := logger.WithPrefix("App")

	gameConfig, err := config.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	keys, err := scenes.ParseKeyBindings(gameConfig.Keys)
	if err != nil {
		return nil, fmt.Errorf("按键配置无效: %w", err)
	}

	assetsFS, err := resolveAssets(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(assetsFS, audioContext, logger)
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	// 设置存储不可用时降级为内存设置
	store, err := game.OpenSettingsStore(AppName)
	if err != nil {
		appLogger.Warn("settings store unavailable, settings will not persist", "err", err)
	}
	settingsManager := game.NewSettingsManager(store, logger)
	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager, logger)

	assets, err := scenes.LoadAssets(resourceManager, audioManager, gameConfig.Assets)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("资源加载失败: %w", err), resourceManager.Close())
	}

	var rng catch.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	scene := scenes.NewCatchScene(scenes.CatchSceneOptions{
		Config: gameConfig,
		Assets: assets,
		Keys:   keys,
		Rand:   rng,
		Audio:  audioManager,
		Debug:  cfg.Debug,
		Logger: logger,
	})

	sceneManager := game.NewSceneManager(logger)
	sceneManager.SwitchTo(scene)

	appLogger.Info("started", "viewport", fmt.Sprintf("%gx%g", gameConfig.Viewport.Width, gameConfig.Viewport.Height),
		"assets", assetsSource(cfg.AssetsDir), "seed", cfg.Seed)

	return &App{
		gameConfig:      gameConfig,
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		sceneManager:    sceneManager,
		logger:          appLogger,
	}, nil
}

// resolveAssets 选择资源来源：磁盘目录优先，否则使用嵌入资源
func resolveAssets(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("资源目录不可用: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("资源路径不是目录: %s", dir)
		}
		return os.DirFS(dir), nil
	}
	fsys, err := embedded.FS()
	if err != nil {
		return nil, fmt.Errorf("嵌入资源不可用: %w", err)
	}
	return fsys, nil
}

func assetsSource(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			a.logger.Debug("delayed window size reset", "width", w, "height", h)
			a.pendingWindowSizeReset = false
		}
	}

	if err := a.handleHotkeys(inpututil.IsKeyJustPressed); err != nil {
		return err
	}

	return a.sceneManager.Update()
}

// handleHotkeys 处理全局快捷键，justPressed 报告按键是否在本帧刚按下
func (a *App) handleHotkeys(justPressed func(ebiten.Key) bool) error {
	// Escape 退出，由 RunGame 调用方负责 Close
	if justPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// F11 切换全屏
	if justPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 切换静音
	if justPressed(ebiten.KeyM) {
		a.audioManager.ToggleMute()
		a.saveSettings()
	}

	// - / = 调整音量
	if justPressed(ebiten.KeyMinus) {
		a.audioManager.AdjustVolume(-game.VolumeStep)
		a.saveSettings()
	}
	if justPressed(ebiten.KeyEqual) {
		a.audioManager.AdjustVolume(game.VolumeStep)
		a.saveSettings()
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		a.logger.Warn("failed to save settings", "err", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，即视口尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.gameConfig.Viewport.Width), int(a.gameConfig.Viewport.Height)
}

// GameConfig 返回生效的游戏配置
func (a *App) GameConfig() config.GameConfig {
	return a.gameConfig
}

// Settings 返回当前用户设置
func (a *App) Settings() *game.GameSettings {
	return a.settingsManager.GetSettings()
}

// Close 释放场景与资源并保存设置，重复调用安全
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	err := errors.Join(
		a.sceneManager.Close(),
		a.resourceManager.Close(),
		a.settingsManager.Save(),
	)
	if err != nil {
		a.logger.Error("shutdown finished with errors", "err", err)
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
