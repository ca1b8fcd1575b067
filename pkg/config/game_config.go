package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig 游戏配置
//
// 所有坐标使用"世界坐标系"：原点在视口左下角，Y 轴向上。
// 默认值见 DefaultGameConfig()，配置文件中缺省的字段保持默认值。
//
// 配置文件示例: configs/game.example.yaml
type GameConfig struct {
	// Title 窗口标题
	Title string `yaml:"title"`

	// Viewport 逻辑视口尺寸（世界单位）
	Viewport SizeConfig `yaml:"viewport"`

	// Catcher 接取桶配置
	Catcher CatcherConfig `yaml:"catcher"`

	// Fragment 下落碎片配置
	Fragment FragmentConfig `yaml:"fragment"`

	// SpawnInterval 两次生成之间的最短间隔
	SpawnInterval time.Duration `yaml:"spawnInterval"`

	// Background 清屏颜色
	Background ColorConfig `yaml:"background"`

	// Keys 按键绑定（ebiten 按键名，如 "ArrowLeft"、"A"）
	Keys KeyBindings `yaml:"keys"`

	// Assets 资源ID（在 resources.yaml 中定义）
	Assets AssetIDs `yaml:"assets"`
}

// SizeConfig 宽高
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CatcherConfig 接取桶配置
type CatcherConfig struct {
	Size SizeConfig `yaml:"size"`
	// Y 固定高度（桶底边距视口底部的距离）
	Y float64 `yaml:"y"`
	// Speed 键盘移动速度（单位/秒）
	Speed float64 `yaml:"speed"`
}

// FragmentConfig 碎片配置
type FragmentConfig struct {
	Size SizeConfig `yaml:"size"`
	// Speed 下落速度（单位/秒）
	Speed float64 `yaml:"speed"`
	// Sheet 碎片取材的精灵图尺寸（像素），仅在纹理尺寸不可用时使用
	Sheet SizeConfig `yaml:"sheet"`
}

// ColorConfig RGBA 颜色，分量范围 0.0 ~ 1.0
type ColorConfig struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// KeyBindings 左右移动按键
type KeyBindings struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

// AssetIDs 游戏所需的四个资源
type AssetIDs struct {
	// Preload 启动时整组预加载的资源组，为空则不预加载
	Preload string `yaml:"preload"`
	Sheet   string `yaml:"sheet"`
	Bucket  string `yaml:"bucket"`
	Catch   string `yaml:"catch"`
	Music   string `yaml:"music"`
}

// DefaultGameConfig 返回默认配置（800x480 视口，64x64 桶和碎片，速度 200，间隔 1 秒）
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Title:    "Drop Catch",
		Viewport: SizeConfig{Width: 800, Height: 480},
		Catcher: CatcherConfig{
			Size:  SizeConfig{Width: 64, Height: 64},
			Y:     20,
			Speed: 200,
		},
		Fragment: FragmentConfig{
			Size:  SizeConfig{Width: 64, Height: 64},
			Speed: 200,
			Sheet: SizeConfig{Width: 512, Height: 512},
		},
		SpawnInterval: time.Second,
		Background:    ColorConfig{R: 0, G: 0, B: 0.2, A: 1},
		Keys: KeyBindings{
			Left:  []string{"ArrowLeft", "A"},
			Right: []string{"ArrowRight", "D"},
		},
		Assets: AssetIDs{
			Preload: "init",
			Sheet:   "IMAGE_SHEET",
			Bucket:  "IMAGE_BUCKET",
			Catch:   "SOUND_DROP",
			Music:   "MUSIC_RAIN",
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
//
// 文件中未出现的字段沿用默认值。加载后执行 Validate。
//
// 参数:
//   - path: 配置文件路径；为空时直接返回默认配置
//
// 返回:
//   - GameConfig: 合并后的配置
//   - error: 读取、解析或校验失败
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据并覆盖默认配置
func ParseGameConfig(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 检查配置的一致性
func (c GameConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %.0fx%.0f", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Catcher.Size.Width <= 0 || c.Catcher.Size.Height <= 0 {
		return fmt.Errorf("%w: catcher size must be positive", ErrInvalidConfig)
	}
	if c.Catcher.Size.Width > c.Viewport.Width {
		return fmt.Errorf("%w: catcher width %.0f exceeds viewport width %.0f", ErrInvalidConfig, c.Catcher.Size.Width, c.Viewport.Width)
	}
	if c.Fragment.Size.Width <= 0 || c.Fragment.Size.Height <= 0 {
		return fmt.Errorf("%w: fragment size must be positive", ErrInvalidConfig)
	}
	if c.Fragment.Size.Width > c.Viewport.Width {
		return fmt.Errorf("%w: fragment width %.0f exceeds viewport width %.0f", ErrInvalidConfig, c.Fragment.Size.Width, c.Viewport.Width)
	}
	if c.Fragment.Sheet.Width < c.Fragment.Size.Width || c.Fragment.Sheet.Height < c.Fragment.Size.Height {
		return fmt.Errorf("%w: sheet %.0fx%.0f smaller than fragment", ErrInvalidConfig, c.Fragment.Sheet.Width, c.Fragment.Sheet.Height)
	}
	if c.Catcher.Speed < 0 || c.Fragment.Speed < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	}
	if c.SpawnInterval <= 0 {
		return fmt.Errorf("%w: spawnInterval must be positive, got %s", ErrInvalidConfig, c.SpawnInterval)
	}
	if c.Assets.Sheet == "" || c.Assets.Bucket == "" || c.Assets.Catch == "" || c.Assets.Music == "" {
		return fmt.Errorf("%w: all four asset IDs are required", ErrInvalidConfig)
	}
	return nil
}

// RGBA 转换为 color.RGBA（分量截断到 0~1）
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
