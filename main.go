// dropcatch is a small catching game: fragments fall from the top of the
// screen and the player moves a bucket to catch them.
//
// Usage:
//
//	dropcatch [flags]
//
// Flags:
//
//	--config <path>   - Game config YAML (default: built-in values)
//	--assets <dir>    - Load assets from a directory instead of the embedded copy
//	--seed <value>    - RNG seed for reproducible spawns (0 = random)
//	--fullscreen      - Start in fullscreen mode
//	--debug           - Show the debug HUD
//	--verbose         - Enable debug logging
//
// Controls: Left/A and Right/D move the bucket, mouse or touch drags it,
// F11 toggles fullscreen, M toggles mute, Esc quits.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/dropcatch/pkg/app"
	"github.com/decker502/dropcatch/pkg/embedded"
)

var (
	flagVerbose    bool
	flagConfig     string
	flagAssets     string
	flagSeed       uint64
	flagFullscreen bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dropcatch",
	Short: "Catch the falling fragments with a bucket",
	Long: `dropcatch opens a window where fragments of a sprite sheet fall
from the top of the screen once per second. Move the bucket to catch them.

Controls:
  Left/A, Right/D  - Move the bucket
  Mouse/Touch      - Drag the bucket under the pointer
  F11              - Toggle fullscreen
  M                - Toggle mute
  Esc              - Quit

Examples:
  dropcatch
  dropcatch --seed 42 --debug
  dropcatch --config ./configs/game.example.yaml --assets ./assets`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "Load assets from this directory instead of the embedded copy")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen mode")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug HUD")
}

func newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "dropcatch",
	})
	log.SetDefault(logger)
	return logger
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagVerbose)

	if err := embedded.InitSub(assetsFS, "assets"); err != nil {
		return fmt.Errorf("embedded assets: %w", err)
	}

	gameApp, err := app.NewApp(app.Config{
		ConfigPath: flagConfig,
		AssetsDir:  flagAssets,
		Seed:       flagSeed,
		Fullscreen: flagFullscreen,
		Debug:      flagDebug,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}
	defer func() {
		if err := gameApp.Close(); err != nil {
			logger.Error("close failed", "err", err)
		}
	}()

	cfg := gameApp.GameConfig()
	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Settings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
