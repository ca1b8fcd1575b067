// dropsim runs the catch loop without a window and reports what happened.
//
// Usage:
//
//	dropsim [flags]
//
// Flags:
//
//	--seconds <n>   - Simulated time (default: 10)
//	--fps <rate>    - Simulated frame rate (default: 60)
//	--seed <value>  - RNG seed (default: 1)
//	--config <path> - Game config YAML (default: built-in values)
//	--follow        - Steer the bucket toward the lowest fragment
//	--verbose       - Log every catch and miss
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/dropcatch/pkg/config"
)

var (
	flagSeconds float64
	flagFPS     int
	flagSeed    uint64
	flagConfig  string
	flagFollow  bool
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dropsim",
	Short: "Run the catch loop headless and report spawns, catches and misses",
	Long: `dropsim drives the catch loop with a fixed frame rate and a simulated
clock. Nothing is drawn and no sound is played, so the result depends only
on the config, the seed and the steering policy.

Examples:
  dropsim
  dropsim --seconds 60 --fps 30 --seed 7
  dropsim --follow --config ./configs/game.example.yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSim,
}

func init() {
	rootCmd.Flags().Float64Var(&flagSeconds, "seconds", 10, "Simulated time in seconds")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Simulated frames per second")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "RNG seed")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.Flags().BoolVar(&flagFollow, "follow", false, "Steer the bucket toward the lowest fragment")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func runSim(cmd *cobra.Command, args []string) error {
	level := log.WarnLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "dropsim",
	})

	cfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return err
	}

	report, err := simulate(cfg, simOptions{
		Seconds: flagSeconds,
		FPS:     flagFPS,
		Seed:    flagSeed,
		Follow:  flagFollow,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}
