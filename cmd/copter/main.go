// copter is a side-scrolling cave flyer for the terminal: hold thrust to
// climb, let go to sink, and thread the gaps.
//
// Usage:
//
//	copter play              - Fly
//	copter scores            - Show the run history
//	copter config            - Print or check the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible obstacle layouts
//	--db <path>          - Set database path (default: ~/.copter/scores.db)
//	--log-file <path>    - Write logs here (default: ~/.copter/copter.log, "" disables)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "copter",
	Short: "TUI Copter - fly through the cave in your terminal",
	Long: `TUI Copter is a terminal side-scroller. Gravity pulls the copter
down, thrust pushes it up, and the cave keeps coming.

Available commands:
  play     - Start the game
  scores   - View the run history
  config   - Print or validate the configuration

Examples:
  copter play
  copter play --difficulty hard
  copter play --config ./copter.yaml --watch
  copter scores --mode normal
  copter config --check --config ./copter.toml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.copter/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.copter/copter.log", "Log file path (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
