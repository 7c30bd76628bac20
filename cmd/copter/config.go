package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-copter/internal/config"
)

var flagCheckOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate the configuration",
	Long: `Print the configuration the game would run with, as YAML, after the
search order and the difficulty preset are applied. With --check, only
validate it and list every problem found.

Search order:
  --config path
  ~/.copter/configs/copter.yaml
  ~/.copter/configs/copter.toml
  ./configs/copter.yaml
  built-in defaults

Examples:
  copter config > my-copter.yaml
  copter config --difficulty hard
  copter config --check --config ./my-copter.toml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom config file (.yaml or .toml)")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagCheckOnly, "check", false, "Validate only")
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, _, source, err := loadGameConfig(flagConfig, flagDifficulty)
	if source == "" {
		source = "built-in defaults"
	}

	if flagCheckOnly {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: invalid\n", source)
			for _, problem := range problems(err) {
				fmt.Fprintf(os.Stderr, "  - %s\n", problem)
			}
			os.Exit(1)
		}
		fmt.Printf("%s: ok\n", source)
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := config.MarshalYAML(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s, difficulty: %s\n", source, flagDifficulty)
	os.Stdout.Write(out)
}

// problems flattens a validation error into one line per rejected field.
func problems(err error) []string {
	var lines []string
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case config.ValidationError:
			lines = append(lines, fmt.Sprintf("%s: %s", x.Field, x.Message))
		default:
			if next := errors.Unwrap(e); next != nil {
				walk(next)
				return
			}
			lines = append(lines, e.Error())
		}
	}
	walk(err)
	return lines
}
