package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"go-smartlog/pkg/smartlog"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath      string
	flagBranch    string
	flagAll       bool
	flagDays      int
	flagConfig    string
	flagOutput    string
	flagNoColor   bool
	flagVerbosity string
)

// rootCmd is the top-level command for smartlog.
var rootCmd = &cobra.Command{
	Use:   "smartlog",
	Short: "A sparse graph of the commits that matter",
	Long: "smartlog renders a condensed tree of your repository: the primary branch " +
		"backbone, your branch heads, and HEAD, with straight-line history compressed away.",
	RunE: smartlogRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVarP(&flagBranch, "branch", "b", "", "primary branch (default: config, then main/master)")
	rootCmd.PersistentFlags().BoolVarP(&flagAll, "all", "a", false, "include remote tracking branches")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "d", 0, "hide commits older than this many days (0: use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for the graph")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "quiet", "log verbosity: quiet, info, debug")
}

func smartlogRunE(_ *cobra.Command, _ []string) error {
	logger := newLogger(flagVerbosity)

	var sp *spinner.Spinner
	if flagOutput == "" && flagVerbosity == "quiet" {
		sp = spinner.New(
			spinner.CharSets[9],
			100*time.Millisecond,
			spinner.WithColor("reset"),
			spinner.WithWriter(os.Stderr),
		)
		sp.Suffix = " building smartlog"
		sp.Start()
	}

	result, err := smartlog.Build(smartlog.Options{
		Path:                  flagPath,
		PrimaryBranch:         flagBranch,
		DateLimitDays:         flagDays,
		IncludeRemoteBranches: flagAll,
		ConfigPath:            flagConfig,
		Logger:                logger,
	})
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	applyColorMode(result.Config.ColorMode())

	switch flagOutput {
	case "":
		return result.Render(os.Stdout)
	case "json":
		return result.RenderJSON(os.Stdout)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

// newLogger builds the diagnostics logger for the selected verbosity. Even
// "quiet" keeps warnings: dropped commits should not vanish silently.
func newLogger(verbosity string) *slog.Logger {
	level := slog.LevelWarn
	switch verbosity {
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func applyColorMode(mode string) {
	if flagNoColor {
		color.NoColor = true
		return
	}
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	// "auto" keeps the library's terminal detection.
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
