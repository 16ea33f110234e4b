package veil

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagDebug   bool
	flagQuiet   bool
	flagNoColor bool

	version = "0.1.0"

	logger zerolog.Logger
)

// rootCmd is the base Cobra command for the Veil CLI.
var rootCmd = &cobra.Command{
	Use:           "veil",
	Short:         "Redact secrets in config files",
	Long:          "Veil rewrites YAML or JSON configuration files with passwords, API keys, tokens and other sensitive-looking values replaced by a placeholder.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger = newLogger()
	},
}

// Execute runs the Veil CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}

// newLogger builds the CLI logger: human-readable console output when
// stderr is a terminal, JSON lines otherwise so piped output stays
// machine-parseable.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagQuiet {
		level = zerolog.WarnLevel
	}
	if flagDebug {
		level = zerolog.DebugLevel
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: flagNoColor}
		return zerolog.New(cw).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
