// Package cli wires the configuration, tracing and engine into the
// wallstonks command tree.
package cli

import (
	"os"
	"strings"

	"wallstonks/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wallstonks",
		Short:         "Signal aggregation and market forecast scoring engine",
		Long:          "wallstonks fuses macro, social, news and search-interest signals into a calibrated short-horizon market forecast. Every source degrades to a neutral fallback, so a forecast is always produced.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "configuration file path (YAML)")

	rootCmd.AddCommand(newForecastCmd())
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("wallstonks 2.0.0")
		},
	}
}

// loadConfig reads .env, then the YAML config named by --config or
// WALLSTONKS_CONFIG. Both are optional; defaults keep the engine runnable
// with fallback-only sources.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = strings.TrimSpace(os.Getenv("WALLSTONKS_CONFIG"))
	}
	return config.Load(path)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parsed).
		With().
		Timestamp().
		Logger()
}
