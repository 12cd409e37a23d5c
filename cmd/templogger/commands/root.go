//go:build !rp2040 && !rp2350

package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"templogger-go/services/config"
)

var (
	boardName  string
	configPath string
	logLevel   string
)

var logLevels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "templogger",
	Short: "LM75 temperature logger",
	Long: `templogger samples an LM75 temperature sensor once a second and appends
timestamped readings to a log file on removable media until the stop
switch is pressed or the media is pulled.

On a host the sensor is simulated and the media is a directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called once by main.main().
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&boardName, "board", "host", "embedded board defaults to start from")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML file overlaid on the board defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
}

func loadConfig() (config.Config, error) {
	return config.Load(boardName, configPath)
}

func newLogger() *slog.Logger {
	level, ok := logLevels[strings.ToUpper(logLevel)]
	if !ok {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
