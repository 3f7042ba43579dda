package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/battery-alarm/internal/logger"
	"github.com/oshokin/battery-alarm/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// logLevel overrides the log level from the settings.
	logLevel string

	// rootCmd is the base command; subcommands do the work.
	rootCmd = &cobra.Command{
		Use:   "battery-alarm",
		Short: "Sound an alarm while the laptop runs on battery.",
		Long: `Battery alarm beeps while the machine is unplugged and the alarm is armed.

Start the monitor with "battery-alarm run". It polls the power status every second
and, when armed and on battery, beeps every 200ms until power comes back or the
alarm is disarmed with "battery-alarm toggle". The alarm starts armed.

Bind "battery-alarm toggle" to a keyboard shortcut or a panel launcher to get
a one-click arm/disarm button.`,
		SilenceUsage: true,
	}
)

// Execute runs the battery-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"path to settings file (default \"battery-alarm-settings.yaml\" if present)",
	)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd, statusCmd, toggleCmd)
}
