package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/battery-alarm/internal/logger"
	"github.com/oshokin/battery-alarm/internal/service/client"
)

//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var (
	// statusCmd prints the armed state of the running monitor.
	statusCmd = &cobra.Command{
		Use:   "status [server-address]",
		Short: "Print whether the alarm is armed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(cmd, args, client.ActionStatus)
		},
	}

	// toggleCmd flips the armed state of the running monitor.
	toggleCmd = &cobra.Command{
		Use:   "toggle [server-address]",
		Short: "Arm or disarm the alarm.",
		Long: `Flips the armed state of the running monitor and prints the new state.

Disarming silences a sounding alarm within 200ms.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(cmd, args, client.ActionToggle)
		},
	}
)

// runControl runs a status or toggle request against the monitor.
func runControl(cmd *cobra.Command, args []string, action client.Action) error {
	if level, ok := logger.ParseLogLevel(logLevel); ok && logLevel != "" {
		logger.SetLevel(level)
	}

	ctx, stop := signalContext()
	defer stop()

	var serverAddress string
	if len(args) > 0 {
		serverAddress = args[0]
	}

	return client.Run(ctx, &client.Options{
		ConfigPath:    configPath,
		ServerAddress: serverAddress,
		Action:        action,
		Output:        cmd.OutOrStdout(),
	})
}
