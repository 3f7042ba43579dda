package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/battery-alarm/internal/service/server"
)

// runCmd starts the monitor.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var runCmd = &cobra.Command{
	Use:   "run [listen-address]",
	Short: "Run the power monitor and its control API.",
	Long: `Runs the power monitor in the foreground until interrupted.

The control API listens on control_addr from the settings (default 127.0.0.1:50070)
unless an address is given as argument. Set metrics_addr to expose Prometheus metrics.
The armed state always starts as armed and is not saved between runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		var listenAddress string
		if len(args) > 0 {
			listenAddress = args[0]
		}

		return server.Run(ctx, &server.Options{
			ConfigPath:    configPath,
			ListenAddress: listenAddress,
			LogLevel:      logLevel,
		})
	},
}
