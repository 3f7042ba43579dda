package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/battery-alarm/internal/config"
	"github.com/oshokin/battery-alarm/internal/logger"
	"github.com/oshokin/battery-alarm/internal/service/common"
)

// Action selects what the client does with the armed state.
type Action int

const (
	// ActionStatus prints the armed state.
	ActionStatus Action = iota
	// ActionToggle flips the armed state and prints the new one.
	ActionToggle
)

// Options configures a control command.
type Options struct {
	// ConfigPath to the YAML settings, defaults to the standard filename if empty.
	ConfigPath string
	// ServerAddress overrides the control address from the settings.
	ServerAddress string
	// Action is the operation to perform.
	Action Action
	// Output receives the armed state line.
	Output io.Writer
}

// errUnknownAction is returned for an Action the client does not implement.
var errUnknownAction = errors.New("unknown action")

// Run performs opts.Action against the running monitor.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "battery-alarm-control")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	serverAddress := cfg.ControlAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	clientOptions := []common.Option{
		common.WithCallTimeout(cfg.Timeout),
		common.WithRetryWindow(cfg.Timeout),
	}

	// The actor only decorates the monitor's log, so a failure is not fatal.
	if actor, err := common.DetectActor(); err == nil {
		clientOptions = append(clientOptions, common.WithActor(actor))
	} else {
		logger.DebugKV(ctx, "Unable to detect actor", "error", err)
	}

	client, err := common.Dial(ctx, serverAddress, clientOptions...)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Connected to monitor", "server_address", serverAddress)

	var armed bool

	switch opts.Action {
	case ActionStatus:
		armed, err = client.Current(ctx)
	case ActionToggle:
		armed, err = client.Toggle(ctx)
	default:
		return fmt.Errorf("%w: %d", errUnknownAction, opts.Action)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(opts.Output, FormatArmed(armed))

	return err
}

// FormatArmed renders the armed state for people.
func FormatArmed(armed bool) string {
	if armed {
		return "armed"
	}

	return "disarmed"
}
