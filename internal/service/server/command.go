package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/battery-alarm/internal/api/grpc/control"
	"github.com/oshokin/battery-alarm/internal/config"
	"github.com/oshokin/battery-alarm/internal/domain/alarm"
	"github.com/oshokin/battery-alarm/internal/logger"
	"github.com/oshokin/battery-alarm/internal/metrics"
	"github.com/oshokin/battery-alarm/internal/service/control"
	"github.com/oshokin/battery-alarm/internal/service/instance"
	"github.com/oshokin/battery-alarm/internal/service/monitor"
	"github.com/oshokin/battery-alarm/internal/service/power"
	"github.com/oshokin/battery-alarm/internal/service/sound"
)

// Options controls the battery-alarm monitor process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress overrides the control address from the settings.
	ListenAddress string
	// LogLevel overrides the log level from the settings.
	LogLevel string
	// Player overrides the tone player, used by tests.
	Player sound.Player
}

// initiallyArmed is the armed state at startup. It is not persisted.
const initiallyArmed = true

// Run composes the monitor and its control API and blocks until ctx is canceled.
//
//nolint:funlen // Composition root; splitting would scatter the wiring.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "battery-alarm")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = applyLogLevel(cfg.LogLevel, opts.LogLevel); err != nil {
		return err
	}

	listenAddress := cfg.ControlAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	querier, err := power.FromConfig(cfg.Power)
	if err != nil {
		return fmt.Errorf("configure power source: %w", err)
	}

	player := opts.Player
	if player == nil {
		player = sound.NewTonePlayer(cfg.Tone.Frequency, cfg.Tone.Duration)
	}

	var (
		registry = metrics.New()
		flag     = alarm.NewArmedFlag(initiallyArmed)
		surface  = control.NewSurface(flag)
	)

	mon, err := monitor.New(&monitor.Options{
		Flag:         flag,
		Querier:      querier,
		Player:       player,
		QueryTimeout: cfg.Timeout,
		Metrics:      registry,
	})
	if err != nil {
		return fmt.Errorf("initialise monitor: %w", err)
	}

	warnAboutOtherInstances(ctx)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterControlServiceServer(grpcServer, api.NewServer(surface))

	logger.InfoKV(
		ctx,
		"Battery alarm running",
		"control_address", lis.Addr().String(),
		"metrics_address", cfg.MetricsAddress,
		"armed", surface.Current(),
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return mon.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down control server")
		grpcServer.GracefulStop()

		return nil
	})

	group.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve control API: %w", err)
		}

		return nil
	})

	if cfg.MetricsAddress != "" {
		group.Go(func() error {
			return metrics.Serve(groupCtx, cfg.MetricsAddress, registry.Handler())
		})
	}

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Battery alarm stopped")

	return nil
}

// applyLogLevel sets the shared log level; override wins over the settings value.
func applyLogLevel(configured, override string) error {
	name := configured
	if override != "" {
		name = override
	}

	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, name)
	}

	logger.SetLevel(level)

	return nil
}

// errUnknownLogLevel is returned for an unsupported --log-level value.
var errUnknownLogLevel = errors.New("unknown log level")

// warnAboutOtherInstances logs other processes of this executable.
// The control listener is what actually prevents two monitors on one address.
func warnAboutOtherInstances(ctx context.Context) {
	pids, err := instance.Others()
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "Another battery-alarm process is running", "pids", pids)
	}
}
