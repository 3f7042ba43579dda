package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/battery-alarm/internal/logger"
	"github.com/oshokin/battery-alarm/internal/metrics"
	"github.com/oshokin/battery-alarm/internal/service/power"
	"github.com/oshokin/battery-alarm/internal/service/sound"
)

const (
	// AlarmInterval is the pause between alarm sounds.
	AlarmInterval = 200 * time.Millisecond
	// IdleInterval is the pause between checks while the alarm is silent.
	IdleInterval = time.Second
)

// Flag is the read side of the armed switch.
type Flag interface {
	Read() bool
}

// Options wires the monitor collaborators.
type Options struct {
	// Flag tells whether the alarm is armed.
	Flag Flag
	// Querier reads the power status.
	Querier power.Querier
	// Player plays one alarm sound.
	Player sound.Player
	// QueryTimeout bounds a single power query. Zero means no bound.
	QueryTimeout time.Duration
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Monitor is the background power monitor.
type Monitor struct {
	flag         Flag
	querier      power.Querier
	player       sound.Player
	queryTimeout time.Duration
	metrics      *metrics.Metrics

	// alarming is the last decision, only touched by the loop goroutine.
	alarming bool
}

var (
	// errFlagRequired is returned when no armed flag is provided.
	errFlagRequired = errors.New("armed flag must be provided")
	// errQuerierRequired is returned when no power querier is provided.
	errQuerierRequired = errors.New("power querier must be provided")
	// errPlayerRequired is returned when no sound player is provided.
	errPlayerRequired = errors.New("sound player must be provided")
)

// New validates opts and returns a monitor.
func New(opts *Options) (*Monitor, error) {
	switch {
	case opts == nil || opts.Flag == nil:
		return nil, errFlagRequired
	case opts.Querier == nil:
		return nil, errQuerierRequired
	case opts.Player == nil:
		return nil, errPlayerRequired
	}

	return &Monitor{
		flag:         opts.Flag,
		querier:      opts.Querier,
		player:       opts.Player,
		queryTimeout: opts.QueryTimeout,
		metrics:      opts.Metrics,
	}, nil
}

// ShouldAlarm is the alarm decision. A failed query counts as battery:
// a false alarm is preferred over a missed one.
func ShouldAlarm(armed bool, status power.Status) bool {
	return armed && status != power.StatusMains
}

// Run polls until ctx is canceled and always returns nil.
// A sound already playing is allowed to finish before Run notices ctx.
func (m *Monitor) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "monitor")

	logger.InfoKV(
		ctx,
		"Power monitor started",
		"armed", m.flag.Read(),
		"source", fmt.Sprint(m.querier),
		"alarm_interval", AlarmInterval.String(),
		"idle_interval", IdleInterval.String(),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Power monitor stopped")
			return nil
		case <-timer.C:
			timer.Reset(m.Poll(ctx))
		}
	}
}

// Poll runs one decision cycle and returns how long to wait before the next one.
func (m *Monitor) Poll(ctx context.Context) time.Duration {
	armed := m.flag.Read()

	// The power status cannot change a disarmed decision, so it is not queried.
	status := power.StatusUnknown
	if armed {
		status = m.queryPower(ctx)
	}

	alarm := ShouldAlarm(armed, status)
	m.transition(ctx, alarm, armed, status)

	if armed {
		m.metrics.ObservePoll(armed, status.String())
	} else {
		m.metrics.ObservePoll(armed, "skipped")
	}

	if !alarm {
		return IdleInterval
	}

	m.playAlarm(ctx)

	return AlarmInterval
}

// transition logs edges between the silent and alarming decisions.
func (m *Monitor) transition(ctx context.Context, alarm, armed bool, status power.Status) {
	if alarm == m.alarming {
		return
	}

	m.alarming = alarm

	if alarm {
		logger.WarnKV(ctx, "Alarm sounding", "power", status.String())
		return
	}

	logger.InfoKV(ctx, "Alarm silent", "armed", armed, "power", status.String())
}

// queryPower asks the querier for the status. Errors and panics yield StatusUnknown.
func (m *Monitor) queryPower(ctx context.Context) (status power.Status) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Power query panicked", "panic", r)
			m.metrics.QueryFailed()

			status = power.StatusUnknown
		}
	}()

	queryCtx, cancel := ctx, context.CancelFunc(func() {})
	if m.queryTimeout > 0 {
		queryCtx, cancel = context.WithTimeout(ctx, m.queryTimeout)
	}

	defer cancel()

	result, err := m.querier.Query(queryCtx)
	if err != nil {
		logger.WarnKV(ctx, "Power query failed, assuming battery", "error", err)
		m.metrics.QueryFailed()

		return power.StatusUnknown
	}

	return result
}

// playAlarm plays one sound and blocks until it is over. Errors and panics are logged.
func (m *Monitor) playAlarm(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Alarm sound panicked", "panic", r)
			m.metrics.AlarmFailed()
		}
	}()

	if err := m.player.Play(ctx); err != nil {
		logger.ErrorKV(ctx, "Alarm sound failed", "error", err)
		m.metrics.AlarmFailed()

		return
	}

	m.metrics.AlarmPlayed()
}
