package power

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/battery-alarm/internal/config"
)

// Status is the outcome of a single power query.
type Status int

const (
	// StatusUnknown means the query failed.
	StatusUnknown Status = iota
	// StatusMains means external power is connected.
	StatusMains
	// StatusBattery means the host runs on battery.
	StatusBattery
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusMains:
		return "mains"
	case StatusBattery:
		return "battery"
	default:
		return "unknown"
	}
}

// Querier reads the current power status.
// Implementations return StatusUnknown together with a non-nil error on failure.
type Querier interface {
	Query(ctx context.Context) (Status, error)
}

var (
	// ErrInvalidOutput is returned when a status command prints something that is not text.
	ErrInvalidOutput = errors.New("invalid status command output")
	// ErrNoSupply is returned when sysfs lists no external power supply.
	ErrNoSupply = errors.New("no external power supply found")
	// ErrNoCommand is returned when no status command is known for this platform.
	ErrNoCommand = errors.New("no power status command for this platform")
	// errUnknownSource is returned for a source FromConfig does not know.
	errUnknownSource = errors.New("unknown power source")
	// errNoMarker is returned for a custom command without an "on mains" marker.
	errNoMarker = errors.New("power marker must be provided")
)

// FromConfig builds the Querier selected by cfg.Source.
// Empty command settings fall back to the platform defaults.
//
//nolint:ireturn // Callers only need the interface.
func FromConfig(cfg config.Power) (Querier, error) {
	switch cfg.Source {
	case config.SourceSysfs:
		return NewSysfsQuerier(cfg.SysfsDir), nil
	case config.SourceCommand, "":
		name, args, marker := cfg.Command, cfg.Args, cfg.Marker
		if name == "" {
			name, args = defaultCommand, defaultArgs
		}

		if marker == "" {
			marker = defaultMarker
		}

		if name == "" {
			return nil, ErrNoCommand
		}

		if marker == "" {
			return nil, errNoMarker
		}

		return NewCommandQuerier(name, args, marker), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, cfg.Source)
	}
}
