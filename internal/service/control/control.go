// Package control is the foreground side of the armed switch.
package control

import "github.com/oshokin/battery-alarm/internal/domain/alarm"

// Surface lets a presentation layer show and flip the armed state.
// It never waits for the power monitor.
type Surface struct {
	flag *alarm.ArmedFlag
}

// NewSurface returns a surface over flag.
func NewSurface(flag *alarm.ArmedFlag) *Surface {
	return &Surface{flag: flag}
}

// Current reports whether the alarm is armed.
func (s *Surface) Current() bool {
	return s.flag.Read()
}

// Toggle flips the armed state and returns the new value for immediate display.
func (s *Surface) Toggle() bool {
	return s.flag.Toggle()
}
