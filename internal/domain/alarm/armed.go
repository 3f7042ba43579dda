package alarm

import "sync/atomic"

// ArmedFlag reports whether the alarm may sound.
// The zero value is disarmed; use NewArmedFlag to pick the initial state.
type ArmedFlag struct {
	armed atomic.Bool
}

// NewArmedFlag returns a flag holding initial.
func NewArmedFlag(initial bool) *ArmedFlag {
	f := new(ArmedFlag)
	f.armed.Store(initial)

	return f
}

// Read returns the current value.
func (f *ArmedFlag) Read() bool {
	return f.armed.Load()
}

// Toggle flips the value and returns the new one.
func (f *ArmedFlag) Toggle() bool {
	for {
		current := f.armed.Load()
		if f.armed.CompareAndSwap(current, !current) {
			return !current
		}
	}
}
