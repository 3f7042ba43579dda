// Package sound plays the alarm tone.
package sound

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
)

// Player plays one alarm sound and returns once it has finished.
type Player interface {
	Play(ctx context.Context) error
}

// TonePlayer beeps a fixed tone on the default audio output.
type TonePlayer struct {
	// frequency of the tone in hertz.
	frequency float64
	// duration of one beep.
	duration time.Duration
	// beep is the audio backend, replaced in tests.
	beep func(frequency float64, durationMillis int) error
}

// NewTonePlayer returns a player for a tone of the given frequency and duration.
func NewTonePlayer(frequency float64, duration time.Duration) *TonePlayer {
	return &TonePlayer{
		frequency: frequency,
		duration:  duration,
		beep:      beeep.Beep,
	}
}

// Play beeps once. Some backends return before the tone ends, so Play also
// waits out the rest of the duration, even when the backend failed; a failing
// backend therefore still keeps the alarm cadence.
func (p *TonePlayer) Play(ctx context.Context) error {
	started := time.Now()
	err := p.beep(p.frequency, int(p.duration/time.Millisecond))

	if remaining := p.duration - time.Since(started); remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	if err != nil {
		return fmt.Errorf("beep %.0f Hz: %w", p.frequency, err)
	}

	return nil
}
