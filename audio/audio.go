// Package audio plays a short tone whenever a conversion happens.
package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/config"
)

// pitch scales the base frequency per winning kind.
var pitch = [components.NumKinds]float64{
	components.Rock:     0.75,
	components.Paper:    1.0,
	components.Scissors: 1.5,
}

// Blip plays conversion tones. A nil *Blip is silent.
type Blip struct {
	sampleRate beep.SampleRate
	frequency  float64
	duration   time.Duration
}

// New initializes the speaker. Returns nil, nil when audio is disabled.
func New(cfg config.AudioConfig) (*Blip, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	b := &Blip{
		sampleRate: beep.SampleRate(cfg.SampleRate),
		frequency:  cfg.Frequency,
		duration:   time.Duration(cfg.DurationMS) * time.Millisecond,
	}
	if err := speaker.Init(b.sampleRate, b.sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return b, nil
}

// Tone returns a sine tone of the given frequency and length.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(d), sine), nil
}

// Play sounds one tone pitched for the kind that won the conversion.
func (b *Blip) Play(winner components.Kind) {
	if b == nil || !winner.Valid() {
		return
	}
	tone, err := Tone(b.sampleRate, b.frequency*pitch[winner], b.duration)
	if err != nil {
		slog.Debug("conversion tone", "winner", winner.String(), "error", err)
		return
	}
	speaker.Play(tone)
}

// Close releases the audio device.
func (b *Blip) Close() {
	if b == nil {
		return
	}
	speaker.Close()
}
