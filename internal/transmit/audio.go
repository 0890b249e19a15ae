// internal/transmit/audio.go
package transmit

import (
	"fmt"
	"math"

	"github.com/ColonelBlimp/fanremote/internal/audio"
	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"
)

// DefaultVolume keeps the blaster LEDs below clipping on most line outputs
const DefaultVolume = 0.9

// Player is the playback side of an audio-jack IR blaster.
// *audio.Player satisfies it.
type Player interface {
	Config() audio.Config
	Init() error
	ListDevices() ([]malgo.DeviceInfo, error)
	Play(samples []float32) error
	Close() error
}

// Audio drives an IR blaster plugged into a stereo headphone jack. The two
// LEDs sit in anti-parallel across left and right, so playing a tone at half
// the carrier on L and its inverse on R flashes them at the full carrier.
type Audio struct {
	player Player
	volume float64
	log    logrus.FieldLogger
}

// NewAudio wraps p. A volume outside (0,1] falls back to DefaultVolume.
func NewAudio(p Player, volume float64, log logrus.FieldLogger) *Audio {
	if volume <= 0 || volume > 1 {
		volume = DefaultVolume
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Audio{player: p, volume: volume, log: log}
}

// Available initializes the backend on first use and reports whether any
// playback device exists.
func (a *Audio) Available() bool {
	n, err := a.devices()
	if err != nil {
		a.log.WithError(err).Debug("audio probe failed")
		return false
	}
	return n > 0
}

func (a *Audio) devices() (int, error) {
	if err := a.player.Init(); err != nil {
		return 0, err
	}
	devices, err := a.player.ListDevices()
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

// Transmit renders w and plays it.
func (a *Audio) Transmit(carrierHz int, w ir.Waveform) error {
	if err := w.Validate(); err != nil {
		return err
	}
	n, err := a.devices()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %w", ErrUnavailable, audio.ErrNoDevice)
	}

	cfg := a.player.Config()
	samples, err := RenderStereo(w, carrierHz, cfg.SampleRate, a.volume)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"carrier_hz": carrierHz,
		"frames":     len(samples) / 2,
	}).Debug("playing burst")
	return a.player.Play(samples)
}

// Close releases the audio backend.
func (a *Audio) Close() error {
	return a.player.Close()
}

// RenderStereo turns w into interleaved L/R float32 samples. Marks carry a
// sine at half carrierHz on the left and its inverse on the right; spaces are
// silent. Each element lasts round(d*sampleRate/1e6) frames and the phase
// runs continuously across the whole burst.
func RenderStereo(w ir.Waveform, carrierHz int, sampleRate uint32, volume float64) ([]float32, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if carrierHz <= 0 {
		return nil, fmt.Errorf("carrier must be positive, got %d", carrierHz)
	}
	if uint64(sampleRate) <= uint64(carrierHz) {
		return nil, fmt.Errorf("sample rate %d too low for %d Hz carrier", sampleRate, carrierHz)
	}

	counts := make([]int, len(w))
	total := 0
	for i, d := range w {
		counts[i] = int(math.Round(float64(d) * float64(sampleRate) / 1e6))
		total += counts[i]
	}

	out := make([]float32, 0, 2*total)
	step := 2 * math.Pi * (float64(carrierHz) / 2) / float64(sampleRate)
	frame := 0
	for i, n := range counts {
		mark := i%2 == 0
		for j := 0; j < n; j++ {
			var l float32
			if mark {
				l = float32(volume * math.Sin(step*float64(frame)))
			}
			out = append(out, l, -l)
			frame++
		}
	}
	return out, nil
}
