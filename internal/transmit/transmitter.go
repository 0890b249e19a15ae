// internal/transmit/transmitter.go
// Package transmit delivers waveforms to infrared emitters.
package transmit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ColonelBlimp/fanremote/internal/audio"
	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnavailable indicates no emitter is present
	ErrUnavailable = errors.New("no IR emitter available")
	// ErrUnknownBackend indicates a backend name with no implementation
	ErrUnknownBackend = errors.New("unknown transmitter backend")
)

// Backend names accepted by New
const (
	BackendLIRC   = "lirc"
	BackendAudio  = "audio"
	BackendDryRun = "dryrun"
	BackendNone   = "none"
)

// Backends lists every backend name.
func Backends() []string {
	return []string{BackendLIRC, BackendAudio, BackendDryRun, BackendNone}
}

// Transmitter is an IR emitter. Transmit blocks until the burst has been
// handed to the hardware; it does not retry.
type Transmitter interface {
	// Available reports whether an emitter exists right now.
	Available() bool
	// Transmit sends w modulated at carrierHz.
	Transmit(carrierHz int, w ir.Waveform) error
}

// Config selects and configures a backend.
type Config struct {
	Backend    string
	LIRCDevice string
	Audio      audio.Config
	Volume     float64
	Out        io.Writer // dry-run output, stdout when nil
}

// New builds the transmitter named by cfg.Backend.
func New(cfg Config, log logrus.FieldLogger) (Transmitter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("backend", cfg.Backend)

	switch cfg.Backend {
	case BackendLIRC:
		return NewLIRC(cfg.LIRCDevice, log), nil
	case BackendAudio:
		return NewAudio(audio.New(cfg.Audio), cfg.Volume, log), nil
	case BackendDryRun:
		out := cfg.Out
		if out == nil {
			out = os.Stdout
		}
		return NewDryRun(out), nil
	case BackendNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// None is a transmitter for hosts without an emitter.
type None struct{}

func (None) Available() bool { return false }

func (None) Transmit(int, ir.Waveform) error { return ErrUnavailable }

// Close releases backend resources when the transmitter holds any.
func Close(t Transmitter) error {
	if c, ok := t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
