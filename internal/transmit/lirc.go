// internal/transmit/lirc.go
package transmit

import (
	"encoding/binary"

	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/sirupsen/logrus"
)

// DefaultLIRCDevice is the first kernel IR transmitter.
const DefaultLIRCDevice = "/dev/lirc0"

// LIRC sends bursts through a Linux rc-core /dev/lirc* device in pulse mode.
type LIRC struct {
	device string
	log    logrus.FieldLogger
}

// NewLIRC uses device, or DefaultLIRCDevice when empty.
func NewLIRC(device string, log logrus.FieldLogger) *LIRC {
	if device == "" {
		device = DefaultLIRCDevice
	}
	return &LIRC{device: device, log: log.WithField("device", device)}
}

// Device returns the device path.
func (l *LIRC) Device() string { return l.device }

// Available reports whether the device exists and can send pulses.
func (l *LIRC) Available() bool {
	ok, err := l.probe()
	if err != nil {
		l.log.WithError(err).Debug("lirc probe failed")
	}
	return ok
}

// Transmit writes w to the device after setting the carrier.
func (l *LIRC) Transmit(carrierHz int, w ir.Waveform) error {
	if err := w.Validate(); err != nil {
		return err
	}
	return l.send(carrierHz, encodePulses(w))
}

// encodePulses lays w out as the native-endian uint32 array the kernel
// expects. The kernel requires an odd count ending in a pulse, so a trailing
// space is dropped.
func encodePulses(w ir.Waveform) []byte {
	n := len(w)
	if n%2 == 0 {
		n--
	}
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		binary.NativeEndian.PutUint32(buf[4*i:], w[i])
	}
	return buf
}
