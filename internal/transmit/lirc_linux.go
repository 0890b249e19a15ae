//go:build linux

package transmit

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// From <linux/lirc.h>
const (
	lircGetFeatures    = 0x80046900 // _IOR('i', 0x00, __u32)
	lircSetSendCarrier = 0x40046913 // _IOW('i', 0x13, __u32)

	lircCanSendPulse      = 0x00000002
	lircCanSetSendCarrier = 0x00000100
)

func (l *LIRC) probe() (bool, error) {
	f, err := os.OpenFile(l.device, os.O_WRONLY, 0)
	if err != nil {
		return false, err
	}
	defer f.Close()

	features, err := unix.IoctlGetUint32(int(f.Fd()), lircGetFeatures)
	if err != nil {
		return false, fmt.Errorf("get features: %w", err)
	}
	return features&lircCanSendPulse != 0, nil
}

func (l *LIRC) send(carrierHz int, pulses []byte) error {
	f, err := os.OpenFile(l.device, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.device, err)
	}
	defer f.Close()

	fd := int(f.Fd())
	features, err := unix.IoctlGetUint32(fd, lircGetFeatures)
	if err != nil {
		return fmt.Errorf("get features: %w", err)
	}
	if features&lircCanSendPulse == 0 {
		return fmt.Errorf("%s: %w", l.device, ErrUnavailable)
	}
	if features&lircCanSetSendCarrier != 0 {
		if err := unix.IoctlSetPointerInt(fd, lircSetSendCarrier, carrierHz); err != nil {
			return fmt.Errorf("set carrier %d: %w", carrierHz, err)
		}
	} else {
		l.log.Debug("device has a fixed carrier")
	}

	// The write returns once the burst has been sent
	n, err := f.Write(pulses)
	if err != nil {
		return fmt.Errorf("write pulses: %w", err)
	}
	if n != len(pulses) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(pulses))
	}
	return nil
}
