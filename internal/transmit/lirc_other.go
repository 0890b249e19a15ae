//go:build !linux

package transmit

func (l *LIRC) probe() (bool, error) {
	return false, nil
}

func (l *LIRC) send(int, []byte) error {
	return ErrUnavailable
}
