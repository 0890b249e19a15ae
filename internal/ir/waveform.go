package ir

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyWaveform indicates a waveform with no elements
	ErrEmptyWaveform = errors.New("waveform must contain at least one mark")
)

// Waveform is an ordered list of mark/space durations in microseconds.
// Even indexes are marks (carrier on), odd indexes are spaces.
// Waveforms handed out by this package are shared and must not be modified.
type Waveform []uint32

// Validate reports whether w can be transmitted.
func (w Waveform) Validate() error {
	if len(w) == 0 {
		return ErrEmptyWaveform
	}
	return nil
}

// Marks returns the number of carrier-on intervals.
func (w Waveform) Marks() int {
	return (len(w) + 1) / 2
}

// Duration returns the total on-air time in microseconds.
func (w Waveform) Duration() uint64 {
	var total uint64
	for _, d := range w {
		total += uint64(d)
	}
	return total
}

// Equal reports whether two waveforms hold the same durations.
func (w Waveform) Equal(other Waveform) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that the caller owns.
func (w Waveform) Clone() Waveform {
	if w == nil {
		return nil
	}
	out := make(Waveform, len(w))
	copy(out, w)
	return out
}

// String renders the waveform as "+mark -space" pairs, the notation used by
// ir-ctl and most capture tools.
func (w Waveform) String() string {
	var b strings.Builder
	for i, d := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i%2 == 0 {
			fmt.Fprintf(&b, "+%d", d)
		} else {
			fmt.Fprintf(&b, "-%d", d)
		}
	}
	return b.String()
}
