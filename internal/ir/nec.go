// internal/ir/nec.go
// Package ir holds infrared waveforms: the NEC encoder, the captured pattern
// catalog and the Action type that unifies them.
package ir

// CarrierHz is the modulation frequency every waveform in this package is sent at.
const CarrierHz = 38000

// NEC protocol timings in microseconds
const (
	// HeaderMark is the leading AGC burst
	HeaderMark = 9000
	// HeaderSpace follows the header mark
	HeaderSpace = 4500
	// BitMark starts every data bit
	BitMark = 560
	// OneSpace encodes a logical 1 after BitMark
	OneSpace = 1690
	// ZeroSpace encodes a logical 0 after BitMark
	ZeroSpace = 560
	// TrailerMark terminates the frame
	TrailerMark = 560

	// AddressBits is the width of the extended NEC address
	AddressBits = 16
	// CommandBits is the width of the command and of its complement
	CommandBits = 8

	// FrameLength is header(2) + 32 bit pairs(64) + trailer(1)
	FrameLength = 2 + 2*(AddressBits+2*CommandBits) + 1
)

// EncodeNEC converts an address/command pair into a single extended-NEC frame.
// The address is sent as 16 bits with no complement; the command is followed by
// its bitwise inverse. All fields are sent least-significant bit first.
func EncodeNEC(address uint16, command uint8) Waveform {
	w := make(Waveform, 0, FrameLength)
	w = append(w, HeaderMark, HeaderSpace)
	w = appendBits(w, uint32(address), AddressBits)
	w = appendBits(w, uint32(command), CommandBits)
	w = appendBits(w, uint32(^command), CommandBits)
	w = append(w, TrailerMark)
	return w
}

func appendBits(w Waveform, value uint32, n int) Waveform {
	for i := 0; i < n; i++ {
		space := uint32(ZeroSpace)
		if (value>>i)&1 != 0 {
			space = OneSpace
		}
		w = append(w, BitMark, space)
	}
	return w
}
