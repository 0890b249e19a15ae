// internal/ir/catalog.go
package ir

import "sort"

// Pattern names in the built-in catalog
const (
	PatternPowerToggle = "power_toggle"
	PatternSpeed1      = "speed_1"
	PatternSpeed2      = "speed_2"
	PatternSpeed3      = "speed_3"
	PatternSpeed4      = "speed_4"
	PatternSpeed5      = "speed_5"
	PatternBoost       = "boost"
	PatternTimerCycle  = "timer_cycle"
	PatternOscMode     = "osc_mode"
	PatternSleepMode   = "sleep_mode"
)

// Captured from an Atomberg BLDC handset (NEC, 38kHz, address 0xF300).
// These are replayed verbatim. They do not match EncodeNEC output exactly and
// are not expected to.
var (
	// powerToggle toggles the fan on and off
	powerToggle = Waveform{
		8930, 4420, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570,
		580, 520, 580, 1670, 580, 1620, 580, 570, 580, 520, 580, 1670, 580, 1620, 580, 1670,
		580, 1670, 580, 1620, 580, 570, 580, 520, 580, 570, 580, 1620, 580, 570, 580, 520,
		580, 1670, 580, 520, 580, 1670, 580, 1670, 580, 1620, 580, 570, 580, 1620, 580, 1670,
		580, 520, 580,
	}
	speed1 = Waveform{
		8880, 4420, 580, 570, 580, 520, 580, 570, 530, 570, 580, 570, 530, 570, 580, 520,
		580, 570, 580, 1670, 530, 1670, 580, 570, 580, 520, 580, 1620, 630, 1620, 580, 1670,
		580, 1670, 530, 1670, 580, 1620, 630, 520, 580, 1620, 630, 520, 580, 570, 580, 520,
		580, 1620, 630, 520, 580, 570, 580, 1620, 580, 570, 580, 1620, 580, 1670, 580, 1620,
		630, 520, 580,
	}
	speed2 = Waveform{
		8930, 4420, 580, 520, 580, 570, 580, 520, 630, 520, 580, 520, 580, 520, 630, 520,
		580, 570, 580, 1620, 580, 1670, 580, 520, 580, 570, 580, 1620, 580, 1670, 580, 1670,
		580, 1620, 630, 520, 580, 520, 580, 570, 580, 520, 580, 1670, 580, 520, 630, 520,
		580, 1620, 580, 1670, 580, 1670, 580, 1620, 580, 1670, 580, 520, 580, 1670, 580, 1670,
		580, 520, 580,
	}
	speed3 = Waveform{
		8930, 4420, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520, 630, 520,
		580, 520, 580, 1670, 580, 1620, 630, 520, 580, 520, 580, 1670, 580, 1620, 580, 1670,
		580, 1670, 580, 520, 580, 1670, 580, 520, 580, 1670, 580, 520, 580, 570, 580, 520,
		580, 1670, 580, 1670, 530, 570, 580, 1620, 630, 520, 580, 1670, 580, 1620, 580, 1670,
		580, 520, 580,
	}
	speed4 = Waveform{
		8930, 4370, 630, 520, 580, 520, 630, 520, 580, 570, 580, 520, 580, 570, 580, 520,
		580, 520, 630, 1620, 580, 1670, 580, 520, 580, 520, 630, 1620, 630, 1620, 580, 1670,
		580, 1620, 580, 1670, 580, 1620, 630, 520, 580, 570, 580, 1620, 580, 570, 580, 520,
		580, 1670, 580, 520, 580, 570, 580, 1620, 580, 1670, 580, 520, 580, 1670, 580, 1620,
		630, 520, 580,
	}
	speed5 = Waveform{
		8930, 4420, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520,
		580, 520, 630, 1620, 580, 1670, 580, 520, 630, 470, 630, 1620, 580, 1670, 580, 1670,
		580, 1620, 630, 470, 630, 520, 580, 520, 630, 1620, 580, 520, 630, 520, 580, 520,
		630, 1620, 580, 1670, 580, 1670, 580, 1620, 580, 520, 630, 1620, 580, 1670, 580, 1670,
		580, 520, 580,
	}
	// boost runs the motor at maximum speed
	boost = Waveform{
		8930, 4420, 580, 570, 580, 520, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520,
		580, 570, 580, 1620, 580, 1670, 580, 570, 580, 520, 580, 1670, 580, 1620, 580, 1670,
		580, 1620, 580, 1670, 580, 1670, 580, 1620, 580, 1670, 580, 520, 580, 570, 580, 520,
		580, 1670, 580, 520, 580, 570, 580, 520, 580, 570, 580, 1670, 580, 1620, 580, 1670,
		580, 520, 580,
	}
	// timerCycle steps the handset timer 1h, 2h, 4h, 8h, off
	timerCycle = Waveform{
		8880, 4420, 630, 520, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570,
		580, 520, 580, 1670, 580, 1670, 580, 520, 580, 520, 630, 1620, 580, 1670, 580, 1620,
		580, 1670, 580, 520, 580, 1670, 580, 1620, 630, 520, 580, 1670, 580, 520, 580, 520,
		630, 1620, 580, 1670, 580, 520, 580, 520, 630, 1620, 580, 570, 580, 1620, 630, 1620,
		580, 520, 630,
	}
	// oscMode breeze mode; not present on every handset
	oscMode = Waveform{
		8930, 4420, 580, 570, 580, 520, 580, 570, 580, 520, 580, 570, 580, 520, 580, 520,
		630, 520, 580, 1670, 580, 1670, 530, 570, 580, 520, 580, 1670, 580, 1670, 580, 1620,
		580, 1670, 580, 1670, 580, 1620, 580, 1670, 580, 520, 580, 1670, 580, 520, 580, 570,
		580, 1620, 580, 570, 580, 520, 580, 570, 580, 1620, 580, 570, 580, 1670, 530, 1670,
		580, 570, 580,
	}
	// sleepMode sleep mode
	sleepMode = Waveform{
		8930, 4370, 630, 520, 580, 520, 630, 520, 630, 520, 580, 520, 580, 570, 580, 520,
		580, 520, 630, 1620, 630, 1620, 580, 520, 630, 470, 630, 1620, 630, 1620, 630, 1620,
		580, 1620, 630, 520, 580, 1620, 580, 1670, 580, 1620, 630, 520, 580, 570, 580, 520,
		580, 1670, 580, 1620, 630, 520, 580, 520, 580, 570, 580, 1620, 630, 1620, 580, 1620,
		630, 520, 580,
	}
)

var catalog = map[string]Waveform{
	PatternPowerToggle: powerToggle,
	PatternSpeed1:      speed1,
	PatternSpeed2:      speed2,
	PatternSpeed3:      speed3,
	PatternSpeed4:      speed4,
	PatternSpeed5:      speed5,
	PatternBoost:       boost,
	PatternTimerCycle:  timerCycle,
	PatternOscMode:     oscMode,
	PatternSleepMode:   sleepMode,
}

// Pattern returns the captured waveform registered under name.
// The returned slice is shared by every caller.
func Pattern(name string) (Waveform, bool) {
	w, ok := catalog[name]
	return w, ok
}

// MustPattern is Pattern for names known at compile time.
func MustPattern(name string) Waveform {
	w, ok := catalog[name]
	if !ok {
		panic("ir: unknown pattern " + name)
	}
	return w
}

// PatternNames returns the catalog names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
