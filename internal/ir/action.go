package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPattern indicates a catalog name with no captured waveform
	ErrUnknownPattern = errors.New("unknown catalog pattern")
)

// ActionKind discriminates the waveform source behind an Action.
type ActionKind uint8

const (
	// ActionNone is the zero Action; it resolves to nothing.
	ActionNone ActionKind = iota
	// ActionStatic references a catalog waveform.
	ActionStatic
	// ActionOwned carries its own waveform, typically from a profile document.
	ActionOwned
	// ActionNEC encodes an address/command pair on every resolve.
	ActionNEC
)

func (k ActionKind) String() string {
	switch k {
	case ActionStatic:
		return "static"
	case ActionOwned:
		return "raw"
	case ActionNEC:
		return "nec"
	default:
		return "none"
	}
}

// Action is something that can be turned into a waveform on demand.
// It is a small value type; copying it never copies waveform data.
type Action struct {
	kind    ActionKind
	pattern string
	wave    Waveform
	address uint16
	command uint8
}

// StaticAction references the catalog pattern called name.
func StaticAction(name string) (Action, error) {
	w, ok := Pattern(name)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return Action{kind: ActionStatic, pattern: name, wave: w}, nil
}

// MustStaticAction is StaticAction for built-in names.
func MustStaticAction(name string) Action {
	a, err := StaticAction(name)
	if err != nil {
		panic(err)
	}
	return a
}

// OwnedAction takes a private copy of w.
func OwnedAction(w Waveform) Action {
	return Action{kind: ActionOwned, wave: w.Clone()}
}

// NECAction sends address/command through EncodeNEC.
func NECAction(address uint16, command uint8) Action {
	return Action{kind: ActionNEC, address: address, command: command}
}

// Kind returns the variant tag.
func (a Action) Kind() ActionKind { return a.kind }

// IsZero reports whether a is the zero Action.
func (a Action) IsZero() bool { return a.kind == ActionNone }

// PatternName returns the catalog name for static actions.
func (a Action) PatternName() string { return a.pattern }

// NEC returns the stored address and command for NEC actions.
func (a Action) NEC() (address uint16, command uint8, ok bool) {
	return a.address, a.command, a.kind == ActionNEC
}

// Resolve produces the waveform to transmit. Static and owned actions return
// their stored slice; NEC actions are encoded fresh every call.
func (a Action) Resolve() Waveform {
	switch a.kind {
	case ActionStatic, ActionOwned:
		return a.wave
	case ActionNEC:
		return EncodeNEC(a.address, a.command)
	default:
		return nil
	}
}

// Equal reports whether a and b describe the same waveform source.
func (a Action) Equal(b Action) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ActionStatic:
		return a.pattern == b.pattern
	case ActionOwned:
		return a.wave.Equal(b.wave)
	case ActionNEC:
		return a.address == b.address && a.command == b.command
	default:
		return true
	}
}

func (a Action) String() string {
	switch a.kind {
	case ActionStatic:
		return "pattern:" + a.pattern
	case ActionOwned:
		return fmt.Sprintf("raw:%d", len(a.wave))
	case ActionNEC:
		return fmt.Sprintf("nec:0x%04X/0x%02X", a.address, a.command)
	default:
		return "none"
	}
}
