package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/ColonelBlimp/fanremote/internal/ir"
)

// Action document types
const (
	TypeRaw = "raw"
	TypeNEC = "nec"
)

var (
	// ErrInvalidDocument indicates a profile document with the wrong shape
	ErrInvalidDocument = errors.New("invalid profile document")
)

// ActionSpec is the document form of one binding.
type ActionSpec struct {
	Type    string  `mapstructure:"type" yaml:"type" json:"type"`
	Pattern []int64 `mapstructure:"pattern" yaml:"pattern,omitempty,flow" json:"pattern,omitempty"`
	Address *int64  `mapstructure:"address" yaml:"address,omitempty" json:"address,omitempty"`
	Command *int64  `mapstructure:"command" yaml:"command,omitempty" json:"command,omitempty"`
}

// RawSpec describes a verbatim waveform.
func RawSpec(w ir.Waveform) *ActionSpec {
	pattern := make([]int64, len(w))
	for i, d := range w {
		pattern[i] = int64(d)
	}
	return &ActionSpec{Type: TypeRaw, Pattern: pattern}
}

// NECSpec describes an NEC address/command pair.
func NECSpec(address, command int64) *ActionSpec {
	return &ActionSpec{Type: TypeNEC, Address: &address, Command: &command}
}

// Validate checks the fields required by a.Type.
func (a *ActionSpec) Validate() error {
	switch a.Type {
	case TypeRaw:
		if len(a.Pattern) == 0 {
			return fmt.Errorf("%w: raw pattern is empty", ErrInvalidDocument)
		}
	case TypeNEC:
		if a.Address == nil {
			return fmt.Errorf("%w: nec address is missing", ErrInvalidDocument)
		}
		if a.Command == nil {
			return fmt.Errorf("%w: nec command is missing", ErrInvalidDocument)
		}
	case "":
		return fmt.Errorf("%w: action type is missing", ErrInvalidDocument)
	default:
		return fmt.Errorf("%w: unknown action type %q", ErrInvalidDocument, a.Type)
	}
	return nil
}

// Action converts a validated spec. Numbers outside their field, negative
// ones included, keep the low bits of their two's complement form.
func (a *ActionSpec) Action() (ir.Action, error) {
	if err := a.Validate(); err != nil {
		return ir.Action{}, err
	}
	if a.Type == TypeNEC {
		return ir.NECAction(uint16(*a.Address), uint8(*a.Command)), nil
	}
	w := make(ir.Waveform, len(a.Pattern))
	for i, d := range a.Pattern {
		w[i] = uint32(d & math.MaxUint32)
	}
	return ir.OwnedAction(w), nil
}

// Spec is the document form of a profile. Unlike Default it carries no
// implicit bindings: a nil field is simply absent.
type Spec struct {
	Sleep      *ActionSpec `mapstructure:"sleep" yaml:"sleep,omitempty" json:"sleep,omitempty"`
	LED        *ActionSpec `mapstructure:"led" yaml:"led,omitempty" json:"led,omitempty"`
	Timer1h    *ActionSpec `mapstructure:"timer_1h" yaml:"timer_1h,omitempty" json:"timer_1h,omitempty"`
	Timer2h    *ActionSpec `mapstructure:"timer_2h" yaml:"timer_2h,omitempty" json:"timer_2h,omitempty"`
	Timer4h    *ActionSpec `mapstructure:"timer_4h" yaml:"timer_4h,omitempty" json:"timer_4h,omitempty"`
	TimerCycle *ActionSpec `mapstructure:"timer_cycle" yaml:"timer_cycle,omitempty" json:"timer_cycle,omitempty"`
}

func (s *Spec) field(slot Slot) **ActionSpec {
	switch slot {
	case SlotSleep:
		return &s.Sleep
	case SlotLED:
		return &s.LED
	case SlotTimer1h:
		return &s.Timer1h
	case SlotTimer2h:
		return &s.Timer2h
	case SlotTimer4h:
		return &s.Timer4h
	case SlotTimerCycle:
		return &s.TimerCycle
	}
	return nil
}

// Get returns the explicit entry for slot, or nil.
func (s *Spec) Get(slot Slot) *ActionSpec {
	if f := s.field(slot); f != nil {
		return *f
	}
	return nil
}

// Set stores an entry for slot.
func (s *Spec) Set(slot Slot, a *ActionSpec) {
	if f := s.field(slot); f != nil {
		*f = a
	}
}

// Validate checks every present entry and reports all problems at once.
func (s *Spec) Validate() error {
	var errs []error
	for _, slot := range Slots() {
		if a := s.Get(slot); a != nil {
			if err := a.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", slot.Key(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// timerSlots fall back to timer_cycle when they have no entry of their own.
var timerSlots = map[Slot]bool{
	SlotTimer1h: true,
	SlotTimer2h: true,
	SlotTimer4h: true,
}

// Build turns a spec into a fresh profile. Each of timer_1h, timer_2h and
// timer_4h uses its own entry, else timer_cycle, else stays unbound. Every
// other slot uses only its own entry. Nothing is inherited from any profile
// that was active before.
func Build(name string, s Spec) (*Profile, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bindings := make(map[Slot]ir.Action)
	for _, slot := range Slots() {
		entry := s.Get(slot)
		if entry == nil && timerSlots[slot] {
			entry = s.TimerCycle
		}
		if entry == nil {
			continue
		}
		action, err := entry.Action()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot.Key(), err)
		}
		bindings[slot] = action
	}
	return New(name, bindings), nil
}

// Spec exports p in document form. Catalog and owned waveforms are written as
// raw patterns.
func (p *Profile) Spec() Spec {
	var s Spec
	for _, slot := range p.Bound() {
		a := p.bindings[slot]
		if addr, cmd, ok := a.NEC(); ok {
			s.Set(slot, NECSpec(int64(addr), int64(cmd)))
			continue
		}
		s.Set(slot, RawSpec(a.Resolve()))
	}
	return s
}
