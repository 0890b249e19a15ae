// internal/profile/profile.go
// Package profile binds the handset-dependent fan controls to IR actions.
package profile

import (
	"github.com/ColonelBlimp/fanremote/internal/ir"
)

// Slot is a fan control whose waveform depends on the handset model.
type Slot uint8

const (
	SlotSleep Slot = iota + 1
	SlotLED
	SlotTimer1h
	SlotTimer2h
	SlotTimer4h
	SlotTimerCycle
)

var slotKeys = [...]string{
	SlotSleep:      "sleep",
	SlotLED:        "led",
	SlotTimer1h:    "timer_1h",
	SlotTimer2h:    "timer_2h",
	SlotTimer4h:    "timer_4h",
	SlotTimerCycle: "timer_cycle",
}

// Slots returns every variable slot in document order.
func Slots() []Slot {
	return []Slot{SlotSleep, SlotLED, SlotTimer1h, SlotTimer2h, SlotTimer4h, SlotTimerCycle}
}

// Key returns the profile document key for s.
func (s Slot) Key() string {
	if s == 0 || int(s) >= len(slotKeys) {
		return ""
	}
	return slotKeys[s]
}

func (s Slot) String() string {
	if k := s.Key(); k != "" {
		return k
	}
	return "unknown"
}

// ParseSlot maps a document key back to its Slot.
func ParseSlot(key string) (Slot, bool) {
	for _, s := range Slots() {
		if s.Key() == key {
			return s, true
		}
	}
	return 0, false
}

// Profile is one handset's set of variable bindings. A slot that is not bound
// is unsupported on that handset. Profiles are never modified after
// construction; a new profile replaces the old one as a whole.
type Profile struct {
	name     string
	bindings map[Slot]ir.Action
}

// New builds a profile from bindings. Zero actions are dropped.
func New(name string, bindings map[Slot]ir.Action) *Profile {
	p := &Profile{
		name:     name,
		bindings: make(map[Slot]ir.Action, len(bindings)),
	}
	for slot, action := range bindings {
		if slot.Key() == "" || action.IsZero() {
			continue
		}
		p.bindings[slot] = action
	}
	return p
}

// DefaultName identifies the built-in profile.
const DefaultName = "builtin"

// Default returns the built-in profile. The handset has a single timer button
// that cycles through its states, so every timer slot sends the same pattern.
func Default() *Profile {
	timer := ir.MustStaticAction(ir.PatternTimerCycle)
	return New(DefaultName, map[Slot]ir.Action{
		SlotSleep:      ir.MustStaticAction(ir.PatternSleepMode),
		SlotTimer1h:    timer,
		SlotTimer2h:    timer,
		SlotTimer4h:    timer,
		SlotTimerCycle: timer,
	})
}

// Name returns where the profile came from.
func (p *Profile) Name() string { return p.name }

// Lookup returns the action bound to s.
func (p *Profile) Lookup(s Slot) (ir.Action, bool) {
	a, ok := p.bindings[s]
	return a, ok
}

// Resolve returns the waveform for s, or false if the slot is unsupported.
func (p *Profile) Resolve(s Slot) (ir.Waveform, bool) {
	a, ok := p.bindings[s]
	if !ok {
		return nil, false
	}
	return a.Resolve(), true
}

// Supports reports whether s is bound.
func (p *Profile) Supports(s Slot) bool {
	_, ok := p.bindings[s]
	return ok
}

// Bound returns the bound slots in document order.
func (p *Profile) Bound() []Slot {
	var out []Slot
	for _, s := range Slots() {
		if _, ok := p.bindings[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Equal reports whether both profiles bind the same slots to equal actions.
func (p *Profile) Equal(other *Profile) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.bindings) != len(other.bindings) {
		return false
	}
	for slot, a := range p.bindings {
		b, ok := other.bindings[slot]
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}
