package profile

import (
	"errors"
	"strings"
	"testing"

	"github.com/ColonelBlimp/fanremote/internal/ir"
)

func mustBuild(t *testing.T, s Spec) *Profile {
	t.Helper()
	p, err := Build("test", s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestBuild_TimerCycleFallback(t *testing.T) {
	p := mustBuild(t, Spec{TimerCycle: RawSpec(ir.Waveform{1, 2, 3})})

	for _, slot := range []Slot{SlotTimer1h, SlotTimer2h, SlotTimer4h, SlotTimerCycle} {
		got, ok := p.Resolve(slot)
		if !ok {
			t.Errorf("%s not bound", slot)
			continue
		}
		if !got.Equal(ir.Waveform{1, 2, 3}) {
			t.Errorf("%s = %v, want [1 2 3]", slot, got)
		}
	}
}

func TestBuild_ExplicitTimerBeatsCycle(t *testing.T) {
	p := mustBuild(t, Spec{
		Timer2h:    NECSpec(1, 2),
		TimerCycle: RawSpec(ir.Waveform{9}),
	})

	got, _ := p.Resolve(SlotTimer2h)
	if !got.Equal(ir.EncodeNEC(1, 2)) {
		t.Errorf("timer_2h = %v, want NEC(1, 2)", got)
	}

	for _, slot := range []Slot{SlotTimer1h, SlotTimer4h, SlotTimerCycle} {
		got, ok := p.Resolve(slot)
		if !ok || !got.Equal(ir.Waveform{9}) {
			t.Errorf("%s = %v, %v want [9]", slot, got, ok)
		}
	}
}

func TestBuild_NoFallbackForOtherSlots(t *testing.T) {
	p := mustBuild(t, Spec{TimerCycle: RawSpec(ir.Waveform{9})})

	if p.Supports(SlotSleep) {
		t.Error("sleep bound without an entry")
	}
	if p.Supports(SlotLED) {
		t.Error("led bound without an entry")
	}
}

func TestBuild_TimerCycleHasNoFallback(t *testing.T) {
	p := mustBuild(t, Spec{Timer1h: NECSpec(1, 1)})

	if p.Supports(SlotTimerCycle) {
		t.Error("timer_cycle bound from timer_1h")
	}
	if p.Supports(SlotTimer2h) || p.Supports(SlotTimer4h) {
		t.Error("timer_2h/timer_4h bound without entries")
	}
}

func TestBuild_EmptySpec(t *testing.T) {
	p := mustBuild(t, Spec{})
	if len(p.Bound()) != 0 {
		t.Errorf("Bound() = %v, want none", p.Bound())
	}
}

func TestActionSpec_Truncation(t *testing.T) {
	tests := []struct {
		name    string
		address int64
		command int64
		wantA   uint16
		wantC   uint8
	}{
		{"in range", 0xF300, 0x12, 0xF300, 0x12},
		{"address overflow", 0x1F300, 0x12, 0xF300, 0x12},
		{"command overflow", 1, 0x1FF, 1, 0xFF},
		{"negative", -1, -1, 0xFFFF, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NECSpec(tt.address, tt.command).Action()
			if err != nil {
				t.Fatalf("Action() error = %v", err)
			}
			addr, cmd, ok := a.NEC()
			if !ok || addr != tt.wantA || cmd != tt.wantC {
				t.Errorf("NEC() = (0x%X, 0x%X, %v), want (0x%X, 0x%X, true)", addr, cmd, ok, tt.wantA, tt.wantC)
			}
		})
	}
}

func TestActionSpec_RawTruncation(t *testing.T) {
	a, err := (&ActionSpec{Type: TypeRaw, Pattern: []int64{1 << 32, 1<<32 + 7}}).Action()
	if err != nil {
		t.Fatalf("Action() error = %v", err)
	}
	if !a.Resolve().Equal(ir.Waveform{0, 7}) {
		t.Errorf("Resolve() = %v, want [0 7]", a.Resolve())
	}

	a, err = (&ActionSpec{Type: TypeRaw, Pattern: []int64{100, -1, -(1 << 32) + 5}}).Action()
	if err != nil {
		t.Fatalf("Action(negative) error = %v", err)
	}
	if !a.Resolve().Equal(ir.Waveform{100, 0xFFFFFFFF, 5}) {
		t.Errorf("Resolve() = %v, want [100 4294967295 5]", a.Resolve())
	}
}

func TestActionSpec_Validate(t *testing.T) {
	addr := int64(1)
	tests := []struct {
		name string
		spec ActionSpec
	}{
		{"missing type", ActionSpec{Pattern: []int64{1}}},
		{"unknown type", ActionSpec{Type: "rc5"}},
		{"empty raw", ActionSpec{Type: TypeRaw}},
		{"nec without address", ActionSpec{Type: TypeNEC, Command: &addr}},
		{"nec without command", ActionSpec{Type: TypeNEC, Address: &addr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidDocument)
			}
		})
	}
}

func TestBuild_InvalidEntryFailsWhole(t *testing.T) {
	_, err := Build("test", Spec{
		Sleep: NECSpec(1, 2),
		LED:   &ActionSpec{Type: "bogus"},
	})
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("Build() error = %v, want %v", err, ErrInvalidDocument)
	}
}

func TestSpec_Validate_ReportsAllSlots(t *testing.T) {
	s := Spec{
		LED:     &ActionSpec{Type: "bogus"},
		Timer4h: &ActionSpec{Type: TypeRaw},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	for _, key := range []string{"led", "timer_4h"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Validate() error %q does not mention %s", err, key)
		}
	}
}

func TestProfile_SpecRoundTrip(t *testing.T) {
	p := Default()
	s := p.Spec()

	if s.LED != nil {
		t.Error("exported led entry for unbound slot")
	}
	if s.Sleep == nil || s.Sleep.Type != TypeRaw {
		t.Fatalf("exported sleep = %+v, want raw", s.Sleep)
	}

	rebuilt := mustBuild(t, s)
	for _, slot := range Slots() {
		want, wantOK := p.Resolve(slot)
		got, gotOK := rebuilt.Resolve(slot)
		if wantOK != gotOK || !got.Equal(want) {
			t.Errorf("%s differs after export/build", slot)
		}
	}
}

func TestProfile_SpecKeepsNEC(t *testing.T) {
	p := mustBuild(t, Spec{LED: NECSpec(0xF300, 0x20)})
	s := p.Spec()
	if s.LED == nil || s.LED.Type != TypeNEC || *s.LED.Address != 0xF300 || *s.LED.Command != 0x20 {
		t.Errorf("exported led = %+v", s.LED)
	}
}
