// internal/dispatch/command.go
// Package dispatch routes user-facing fan commands to waveforms and hands
// them to a transmitter.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/ColonelBlimp/fanremote/internal/profile"
)

// ErrUnknownCommand indicates an identifier with no matching command
var ErrUnknownCommand = errors.New("unknown command")

// Command is one button on the handset.
type Command uint8

const (
	CommandPower Command = iota + 1
	CommandSpeed1
	CommandSpeed2
	CommandSpeed3
	CommandSpeed4
	CommandSpeed5
	CommandBoost
	CommandSleep
	CommandLED
	CommandTimer1h
	CommandTimer2h
	CommandTimer4h
	CommandTimerCycle
)

type commandInfo struct {
	id      string
	label   string // status after a send
	feature string // name used in "<feature> not configured"
	pattern string // catalog entry for fixed commands
	slot    profile.Slot
}

var commands = [...]commandInfo{
	CommandPower:      {id: "power", label: "Power toggled", pattern: ir.PatternPowerToggle},
	CommandSpeed1:     {id: "speed_1", label: "Speed 1", pattern: ir.PatternSpeed1},
	CommandSpeed2:     {id: "speed_2", label: "Speed 2", pattern: ir.PatternSpeed2},
	CommandSpeed3:     {id: "speed_3", label: "Speed 3", pattern: ir.PatternSpeed3},
	CommandSpeed4:     {id: "speed_4", label: "Speed 4", pattern: ir.PatternSpeed4},
	CommandSpeed5:     {id: "speed_5", label: "Speed 5", pattern: ir.PatternSpeed5},
	CommandBoost:      {id: "boost", label: "Boost mode", pattern: ir.PatternBoost},
	CommandSleep:      {id: "sleep", label: "Sleep mode", feature: "Sleep", slot: profile.SlotSleep},
	CommandLED:        {id: "led", label: "LED toggled", feature: "LED", slot: profile.SlotLED},
	CommandTimer1h:    {id: "timer_1h", label: "Timer 1h", feature: "Timer", slot: profile.SlotTimer1h},
	CommandTimer2h:    {id: "timer_2h", label: "Timer 2h", feature: "Timer", slot: profile.SlotTimer2h},
	CommandTimer4h:    {id: "timer_4h", label: "Timer 4h", feature: "Timer", slot: profile.SlotTimer4h},
	CommandTimerCycle: {id: "timer_cycle", label: "Timer cycle (1h→2h→4h→8h→Off)", feature: "Timer", slot: profile.SlotTimerCycle},
}

// Commands returns every command in handset order.
func Commands() []Command {
	out := make([]Command, 0, len(commands)-1)
	for c := CommandPower; c <= CommandTimerCycle; c++ {
		out = append(out, c)
	}
	return out
}

func (c Command) valid() bool {
	return c >= CommandPower && c <= CommandTimerCycle
}

// String returns the identifier used on the command line and in logs.
func (c Command) String() string {
	if !c.valid() {
		return fmt.Sprintf("command(%d)", uint8(c))
	}
	return commands[c].id
}

// Label is the status text shown after the command is sent.
func (c Command) Label() string {
	if !c.valid() {
		return c.String()
	}
	return commands[c].label
}

// Fixed reports whether c always maps to the same catalog pattern,
// independent of the active profile.
func (c Command) Fixed() bool {
	return c.valid() && commands[c].pattern != ""
}

// Pattern returns the catalog entry of a fixed command.
func (c Command) Pattern() (string, bool) {
	if !c.Fixed() {
		return "", false
	}
	return commands[c].pattern, true
}

// Slot returns the profile slot of a variable command.
func (c Command) Slot() (profile.Slot, bool) {
	if !c.valid() || c.Fixed() {
		return 0, false
	}
	return commands[c].slot, true
}

func (c Command) notConfigured() string {
	if !c.valid() || c.Fixed() {
		return c.String() + " not configured"
	}
	return commands[c].feature + " not configured"
}

// ParseCommand accepts an identifier such as "speed_3" or "timer_cycle".
// Matching ignores case, and dashes may stand in for underscores.
func ParseCommand(s string) (Command, error) {
	id := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, c := range Commands() {
		if commands[c].id == id {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
