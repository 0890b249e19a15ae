package profile

import (
	"errors"
	"strings"
	"testing"

	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
)

func newTestLoader(t *testing.T) (*Loader, afero.Fs, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	fs := afero.NewMemMapFs()
	return NewLoader(NewStore(nil), fs, logger), fs, hook
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

const profileA = `{
	"sleep": {"type": "nec", "address": 62208, "command": 16},
	"led": {"type": "raw", "pattern": [9000, 4500, 560]},
	"timer_cycle": {"type": "raw", "pattern": [1, 2, 3]}
}`

func TestLoadFile_ReplacesActiveProfile(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/data/profile.json", profileA)

	if err := l.LoadFile("/data/profile.json"); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	p := l.Store().Active()
	if p.Name() != "/data/profile.json" {
		t.Errorf("Name() = %q", p.Name())
	}

	sleep, ok := p.Resolve(SlotSleep)
	if !ok || !sleep.Equal(ir.EncodeNEC(0xF300, 0x10)) {
		t.Errorf("sleep = %v, %v want NEC(0xF300, 0x10)", sleep, ok)
	}
	led, ok := p.Resolve(SlotLED)
	if !ok || !led.Equal(ir.Waveform{9000, 4500, 560}) {
		t.Errorf("led = %v, %v", led, ok)
	}
	for _, slot := range []Slot{SlotTimer1h, SlotTimer2h, SlotTimer4h, SlotTimerCycle} {
		w, ok := p.Resolve(slot)
		if !ok || !w.Equal(ir.Waveform{1, 2, 3}) {
			t.Errorf("%s = %v, %v want [1 2 3]", slot, w, ok)
		}
	}
	if l.Store().Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", l.Store().Generation())
	}
}

func TestLoadFile_NeverMergesWithPrevious(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/p.json", `{"led": {"type": "nec", "address": 1, "command": 2}}`)

	if err := l.LoadFile("/p.json"); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// The default profile bound sleep and every timer; none of that survives.
	p := l.Store().Active()
	for _, slot := range []Slot{SlotSleep, SlotTimer1h, SlotTimer2h, SlotTimer4h, SlotTimerCycle} {
		if p.Supports(slot) {
			t.Errorf("%s still bound after load", slot)
		}
	}
	if !p.Supports(SlotLED) {
		t.Error("led not bound")
	}
}

func TestLoadFile_FailureKeepsPreviousProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `sleep = [`},
		{"empty", ``},
		{"array document", `[1, 2, 3]`},
		{"null document", `null`},
		{"scalar document", `5`},
		{"trailing data", `{} {}`},
		{"slot not an object", `{"sleep": 5}`},
		{"unknown type", `{"sleep": {"type": "rc6", "address": 1}}`},
		{"missing pattern", `{"led": {"type": "raw"}}`},
		{"pattern not a list", `{"led": {"type": "raw", "pattern": "9000"}}`},
		{"nec missing command", `{"timer_1h": {"type": "nec", "address": 1}}`},
		{"one bad slot", `{"sleep": {"type": "nec", "address": 9, "command": 9}, "led": {"type": "raw", "pattern": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, fs, hook := newTestLoader(t)
			writeFile(t, fs, "/a.json", profileA)
			writeFile(t, fs, "/bad.json", tt.content)

			if err := l.LoadFile("/a.json"); err != nil {
				t.Fatalf("LoadFile(a) error = %v", err)
			}
			before := l.Store().Active()
			hook.Reset()

			err := l.LoadFile("/bad.json")
			if !errors.Is(err, ErrLoad) {
				t.Errorf("LoadFile(bad) error = %v, want %v", err, ErrLoad)
			}

			after := l.Store().Active()
			if after != before {
				t.Error("active profile replaced after failed load")
			}
			if !after.Equal(before) {
				t.Error("active profile modified after failed load")
			}
			if l.Store().Generation() != 1 {
				t.Errorf("Generation() = %d, want 1", l.Store().Generation())
			}
			if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
				t.Error("failed load not logged at error level")
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	l, _, hook := newTestLoader(t)

	err := l.LoadFile("/nowhere/profile.json")
	if !errors.Is(err, ErrLoad) {
		t.Errorf("LoadFile() error = %v, want %v", err, ErrLoad)
	}
	if !l.Store().Active().Equal(Default()) {
		t.Error("default profile replaced after missing file")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.DebugLevel {
		t.Error("missing profile not logged at debug level")
	}
}

func TestLoadFile_UnknownKeysIgnored(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/p.json", `{
		"version": 3,
		"oscillate": {"type": "raw", "pattern": [1]},
		"led": {"type": "nec", "address": 1, "command": 2, "note": "top button"}
	}`)

	if err := l.LoadFile("/p.json"); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := l.Store().Active().Bound(); len(got) != 1 || got[0] != SlotLED {
		t.Errorf("Bound() = %v, want [led]", got)
	}
}

func TestLoadFile_KeysMatchExactCase(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/p.json", `{
		"SLEEP": {"type": "nec", "address": 1, "command": 2},
		"Timer_1H": {"type": "raw", "pattern": [1]},
		"led": {"type": "nec", "address": 3, "command": 4},
		"LED": {"type": "nec", "address": 5, "command": 6}
	}`)

	if err := l.LoadFile("/p.json"); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	p := l.Store().Active()
	if got := p.Bound(); len(got) != 1 || got[0] != SlotLED {
		t.Errorf("Bound() = %v, want [led]", got)
	}
	if w, _ := p.Resolve(SlotLED); !w.Equal(ir.EncodeNEC(3, 4)) {
		t.Errorf("led = %v, want NEC(3, 4)", w)
	}
}

func TestLoadFile_ActionFieldsMatchExactCase(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/a.json", profileA)
	writeFile(t, fs, "/p.json", `{"sleep": {"TYPE": "raw", "PATTERN": [1, 2, 3]}}`)

	if err := l.LoadFile("/a.json"); err != nil {
		t.Fatalf("LoadFile(a) error = %v", err)
	}
	before := l.Store().Active()

	// Without a lowercase "type" the entry has no type at all.
	err := l.LoadFile("/p.json")
	if !errors.Is(err, ErrLoad) || !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("LoadFile() error = %v, want %v", err, ErrInvalidDocument)
	}
	if l.Store().Active() != before {
		t.Error("active profile replaced")
	}
}

func TestLoadFile_NonObjectDocuments(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{"/null.json", "null"},
		{"/null.yaml", "~\n"},
		{"/empty.yaml", ""},
		{"/list.yaml", "- sleep\n- led\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, fs, _ := newTestLoader(t)
			writeFile(t, fs, tt.path, tt.content)

			err := l.LoadFile(tt.path)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("LoadFile() error = %v, want %v", err, ErrInvalidDocument)
			}
			if !l.Store().Active().Equal(Default()) {
				t.Error("default profile replaced")
			}
		})
	}
}

func TestLoadFile_TruncatesWideNumbers(t *testing.T) {
	l, fs, _ := newTestLoader(t)
	writeFile(t, fs, "/p.json", `{"led": {"type": "nec", "address": 131073, "command": 258}}`)

	if err := l.LoadFile("/p.json"); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	a, _ := l.Store().Active().Lookup(SlotLED)
	addr, cmd, _ := a.NEC()
	if addr != 1 || cmd != 2 {
		t.Errorf("NEC() = (%d, %d), want (1, 2)", addr, cmd)
	}
}

func TestLoadFile_YAMLAndTOML(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{"/p.yaml", "timer_2h:\n  type: nec\n  address: 1\n  command: 2\ntimer_cycle:\n  type: raw\n  pattern: [9]\n"},
		{"/p.yml", "timer_2h: {type: nec, address: 1, command: 2}\ntimer_cycle: {type: raw, pattern: [9]}\n"},
		{"/p.toml", "[timer_2h]\ntype = \"nec\"\naddress = 1\ncommand = 2\n\n[timer_cycle]\ntype = \"raw\"\npattern = [9]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, fs, _ := newTestLoader(t)
			writeFile(t, fs, tt.path, tt.content)

			if err := l.LoadFile(tt.path); err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			p := l.Store().Active()
			if w, _ := p.Resolve(SlotTimer2h); !w.Equal(ir.EncodeNEC(1, 2)) {
				t.Errorf("timer_2h = %v, want NEC(1, 2)", w)
			}
			if w, _ := p.Resolve(SlotTimer1h); !w.Equal(ir.Waveform{9}) {
				t.Errorf("timer_1h = %v, want [9]", w)
			}
		})
	}
}

func TestLoadReader(t *testing.T) {
	l, _, _ := newTestLoader(t)

	err := l.LoadReader("inline", strings.NewReader(`{"sleep": {"type": "raw", "pattern": [5, 6, 7]}}`), "json")
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if w, ok := l.Store().Active().Resolve(SlotSleep); !ok || !w.Equal(ir.Waveform{5, 6, 7}) {
		t.Errorf("sleep = %v, %v", w, ok)
	}

	err = l.LoadReader("broken", strings.NewReader(`{`), "json")
	if !errors.Is(err, ErrLoad) {
		t.Errorf("LoadReader(broken) error = %v, want %v", err, ErrLoad)
	}
	if l.Store().Active().Name() != "inline" {
		t.Error("broken document replaced the active profile")
	}
}

func TestDocumentFormat(t *testing.T) {
	tests := map[string]string{
		"profile.json": "json",
		"profile.JSON": "json",
		"profile.yaml": "yaml",
		"profile.yml":  "yaml",
		"profile.toml": "toml",
		"profile":      "json",
		"profile.txt":  "json",
	}
	for path, want := range tests {
		if got := DocumentFormat(path); got != want {
			t.Errorf("DocumentFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReadSpecFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/p.json", profileA)

	spec, err := ReadSpecFile(fs, "/p.json")
	if err != nil {
		t.Fatalf("ReadSpecFile() error = %v", err)
	}
	if spec.Timer1h != nil {
		t.Error("spec carries a timer_1h entry the document does not have")
	}
	if spec.TimerCycle == nil || len(spec.TimerCycle.Pattern) != 3 {
		t.Errorf("timer_cycle = %+v", spec.TimerCycle)
	}
}
