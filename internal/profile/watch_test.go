package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")

	logger, _ := test.NewNullLogger()
	l := NewLoader(NewStore(nil), afero.NewOsFs(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Watch(ctx, path) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"led": {"type": "raw", "pattern": [7, 8, 9]}}`), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	waitFor(t, "first reload", func() bool {
		w, ok := l.Store().Active().Resolve(SlotLED)
		return ok && w.Equal(ir.Waveform{7, 8, 9})
	})
	gen := l.Store().Generation()

	// A broken write is ignored; the last good profile stays active.
	if err := os.WriteFile(path, []byte(`{"led": `), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if l.Store().Generation() != gen {
		t.Error("broken document swapped the profile")
	}
	if w, _ := l.Store().Active().Resolve(SlotLED); !w.Equal(ir.Waveform{7, 8, 9}) {
		t.Error("broken document changed the led binding")
	}

	// Other files in the directory are not profile changes.
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write notes: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if l.Store().Generation() != gen {
		t.Error("unrelated file triggered a reload")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch() did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoader(NewStore(nil), afero.NewOsFs(), logger)

	err := l.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "profile.json"))
	if err == nil {
		t.Error("Watch() on a missing directory returned nil")
	}
}
