package transmit

import (
	"fmt"
	"io"
	"sync"

	"github.com/ColonelBlimp/fanremote/internal/ir"
)

// DryRun prints each burst instead of emitting it.
type DryRun struct {
	mu  sync.Mutex
	out io.Writer
}

// NewDryRun writes bursts to out.
func NewDryRun(out io.Writer) *DryRun {
	return &DryRun{out: out}
}

func (d *DryRun) Available() bool { return true }

func (d *DryRun) Transmit(carrierHz int, w ir.Waveform) error {
	if err := w.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := fmt.Fprintf(d.out, "carrier=%dHz elements=%d duration=%dus\n%s\n",
		carrierHz, len(w), w.Duration(), w)
	return err
}
