// internal/dispatch/dispatcher.go
package dispatch

import (
	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/ColonelBlimp/fanremote/internal/profile"
	"github.com/ColonelBlimp/fanremote/internal/transmit"
	"github.com/sirupsen/logrus"
)

// Result classifies what happened to one dispatched command.
type Result uint8

const (
	// Delivered means the transmitter accepted the waveform
	Delivered Result = iota
	// NotConfigured means the active profile has no binding for the command
	NotConfigured
	// HardwareAbsent means no emitter was available, nothing was sent
	HardwareAbsent
	// TransmitFailed means the transmitter returned an error
	TransmitFailed
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case NotConfigured:
		return "not configured"
	case HardwareAbsent:
		return "hardware absent"
	case TransmitFailed:
		return "transmit failed"
	default:
		return "unknown"
	}
}

// Outcome reports a single dispatch. Callers decide what to show; Status
// gives the handset app's wording.
type Outcome struct {
	Command Command
	Result  Result
	Err     error // set for TransmitFailed
}

// Status returns the text for a status line. A missing emitter reads the same
// as a successful send.
func (o Outcome) Status() string {
	switch o.Result {
	case NotConfigured:
		return o.Command.notConfigured()
	case TransmitFailed:
		return o.Command.Label() + ": send failed"
	default:
		return o.Command.Label()
	}
}

// Registrar accepts one trigger per command, typically a button.
type Registrar interface {
	Register(c Command, trigger func())
}

// StatusSink receives free-text status updates.
type StatusSink interface {
	SetStatus(status string)
}

// StatusFunc adapts a function to StatusSink.
type StatusFunc func(string)

func (f StatusFunc) SetStatus(status string) { f(status) }

// Dispatcher resolves commands and transmits them. It keeps no state besides
// its collaborators and is safe for concurrent use.
type Dispatcher struct {
	store *profile.Store
	tx    transmit.Transmitter
	log   logrus.FieldLogger
}

// New creates a dispatcher reading the active profile from store.
func New(store *profile.Store, tx transmit.Transmitter, log logrus.FieldLogger) *Dispatcher {
	if tx == nil {
		tx = transmit.None{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{store: store, tx: tx, log: log}
}

// Resolve returns the waveform c would send under the active profile.
func (d *Dispatcher) Resolve(c Command) (ir.Waveform, bool) {
	if name, ok := c.Pattern(); ok {
		return ir.MustPattern(name), true
	}
	slot, ok := c.Slot()
	if !ok {
		return nil, false
	}
	return d.store.Active().Resolve(slot)
}

// Supported reports whether c has something to send under the active profile.
func (d *Dispatcher) Supported(c Command) bool {
	if c.Fixed() {
		return true
	}
	slot, ok := c.Slot()
	return ok && d.store.Active().Supports(slot)
}

// Dispatch sends c at most once.
func (d *Dispatcher) Dispatch(c Command) Outcome {
	log := d.log.WithField("command", c.String())
	out := Outcome{Command: c}

	// One snapshot per dispatch; the store may be swapped meanwhile
	w, ok := d.Resolve(c)
	if !ok {
		out.Result = NotConfigured
		log.Info(c.notConfigured())
		return out
	}

	if !d.tx.Available() {
		out.Result = HardwareAbsent
		log.Warn("no IR emitter found")
		return out
	}

	log = log.WithField("elements", len(w))
	if err := d.tx.Transmit(ir.CarrierHz, w); err != nil {
		out.Result = TransmitFailed
		out.Err = err
		log.WithError(err).Error("transmit failed")
		return out
	}

	out.Result = Delivered
	log.Info("transmitted")
	return out
}

// DispatchID parses id and dispatches it.
func (d *Dispatcher) DispatchID(id string) (Outcome, error) {
	c, err := ParseCommand(id)
	if err != nil {
		return Outcome{}, err
	}
	return d.Dispatch(c), nil
}

// Bind registers a trigger for every command with r. Each trigger dispatches
// its command and writes the outcome's status to sink.
func (d *Dispatcher) Bind(r Registrar, sink StatusSink) {
	for _, c := range Commands() {
		r.Register(c, func() {
			sink.SetStatus(d.Dispatch(c).Status())
		})
	}
}
