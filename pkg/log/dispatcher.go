package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Dispatcher delivers entries to every transporter in call order.
// Delivery is synchronous: a batch run that exits right after logging loses nothing.
type Dispatcher struct {
	mu           sync.Mutex
	transporters []Transporter
	failed       int64
	closed       bool
}

// NewDispatcher creates a dispatcher writing to the given transporters.
func NewDispatcher(transporters ...Transporter) *Dispatcher {
	return &Dispatcher{transporters: transporters}
}

// Send writes the entry to all transporters. Safe for concurrent use.
func (d *Dispatcher) Send(entry Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	for _, t := range d.transporters {
		if err := t.Write(entry); err != nil {
			atomic.AddInt64(&d.failed, 1)
			fmt.Fprintf(os.Stderr, "log: transporter %s: %v\n", t.Name(), err)
		}
	}
}

// FailedCount returns the number of transporter writes that returned an error.
func (d *Dispatcher) FailedCount() int64 {
	return atomic.LoadInt64(&d.failed)
}

// Close closes all transporters. Safe to call multiple times.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	for _, t := range d.transporters {
		_ = t.Close()
	}
}
