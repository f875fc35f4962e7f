package inkcut

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Debouncer coalesces rapid stroke offset changes into preview requests.
//
// Set restarts a timer; when it fires, the latest offset is sent as a
// PreviewMorph. A preview already in flight is not cancelled, but once a
// newer one is posted the older result is superseded and not reported.
type Debouncer struct {
	client *Client
	delay  time.Duration
	fn     func(offset float64, m *Mask, err error)

	mu      sync.Mutex
	timer   *time.Timer
	offset  float64
	stopped bool
}

// NewDebouncer creates a debouncer that reports each completed preview to
// fn. fn runs on its own goroutine. A non-positive delay uses
// Params.PreviewDebounce's default.
func NewDebouncer(c *Client, delay time.Duration, fn func(offset float64, m *Mask, err error)) *Debouncer {
	if delay <= 0 {
		delay = DefaultParams().PreviewDebounce
	}
	return &Debouncer{client: c, delay: delay, fn: fn}
}

// Set records offset and (re)starts the debounce timer.
func (d *Debouncer) Set(offset float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.offset = offset
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels a pending timer. Previews already posted still complete but
// are no longer reported.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	offset, stopped := d.offset, d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}

	m, err := d.client.PreviewMorph(context.Background(), offset)
	if errors.Is(err, ErrSuperseded) {
		return
	}

	d.mu.Lock()
	stopped = d.stopped
	d.mu.Unlock()
	if !stopped {
		d.fn(offset, m, err)
	}
}
