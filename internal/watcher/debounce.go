package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces events per path. An event is delivered once no
// further event for its path arrived within the delay; its Op is the union
// of the coalesced operations.
type Debouncer struct {
	inner Source
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	events  chan Event
	errors  chan error
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

// NewDebouncer wraps inner. A non-positive delay uses the default.
func NewDebouncer(inner Source, delay time.Duration, opts ...Option) *Debouncer {
	cfg := newConfig(opts)
	if delay <= 0 {
		delay = cfg.DebounceDelay
	}
	d := &Debouncer{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, cfg.BufferSize),
		errors:  make(chan error, cfg.BufferSize),
		closeCh: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.processLoop()
	return d
}

// Events returns the debounced event channel.
func (d *Debouncer) Events() <-chan Event { return d.events }

// Errors returns the error channel.
func (d *Debouncer) Errors() <-chan error { return d.errors }

// Close stops the debouncer, drops pending events and closes inner.
func (d *Debouncer) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.closeCh)
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
	d.mu.Unlock()

	err := d.inner.Close()
	d.wg.Wait()
	close(d.events)
	close(d.errors)
	return err
}

// PendingCount returns the number of events waiting for their delay.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush delivers all pending events immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.pending))
	for path, p := range d.pending {
		p.timer.Stop()
		paths = append(paths, path)
	}
	d.mu.Unlock()

	for _, path := range paths {
		d.fire(path)
	}
}

func (d *Debouncer) processLoop() {
	defer d.wg.Done()

	events, errs := d.inner.Events(), d.inner.Errors()
	for events != nil || errs != nil {
		select {
		case <-d.closeCh:
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			d.add(ev)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			select {
			case d.errors <- err:
			default:
			}
		}
	}
}

func (d *Debouncer) add(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if p, ok := d.pending[ev.Path]; ok {
		p.event.Op |= ev.Op
		p.event.Timestamp = ev.Timestamp
		p.timer.Reset(d.delay)
		return
	}
	path := ev.Path
	d.pending[path] = &pendingEvent{
		event: ev,
		timer: time.AfterFunc(d.delay, func() { d.fire(path) }),
	}
}

func (d *Debouncer) fire(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[path]
	if !ok || d.closed {
		return
	}
	delete(d.pending, path)

	select {
	case d.events <- p.event:
	default:
	}
}

var _ Source = (*Debouncer)(nil)
