// Package watcher reports changes to individual files.
//
// Files are watched through their parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// still observed. Rapid bursts of events for one path can be coalesced
// with a Debouncer.
package watcher

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("file is already being watched")
	ErrNotWatching     = errors.New("file is not being watched")
	ErrNotRegularFile  = errors.New("not a regular file")
)

// Op is a set of file system operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// String returns a human-readable representation of the operation set.
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	names := []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	}
	s := ""
	for _, n := range names {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

// Has returns true if the operation set includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Changed reports whether the file content may differ after op.
func (op Op) Changed() bool {
	return op&(OpCreate|OpWrite|OpRename) != 0
}

// Event is a change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path      string
	Op        Op
	Timestamp time.Time
}

// Source produces file events.
type Source interface {
	// Events returns the event channel. It is closed by Close.
	Events() <-chan Event
	// Errors returns the error channel. It is closed by Close.
	Errors() <-chan error
	Close() error
}

// Config holds watcher options.
type Config struct {
	// BufferSize is the size of the event and error channels.
	BufferSize int
	// DebounceDelay is used by NewDebouncer when delay is zero.
	DebounceDelay time.Duration
	// Clock returns the event timestamp.
	Clock func() time.Time
}

// DefaultConfig returns the default watcher options.
func DefaultConfig() Config {
	return Config{
		BufferSize:    64,
		DebounceDelay: 100 * time.Millisecond,
		Clock:         time.Now,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithClock sets the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return cfg
}

// Run delivers events and errors from src to the handlers until ctx is
// cancelled or src is closed. A nil handler discards its channel.
func Run(ctx context.Context, src Source, onEvent func(Event), onError func(error)) error {
	events, errs := src.Events(), src.Errors()
	for events != nil || errs != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if onEvent != nil {
				onEvent(ev)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if onError != nil {
				onError(err)
			}
		}
	}
	return nil
}
