package hook

import (
	"slices"
	"sort"
	"sync"
)

type entry[E any] struct {
	listener Listener[E]
	seq      uint64
}

// Pipeline runs listeners of one event type in priority order.
type Pipeline[E any] struct {
	mu      sync.RWMutex
	entries []entry[E]
	seq     uint64
}

// NewPipeline creates an empty pipeline.
func NewPipeline[E any]() *Pipeline[E] {
	return &Pipeline[E]{}
}

// Register adds a listener.
// A listener with the same name is replaced and keeps its registration slot.
func (p *Pipeline[E]) Register(l Listener[E]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.entries {
		if e.listener.Name() == l.Name() {
			p.entries[i].listener = l
			p.sort()
			return
		}
	}

	p.seq++
	p.entries = append(p.entries, entry[E]{listener: l, seq: p.seq})
	p.sort()
}

// Unregister removes a listener by name.
func (p *Pipeline[E]) Unregister(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.entries {
		if e.listener.Name() == name {
			p.entries = slices.Delete(p.entries, i, i+1)
			return true
		}
	}
	return false
}

// Run delivers ev to each listener in order.
// Returns false if a listener stopped propagation.
func (p *Pipeline[E]) Run(ev E) bool {
	p.mu.RLock()
	entries := slices.Clone(p.entries)
	p.mu.RUnlock()

	for _, e := range entries {
		if !e.listener.Handle(ev) {
			return false
		}
	}
	return true
}

// Len returns the number of registered listeners.
func (p *Pipeline[E]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Names returns listener names in run order.
func (p *Pipeline[E]) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.listener.Name()
	}
	return names
}

// Clear removes all listeners.
func (p *Pipeline[E]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = p.entries[:0]
}

// sort orders entries by priority descending, then registration order.
func (p *Pipeline[E]) sort() {
	sort.SliceStable(p.entries, func(i, j int) bool {
		a, b := p.entries[i], p.entries[j]
		if a.listener.Priority() != b.listener.Priority() {
			return a.listener.Priority() > b.listener.Priority()
		}
		return a.seq < b.seq
	})
}
