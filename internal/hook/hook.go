package hook

// Standard listener priorities.
const (
	PrioritySystem    = 1000
	PriorityFramework = 500
	PriorityUser      = 0
)

// Listener receives events of type E.
type Listener[E any] interface {
	// Name returns a unique identifier for this listener.
	Name() string

	// Priority returns the listener priority. Higher values run first.
	Priority() int

	// Handle processes the event. Returning false stops propagation.
	Handle(ev E) bool
}

// FuncListener wraps a function as a Listener.
type FuncListener[E any] struct {
	name     string
	priority int
	fn       func(ev E) bool
}

// Func creates a listener from fn.
func Func[E any](name string, priority int, fn func(ev E) bool) *FuncListener[E] {
	return &FuncListener[E]{name: name, priority: priority, fn: fn}
}

// Observer creates a listener that never stops propagation.
func Observer[E any](name string, priority int, fn func(ev E)) *FuncListener[E] {
	return Func(name, priority, func(ev E) bool {
		if fn != nil {
			fn(ev)
		}
		return true
	})
}

// Name implements Listener.
func (f *FuncListener[E]) Name() string { return f.name }

// Priority implements Listener.
func (f *FuncListener[E]) Priority() int { return f.priority }

// Handle implements Listener.
func (f *FuncListener[E]) Handle(ev E) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(ev)
}
