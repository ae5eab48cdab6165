// Package hook provides ordered listener pipelines for editor notifications.
//
// A Pipeline holds listeners for one event type. Listeners run
// synchronously, highest priority first, with ties broken by registration
// order. Any listener may stop propagation by returning false; the
// remaining listeners are skipped and Run reports false.
//
// # Priority System
//
// Standard priorities:
//
//	PrioritySystem    = 1000 // Editor internals
//	PriorityFramework = 500  // Stock integrations
//	PriorityUser      = 0    // Default for application listeners
//
// # Function Adapters
//
// Simple listeners are registered with Func:
//
//	p := hook.NewPipeline[SelectionEvent]()
//	p.Register(hook.Func("log", hook.PriorityUser, func(ev SelectionEvent) bool {
//	    log.Debug("selection", "ranges", ev.Ranges)
//	    return true
//	}))
//
// # Thread Safety
//
// Registration is guarded by a read-write lock. Run copies the listener
// list before calling out, so listeners may register or unregister
// other listeners while running; the change applies to the next Run.
package hook
