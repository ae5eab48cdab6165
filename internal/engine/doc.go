// Package engine provides the rich-text document editor for inkwell.
//
// The engine package serves as the main facade, combining the document
// model, the render pipeline, selection handling and undo history into one
// Editor per document.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - content: Text runs and embedded components with grapheme helpers
//   - format: Format ranges, the merge algorithm and the formatter registry
//   - doc: Fragments, components and the document arena
//   - vdom: Render tree building from fragments and formatters
//   - differ: Reconciliation of render trees into a host tree
//   - view: Document-level rendering and anchor/position mapping
//   - selection: Ranges, scopes and caret movement
//   - history: Snapshot-based undo/redo
//
// # Edit Cycle
//
// Every mutating operation runs one complete cycle: BeforeCommand hooks,
// scope resolution for all ranges, a history checkpoint, the edit itself
// in reverse document order, a rerender, and finally the selection is
// written back to the host.
//
//	host := memhost.New(memhost.WithWidth(40))
//	reg, _ := formats.NewRegistry()
//	v := view.New(host, formats.NewBuilder(reg), host.Root())
//
//	e := engine.New(d, v, engine.WithLogger(log))
//	e.Render()
//	e.Select(doc.At(f, 0), doc.At(f, 5))
//	e.ApplyFormat(formats.Bold, format.Valid, nil, false)
//	e.Undo()
//
// # Hooks
//
// Listeners are registered on the pipelines returned by Hooks:
//
//	e.Hooks().BeforeCommand.Register(hook.Func("readonly", hook.PrioritySystem,
//	    func(ev engine.CommandEvent) bool { return false }))
//
// # Re-entrancy
//
// An Editor runs one operation at a time. Calling a mutating operation
// from a listener, or from a second goroutine while one is running,
// returns ErrReentrant. Read accessors and QueryFormat never block.
//
// # Error Handling
//
// The package defines several errors:
//
//   - ErrUnknownFragment: A position names a fragment outside the document
//   - ErrOffsetOutOfRange: A position index is outside its fragment
//   - ErrReentrant: An operation started while another was running
//   - ErrCancelled: A BeforeCommand listener stopped the command
//   - ErrNothingToUndo: Undo stack is empty
//   - ErrNothingToRedo: Redo stack is empty
//   - ErrUnknownFormat: No formatter is registered for a key
package engine
